// Package output resolves where the combined document is written and opens it.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bethropolis/combiner/internal/utils"
)

// DefaultBaseName is the reserved base name of the output document. Files
// whose path contains it are never read back in.
const DefaultBaseName = "combined_project_files"

// StdoutName selects standard output as the destination.
const StdoutName = "-"

// ErrDestination marks failures to create or write the output document.
// They are fatal for a run.
var ErrDestination = errors.New("output destination error")

// Prompter decides what to do when the output document already exists.
type Prompter interface {
	// ConfirmOverwrite reports whether the existing file at path may be replaced.
	ConfirmOverwrite(path string) (bool, error)
}

// Resolver picks the output path.
type Resolver struct {
	Dir      string
	BaseName string
	Ext      string
	Prompter Prompter
	Logger   utils.Logger
}

// Resolve returns "<dir>/<base>.<ext>" when it is free or the prompter allows
// overwriting it, and otherwise the first free "<base>_<n>.<ext>".
func (r Resolver) Resolve() (string, error) {
	logger := utils.LoggerOrNoop(r.Logger)
	base := r.BaseName
	if base == "" {
		base = DefaultBaseName
	}

	path := filepath.Join(r.Dir, fileName(base, 0, r.Ext))
	exists, err := fileExists(path)
	if err != nil {
		return "", err
	}
	if !exists {
		return path, nil
	}

	overwrite := true
	if r.Prompter != nil {
		overwrite, err = r.Prompter.ConfirmOverwrite(path)
		if err != nil {
			return "", fmt.Errorf("%w: asking to overwrite %s: %w", ErrDestination, path, err)
		}
	}
	if overwrite {
		logger.Info("Will overwrite %s", path)
		return path, nil
	}

	path, err = ChooseName(r.Dir, base, r.Ext)
	if err != nil {
		return "", err
	}
	logger.Info("Will use %s instead.", path)
	return path, nil
}

// ChooseName returns the first "<dir>/<base>_<n>.<ext>", n >= 1, that does not exist.
func ChooseName(dir, base, ext string) (string, error) {
	for n := 1; ; n++ {
		path := filepath.Join(dir, fileName(base, n, ext))
		exists, err := fileExists(path)
		if err != nil {
			return "", err
		}
		if !exists {
			return path, nil
		}
	}
}

func fileName(base string, n int, ext string) string {
	name := base
	if n > 0 {
		name += "_" + strconv.Itoa(n)
	}
	if ext != "" {
		name += "." + ext
	}
	return name
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrDestination, err)
	}
}

// Document is a buffered output document. Every write or close failure
// wraps ErrDestination.
type Document struct {
	name   string
	file   *os.File
	closer bool
	closed bool
	buf    *bufio.Writer
}

// Create opens the document at path, truncating it. StdoutName writes to
// standard output.
func Create(path string) (*Document, error) {
	if path == StdoutName {
		return &Document{name: "stdout", file: os.Stdout, buf: bufio.NewWriter(os.Stdout)}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDestination, err)
	}
	return &Document{name: path, file: file, closer: true, buf: bufio.NewWriter(file)}, nil
}

// Name returns the path the document is written to.
func (d *Document) Name() string { return d.name }

// IsStdout reports whether the document goes to standard output.
func (d *Document) IsStdout() bool { return !d.closer }

func (d *Document) Write(p []byte) (int, error) {
	n, err := d.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrDestination, err)
	}
	return n, nil
}

// Close flushes buffered output and closes the file. Later calls are no-ops.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	err := d.buf.Flush()
	if d.closer {
		if closeErr := d.file.Close(); err == nil {
			err = closeErr
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDestination, err)
	}
	return nil
}

var _ io.WriteCloser = (*Document)(nil)
