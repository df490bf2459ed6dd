// Package printer handles output formatting and display
package printer

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/fatih/color"

	"github.com/bethropolis/combiner/internal/utils"
)

// DocumentTitle is the first line of every markdown document.
const DocumentTitle = "# Combined Project Files"

// Format selects how files are rendered.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

// ParseFormat validates a format name. The empty string means markdown.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatText, "txt":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("printer: unknown format %q (want markdown, text or json)", name)
	}
}

// Extension returns the file extension used for documents of this format.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "txt"
	default:
		return "md"
	}
}

// Printer handles output formatting and writing to the configured output destination
type Printer struct {
	output    io.Writer
	count     atomic.Int64
	useColors bool
	format    Format
	started   bool
	finalized bool
}

// New creates a new Printer with default settings
func New() *Printer {
	return &Printer{
		output: os.Stdout,
		format: FormatMarkdown,
	}
}

// WithOutput sets the output destination
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored headers in text mode
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	return p
}

// WithFormat selects the output format
func (p *Printer) WithFormat(format Format) *Printer {
	p.format = format
	return p
}

// JSONFileEntry represents a file entry in JSON output
type JSONFileEntry struct {
	Path     string `json:"path"`
	Language string `json:"language,omitempty"`
	Size     int    `json:"size"`
	Content  string `json:"content"` // Base64 encoded content
}

// start writes the document preamble once.
func (p *Printer) start() error {
	if p.started {
		return nil
	}
	p.started = true

	var err error
	switch p.format {
	case FormatMarkdown:
		_, err = fmt.Fprintf(p.output, "%s\n\n", DocumentTitle)
	case FormatJSON:
		_, err = fmt.Fprint(p.output, "[")
	}
	if err != nil {
		return fmt.Errorf("printer: failed to write document header: %w", err)
	}
	return nil
}

// PrintFile appends one file to the document. A returned error means the
// destination can no longer be written.
func (p *Printer) PrintFile(relativePath string, content []byte) error {
	first := !p.started
	if err := p.start(); err != nil {
		return err
	}

	var err error
	switch p.format {
	case FormatJSON:
		err = p.printJSON(relativePath, content, first)
	case FormatText:
		err = p.printText(relativePath, content)
	default:
		_, err = fmt.Fprintf(p.output, "## %s\n```%s\n%s\n```\n\n", relativePath, utils.Extension(relativePath), content)
	}
	if err != nil {
		return fmt.Errorf("printer: failed to write %s: %w", relativePath, err)
	}

	p.count.Add(1)
	return nil
}

func (p *Printer) printJSON(relativePath string, content []byte, first bool) error {
	entry := JSONFileEntry{
		Path:     relativePath,
		Language: utils.Extension(relativePath),
		Size:     len(content),
		Content:  base64.StdEncoding.EncodeToString(content),
	}

	jsonData, err := json.MarshalIndent(entry, "  ", "  ")
	if err != nil {
		return err
	}

	separator := ",\n  "
	if first {
		separator = "\n  "
	}
	_, err = fmt.Fprintf(p.output, "%s%s", separator, jsonData)
	return err
}

func (p *Printer) printText(relativePath string, content []byte) error {
	header := relativePath
	if p.useColors {
		header = color.New(color.FgCyan, color.Bold).Sprint(relativePath)
	}
	_, err := fmt.Fprintf(p.output, "%s\n%s\n\n", header, content)
	return err
}

// Finalize completes the document. An empty run still produces a valid
// document (the markdown title, or an empty JSON array).
func (p *Printer) Finalize() error {
	if p.finalized {
		return nil
	}
	p.finalized = true

	if err := p.start(); err != nil {
		return err
	}
	if p.format == FormatJSON {
		closing := "\n]\n"
		if p.count.Load() == 0 {
			closing = "]\n"
		}
		if _, err := fmt.Fprint(p.output, closing); err != nil {
			return fmt.Errorf("printer: failed to close JSON document: %w", err)
		}
	}
	return nil
}

// GetCount returns the number of files printed
func (p *Printer) GetCount() int64 {
	return p.count.Load()
}
