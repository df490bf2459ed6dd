package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// TerminalPrompter asks on Out and reads the answer from In.
// Only an explicit "n" or "no" refuses; an empty answer or end of input
// overwrites.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer
}

// ConfirmOverwrite implements Prompter.
func (p TerminalPrompter) ConfirmOverwrite(path string) (bool, error) {
	fmt.Fprintf(p.Out, "File %s already exists. Overwrite? (Y/N): ", path)

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "n", "no":
		return false, nil
	default:
		return true, nil
	}
}

// StaticPrompter answers every question the same way.
type StaticPrompter bool

// ConfirmOverwrite implements Prompter.
func (p StaticPrompter) ConfirmOverwrite(string) (bool, error) {
	return bool(p), nil
}

// NewPrompter returns a TerminalPrompter on stdin/stderr when stdin is a
// terminal and assumeYes is false, and an always-overwrite prompter otherwise.
func NewPrompter(assumeYes bool) Prompter {
	if assumeYes || !isatty.IsTerminal(os.Stdin.Fd()) {
		return StaticPrompter(true)
	}
	return TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}
