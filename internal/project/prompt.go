package project

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user questions on a terminal.
type Prompter interface {
	// Confirm asks a yes/no question. An empty answer selects def.
	Confirm(question string, def bool) (bool, error)
	// Ask asks for a single word. An empty answer selects def.
	Ask(question, def string) (string, error)
}

// LinePrompter reads one answer per line.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a prompter reading answers from in and writing
// questions to out. A nil in behaves like an empty stream.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	if in == nil {
		in = strings.NewReader("")
	}

	if out == nil {
		out = io.Discard
	}

	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// readLine returns the next line without its line ending. io.EOF is returned
// only when nothing was read.
func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm implements [Prompter]. It re-asks until the answer is recognized.
func (p *LinePrompter) Confirm(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}

	for {
		_, _ = fmt.Fprintf(p.out, "%s %s ", question, hint)

		line, err := p.readLine()
		if err != nil {
			_, _ = fmt.Fprintln(p.out)

			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// Ask implements [Prompter]. Only the first whitespace-separated word of the
// answer is used.
func (p *LinePrompter) Ask(question, def string) (string, error) {
	if def != "" {
		_, _ = fmt.Fprintf(p.out, "%s [%s]: ", question, def)
	} else {
		_, _ = fmt.Fprintf(p.out, "%s: ", question)
	}

	line, err := p.readLine()
	if err != nil {
		_, _ = fmt.Fprintln(p.out)

		return "", err
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return def, nil
	}

	return fields[0], nil
}

// Line asks for a free-form answer and returns the whole line, trimmed.
func (p *LinePrompter) Line(question string) (string, error) {
	_, _ = fmt.Fprintf(p.out, "%s: ", question)

	line, err := p.readLine()
	if err != nil {
		_, _ = fmt.Fprintln(p.out)

		return "", err
	}

	return strings.TrimSpace(line), nil
}
