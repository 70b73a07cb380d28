package menu

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	titleColor   = color.New(color.FgBlue, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// Prompt reads answers line by line and writes colored messages.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompt wraps in and out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

// Out returns the output writer.
func (p *Prompt) Out() io.Writer {
	return p.out
}

// Ask prints question and returns the trimmed reply. io.EOF is returned only
// when the input ends before any text is read.
func (p *Prompt) Ask(question string) (string, error) {
	if question != "" {
		fmt.Fprint(p.out, question)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. An empty reply yields def.
func (p *Prompt) Confirm(question string, def bool) (bool, error) {
	hint := " [y/N] "
	if def {
		hint = " [Y/n] "
	}
	answer, err := p.Ask(question + hint)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *Prompt) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Prompt) Success(format string, args ...any) {
	successColor.Fprintf(p.out, format+"\n", args...)
}

func (p *Prompt) Warn(format string, args ...any) {
	warnColor.Fprintf(p.out, format+"\n", args...)
}

func (p *Prompt) Error(format string, args ...any) {
	errorColor.Fprintf(p.out, format+"\n", args...)
}

func (p *Prompt) title(text string) {
	rule := strings.Repeat("-", 60)
	titleColor.Fprintln(p.out, rule)
	titleColor.Fprintln(p.out, text)
	titleColor.Fprintln(p.out, rule)
}
