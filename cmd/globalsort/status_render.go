package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	statusLabelWidth = 22
	statusIndent     = "  "
)

// printer writes status lines, colored only when out is a terminal.
type printer struct {
	out      io.Writer
	colorize bool
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out, colorize: shouldColorize(out)}
}

func (p *printer) line(kind statusKind, format string, args ...any) {
	c := color.New(statusKindColor(kind))
	if p.colorize {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) info(format string, args ...any)    { p.line(statusInfo, format, args...) }
func (p *printer) success(format string, args ...any) { p.line(statusOK, format, args...) }
func (p *printer) warn(format string, args ...any)    { p.line(statusWarn, format, args...) }
func (p *printer) fail(format string, args ...any)    { p.line(statusError, format, args...) }

func (p *printer) plain(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) status(label string, kind statusKind, message string) {
	p.line(kind, "%s%-*s [%s] %s", statusIndent, statusLabelWidth, label+":", statusKindLabel(kind), message)
}

func (p *printer) table(headers []string, rows [][]string, aligns []columnAlignment) {
	fmt.Fprintln(p.out, renderTable(headers, rows, aligns, p.colorize))
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) color.Attribute {
	switch kind {
	case statusOK:
		return color.FgGreen
	case statusWarn:
		return color.FgYellow
	case statusError:
		return color.FgRed
	default:
		return color.FgBlue
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
