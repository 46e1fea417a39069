// Package output renders command output for terminals and pipes.
//
// Styled output is only used when the destination is a terminal; piped
// output stays plain so that it can be parsed.
package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Format is a report format.
type Format string

// Report formats.
const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// Formats lists the supported report formats.
func Formats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTable)}
}

// Renderer writes command output to out and status messages to errOut.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	isTTY  bool
	styles Styles
}

// NewRenderer creates a renderer. Styling is enabled when errOut is a
// terminal.
func NewRenderer(out, errOut io.Writer) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(errOut))
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool) *Renderer {
	return &Renderer{
		out:    out,
		errOut: errOut,
		isTTY:  isTTY,
		styles: NewStyles(errOut, isTTY),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsTTY reports whether styled output is enabled.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Styles returns the renderer's styles.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Out returns the primary output writer.
func (r *Renderer) Out() io.Writer {
	return r.out
}

// Println writes a line to the primary output.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Printf writes formatted text to the primary output.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Header writes a level 1 or 2 header.
func (r *Renderer) Header(level int, title string) {
	style := r.styles.Header2
	if level <= 1 {
		style = r.styles.Header1
	}
	r.Println(style.Render(title))
}

// Success writes a success message.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success.Render("✓ " + msg))
}

// StatusLine writes an indented item with a status marker.
func (r *Renderer) StatusLine(item, status, detail string) {
	var marker string
	switch status {
	case "success":
		marker = r.styles.Success.Render("✓")
	case "error":
		marker = r.styles.Error.Render("✗")
	default:
		marker = r.styles.Muted.Render("-")
	}
	line := "  " + marker + " " + item
	if detail != "" {
		line += " " + r.styles.Muted.Render(detail)
	}
	r.Println(line)
}

// Status writes a line to the status output.
func (r *Renderer) Status(s string) {
	_, _ = fmt.Fprintln(r.errOut, s)
}
