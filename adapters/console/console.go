// Package console implements the operator side of the attach workflow on a
// line-oriented terminal: listings are drawn as tables and answers are read
// one line at a time.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/yaegashi/tgwops/domain/model"
	"github.com/yaegashi/tgwops/internal/terminal"
)

const defaultWidth = 100

// Console is an operator bound to an input stream and an output writer.
type Console struct {
	src    io.Reader
	in     *terminal.LineReader
	out    io.Writer
	width  int
	title  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	border lipgloss.Style
	notice lipgloss.Style
	warn   lipgloss.Style
}

// New returns a Console reading answers from in and writing to out.
// Reading starts at the first Ask. Colors are enabled only when out is a terminal.
func New(in io.Reader, out io.Writer) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		src:    in,
		out:    out,
		width:  terminal.Width(out, defaultWidth),
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		header: r.NewStyle().Bold(true).Padding(0, 1),
		cell:   r.NewStyle().Padding(0, 1),
		border: r.NewStyle().Foreground(lipgloss.Color("#444444")),
		notice: r.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
		warn:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
	}
}

// Show draws t under title.
func (c *Console) Show(ctx context.Context, title string, t model.Table) error {
	if _, err := fmt.Fprintln(c.out, c.title.Render(title)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(c.out, c.Render(t))
	return err
}

// Render returns t as a bordered table.
func (c *Console) Render(t model.Table) string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(c.border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return c.header
			}
			return c.cell
		}).
		Headers(t.Header...).
		Rows(t.Rows...)
	s := tbl.String()
	if lipgloss.Width(s) > c.width {
		s = tbl.Width(c.width).String()
	}
	return s
}

// Ask prints prompt and waits for one line. End of input and cancellation
// are reported as model.ErrOperatorAbort.
func (c *Console) Ask(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(c.out, prompt); err != nil {
		return "", err
	}
	if c.in == nil {
		c.in = terminal.NewLineReader(c.src)
	}
	line, err := c.in.ReadLine(ctx)
	if err != nil {
		// Keep the next output off the prompt line.
		fmt.Fprintln(c.out)
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", model.ErrOperatorAbort, err)
		}
		return "", err
	}
	return line, nil
}

// Notify prints a progress message.
func (c *Console) Notify(ctx context.Context, msg string) {
	fmt.Fprintln(c.out, c.notice.Render(msg))
}

// Warn prints a message the operator must act on.
func (c *Console) Warn(ctx context.Context, msg string) {
	fmt.Fprintln(c.out, c.warn.Render("WARNING: "+msg))
}
