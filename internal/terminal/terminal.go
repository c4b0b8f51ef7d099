package terminal

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"golang.org/x/term"
)

// fder is implemented by *os.File.
type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether v is a file attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(fder)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the column count of the terminal behind v, or fallback when
// v is not a terminal or its size cannot be read.
func Width(v any, fallback int) int {
	f, ok := v.(fder)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return fallback
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

type lineResult struct {
	line string
	err  error
}

// LineReader reads lines from an input in a background goroutine so that a
// pending read can be abandoned when the context is cancelled.
type LineReader struct {
	ch   chan lineResult
	stop chan struct{}
	once sync.Once
}

// NewLineReader starts reading r line by line. The goroutine exits at the
// first read error, including io.EOF, or once the reader is stopped.
func NewLineReader(r io.Reader) *LineReader {
	lr := &LineReader{
		ch:   make(chan lineResult),
		stop: make(chan struct{}),
	}
	go func() {
		defer close(lr.ch)
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				// A final line without newline is still delivered.
				if !lr.send(lineResult{line: strings.TrimRight(line, "\r\n")}) {
					return
				}
			}
			if err != nil {
				lr.send(lineResult{err: err})
				return
			}
		}
	}()
	return lr
}

func (lr *LineReader) send(res lineResult) bool {
	select {
	case <-lr.stop:
		return false
	default:
	}
	select {
	case lr.ch <- res:
		return true
	case <-lr.stop:
		return false
	}
}

// ReadLine returns the next line without its terminator. It returns io.EOF
// once input is exhausted and ctx.Err() when ctx ends first. A read cut short
// by ctx stops the reader; later calls return io.EOF.
func (lr *LineReader) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-lr.stop:
		return "", io.EOF
	default:
	}
	select {
	case <-ctx.Done():
		lr.shutdown()
		return "", ctx.Err()
	case res, ok := <-lr.ch:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	}
}

// shutdown releases the reading goroutine. A read already blocked on the
// underlying input ends when that read returns.
func (lr *LineReader) shutdown() {
	lr.once.Do(func() { close(lr.stop) })
}
