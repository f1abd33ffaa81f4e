package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when a read is abandoned because its
// context ended.
var ErrInputCancelled = errors.New("input canceled")

// AnswerReader reads trimmed answer lines from a terminal without blocking
// past context cancellation.
type AnswerReader struct {
	src *bufio.Reader
	mu  sync.Mutex
}

// NewAnswerReader wraps r.
func NewAnswerReader(r io.Reader) *AnswerReader {
	if r == nil {
		panic("reader cannot be nil")
	}
	return &AnswerReader{src: bufio.NewReader(r)}
}

type readResult struct {
	err  error
	line string
}

// ReadAnswer returns the next line with surrounding whitespace removed.
// A last line without a newline is still an answer; io.EOF is reported
// only once nothing is left to read.
func (a *AnswerReader) ReadAnswer(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}

	done := make(chan readResult, 1)
	go func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		line, err := a.src.ReadString('\n')
		done <- readResult{line: line, err: err}
	}()

	// A canceled read leaves its goroutine parked on the source.
	var res readResult
	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res = <-done:
	}

	switch {
	case res.err == nil:
		return strings.TrimSpace(res.line), nil
	case errors.Is(res.err, io.EOF) && res.line != "":
		return strings.TrimSpace(res.line), nil
	default:
		return "", res.err
	}
}
