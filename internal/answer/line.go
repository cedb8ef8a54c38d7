// Package answer provides non-interactive answer sources.
package answer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned when the input ends before an answer is given.
var ErrNoInput = errors.New("no answer given")

// LineReader reads one answer per line, printing a prompt before each read.
type LineReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewLineReader reads answers from in and writes prompts to out.
func NewLineReader(in io.Reader, out io.Writer) *LineReader {
	return &LineReader{scanner: bufio.NewScanner(in), out: out}
}

// Answer prints the term and returns the next input line.
func (r *LineReader) Answer(ctx context.Context, term string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprintf(r.out, "Word: %s\nEnter the meaning of the word: ", term); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := r.ReadLine()
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return line, nil
}

// ReadLine returns the next trimmed line. The menu loop shares it with Answer so
// both read from the same buffer.
func (r *LineReader) ReadLine() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", ErrNoInput
	}
	return strings.TrimSpace(r.scanner.Text()), nil
}
