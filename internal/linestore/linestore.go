// Package linestore persists named resources as lists of text lines.
//
// Stores assume a single process owns the data directory. Running two wordwise
// processes against the same resources at once is unsupported.
package linestore

import (
	"context"
	"io/fs"
)

// ErrNotExist is returned (wrapped) when a resource has never been written.
var ErrNotExist = fs.ErrNotExist

// Store reads and replaces whole resources.
type Store interface {
	// ReadLines returns the lines of a resource without trailing newlines.
	ReadLines(ctx context.Context, name string) ([]string, error)
	// WriteLines replaces the resource content in full.
	WriteLines(ctx context.Context, name string, lines []string) error
}
