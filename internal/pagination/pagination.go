// Package pagination implements opaque cursor-based slicing of ordered lists.
//
// Cursors encode a zero-based offset as base64 of its decimal string. The
// encoding round-trips exactly; a malformed token is reported via
// ErrInvalidCursor, distinctly from a valid-but-exhausted offset which simply
// yields an empty page.
package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidCursor is returned when a cursor token cannot be decoded into a
// list offset.
var ErrInvalidCursor = errors.New("invalid cursor")

// Paginator slices ordered lists into fixed-size pages.
type Paginator struct {
	size int
}

// New constructs a Paginator. Size must be positive.
func New(size int) (*Paginator, error) {
	if size <= 0 {
		return nil, fmt.Errorf("page size must be greater than 0, got %d", size)
	}
	return &Paginator{size: size}, nil
}

// EncodeCursor encodes a list offset as an opaque cursor token.
func EncodeCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

// DecodeCursor decodes a cursor token back into a list offset. An empty token
// decodes to offset 0 (first page).
func DecodeCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCursor, cursor)
	}
	offset, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCursor, cursor)
	}
	return offset, nil
}

// Paginate returns the page at the given cursor and the cursor for the next
// page, or "" when the list is exhausted. An out-of-range offset yields an
// empty page with no next cursor.
func Paginate[T any](p *Paginator, items []T, cursor string) ([]T, string, error) {
	if len(items) == 0 {
		return []T{}, "", nil
	}

	start, err := DecodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}
	if start < 0 || start >= len(items) {
		return []T{}, "", nil
	}

	end := start + p.size
	if end > len(items) {
		end = len(items)
	}

	page := make([]T, end-start)
	copy(page, items[start:end])

	if end < len(items) {
		return page, EncodeCursor(end), nil
	}
	return page, "", nil
}
