package sink

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// File appends one audit line per entry to a file.
type File struct {
	mu     sync.Mutex
	f      *os.File
	closed bool
}

// OpenFile opens path for appending, creating it if needed.
func OpenFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit file: %w", err)
	}
	return &File{f: f}, nil
}

func (s *File) Write(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, err := s.f.WriteString(entry.Line + "\n"); err != nil {
		return fmt.Errorf("failed to append audit line: %w", err)
	}
	return nil
}

func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.f.Close()
}
