package sink

import (
	"context"
	"errors"
)

// Multi writes every entry to all sinks. One sink failing does not stop the others.
type Multi []Sink

func (m Multi) Write(ctx context.Context, entry Entry) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(ctx, entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
