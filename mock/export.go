package mock

import (
	"context"

	"github.com/fwojciec/pith"
)

var _ pith.ExportStore = (*ExportStore)(nil)

// ExportStore is a mock implementation of pith.ExportStore.
type ExportStore struct {
	SaveFn   func(ctx context.Context, name string, data []byte) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ExportStore) Save(ctx context.Context, name string, data []byte) error {
	return s.SaveFn(ctx, name, data)
}

func (s *ExportStore) Commit() error {
	return s.CommitFn()
}

func (s *ExportStore) Abort() error {
	return s.AbortFn()
}
