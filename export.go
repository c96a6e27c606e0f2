package pith

import "context"

// ExportStore writes rendered extraction results to an external
// destination with atomic semantics. Save stages a named result; Commit
// makes staged results visible; Abort discards pending changes.
type ExportStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Commit() error
	Abort() error
}
