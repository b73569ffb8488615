// Package archive keeps generated statements so they can be fetched again.
package archive

import (
	"context"
	"errors"

	"sopwriter/models"
)

// ErrNotFound is returned when no record exists for an ID.
var ErrNotFound = errors.New("archive: record not found")

// Store persists archive records.
type Store interface {
	// Save stores rec and returns its ID, assigning one when rec.ID is empty.
	Save(ctx context.Context, rec models.ArchiveRecord) (string, error)
	Get(ctx context.Context, id string) (*models.ArchiveRecord, error)
	// Enabled reports whether Save actually keeps anything.
	Enabled() bool
}

// NoopStore discards everything. It backs ARCHIVE_BACKEND=none.
type NoopStore struct{}

func (NoopStore) Save(context.Context, models.ArchiveRecord) (string, error) { return "", nil }

func (NoopStore) Get(context.Context, string) (*models.ArchiveRecord, error) {
	return nil, ErrNotFound
}

func (NoopStore) Enabled() bool { return false }

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}
