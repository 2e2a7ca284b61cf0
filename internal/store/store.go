package store

import (
	"context"

	"github.com/moodgarden/moodgarden/internal/model"
)

// EntryStore exposes persistence operations required by the entry service.
// Implementations live under internal/store/<driver>/ (e.g. postgres).
type EntryStore interface {
	// Create persists a new entry and returns it with the store-assigned id.
	Create(ctx context.Context, e *model.Entry) (*model.Entry, error)
	// List returns all entries in store-determined order.
	List(ctx context.Context) ([]*model.Entry, error)
	// Get returns one entry or model.ErrNotFound.
	Get(ctx context.Context, id string) (*model.Entry, error)
	// Update applies a partial update in a single statement; model.ErrNotFound
	// when id is absent.
	Update(ctx context.Context, id string, upd model.EntryUpdate) (*model.Entry, error)
	// Delete removes an entry; model.ErrNotFound when id is absent.
	Delete(ctx context.Context, id string) error
}
