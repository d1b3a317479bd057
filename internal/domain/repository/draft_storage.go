package repository

import (
	"github.com/google/uuid"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
)

// DraftStorage is the persistence adapter behind the draft cart store. The
// in-memory map stays authoritative for the session: Save failures are logged
// by the caller and never surfaced to the user.
type DraftStorage interface {
	// Load reads the persisted draft map. A missing blob yields an empty map.
	Load() (map[uuid.UUID]entity.DraftOrder, error)
	// Save overwrites the persisted draft map wholesale (last writer wins)
	Save(drafts map[uuid.UUID]entity.DraftOrder) error
}
