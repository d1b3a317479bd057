// Package localstore persists the draft cart map to local disk so pending
// drafts survive process restarts without a network round-trip.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
	domainRepo "github.com/sevderk/lavash-bakery-supabase/internal/domain/repository"
)

const (
	// Namespace is the fixed key the draft blob is stored under
	Namespace = "lavash-draft-orders"

	// SchemaVersion tags the persisted blob. Version 1 drafts were a bare
	// quantity/price pair; version 2 drafts carry a lines array.
	SchemaVersion = 2
)

// blob is the persisted shape: {version, draftOrders: {customerId: draft}}
type blob struct {
	Version     int                        `json:"version"`
	DraftOrders map[string]json.RawMessage `json:"draftOrders"`
}

type fileStorage struct {
	path string
}

// NewFileStorage creates a DraftStorage persisting to a single namespaced JSON
// file under dir. The directory is created if missing.
func NewFileStorage(dir string) (domainRepo.DraftStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create draft storage dir: %w", err)
	}
	return &fileStorage{path: filepath.Join(dir, Namespace+".json")}, nil
}

func (s *fileStorage) Load() (map[uuid.UUID]entity.DraftOrder, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[uuid.UUID]entity.DraftOrder{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read draft blob: %w", err)
	}

	var b blob
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to decode draft blob: %w", err)
	}

	if b.Version > SchemaVersion {
		// Written by a newer build. Never coerce unknown shapes.
		log.Warn().Int("version", b.Version).Msg("Draft blob from a newer schema, starting empty")
		return map[uuid.UUID]entity.DraftOrder{}, nil
	}

	migrating := b.Version < SchemaVersion

	drafts := make(map[uuid.UUID]entity.DraftOrder, len(b.DraftOrders))
	for key, raw := range b.DraftOrders {
		customerID, err := uuid.Parse(key)
		if err != nil {
			log.Warn().Str("key", key).Msg("Discarding draft with invalid customer id")
			continue
		}

		if migrating && !hasLines(raw) {
			// Old-format draft without a lines array: discard rather than
			// guess at an up-conversion.
			log.Warn().Str("customer_id", key).Int("from_version", b.Version).
				Msg("Discarding old-format draft during migration")
			continue
		}

		var draft entity.DraftOrder
		if err := json.Unmarshal(raw, &draft); err != nil {
			log.Warn().Str("customer_id", key).Err(err).Msg("Discarding malformed draft")
			continue
		}
		drafts[customerID] = draft
	}

	return drafts, nil
}

// hasLines reports whether the raw draft carries an items array
func hasLines(raw json.RawMessage) bool {
	var probe struct {
		Items *[]json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.Items != nil
}

func (s *fileStorage) Save(drafts map[uuid.UUID]entity.DraftOrder) error {
	b := blob{
		Version:     SchemaVersion,
		DraftOrders: make(map[string]json.RawMessage, len(drafts)),
	}
	for customerID, draft := range drafts {
		raw, err := json.Marshal(draft)
		if err != nil {
			return fmt.Errorf("failed to encode draft for %s: %w", customerID, err)
		}
		b.DraftOrders[customerID.String()] = raw
	}

	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode draft blob: %w", err)
	}

	// Write whole blob to a temp file, then rename over the old one so a crash
	// mid-write never leaves a truncated blob behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write draft blob: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace draft blob: %w", err)
	}
	return nil
}
