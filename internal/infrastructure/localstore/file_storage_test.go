package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
)

func TestLoadMissingFile(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	drafts, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	customerA := uuid.New()
	customerB := uuid.New()
	productX := uuid.New()

	drafts := map[uuid.UUID]entity.DraftOrder{
		customerA: {
			Lines: []entity.CartLine{
				{ProductID: productX, ProductName: "Lavaş", Quantity: 3, UnitPrice: 5.00},
			},
			DiscountAmount: 0,
		},
		customerB: {
			Lines: []entity.CartLine{
				{ProductID: productX, ProductName: "Lavaş", Quantity: 10, UnitPrice: 10.00},
			},
			DiscountAmount: 10.00,
		},
	}

	require.NoError(t, storage.Save(drafts))

	loaded, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, drafts, loaded)
}

func TestSaveOverwritesWholesale(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	customer := uuid.New()
	require.NoError(t, storage.Save(map[uuid.UUID]entity.DraftOrder{
		customer: {Lines: []entity.CartLine{{Quantity: 1, UnitPrice: 2}}},
	}))
	require.NoError(t, storage.Save(map[uuid.UUID]entity.DraftOrder{}))

	loaded, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestMigrationDiscardsOldFormatDrafts(t *testing.T) {
	dir := t.TempDir()
	wellFormed := uuid.New()
	malformed := uuid.New()

	// A version-1 blob: one draft in the old quantity/price shape, one already
	// carrying an items array.
	v1 := map[string]interface{}{
		"version": 1,
		"draftOrders": map[string]interface{}{
			malformed.String(): map[string]interface{}{
				"quantity":  4,
				"unitPrice": 5.0,
			},
			wellFormed.String(): map[string]interface{}{
				"items": []map[string]interface{}{
					{"productId": uuid.New().String(), "productName": "Simit", "quantity": 2, "unitPrice": 7.5},
				},
				"discountAmount": 1.5,
			},
		},
	}
	data, err := json.Marshal(v1)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, Namespace+".json"), data, 0o644))

	storage, err := NewFileStorage(dir)
	require.NoError(t, err)

	drafts, err := storage.Load()
	require.NoError(t, err)

	assert.Len(t, drafts, 1)
	assert.NotContains(t, drafts, malformed)
	draft, ok := drafts[wellFormed]
	require.True(t, ok)
	assert.Equal(t, 2, draft.TotalQuantity())
	assert.InDelta(t, 1.5, draft.DiscountAmount, 1e-9)
}

func TestLoadNewerVersionStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	customer := uuid.New()
	newer := map[string]interface{}{
		"version": SchemaVersion + 1,
		"draftOrders": map[string]interface{}{
			customer.String(): map[string]interface{}{"items": []interface{}{}},
		},
	}
	data, err := json.Marshal(newer)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, Namespace+".json"), data, 0o644))

	storage, err := NewFileStorage(dir)
	require.NoError(t, err)

	drafts, err := storage.Load()
	require.NoError(t, err)
	assert.Empty(t, drafts)
}
