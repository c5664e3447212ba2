package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localfinds/discovery-engine/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.EnsureSchema())
	return store
}

func seedCandidates() []domain.BusinessCandidate {
	lat, lng := 41.9077, -87.6722
	return []domain.BusinessCandidate{
		{
			ID: "b-001", Name: "Joe's Family Diner", Category: domain.CategoryFood,
			Description: "Neighborhood diner", Address: "1344 N Milwaukee Ave",
			ProviderTypes: []string{"restaurant"}, Rating: 4.6, ReviewCount: 12,
			Latitude: &lat, Longitude: &lng,
		},
		{
			ID: "b-002", Name: "Wormhole Books", Category: domain.CategoryRetail,
			ProviderTypes: []string{"book_store"}, Rating: 4.8, ReviewCount: 34,
		},
		{
			ID: "b-003", Name: "Quick Mart", Category: domain.CategoryRetail,
			Rating: 3.2, ReviewCount: 200,
		},
	}
}

func TestUpsertManyIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.UpsertMany(seedCandidates()))
	require.NoError(t, store.UpsertMany(seedCandidates()))

	n, err := store.CountCandidates()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestGetCandidateRoundTrip(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.UpsertMany(seedCandidates()))

	got, ok, err := store.GetCandidate("b-001")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "Joe's Family Diner", got.Name)
	assert.Equal(t, domain.CategoryFood, got.Category)
	assert.Equal(t, []string{"restaurant"}, got.ProviderTypes)
	require.True(t, got.HasLocation())
	assert.InDelta(t, 41.9077, *got.Latitude, 1e-9)

	// b-002 has no coordinates; they must come back absent, not zero.
	noLoc, ok, err := store.GetCandidate("b-002")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, noLoc.HasLocation())
}

func TestGetCandidateMissing(t *testing.T) {
	store := newTestStore(t)

	_, ok, err := store.GetCandidate("ghost")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateCandidateAssignsID(t *testing.T) {
	store := newTestStore(t)

	created, err := store.CreateCandidate(domain.BusinessCandidate{Name: "New Spot", Category: "food"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Contains(t, created.ID, "b-")

	_, ok, err := store.GetCandidate(created.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateCandidateRequiresName(t *testing.T) {
	store := newTestStore(t)

	_, err := store.CreateCandidate(domain.BusinessCandidate{})
	assert.Error(t, err)
}

func TestDeleteCandidate(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.UpsertMany(seedCandidates()))

	deleted, err := store.DeleteCandidate("b-001")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteCandidate("b-001")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListCandidatesFilters(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.UpsertMany(seedCandidates()))

	items, total, err := store.ListCandidates(20, 0, "retail", 4.0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "b-002", items[0].ID)
}

func TestListCandidatesPaging(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.UpsertMany(seedCandidates()))

	items, total, err := store.ListCandidates(2, 2, "", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, items, 1)
}

func TestAllCandidates(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.UpsertMany(seedCandidates()))

	all, err := store.AllCandidates()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLoadCandidatesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candidates.json")
	content := `[
  {"id": "b-1", "name": "Joe's", "category": "food", "rating": 4.5, "review_count": 10, "latitude": 41.9, "longitude": -87.6},
  {"id": "b-2", "name": "Books", "category": "retail", "rating": 4.8, "review_count": 3}
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	candidates, err := LoadCandidatesFromFile(path)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.True(t, candidates[0].HasLocation())
	assert.False(t, candidates[1].HasLocation())
}

func TestLoadCandidatesRejectsMissingID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "No ID"}]`), 0o644))

	_, err := LoadCandidatesFromFile(path)
	assert.Error(t, err)
}
