package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arica_go/internal/app"
	"arica_go/internal/domain"
)

type fakeRepo struct {
	mu        sync.Mutex
	positions map[string]int
	lists     map[string][]domain.Attraction
	featured  []int64
	kept      []string
	failKey   string
}

func (f *fakeRepo) UpsertCategory(ctx context.Context, position int, c domain.Category) error {
	if c.Key == f.failKey {
		return errors.New("deadlock")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.positions == nil {
		f.positions, f.lists = map[string]int{}, map[string][]domain.Attraction{}
	}
	f.positions[c.Key] = position
	f.lists[c.Key] = c.Attractions
	return nil
}
func (f *fakeRepo) ReplaceFeatured(ctx context.Context, ids []int64) error {
	f.featured = ids
	return nil
}
func (f *fakeRepo) PruneCategories(ctx context.Context, keep []string) error {
	f.kept = keep
	return nil
}
func (f *fakeRepo) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	return domain.Catalog{}, nil
}

func TestIngest_WritesCategoriesWithPositionsThenFeatured(t *testing.T) {
	repo := &fakeRepo{}
	ing := app.NewIngestionService(&fakeSource{c: sample()}, repo, 2)

	rep, err := ing.Ingest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, app.IngestReport{Categories: 3, Attractions: 4, Featured: 3, Warnings: 1}, rep)
	assert.Equal(t, map[string]int{"playas": 0, "gastronomia": 1, "cultura": 2}, repo.positions)
	assert.Len(t, repo.lists["playas"], 2)
	assert.Equal(t, []int64{3, 42, 1}, repo.featured)
	assert.Equal(t, []string{"playas", "gastronomia", "cultura"}, repo.kept)
}

func TestIngest_CategoryFailureSkipsFeatured(t *testing.T) {
	repo := &fakeRepo{failKey: "gastronomia"}
	ing := app.NewIngestionService(&fakeSource{c: sample()}, repo, 1)

	_, err := ing.Ingest(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `category "gastronomia"`)
	assert.Nil(t, repo.featured)
	assert.Nil(t, repo.kept)
	assert.Contains(t, repo.positions, "playas")
}

func TestIngest_SourceFailure(t *testing.T) {
	ing := app.NewIngestionService(&fakeSource{err: domain.ErrInvalidCatalog}, &fakeRepo{}, 1)
	_, err := ing.Ingest(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
}
