package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arica_go/internal/app"
	"arica_go/internal/domain"
)

func TestBrowser_StartsOnFeatured(t *testing.T) {
	b := app.NewBrowser(loaded(t, nil), "")
	assert.Equal(t, domain.AllCategory, b.Active())
	assert.Equal(t, []int64{3, 1}, ids(b.Current()))
}

func TestBrowser_ShortSearchReappliesSelectedCategory(t *testing.T) {
	b := app.NewBrowser(loaded(t, nil), "")
	ctx := context.Background()

	selected := b.SelectCategory("gastronomia")
	assert.Equal(t, "gastronomia", b.Active())
	assert.Equal(t, []int64{3}, ids(selected))

	// typing a full term searches everything, deleting back to one char restores the category
	assert.Equal(t, []int64{1, 4}, ids(b.Search(ctx, "playa").Attractions))
	res := b.Search(ctx, "p")
	assert.True(t, res.Fallback)
	assert.Equal(t, "gastronomia", res.Category)
	assert.Equal(t, ids(selected), ids(res.Attractions))
}

func TestBrowser_Detail(t *testing.T) {
	b := app.NewBrowser(loaded(t, nil), "playas")
	a, err := b.Detail(2)
	require.NoError(t, err)
	assert.Equal(t, "El Laucho", a.Name)

	_, err = b.Detail(1000)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
