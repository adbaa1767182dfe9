package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidCatalog = errors.New("invalid catalog document")
)

// CatalogSource produces a complete catalog. Name labels logs and metrics.
type CatalogSource interface {
	Name() string
	LoadCatalog(ctx context.Context) (Catalog, error)
}

type CatalogRepository interface {
	// Write paths
	UpsertCategory(ctx context.Context, position int, c Category) error
	ReplaceFeatured(ctx context.Context, ids []int64) error
	// PruneCategories removes every stored category whose key is not in keep.
	PruneCategories(ctx context.Context, keep []string) error

	// Read paths
	LoadCatalog(ctx context.Context) (Catalog, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models
type CategorySummary struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type SearchResult struct {
	Term        string       `json:"term"`
	Category    string       `json:"category"`
	Fallback    bool         `json:"fallback"`
	Attractions []Attraction `json:"attractions"`
}
