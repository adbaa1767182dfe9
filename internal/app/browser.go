package app

import (
	"context"

	"arica_go/internal/domain"
)

// Browser is one viewer's state over a shared CatalogService: the active category
// that short searches fall back to.
type Browser struct {
	svc    *CatalogService
	active string
}

// NewBrowser starts on active, or on the featured view when active is empty.
func NewBrowser(svc *CatalogService, active string) *Browser {
	if active == "" {
		active = domain.AllCategory
	}
	return &Browser{svc: svc, active: active}
}

func (b *Browser) Active() string { return b.active }

// SelectCategory makes category active and returns its listing.
func (b *Browser) SelectCategory(category string) []domain.Attraction {
	b.active = category
	return b.svc.Filter(category)
}

// Current re-applies the active category filter.
func (b *Browser) Current() []domain.Attraction { return b.svc.Filter(b.active) }

func (b *Browser) Search(ctx context.Context, term string) domain.SearchResult {
	return b.svc.Search(ctx, term, b.active)
}

func (b *Browser) Detail(id int64) (domain.Attraction, error) { return b.svc.Find(id) }
