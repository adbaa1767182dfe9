package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"

	"arica_go/internal/adapters/observability"
	"arica_go/internal/domain"
)

// MinSearchLen is the shortest trimmed term, in runes, treated as a search.
const MinSearchLen = 2

type snapshot struct {
	catalog  domain.Catalog
	version  string
	loadedAt time.Time
}

// CatalogService owns the in-memory catalog. The catalog is swapped wholesale on a
// successful load and never mutated in place, so readers need no locking.
type CatalogService struct {
	source   domain.CatalogSource
	cache    domain.Cache
	cacheTTL time.Duration
	current  atomic.Pointer[snapshot]
}

// NewCatalogService starts with an empty catalog; cache may be nil.
func NewCatalogService(src domain.CatalogSource, c domain.Cache, ttl time.Duration) *CatalogService {
	s := &CatalogService{source: src, cache: c, cacheTTL: ttl}
	s.current.Store(&snapshot{catalog: domain.Catalog{Featured: []int64{}}})
	return s
}

// Load reads the catalog from the source. On failure the error is logged and
// returned, and the previous catalog (empty on first load) stays in place.
func (s *CatalogService) Load(ctx context.Context) error {
	name := s.source.Name()
	c, err := s.source.LoadCatalog(ctx)
	observability.ObserveLoad(name, err, c.Len())
	if err != nil {
		log.Error().Err(err).Str("source", name).Msg("catalog load failed")
		return fmt.Errorf("load catalog from %s: %w", name, err)
	}
	for _, problem := range c.Validate() {
		log.Warn().Err(problem).Str("source", name).Msg("catalog invariant violated")
	}
	s.Replace(c)
	log.Info().
		Str("source", name).
		Str("version", s.Version()).
		Int("categories", len(c.Categories)).
		Int("attractions", c.Len()).
		Msg("catalog loaded")
	return nil
}

// Replace installs c as the current catalog.
func (s *CatalogService) Replace(c domain.Catalog) {
	if c.Featured == nil {
		c.Featured = []int64{}
	}
	s.current.Store(&snapshot{catalog: c, version: fingerprint(c), loadedAt: time.Now()})
}

// Refresh reloads on every tick until ctx is done. Failures keep the previous catalog.
func (s *CatalogService) Refresh(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_ = s.Load(ctx)
		}
	}
}

func (s *CatalogService) Catalog() domain.Catalog { return s.current.Load().catalog }

// Version identifies the current catalog contents; empty before the first load.
func (s *CatalogService) Version() string { return s.current.Load().version }

func (s *CatalogService) LoadedAt() time.Time { return s.current.Load().loadedAt }

// Filter returns the featured subset for the sentinel, else the named category list,
// or an empty list when the key is absent.
func (s *CatalogService) Filter(category string) []domain.Attraction {
	c := s.Catalog()
	if category == domain.AllCategory {
		return c.FeaturedAttractions()
	}
	list, ok := c.Lookup(category)
	if !ok {
		return []domain.Attraction{}
	}
	return list
}

// Search matches the trimmed term against every category. Terms shorter than
// MinSearchLen re-apply the active category filter instead.
func (s *CatalogService) Search(ctx context.Context, term, active string) domain.SearchResult {
	res := domain.SearchResult{Term: term, Category: active}
	trimmed := strings.TrimSpace(term)
	if utf8.RuneCountInString(trimmed) < MinSearchLen {
		res.Fallback = true
		res.Attractions = s.Filter(active)
		observability.ObserveSearch("fallback")
		return res
	}

	snap := s.current.Load()
	needle := cases.Fold().String(trimmed)
	key := "search:" + snap.version + ":" + needle

	if s.cache != nil {
		var cached []domain.Attraction
		ok, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Debug().Err(err).Str("key", key).Msg("search cache read failed")
		}
		if ok && err == nil {
			res.Attractions = cached
			observeMatches(cached)
			return res
		}
	}

	res.Attractions = match(snap.catalog, needle)
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, res.Attractions, int(s.cacheTTL.Seconds())); err != nil {
			log.Debug().Err(err).Str("key", key).Msg("search cache write failed")
		}
	}
	observeMatches(res.Attractions)
	return res
}

// Find looks an attraction up across all categories; the first match wins.
func (s *CatalogService) Find(id int64) (domain.Attraction, error) {
	a, ok := s.Catalog().FindByID(id)
	if !ok {
		return domain.Attraction{}, fmt.Errorf("attraction %d: %w", id, domain.ErrNotFound)
	}
	return a, nil
}

// Categories summarizes the category lists in document order.
func (s *CatalogService) Categories(label func(string) string) []domain.CategorySummary {
	c := s.Catalog()
	out := make([]domain.CategorySummary, 0, len(c.Categories))
	for _, cat := range c.Categories {
		out = append(out, domain.CategorySummary{Key: cat.Key, Label: label(cat.Key), Count: len(cat.Attractions)})
	}
	return out
}

// match scans categories then lists in order. needle must already be case folded.
func match(c domain.Catalog, needle string) []domain.Attraction {
	fold := cases.Fold()
	contains := func(s string) bool { return strings.Contains(fold.String(s), needle) }

	out := make([]domain.Attraction, 0)
	for _, cat := range c.Categories {
		for _, a := range cat.Attractions {
			if contains(a.Name) || contains(a.Description) || contains(a.Location) || anyContains(a.Specialties, contains) {
				out = append(out, a)
			}
		}
	}
	return out
}

func anyContains(tags []string, contains func(string) bool) bool {
	for _, t := range tags {
		if contains(t) {
			return true
		}
	}
	return false
}

func observeMatches(list []domain.Attraction) {
	if len(list) == 0 {
		observability.ObserveSearch("empty")
		return
	}
	observability.ObserveSearch("match")
}

func fingerprint(c domain.Catalog) string {
	b, err := json.Marshal(c)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal catalog for fingerprint")
		return ""
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
