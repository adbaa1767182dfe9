package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"arica_go/internal/domain"
)

type IngestionService struct {
	src     domain.CatalogSource
	repo    domain.CatalogRepository
	workers int64
}

func NewIngestionService(src domain.CatalogSource, r domain.CatalogRepository, workers int) *IngestionService {
	if workers <= 0 {
		workers = 4
	}
	return &IngestionService{src: src, repo: r, workers: int64(workers)}
}

// IngestReport summarizes one ingestion run.
type IngestReport struct {
	Categories  int
	Attractions int
	Featured    int
	Warnings    int
}

// Ingest copies the source catalog into the repository. Categories are written
// concurrently, each keeping its document position; featured IDs are replaced after
// them so readers never see featured entries ahead of their attractions. Categories
// missing from the document are pruned last.
func (s *IngestionService) Ingest(ctx context.Context) (IngestReport, error) {
	c, err := s.src.LoadCatalog(ctx)
	if err != nil {
		return IngestReport{}, fmt.Errorf("load catalog from %s: %w", s.src.Name(), err)
	}

	rep := IngestReport{Categories: len(c.Categories), Attractions: c.Len(), Featured: len(c.Featured)}
	for _, problem := range c.Validate() {
		rep.Warnings++
		log.Warn().Err(problem).Msg("catalog invariant violated")
	}

	sem := semaphore.NewWeighted(s.workers)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i, cat := range c.Categories {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			break
		}

		wg.Add(1)
		go func(position int, cat domain.Category) {
			defer wg.Done()
			defer sem.Release(1)

			if err := s.repo.UpsertCategory(ctx, position, cat); err != nil {
				log.Warn().Str("category", cat.Key).Err(err).Msg("ingest category failed")
				mu.Lock()
				errs = append(errs, fmt.Errorf("category %q: %w", cat.Key, err))
				mu.Unlock()
				return
			}
			log.Info().Str("category", cat.Key).Int("attractions", len(cat.Attractions)).Msg("ingest category ok")
		}(i, cat)
	}
	wg.Wait()

	if len(errs) > 0 {
		return rep, errors.Join(errs...)
	}
	if err := s.repo.ReplaceFeatured(ctx, c.Featured); err != nil {
		return rep, fmt.Errorf("replace featured: %w", err)
	}
	if err := s.repo.PruneCategories(ctx, c.Keys()); err != nil {
		return rep, fmt.Errorf("prune categories: %w", err)
	}
	return rep, nil
}
