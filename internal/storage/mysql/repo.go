package mysql

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"arica_go/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

func valJSON(tags []string) any {
	if len(tags) == 0 {
		return nil
	}
	b, _ := json.Marshal(tags)
	return string(b)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// Repo stores catalogs in MySQL. It is both the ingest target and, through
// LoadCatalog, a catalog source for the API.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Name() string { return "mysql" }

// Migrate applies the embedded schema. Statements are idempotent.
func (r *Repo) Migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// UpsertCategory replaces the category's list in one transaction.
func (r *Repo) UpsertCategory(ctx context.Context, position int, c domain.Category) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, upsertCategorySQL, c.Key, position); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, deleteAttractionsSQL, c.Key); err != nil {
		return err
	}
	if len(c.Attractions) > 0 {
		values := make([]string, 0, len(c.Attractions))
		args := make([]any, 0, len(c.Attractions)*12) // 12 params per row
		for i, a := range c.Attractions {
			values = append(values, attractionRow)
			args = append(args,
				c.Key, i, a.ID,
				a.Name, a.Description, a.Location, a.Distance,
				a.Schedule, a.Price, a.Image, a.Category,
				valJSON(a.Specialties),
			)
		}
		if _, err := tx.ExecContext(ctx, insertAttractionsPrefix+strings.Join(values, ","), args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repo) ReplaceFeatured(ctx context.Context, ids []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteFeaturedSQL); err != nil {
		return err
	}
	if len(ids) > 0 {
		values := make([]string, 0, len(ids))
		args := make([]any, 0, len(ids)*2)
		for i, id := range ids {
			values = append(values, "(?,?)")
			args = append(args, i, id)
		}
		if _, err := tx.ExecContext(ctx, insertFeaturedPrefix+strings.Join(values, ","), args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repo) PruneCategories(ctx context.Context, keep []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	attractions, categories := "DELETE FROM attractions", "DELETE FROM categories"
	args := make([]any, 0, len(keep))
	for _, k := range keep {
		args = append(args, k)
	}
	if len(keep) > 0 {
		in := placeholders(len(keep))
		attractions += " WHERE list_key NOT IN (" + in + ")"
		categories += " WHERE key_name NOT IN (" + in + ")"
	}
	if _, err := tx.ExecContext(ctx, attractions, args...); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, categories, args...); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadCatalog rebuilds the catalog in stored category and list order.
func (r *Repo) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	rows, err := r.db.QueryContext(ctx, loadAttractionsSQL)
	if err != nil {
		return domain.Catalog{}, err
	}
	defer rows.Close()

	c := domain.Catalog{Featured: []int64{}}
	for rows.Next() {
		var key string
		var id sql.NullInt64
		var name, desc, loc, dist, sched, price, img, cat sql.NullString
		var tagsJSON []byte
		if err := rows.Scan(&key, &id, &name, &desc, &loc, &dist, &sched, &price, &img, &cat, &tagsJSON); err != nil {
			return domain.Catalog{}, err
		}
		if n := len(c.Categories); n == 0 || c.Categories[n-1].Key != key {
			c.Categories = append(c.Categories, domain.Category{Key: key, Attractions: []domain.Attraction{}})
		}
		if !id.Valid {
			continue
		}
		a := domain.Attraction{
			ID:          id.Int64,
			Name:        name.String,
			Description: desc.String,
			Location:    loc.String,
			Distance:    dist.String,
			Schedule:    sched.String,
			Price:       price.String,
			Image:       img.String,
			Category:    cat.String,
		}
		if len(tagsJSON) > 0 {
			if err := json.Unmarshal(tagsJSON, &a.Specialties); err != nil {
				return domain.Catalog{}, fmt.Errorf("attraction %d especialidades: %w", a.ID, err)
			}
		}
		last := &c.Categories[len(c.Categories)-1]
		last.Attractions = append(last.Attractions, a)
	}
	if err := rows.Err(); err != nil {
		return domain.Catalog{}, err
	}

	frows, err := r.db.QueryContext(ctx, loadFeaturedSQL)
	if err != nil {
		return domain.Catalog{}, err
	}
	defer frows.Close()
	for frows.Next() {
		var id int64
		if err := frows.Scan(&id); err != nil {
			return domain.Catalog{}, err
		}
		c.Featured = append(c.Featured, id)
	}
	return c, frows.Err()
}
