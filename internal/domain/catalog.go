package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Catalog is the full loaded dataset: ordered category lists plus the featured IDs.
// Category order is the key order of the source document.
type Catalog struct {
	Categories []Category
	Featured   []int64
}

// UnmarshalJSON decodes the published document shape, an object mapping category
// keys to attraction arrays plus the featured key holding an array of IDs.
// Keys whose value is not an array are skipped.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	om := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(data, om); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	out := Catalog{Featured: []int64{}}
	for p := om.Oldest(); p != nil; p = p.Next() {
		raw := bytes.TrimSpace(p.Value)
		if len(raw) == 0 || raw[0] != '[' {
			continue
		}
		if p.Key == FeaturedKey {
			if err := json.Unmarshal(raw, &out.Featured); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, FeaturedKey, err)
			}
			continue
		}
		var list []Attraction
		if err := json.Unmarshal(raw, &list); err != nil {
			return fmt.Errorf("%w: category %q: %v", ErrInvalidCatalog, p.Key, err)
		}
		if list == nil {
			list = []Attraction{}
		}
		out.Categories = append(out.Categories, Category{Key: p.Key, Attractions: list})
	}
	*c = out
	return nil
}

// MarshalJSON writes the document shape back, categories first in order, featured IDs last.
func (c Catalog) MarshalJSON() ([]byte, error) {
	om := orderedmap.New[string, any](len(c.Categories) + 1)
	for _, cat := range c.Categories {
		list := cat.Attractions
		if list == nil {
			list = []Attraction{}
		}
		om.Set(cat.Key, list)
	}
	featured := c.Featured
	if featured == nil {
		featured = []int64{}
	}
	om.Set(FeaturedKey, featured)
	return json.Marshal(om)
}

// Lookup returns a copy of the list stored under key.
func (c Catalog) Lookup(key string) ([]Attraction, bool) {
	for _, cat := range c.Categories {
		if cat.Key == key {
			return slices.Clone(cat.Attractions), true
		}
	}
	return nil, false
}

// FindByID scans categories in order; the first attraction with id wins.
func (c Catalog) FindByID(id int64) (Attraction, bool) {
	for _, cat := range c.Categories {
		for _, a := range cat.Attractions {
			if a.ID == id {
				return a, true
			}
		}
	}
	return Attraction{}, false
}

// FeaturedAttractions resolves the featured IDs in order, dropping IDs that resolve to nothing.
func (c Catalog) FeaturedAttractions() []Attraction {
	out := make([]Attraction, 0, len(c.Featured))
	for _, id := range c.Featured {
		if a, ok := c.FindByID(id); ok {
			out = append(out, a)
		}
	}
	return out
}

// Keys lists the category keys in document order.
func (c Catalog) Keys() []string {
	keys := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		keys = append(keys, cat.Key)
	}
	return keys
}

// Len is the number of attractions across all categories.
func (c Catalog) Len() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Attractions)
	}
	return n
}

// Validate reports duplicate IDs and featured IDs that resolve to nothing.
// Category tags that disagree with their list key are trusted and not reported.
func (c Catalog) Validate() []error {
	var errs []error
	seen := make(map[int64]string, c.Len())
	for _, cat := range c.Categories {
		for _, a := range cat.Attractions {
			if first, dup := seen[a.ID]; dup {
				errs = append(errs, fmt.Errorf("attraction %d in %q duplicates an id already used in %q", a.ID, cat.Key, first))
				continue
			}
			seen[a.ID] = cat.Key
		}
	}
	for i, id := range c.Featured {
		if _, ok := seen[id]; !ok {
			errs = append(errs, fmt.Errorf("%s[%d]: id %d not found in any category", FeaturedKey, i, id))
		}
	}
	return errs
}
