// Package source holds the CatalogSource implementations that read the catalog
// document from bytes: the embedded copy, a file on disk, or an HTTP URL.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"arica_go/internal/domain"
	"arica_go/internal/validation"
)

// Decode validates raw document bytes against the catalog schema and decodes them.
func Decode(data []byte) (domain.Catalog, error) {
	if err := validation.ValidateCatalog(data); err != nil {
		return domain.Catalog{}, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	var c domain.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		if errors.Is(err, domain.ErrInvalidCatalog) {
			return domain.Catalog{}, err
		}
		return domain.Catalog{}, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	return c, nil
}

// Bytes serves a fixed document, typically the one bundled with the binary.
type Bytes struct {
	name string
	data []byte
}

func NewBytes(name string, data []byte) *Bytes { return &Bytes{name: name, data: data} }

func (b *Bytes) Name() string { return b.name }

func (b *Bytes) LoadCatalog(_ context.Context) (domain.Catalog, error) {
	return Decode(b.data)
}
