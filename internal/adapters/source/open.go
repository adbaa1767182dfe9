package source

import (
	"strings"

	"arica_go/catalogs"
	"arica_go/internal/domain"
)

// Open picks a source from a location: empty for the embedded document, an
// http(s) URL for the HTTP source, anything else is a file path.
func Open(location string, rps, retries int) (domain.CatalogSource, error) {
	switch {
	case location == "":
		return NewBytes("embedded", catalogs.AricaJSON), nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTP(location, rps, retries)
	default:
		return NewFile(location), nil
	}
}
