// Package catalogs provides the bundled attractions catalog.
package catalogs

import _ "embed"

// AricaJSON is the bundled Arica catalog, embedded at build time.
//
//go:embed arica/atracciones.json
var AricaJSON []byte
