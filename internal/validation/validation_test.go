package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCatalog_Valid(t *testing.T) {
	doc := `{
	  "playas": [{"id": 1, "nombre": "Playa", "descripcion": "d", "ubicacion": "u", "especialidades": ["surf"]}],
	  "notas": "ignored",
	  "destacados": [1]
	}`
	assert.NoError(t, ValidateCatalog([]byte(doc)))
}

func TestValidateCatalog_Violations(t *testing.T) {
	cases := map[string]string{
		"not an object":        `[]`,
		"featured not ints":    `{"destacados": ["1"]}`,
		"missing name":         `{"playas": [{"id": 1, "descripcion": "d", "ubicacion": "u"}]}`,
		"fractional id":        `{"playas": [{"id": 1.5, "nombre": "n", "descripcion": "d", "ubicacion": "u"}]}`,
		"specialty not string": `{"playas": [{"id": 1, "nombre": "n", "descripcion": "d", "ubicacion": "u", "especialidades": [3]}]}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			err := ValidateCatalog([]byte(doc))
			require.Error(t, err)
			var ve ValidationError
			require.True(t, errors.As(err, &ve), "got %T", err)
			assert.NotEmpty(t, ve.Errors)
		})
	}
}

func TestValidateCatalog_BadJSON(t *testing.T) {
	err := ValidateCatalog([]byte(`{"playas": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON")
}
