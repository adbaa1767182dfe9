package validation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaName = "catalog.schema.json"

//go:embed catalog.schema.json
var schemaData string

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString(schemaName, schemaData)
})

// ValidationError lists the schema violations found in a document.
type ValidationError struct {
	Errors []string
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation failed: %s", e.Errors[0])
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ValidateCatalog checks raw document bytes against the embedded catalog schema.
func ValidateCatalog(data []byte) error {
	schema, err := compiled()
	if err != nil {
		return fmt.Errorf("failed to compile schema %s: %w", schemaName, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var msgs []string
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			for _, leaf := range leaves(ve) {
				msgs = append(msgs, leaf.InstanceLocation+": "+leaf.Message)
			}
			if len(msgs) == 0 {
				msgs = append(msgs, ve.Message)
			}
		} else {
			msgs = append(msgs, err.Error())
		}
		return ValidationError{Errors: msgs}
	}
	return nil
}

// leaves flattens the cause tree so messages point at the failing instance.
func leaves(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var out []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		out = append(out, leaves(c)...)
	}
	return out
}
