// Package render turns attraction lists into markup: templ components for the web
// page and htmx fragments, and lipgloss blocks for the terminal.
package render

const (
	NoResultsTitle = "No se encontraron resultados"
	NoResultsHint  = "Intenta con otros términos de búsqueda"
)

// Labels maps category keys to their badge text.
type Labels map[string]string

func DefaultLabels() Labels {
	return Labels{
		"playas":      "Playa",
		"gastronomia": "Gastronomía",
		"cultura":     "Cultural",
		"aventura":    "Aventura",
	}
}

// Label falls back to the raw key for unknown categories.
func (l Labels) Label(key string) string {
	if v, ok := l[key]; ok && v != "" {
		return v
	}
	return key
}

// Merge returns a copy of l with over applied on top.
func (l Labels) Merge(over map[string]string) Labels {
	out := make(Labels, len(l)+len(over))
	for k, v := range l {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}
