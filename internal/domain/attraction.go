package domain

// Attraction is one tourist-site record. JSON names follow the published catalog document.
type Attraction struct {
	ID          int64    `json:"id"`
	Name        string   `json:"nombre"`
	Description string   `json:"descripcion"`
	Location    string   `json:"ubicacion"`
	Distance    string   `json:"distancia"`
	Schedule    string   `json:"horario"`
	Price       string   `json:"precio"`
	Image       string   `json:"imagen"`
	Category    string   `json:"categoria"`
	Specialties []string `json:"especialidades,omitempty"`
}

// Category is one named, ordered list of attractions.
type Category struct {
	Key         string
	Attractions []Attraction
}

const (
	// AllCategory selects the featured subset instead of a category list.
	AllCategory = "todos"
	// FeaturedKey is the document key that holds the featured attraction IDs.
	FeaturedKey = "destacados"
)
