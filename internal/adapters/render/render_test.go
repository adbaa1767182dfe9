package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arica_go/internal/domain"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

var chinchorro = domain.Attraction{
	ID: 1, Name: "Playa Chinchorro", Description: "Arena extensa", Location: "Arica", Distance: "3 km",
	Schedule: "24h", Price: "Gratis", Image: "/img/chinchorro.jpg", Category: "playas",
}

func TestCards_EmptyListRendersPlaceholder(t *testing.T) {
	for _, list := range [][]domain.Attraction{nil, {}} {
		out := renderString(t, Cards(DefaultLabels(), list))
		assert.Contains(t, out, `class="no-results"`)
		assert.Contains(t, out, NoResultsTitle)
		assert.Contains(t, out, "Intenta con otros t")
	}
}

func TestCard_ShowsAllFieldsAndDetailAction(t *testing.T) {
	out := renderString(t, Cards(DefaultLabels(), []domain.Attraction{chinchorro}))
	for _, want := range []string{
		`data-id="1"`,
		`hx-get="/attractions/1"`,
		`src="/img/chinchorro.jpg"`,
		`<div class="card-badge">Playa</div>`,
		`<h3>Playa Chinchorro</h3>`,
		`Arica • 3 km`,
		`Arena extensa`,
		`24h`,
		`Gratis`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "no-results")
}

func TestCard_OnePerEntryInOrder(t *testing.T) {
	second := chinchorro
	second.ID, second.Name = 2, "El Laucho"
	out := renderString(t, Cards(DefaultLabels(), []domain.Attraction{second, chinchorro}))
	assert.Equal(t, 2, strings.Count(out, `class="card"`))
	assert.Less(t, strings.Index(out, "El Laucho"), strings.Index(out, "Playa Chinchorro"))
}

func TestCard_EscapesTextAndSanitizesImage(t *testing.T) {
	a := chinchorro
	a.Name = `<script>alert("x")</script>`
	a.Image = "javascript:alert(1)"
	out := renderString(t, Card(DefaultLabels(), a))
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "javascript:")
}

func TestLabels(t *testing.T) {
	l := DefaultLabels()
	assert.Equal(t, "Gastronomía", l.Label("gastronomia"))
	assert.Equal(t, "museos", l.Label("museos"))

	merged := l.Merge(map[string]string{"museos": "Museo", "playas": "Playas"})
	assert.Equal(t, "Museo", merged.Label("museos"))
	assert.Equal(t, "Playas", merged.Label("playas"))
	assert.Equal(t, "Playa", l.Label("playas"), "merge must not modify the receiver")
}

func TestDetail(t *testing.T) {
	out := renderString(t, Detail(chinchorro))
	assert.Contains(t, out, "Detalles de: Playa Chinchorro")
	assert.Contains(t, out, "<p>Arena extensa</p>")
}

func TestPage_MarksActiveCategoryAndFillsContainer(t *testing.T) {
	out := renderString(t, Page(PageData{
		Active:     "playas",
		Query:      `"quoted"`,
		Categories: []domain.CategorySummary{{Key: "playas", Label: "Playa", Count: 1}, {Key: "cultura", Label: "Cultural"}},
		Cards:      []domain.Attraction{chinchorro},
		Labels:     DefaultLabels(),
	}))
	assert.Contains(t, out, `id="searchInput"`)
	assert.Contains(t, out, `<a class="category active" data-category="playas"`)
	assert.Contains(t, out, `<a class="category" data-category="todos"`)
	assert.Contains(t, out, `<a class="category" data-category="cultura"`)
	assert.Contains(t, out, `id="`+ContainerID+`"`)
	assert.Contains(t, out, `value="&#34;quoted&#34;"`)
	assert.Contains(t, out, "<h3>Playa Chinchorro</h3>")
}

func TestCategoryNav_OutOfBand(t *testing.T) {
	out := renderString(t, CategoryNav(nil, "todos", true))
	assert.Contains(t, out, `hx-swap-oob="true"`)
	assert.Contains(t, out, `<a class="category active" data-category="todos"`)
}

func TestTerminal(t *testing.T) {
	term := NewTerminal(DefaultLabels(), 60)
	assert.Contains(t, term.Cards(nil), NoResultsTitle)

	out := term.Cards([]domain.Attraction{chinchorro})
	assert.Contains(t, out, "Playa Chinchorro")
	assert.Contains(t, out, "#1")

	assert.Contains(t, term.Detail(chinchorro), "Detalles de: Playa Chinchorro")
	assert.Contains(t, term.Categories([]domain.CategorySummary{{Key: "playas", Label: "Playa", Count: 3}}), "playas")
}
