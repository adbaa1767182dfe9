package render

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"arica_go/internal/domain"
)

// PageData is everything the full page needs to render one browsing state.
type PageData struct {
	Title      string
	Active     string
	Query      string
	Categories []domain.CategorySummary
	Cards      []domain.Attraction
	Labels     Labels
}

// Page renders the whole document: search input, category selectors and the card
// container pre-filled with the current listing.
func Page(d PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		title := d.Title
		if title == "" {
			title = "Arica Go"
		}
		h.raw(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(title)
		h.raw(`</title><link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.1/css/all.min.css">`)
		h.raw(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		h.raw(`<style>` + pageCSS + `</style></head><body><header><h1>`)
		h.text(title)
		h.raw(`</h1><form class="search" action="/cards/search" method="get">`)
		h.raw(`<input id="searchInput" type="search" name="q" autocomplete="off" placeholder="Buscar playas, comida, cultura..." value="`)
		h.text(d.Query)
		h.raw(`" hx-get="/cards/search" hx-trigger="input changed delay:200ms, search" hx-target="#` + ContainerID + `" hx-include="#activeCategory">`)
		h.raw(`</form></header>`)
		if h.err != nil {
			return h.err
		}
		if err := CategoryNav(d.Categories, d.Active, false).Render(ctx, w); err != nil {
			return err
		}
		h.raw(`<main><section id="` + ContainerID + `" class="cards">`)
		if h.err != nil {
			return h.err
		}
		if err := Cards(d.Labels, d.Cards).Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</section><aside id="` + DetailID + `"></aside></main></body></html>`)
		return h.err
	})
}

// CategoryNav renders the category selectors plus the hidden input carrying the
// active category. With oob set it is an htmx out-of-band swap so a card fragment
// response also moves the active marker.
func CategoryNav(cats []domain.CategorySummary, active string, oob bool) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<nav id="categories" class="categories"`)
		if oob {
			h.raw(` hx-swap-oob="true"`)
		}
		h.raw(`><input type="hidden" id="activeCategory" name="category" value="`)
		h.text(active)
		h.raw(`">`)
		writeSelector(h, domain.AllCategory, "Todos", active)
		for _, c := range cats {
			writeSelector(h, c.Key, c.Label, active)
		}
		h.raw(`</nav>`)
		return h.err
	})
}

func writeSelector(h *html, key, label, active string) {
	class := "category"
	if key == active {
		class += " active"
	}
	href := "/cards?category=" + url.QueryEscape(key)
	h.raw(`<a class="` + class + `" data-category="`)
	h.text(key)
	h.raw(`" href="`)
	h.url(href)
	h.raw(`" hx-get="`)
	h.url(href)
	h.raw(`" hx-target="#` + ContainerID + `">`)
	h.text(label)
	h.raw(`</a>`)
}

const pageCSS = `body{font-family:system-ui,sans-serif;margin:0;background:#f6f7f9}` +
	`header{padding:1rem 2rem;background:#0b6e99;color:#fff}` +
	`.search input{width:100%;max-width:32rem;padding:.6rem;border-radius:.4rem;border:0}` +
	`.categories{display:flex;gap:.5rem;padding:1rem 2rem}` +
	`.category{padding:.4rem .9rem;border-radius:1rem;background:#e3e8ee;color:#222;text-decoration:none}` +
	`.category.active{background:#0b6e99;color:#fff}` +
	`main{display:flex;gap:1rem;padding:0 2rem 2rem}` +
	`.cards{display:grid;grid-template-columns:repeat(auto-fill,minmax(16rem,1fr));gap:1rem;flex:1}` +
	`.card{display:block;background:#fff;border-radius:.6rem;overflow:hidden;color:inherit;text-decoration:none;box-shadow:0 1px 3px #0002}` +
	`.card-image{position:relative}.card-image img{width:100%;height:10rem;object-fit:cover;display:block}` +
	`.card-badge{position:absolute;top:.5rem;left:.5rem;background:#fff;padding:.2rem .6rem;border-radius:.8rem;font-size:.8rem}` +
	`.card-content{padding:.8rem}.card-features{display:flex;justify-content:space-between;font-size:.85rem}` +
	`.no-results{text-align:center;padding:3rem;grid-column:1/-1}` +
	`#detail{width:20rem}`
