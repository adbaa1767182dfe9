package render

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"arica_go/internal/domain"
)

// ContainerID is the element whose contents card fragments replace.
const ContainerID = "cardsContainer"

// DetailID is the element the detail fragment is swapped into.
const DetailID = "detail"

// html accumulates the first write error so components read top to bottom.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *html) text(s string) { h.raw(templ.EscapeString(s)) }

func (h *html) url(s string) { h.text(string(templ.URL(s))) }

// Cards renders one card per attraction, or the no-results placeholder for an empty list.
func Cards(labels Labels, list []domain.Attraction) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(list) == 0 {
			return NoResults().Render(ctx, w)
		}
		for _, a := range list {
			if err := Card(labels, a).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// Card renders one attraction; activating it loads the detail fragment.
func Card(labels Labels, a domain.Attraction) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		detail := DetailPath(a.ID)
		h.raw(`<a class="card" data-id="` + strconv.FormatInt(a.ID, 10) + `" href="`)
		h.url(detail)
		h.raw(`" hx-get="`)
		h.url(detail)
		h.raw(`" hx-target="#` + DetailID + `" hx-swap="innerHTML">`)
		h.raw(`<div class="card-image"><img src="`)
		h.url(a.Image)
		h.raw(`" alt="`)
		h.text(a.Name)
		h.raw(`" loading="lazy"><div class="card-badge">`)
		h.text(labels.Label(a.Category))
		h.raw(`</div></div>`)
		h.raw(`<div class="card-content"><h3>`)
		h.text(a.Name)
		h.raw(`</h3><div class="card-location"><i class="fas fa-map-marker-alt"></i><span>`)
		h.text(a.Location + " • " + a.Distance)
		h.raw(`</span></div><p class="card-description">`)
		h.text(a.Description)
		h.raw(`</p><div class="card-features"><span><i class="fas fa-clock"></i> `)
		h.text(a.Schedule)
		h.raw(`</span><span><i class="fas fa-tag"></i> `)
		h.text(a.Price)
		h.raw(`</span></div></div></a>`)
		return h.err
	})
}

func NoResults() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div class="no-results"><i class="fas fa-search"></i><h3>`)
		h.text(NoResultsTitle)
		h.raw(`</h3><p>`)
		h.text(NoResultsHint)
		h.raw(`</p></div>`)
		return h.err
	})
}

// Detail surfaces the attraction's name and description.
func Detail(a domain.Attraction) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div class="detail" data-id="` + strconv.FormatInt(a.ID, 10) + `"><h2>Detalles de: `)
		h.text(a.Name)
		h.raw(`</h2><p>`)
		h.text(a.Description)
		h.raw(`</p></div>`)
		return h.err
	})
}

func DetailPath(id int64) string { return "/attractions/" + strconv.FormatInt(id, 10) }
