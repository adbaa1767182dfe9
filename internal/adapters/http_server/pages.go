package httpserver

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"arica_go/internal/adapters/render"
	"arica_go/internal/app"
	"arica_go/internal/domain"
)

// HXRequest is set by htmx on every request it issues.
const HXRequest = "HX-Request"

func isHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(HXRequest), "true")
}

// writeHTML renders into a buffer first so a failed render still yields a clean 500.
func writeHTML(w http.ResponseWriter, r *http.Request, status int, components ...templ.Component) {
	var buf bytes.Buffer
	for _, c := range components {
		if err := c.Render(r.Context(), &buf); err != nil {
			log.Error().Err(err).Str("path", r.URL.Path).Msg("render failed")
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Vary", HXRequest)
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write HTML body")
	}
}

func (h *Handlers) pageData(active, query string, cards []domain.Attraction) render.PageData {
	return render.PageData{
		Title:      h.Title,
		Active:     active,
		Query:      query,
		Categories: h.Svc.Categories(h.Labels.Label),
		Cards:      cards,
		Labels:     h.Labels,
	}
}

// browse applies the query the way the page does: a search when q is given,
// otherwise the category filter.
func (h *Handlers) browse(ctx context.Context, b *app.Browser, q string) []domain.Attraction {
	if q != "" {
		return b.Search(ctx, q).Attractions
	}
	return b.Current()
}

func (h *Handlers) page(w http.ResponseWriter, r *http.Request) {
	b := app.NewBrowser(h.Svc, r.URL.Query().Get("category"))
	q := r.URL.Query().Get("q")
	writeHTML(w, r, http.StatusOK, render.Page(h.pageData(b.Active(), q, h.browse(r.Context(), b, q))))
}

// cards answers a category selection. htmx callers get the card list plus an
// out-of-band navigation so the active marker follows the selection.
func (h *Handlers) cards(w http.ResponseWriter, r *http.Request) {
	b := app.NewBrowser(h.Svc, "")
	list := b.SelectCategory(categoryParam(r))
	if !isHTMX(r) {
		writeHTML(w, r, http.StatusOK, render.Page(h.pageData(b.Active(), "", list)))
		return
	}
	writeHTML(w, r, http.StatusOK,
		render.Cards(h.Labels, list),
		render.CategoryNav(h.Svc.Categories(h.Labels.Label), b.Active(), true),
	)
}

func (h *Handlers) searchCards(w http.ResponseWriter, r *http.Request) {
	b := app.NewBrowser(h.Svc, r.URL.Query().Get("category"))
	q := r.URL.Query().Get("q")
	res := b.Search(r.Context(), q)
	if !isHTMX(r) {
		writeHTML(w, r, http.StatusOK, render.Page(h.pageData(b.Active(), q, res.Attractions)))
		return
	}
	writeHTML(w, r, http.StatusOK, render.Cards(h.Labels, res.Attractions))
}

func (h *Handlers) detail(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		http.Error(w, "id must be a number", http.StatusBadRequest)
		return
	}
	a, err := app.NewBrowser(h.Svc, "").Detail(id)
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, "attraction not found", http.StatusNotFound)
		return
	}
	writeHTML(w, r, http.StatusOK, render.Detail(a))
}
