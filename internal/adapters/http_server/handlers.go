package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"arica_go/internal/adapters/render"
	"arica_go/internal/app"
	"arica_go/internal/domain"
)

type Handlers struct {
	Svc    *app.CatalogService
	Labels render.Labels
	Title  string
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type health struct {
	Status      string    `json:"status"`
	Version     string    `json:"version"`
	LoadedAt    time.Time `json:"loaded_at"`
	Attractions int       `json:"attractions"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", h.healthz)

	// htmx page and fragments
	s.mux.Get("/", h.page)
	s.mux.Get("/cards", h.cards)
	s.mux.Get("/cards/search", h.searchCards)
	s.mux.Get("/attractions/{id}", h.detail)

	// JSON API
	s.mux.Get("/v1/categories", h.listCategories)
	s.mux.Get("/v1/attractions", h.listAttractions)
	s.mux.Get("/v1/attractions/{id}", h.getAttraction)
	s.mux.Get("/v1/search", h.search)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON answers 304 when the client already holds this representation.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "response encoding failed")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write JSON body")
	}
}

func categoryParam(r *http.Request) string {
	if c := r.URL.Query().Get("category"); c != "" {
		return c
	}
	return domain.AllCategory
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (h *Handlers) healthz(w http.ResponseWriter, r *http.Request) {
	out := health{Status: "ok", Version: h.Svc.Version(), LoadedAt: h.Svc.LoadedAt(), Attractions: h.Svc.Catalog().Len()}
	if out.Version == "" {
		out.Status = "empty"
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		log.Error().Err(err).Msg("write health response failed")
	}
}

func (h *Handlers) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.Svc.Categories(h.Labels.Label))
}

func (h *Handlers) listAttractions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.Svc.Filter(categoryParam(r)))
}

func (h *Handlers) getAttraction(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	a, err := h.Svc.Find(id)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "attraction not found")
		return
	}
	writeJSON(w, r, a)
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.Svc.Search(r.Context(), r.URL.Query().Get("q"), categoryParam(r)))
}
