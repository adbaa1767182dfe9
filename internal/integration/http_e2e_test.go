//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"arica_go/catalogs"
	httpserver "arica_go/internal/adapters/http_server"
	"arica_go/internal/adapters/render"
	"arica_go/internal/adapters/source"
	"arica_go/internal/app"
	"arica_go/internal/domain"
	"arica_go/internal/storage/mysql/mysqltest"
)

func TestHTTP_EndToEnd_IngestThenServe(t *testing.T) {
	repo, _ := mysqltest.Start(t)
	ctx := context.Background()

	// Seed MySQL from the embedded document
	ing := app.NewIngestionService(source.NewBytes("embedded", catalogs.AricaJSON), repo, 2)
	rep, err := ing.Ingest(ctx)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if rep.Categories != 4 || rep.Featured != 4 {
		t.Fatalf("unexpected report: %+v", rep)
	}

	// Serve from MySQL
	svc := app.NewCatalogService(repo, nil, time.Minute)
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	s := httpserver.New()
	s.MountHandlers(&httpserver.Handlers{Svc: svc, Labels: render.DefaultLabels()})
	ts := httptest.NewServer(s.Mux())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/v1/categories")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var cats []domain.CategorySummary
	if err := json.NewDecoder(res.Body).Decode(&cats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var keys []string
	for _, c := range cats {
		keys = append(keys, c.Key)
	}
	if got := strings.Join(keys, ","); got != "playas,gastronomia,cultura,aventura" {
		t.Fatalf("category order = %s", got)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/cards?category=todos", nil)
	req.Header.Set(httpserver.HXRequest, "true")
	fres, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET cards: %v", err)
	}
	defer fres.Body.Close()
	body, _ := io.ReadAll(fres.Body)
	if n := strings.Count(string(body), `class="card"`); n != 4 {
		t.Fatalf("featured cards = %d, want 4", n)
	}
}
