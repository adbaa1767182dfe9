package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.CatalogSource != SourceEmbedded || c.HTTPAddr != ":8080" || c.Workers != 8 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.CacheTTL() != 15*time.Minute {
		t.Fatalf("cache ttl = %v", c.CacheTTL())
	}
	if c.RedisAddr != "" {
		t.Fatalf("redis must be opt-in, got %q", c.RedisAddr)
	}
	if c.CategoryLabels != nil {
		t.Fatalf("missing config file must not set labels")
	}
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("CATALOG_SOURCE", "file")
	t.Setenv("CATALOG_FILE", "/tmp/atracciones.json")
	t.Setenv("CATALOG_WATCH", "true")
	t.Setenv("CATALOG_REFRESH_INTERVAL", "30s")
	t.Setenv("REDIS_DB", "2")

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !c.CatalogWatch || c.RefreshEvery != 30*time.Second || c.RedisDB != 2 {
		t.Fatalf("env not applied: %+v", c)
	}
}

func TestLoadParseError(t *testing.T) {
	isolate(t)
	t.Setenv("REDIS_DB", "not-an-int")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]map[string]string{
		"file without path": {"CATALOG_SOURCE": "file"},
		"http without url":  {"CATALOG_SOURCE": "http"},
		"unknown source":    {"CATALOG_SOURCE": "ftp"},
		"watch needs file":  {"CATALOG_WATCH": "true"},
		"no workers":        {"INGEST_WORKERS": "0"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			for k, v := range vars {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arica.yaml")
	data := "title: Descubre Arica\ncategory_labels:\n  museos: Museo\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)

	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Title != "Descubre Arica" || c.CategoryLabels["museos"] != "Museo" {
		t.Fatalf("overlay not applied: %+v", c)
	}
}

func TestLoadFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arica.yaml")
	if err := os.WriteFile(path, []byte("category_labels: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected yaml error")
	}
}
