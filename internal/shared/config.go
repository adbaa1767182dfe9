package shared

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Catalog source kinds accepted by CATALOG_SOURCE.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourceMySQL    = "mysql"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"prod"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9100"`

	CatalogSource  string        `env:"CATALOG_SOURCE" envDefault:"embedded"`
	CatalogFile    string        `env:"CATALOG_FILE"`
	CatalogURL     string        `env:"CATALOG_URL"`
	CatalogWatch   bool          `env:"CATALOG_WATCH" envDefault:"false"`
	RefreshEvery   time.Duration `env:"CATALOG_REFRESH_INTERVAL" envDefault:"0s"`
	FetchRPS       int           `env:"CATALOG_FETCH_RPS" envDefault:"2"`
	FetchRetries   int           `env:"CATALOG_FETCH_RETRIES" envDefault:"3"`
	MySQLDSN       string        `env:"MYSQL_DSN" envDefault:"root:root@tcp(localhost:3306)/arica?parseTime=true&charset=utf8mb4,utf8&loc=UTC"`
	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisPass      string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTLSecond int           `env:"CACHE_TTL_SECONDS" envDefault:"900"`
	CacheLRUSize   int           `env:"CACHE_LRU_SIZE" envDefault:"1024"`
	Workers        int           `env:"INGEST_WORKERS" envDefault:"8"`
	ConfigFile     string        `env:"CONFIG_FILE" envDefault:"arica.yaml"`

	// From CONFIG_FILE.
	Title          string
	CategoryLabels map[string]string
}

// FileConfig holds the optional YAML overlay.
type FileConfig struct {
	Title          string            `yaml:"title"`
	CategoryLabels map[string]string `yaml:"category_labels"`
}

func (c Config) CacheTTL() time.Duration { return time.Duration(c.CacheTTLSecond) * time.Second }

// Load parses the environment, applies CONFIG_FILE when it exists and checks that
// the chosen catalog source has what it needs.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	fc, err := LoadFile(c.ConfigFile)
	if err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", c.ConfigFile, err)
	}
	if fc != nil {
		c.Title = fc.Title
		c.CategoryLabels = fc.CategoryLabels
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadFile returns nil (no error) if the file does not exist.
func LoadFile(path string) (*FileConfig, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, err
	}
	return &fc, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.CatalogSource {
	case SourceEmbedded:
	case SourceFile:
		if c.CatalogFile == "" {
			errs = append(errs, errors.New("CATALOG_FILE is required for the file source"))
		}
	case SourceHTTP:
		if c.CatalogURL == "" {
			errs = append(errs, errors.New("CATALOG_URL is required for the http source"))
		}
	case SourceMySQL:
		if c.MySQLDSN == "" {
			errs = append(errs, errors.New("MYSQL_DSN is required for the mysql source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource))
	}
	if c.CatalogWatch && c.CatalogSource != SourceFile {
		errs = append(errs, errors.New("CATALOG_WATCH only applies to the file source"))
	}
	if c.CacheTTLSecond < 0 {
		errs = append(errs, errors.New("CACHE_TTL_SECONDS must not be negative"))
	}
	if c.Workers <= 0 {
		errs = append(errs, errors.New("INGEST_WORKERS must be positive"))
	}
	return errors.Join(errs...)
}
