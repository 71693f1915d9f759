// Package config reads the back-office settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"encore.dev/rlog"

	"encore.app/backoffice/model"
)

type Config struct {
	APIURL   string `validate:"required,url"`
	APIToken string

	ReadTimeout    time.Duration `validate:"gt=0"`
	WriteTimeout   time.Duration `validate:"gt=0"`
	CacheTTL       time.Duration `validate:"gt=0"`
	SearchDebounce time.Duration `validate:"gte=0"`
	NoticeTTL      time.Duration `validate:"gt=0"`

	// FetchPageSize is sent as the size parameter of list requests; 0 sends none.
	FetchPageSize int `validate:"gte=0,lte=10000"`
	Collation     language.Tag
	PageSizes     map[model.Resource]int `validate:"dive,gt=0,lte=500"`

	RefreshAfterWrite bool
}

func Default() Config {
	return Config{
		APIURL:         "http://localhost:8080",
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		CacheTTL:       5 * time.Minute,
		SearchDebounce: 300 * time.Millisecond,
		NoticeTTL:      5 * time.Second,
		FetchPageSize:  1000,
		Collation:      language.Vietnamese,
		PageSizes: map[model.Resource]int{
			model.ResourceProducts:  10,
			model.ResourceInventory: 15,
			model.ResourceOrders:    20,
			model.ResourceCustomers: 20,

			model.ResourceTransactions: 20,
		},
		RefreshAfterWrite: true,
	}
}

// LoadEnv loads .env.local when APP_ENV is "local" and then reads the process
// environment.
func LoadEnv() (Config, error) {
	if os.Getenv("APP_ENV") == "local" {
		if err := godotenv.Load(".env.local"); err != nil {
			rlog.Warn(".env.local not loaded, relying on the environment", "error", err)
		}
	}
	return Load(os.LookupEnv)
}

// Load builds the configuration from lookup over the defaults.
func Load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	r := reader{lookup: lookup}

	r.str("BACKOFFICE_API_URL", &cfg.APIURL)
	r.str("BACKOFFICE_API_TOKEN", &cfg.APIToken)
	r.duration("BACKOFFICE_READ_TIMEOUT", &cfg.ReadTimeout)
	r.duration("BACKOFFICE_WRITE_TIMEOUT", &cfg.WriteTimeout)
	r.duration("BACKOFFICE_CACHE_TTL", &cfg.CacheTTL)
	r.duration("BACKOFFICE_SEARCH_DEBOUNCE", &cfg.SearchDebounce)
	r.duration("BACKOFFICE_NOTICE_TTL", &cfg.NoticeTTL)
	r.integer("BACKOFFICE_FETCH_PAGE_SIZE", &cfg.FetchPageSize)
	r.boolean("BACKOFFICE_REFRESH_AFTER_WRITE", &cfg.RefreshAfterWrite)
	r.tag("BACKOFFICE_COLLATION", &cfg.Collation)
	for _, res := range model.Resources {
		size := cfg.PageSizes[res]
		r.integer(fmt.Sprintf("BACKOFFICE_%s_PAGE_SIZE", strings.ToUpper(string(res))), &size)
		cfg.PageSizes[res] = size
	}
	if r.err != nil {
		return Config{}, r.err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// reader keeps the first parse error so Load can report it once.
type reader struct {
	lookup func(string) (string, bool)
	err    error
}

func (r *reader) value(key string) (string, bool) {
	v, ok := r.lookup(key)
	return v, ok && v != ""
}

func (r *reader) fail(key, v string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
}

func (r *reader) str(key string, dst *string) {
	if v, ok := r.value(key); ok {
		*dst = v
	}
}

func (r *reader) duration(key string, dst *time.Duration) {
	v, ok := r.value(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, v, err)
		return
	}
	*dst = d
}

func (r *reader) integer(key string, dst *int) {
	v, ok := r.value(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v, err)
		return
	}
	*dst = n
}

func (r *reader) boolean(key string, dst *bool) {
	v, ok := r.value(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, v, err)
		return
	}
	*dst = b
}

func (r *reader) tag(key string, dst *language.Tag) {
	v, ok := r.value(key)
	if !ok {
		return
	}
	t, err := language.Parse(v)
	if err != nil {
		r.fail(key, v, err)
		return
	}
	*dst = t
}
