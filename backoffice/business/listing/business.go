package listing

//go:generate mockgen -source=business.go -destination=../../mocks/business/listing_business/business.go -package=listing_business

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"encore.app/backoffice/cache"
	"encore.app/backoffice/listview"
	"encore.app/backoffice/model"
	"encore.app/backoffice/mutate"
	"encore.app/backoffice/remote"
)

var (
	ErrCreateUnsupported = errors.New("this list does not support creating items")
	ErrNoSummary         = errors.New("this list has no stock summary")
	ErrNoStockMovement   = errors.New("this list does not hold stock")
	ErrReadOnly          = errors.New("this list is read-only")
)

// Business is one list screen: its view state, the cached upstream reads behind
// it and the mutations it allows.
type Business interface {
	Resource() model.Resource
	Reload(ctx context.Context, force bool) (*model.ViewPage, error)
	View() (*model.ViewPage, error)
	Search(term string, immediate bool) (*model.ViewPage, error)
	Filter(category string) (*model.ViewPage, error)
	Sort(key model.SortKey) (*model.ViewPage, error)
	GoToPage(page int) (*model.ViewPage, error)

	Create(ctx context.Context, body json.RawMessage) (*model.ItemChange, error)
	Update(ctx context.Context, id int64, body json.RawMessage) (*model.ItemChange, error)
	Remove(ctx context.Context, id int64) (*model.ViewPage, error)
	// MoveStock imports or exports stock of one product.
	MoveStock(ctx context.Context, body json.RawMessage) (*model.ItemChange, error)

	InventoryStats() (*model.InventoryStats, error)
	Close()
}

// Recorder receives reload and mutation outcomes, e.g. a metrics registry.
type Recorder interface {
	Reload(resource, outcome string, took time.Duration)
	Items(resource string, n int)
	Mutation(resource, op, outcome string)
}

type noopRecorder struct{}

func (noopRecorder) Reload(string, string, time.Duration) {}
func (noopRecorder) Items(string, int)                    {}
func (noopRecorder) Mutation(string, string, string)      {}

type Config struct {
	// Params are sent with every list request and form the cache key.
	Params   url.Values
	Cache    *cache.TTL
	Recorder Recorder
	// Async runs background work such as the reload after a write. Nil runs it inline.
	Async func(op string, fn func(ctx context.Context) error)
	// RefreshAfterWrite reloads the list in the background after every successful write.
	RefreshAfterWrite bool
	CanCreate         bool
	// ReadOnly refuses create, update and delete.
	ReadOnly bool
}

type Option[T model.Entity, D mutate.Draft] func(*listing[T, D])

// WithUpdateGuard rejects an update when guard fails for the item currently shown.
func WithUpdateGuard[T model.Entity, D mutate.Draft](guard func(current T, draft D) error) Option[T, D] {
	return func(l *listing[T, D]) { l.mutator.SetGuard(guard) }
}

type listing[T model.Entity, D mutate.Draft] struct {
	resource  model.Resource
	client    remote.Client
	view      *listview.View[T]
	normalize func(raw any) (T, bool)
	mutator   *mutate.Mutator[T, D]
	cfg       Config

	seq     atomic.Uint64
	mu      sync.Mutex
	applied uint64
}

// NewListingBusiness wires a list view, the shared cache and an upstream client
// into one screen.
func NewListingBusiness[T model.Entity, D mutate.Draft](
	resource model.Resource,
	client remote.Client,
	view *listview.View[T],
	normalize func(raw any) (T, bool),
	cfg Config,
	opts ...Option[T, D],
) Business {
	if cfg.Cache == nil {
		cfg.Cache = cache.New()
	}
	if cfg.Recorder == nil {
		cfg.Recorder = noopRecorder{}
	}

	l := &listing[T, D]{
		resource:  resource,
		client:    client,
		view:      view,
		normalize: normalize,
		cfg:       cfg,
	}
	l.mutator = mutate.New[T, D](resource, client, view, normalize, mutate.Config{
		Cache:     cfg.Cache,
		Observer:  cfg.Recorder,
		Reconcile: l.scheduleReload,
	})
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *listing[T, D]) Resource() model.Resource { return l.resource }

func (l *listing[T, D]) Close() { l.view.Close() }

func (l *listing[T, D]) cacheKey() cache.Key {
	return cache.Key{Tag: string(l.resource), Params: l.cfg.Params}
}

func (l *listing[T, D]) scheduleReload() {
	op := "reload " + string(l.resource)
	fn := func(ctx context.Context) error {
		_, err := l.Reload(ctx, true)
		return err
	}
	if l.cfg.Async == nil {
		_ = fn(context.Background())
		return
	}
	l.cfg.Async(op, fn)
}
