package backoffice

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"encore.dev/beta/errs"
	"encore.dev/rlog"
	"golang.org/x/sync/errgroup"

	"encore.app/backoffice/apperr"
	"encore.app/backoffice/business/listing"
	"encore.app/backoffice/cache"
	"encore.app/backoffice/config"
	"encore.app/backoffice/domain"
	"encore.app/backoffice/listview"
	"encore.app/backoffice/metrics"
	"encore.app/backoffice/middleware/idempotency"
	"encore.app/backoffice/model"
	"encore.app/backoffice/normalize"
	"encore.app/backoffice/remote"
)

//encore:service
type Service struct {
	listings map[model.Resource]listing.Business
	metrics  *metrics.Registry
}

func initService() (*Service, error) {
	cfg, err := config.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	reg := metrics.NewRegistry()
	idempotency.SetRecorder(reg)

	rlog.Info("initializing list screens", "api_url", cfg.APIURL, "cache_ttl", cfg.CacheTTL)
	listings, err := newListings(cfg, reg)
	if err != nil {
		return nil, err
	}

	s := &Service{listings: listings, metrics: reg}
	runAsync("warm up list screens", s.warmUp)
	return s, nil
}

// Shutdown stops pending debounce and notice timers.
func (s *Service) Shutdown(force context.Context) {
	for _, l := range s.listings {
		l.Close()
	}
}

// warmUp loads every screen concurrently so the first page view is served
// from the cache. One failing screen does not cancel the others.
func (s *Service) warmUp(ctx context.Context) error {
	var g errgroup.Group
	for _, l := range s.listings {
		g.Go(func() error {
			if _, err := l.Reload(ctx, false); err != nil {
				rlog.Warn("failed to warm up list", "resource", l.Resource(), "error", err)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *Service) listing(resource string) (listing.Business, error) {
	r, err := model.ParseResource(resource)
	if err != nil {
		return nil, &errs.Error{Code: errs.NotFound, Message: err.Error()}
	}
	l, ok := s.listings[r]
	if !ok {
		return nil, &errs.Error{Code: errs.NotFound, Message: fmt.Sprintf("resource %q is not served", resource)}
	}
	return l, nil
}

// apiError maps business errors onto API error codes.
func apiError(err error) error {
	switch {
	case errors.Is(err, listing.ErrCreateUnsupported), errors.Is(err, listing.ErrReadOnly):
		return &errs.Error{Code: errs.Unimplemented, Message: err.Error()}
	case errors.Is(err, listing.ErrNoSummary), errors.Is(err, listing.ErrNoStockMovement):
		return &errs.Error{Code: errs.FailedPrecondition, Message: err.Error()}
	}
	return apperr.ToAPI(err)
}

func newListings(cfg config.Config, reg *metrics.Registry) (map[model.Resource]listing.Business, error) {
	ttl := cache.New(cache.WithTTL(cfg.CacheTTL), cache.WithObserver(reg))
	norm := normalize.New()

	params := url.Values{}
	if cfg.FetchPageSize > 0 {
		params.Set("page", "0")
		params.Set("size", strconv.Itoa(cfg.FetchPageSize))
	}

	clients := make(map[model.Resource]remote.Client, len(model.Resources))
	for _, r := range model.Resources {
		c, err := remote.NewHTTPClient(cfg.APIURL, remote.DefaultEndpoints[r],
			remote.WithToken(cfg.APIToken),
			remote.WithTimeouts(cfg.ReadTimeout, cfg.WriteTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("create %s client: %w", r, err)
		}
		clients[r] = c
	}

	screen := func(r model.Resource, opts ...listview.Option) ([]listview.Option, listing.Config) {
		opts = append([]listview.Option{
			listview.WithPageSize(cfg.PageSizes[r]),
			listview.WithDebounce(cfg.SearchDebounce),
			listview.WithNoticeTTL(cfg.NoticeTTL),
			listview.WithLanguage(cfg.Collation),
		}, opts...)
		return opts, listing.Config{
			Params:            params,
			Cache:             ttl,
			Recorder:          reg,
			Async:             func(op string, fn func(ctx context.Context) error) { runAsync(op, fn) },
			RefreshAfterWrite: cfg.RefreshAfterWrite,
			CanCreate:         r != model.ResourceOrders,
			ReadOnly:          r == model.ResourceTransactions,
		}
	}

	listings := make(map[model.Resource]listing.Business, len(model.Resources))

	opts, lc := screen(model.ResourceProducts)
	listings[model.ResourceProducts] = listing.NewListingBusiness[model.Product, model.ProductDraft](
		model.ResourceProducts, clients[model.ResourceProducts], listview.New[model.Product](opts...), norm.Product, lc)

	opts, lc = screen(model.ResourceInventory)
	listings[model.ResourceInventory] = listing.NewListingBusiness[model.InventoryRecord, model.InventoryDraft](
		model.ResourceInventory, clients[model.ResourceInventory], listview.New[model.InventoryRecord](opts...), norm.Inventory, lc)

	opts, lc = screen(model.ResourceOrders, listview.WithSort(model.SortByDate, model.SortAscending))
	orders := domain.NewOrderStateMachine()
	listings[model.ResourceOrders] = listing.NewListingBusiness[model.Order, model.OrderDraft](
		model.ResourceOrders, clients[model.ResourceOrders], listview.New[model.Order](opts...), norm.Order, lc,
		listing.WithUpdateGuard(orders.CheckUpdate))

	opts, lc = screen(model.ResourceCustomers)
	listings[model.ResourceCustomers] = listing.NewListingBusiness[model.Customer, model.CustomerDraft](
		model.ResourceCustomers, clients[model.ResourceCustomers], listview.New[model.Customer](opts...), norm.Customer, lc)

	opts, lc = screen(model.ResourceTransactions, listview.WithSort(model.SortByDate, model.SortAscending))
	listings[model.ResourceTransactions] = listing.NewListingBusiness[model.InventoryTransaction, model.StockMovementDraft](
		model.ResourceTransactions, clients[model.ResourceTransactions], listview.New[model.InventoryTransaction](opts...), norm.Transaction, lc)

	return listings, nil
}
