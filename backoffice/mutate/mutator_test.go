package mutate

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"encore.app/backoffice/apperr"
	"encore.app/backoffice/listview"
	"encore.app/backoffice/mocks/remote/collection_client"
	"encore.app/backoffice/model"
	"encore.app/backoffice/normalize"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingCache struct{ tags []string }

func (c *recordingCache) InvalidateTag(tag string) int {
	c.tags = append(c.tags, tag)
	return 1
}

type recordingObserver struct{ outcomes []string }

func (o *recordingObserver) Mutation(resource, op, outcome string) {
	o.outcomes = append(o.outcomes, resource+"/"+op+"/"+outcome)
}

type fixture struct {
	client     *collection_client.MockClient
	view       *listview.View[model.Product]
	cache      *recordingCache
	observer   *recordingObserver
	reconciled int
	mutator    *Mutator[model.Product, model.ProductDraft]
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		client:   collection_client.NewMockClient(ctrl),
		view:     listview.New[model.Product](listview.WithNoticeTTL(time.Minute)),
		cache:    &recordingCache{},
		observer: &recordingObserver{},
	}
	t.Cleanup(f.view.Close)

	norm := normalize.New(normalize.WithClock(func() time.Time {
		return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	}))
	f.mutator = New[model.Product, model.ProductDraft](model.ResourceProducts, f.client, f.view, norm.Product, Config{
		Cache:     f.cache,
		Observer:  f.observer,
		Reconcile: func() { f.reconciled++ },
	})
	return f
}

func ids(items []model.Product) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestRemove_RollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	f.view.SetItems([]model.Product{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}})

	f.client.EXPECT().
		Remove(gomock.Any(), int64(2)).
		DoAndReturn(func(ctx context.Context, id int64) (any, error) {
			// the item is already gone while the call is in flight
			assert.Equal(t, []int64{1}, ids(f.view.Items()))
			return nil, &apperr.TransportError{Op: "remove", Status: http.StatusInternalServerError, Message: "boom"}
		})

	err := f.mutator.Remove(context.Background(), 2)

	require.Error(t, err)
	assert.Equal(t, apperr.KindConflictOrServer, apperr.KindOf(err))
	assert.Equal(t, []int64{1, 2}, ids(f.view.Items()))
	notice := f.view.Snapshot().Notice
	require.NotNil(t, notice)
	assert.Equal(t, model.NoticeError, notice.Level)
	assert.Empty(t, f.cache.tags)
	assert.Equal(t, []string{"products/remove/rolled_back"}, f.observer.outcomes)
}

func TestRemove_RestoresOriginalPosition(t *testing.T) {
	f := newFixture(t)
	f.view.SetItems([]model.Product{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}})

	f.client.EXPECT().Remove(gomock.Any(), int64(2)).Return(nil, &apperr.TransportError{Status: http.StatusNotFound})

	err := f.mutator.Remove(context.Background(), 2)

	require.Error(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids(f.view.Items()))
	assert.Equal(t, "record no longer exists", f.view.Snapshot().Notice.Message)
}

func TestRemove_Success(t *testing.T) {
	f := newFixture(t)
	f.view.SetItems([]model.Product{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}})

	f.client.EXPECT().Remove(gomock.Any(), int64(1)).Return(nil, nil)

	require.NoError(t, f.mutator.Remove(context.Background(), 1))
	assert.Equal(t, []int64{2}, ids(f.view.Items()))
	assert.Equal(t, []string{"products"}, f.cache.tags)
	assert.Equal(t, model.NoticeSuccess, f.view.Snapshot().Notice.Level)
}

func TestRemove_MissingIDMakesNoCall(t *testing.T) {
	f := newFixture(t)
	f.view.SetItems([]model.Product{{ID: 1, Name: "A"}})

	require.NoError(t, f.mutator.Remove(context.Background(), 42))
	assert.Equal(t, []int64{1}, ids(f.view.Items()))
	assert.Equal(t, []string{"products/remove/noop"}, f.observer.outcomes)
}

func TestCreate(t *testing.T) {
	testCases := []struct {
		name            string
		draft           model.ProductDraft
		expectCall      bool
		response        any
		responseErr     error
		expectedIDs     []int64
		expectedErr     error
		expectedKind    apperr.Kind
		expectReconcile bool
	}{
		{
			name:        "created_record_is_appended",
			draft:       model.ProductDraft{Name: "Bàn phím", Price: 100, Stock: 3},
			expectCall:  true,
			response:    map[string]any{"success": true, "data": map[string]any{"id": 7, "name": "Bàn phím", "price": 100, "stock": 3}},
			expectedIDs: []int64{1, 7},
		},
		{
			name:         "short_name_is_rejected_before_the_call",
			draft:        model.ProductDraft{Name: " a ", Price: 10},
			expectedIDs:  []int64{1},
			expectedKind: apperr.KindValidation,
		},
		{
			name:         "negative_price_is_rejected",
			draft:        model.ProductDraft{Name: "Chuột", Price: -1},
			expectedIDs:  []int64{1},
			expectedKind: apperr.KindValidation,
		},
		{
			name:         "remote_failure_leaves_view_untouched",
			draft:        model.ProductDraft{Name: "Chuột", Price: 10},
			expectCall:   true,
			responseErr:  &apperr.TransportError{Status: http.StatusConflict, Message: "duplicate key value violates unique constraint"},
			expectedIDs:  []int64{1},
			expectedKind: apperr.KindConflictOrServer,
		},
		{
			name:            "empty_response_is_reconciled",
			draft:           model.ProductDraft{Name: "Chuột", Price: 10},
			expectCall:      true,
			response:        nil,
			expectedIDs:     []int64{1},
			expectedErr:     ErrUnconfirmed,
			expectReconcile: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.view.SetItems([]model.Product{{ID: 1, Name: "Existing"}})

			if tc.expectCall {
				f.client.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, body map[string]any) (any, error) {
						assert.NotContains(t, body, "discountPercentage")
						assert.NotContains(t, body, "sku")
						return tc.response, tc.responseErr
					})
			}

			created, err := f.mutator.Create(context.Background(), tc.draft)

			assert.Equal(t, tc.expectedIDs, ids(f.view.Items()))
			assert.Equal(t, tc.expectReconcile, f.reconciled > 0)
			switch {
			case tc.expectedErr != nil:
				assert.ErrorIs(t, err, tc.expectedErr)
			case tc.expectedKind != apperr.KindUnknown:
				assert.Equal(t, tc.expectedKind, apperr.KindOf(err))
			default:
				require.NoError(t, err)
				assert.Equal(t, int64(7), created.ID)
				assert.Equal(t, "SKU-007", created.SKU)
				assert.Equal(t, []string{"products"}, f.cache.tags)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	testCases := []struct {
		name         string
		id           int64
		response     any
		expectCall   bool
		expectedName string
		expectedErr  error
		expectedKind apperr.Kind
	}{
		{
			name:         "confirmed_record_replaces_local_item",
			id:           1,
			expectCall:   true,
			response:     map[string]any{"id": 1, "name": "Renamed", "price": 12},
			expectedName: "Renamed",
		},
		{
			name:         "unsaved_id_is_rejected",
			id:           0,
			expectedName: "Existing",
			expectedKind: apperr.KindValidation,
		},
		{
			name:         "mismatched_id_is_unconfirmed",
			id:           1,
			expectCall:   true,
			response:     map[string]any{"id": 9, "name": "Other"},
			expectedName: "Existing",
			expectedErr:  ErrUnconfirmed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.view.SetItems([]model.Product{{ID: 1, Name: "Existing"}})

			if tc.expectCall {
				f.client.EXPECT().Update(gomock.Any(), tc.id, gomock.Any()).Return(tc.response, nil)
			}

			_, err := f.mutator.Update(context.Background(), tc.id, model.ProductDraft{Name: "Renamed", Price: 12})

			got, ok := f.view.Get(1)
			require.True(t, ok)
			assert.Equal(t, tc.expectedName, got.Name)
			switch {
			case tc.expectedErr != nil:
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Equal(t, 1, f.reconciled)
			case tc.expectedKind != apperr.KindUnknown:
				assert.Equal(t, tc.expectedKind, apperr.KindOf(err))
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestUpdate_CustomerWithoutPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := collection_client.NewMockClient(ctrl)
	view := listview.New[model.Customer]()
	defer view.Close()
	view.SetItems([]model.Customer{{ID: 4, Username: "lan", Email: "lan@example.com"}})

	m := New[model.Customer, model.CustomerDraft](model.ResourceCustomers, client, view, normalize.New().Customer, Config{})

	client.EXPECT().
		Update(gomock.Any(), int64(4), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id int64, body map[string]any) (any, error) {
			assert.NotContains(t, body, "password")
			return map[string]any{"id": 4, "username": "lan", "email": "lan@shop.vn"}, nil
		})

	updated, err := m.Update(context.Background(), 4, model.CustomerDraft{Username: "lan", Email: "lan@shop.vn"})
	require.NoError(t, err)
	assert.Equal(t, "lan@shop.vn", updated.Email)

	_, err = m.Create(context.Background(), model.CustomerDraft{Username: "lan", Email: "lan@shop.vn"})
	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "password", verr.Fields[0].Field)
}

func TestValidate_Messages(t *testing.T) {
	testCases := []struct {
		name     string
		draft    any
		update   bool
		field    string
		expected string
	}{
		{
			name:     "trimmed_name_too_short",
			draft:    model.ProductDraft{Name: "  x  "},
			field:    "name",
			expected: "name must be at least 2 characters",
		},
		{
			name:     "negative_stock",
			draft:    model.ProductDraft{Name: "Áo thun", Stock: -2},
			field:    "stock",
			expected: "stock must not be negative",
		},
		{
			name:     "invalid_email",
			draft:    model.CustomerDraft{Username: "minh", Email: "minh", Password: "secret1", ConfirmPassword: "secret1"},
			field:    "email",
			expected: "email must be a valid email address",
		},
		{
			name:     "password_confirmation_mismatch",
			draft:    model.CustomerDraft{Username: "minh", Email: "minh@shop.vn", Password: "secret1", ConfirmPassword: "secret2"},
			field:    "confirm_password",
			expected: "confirm_password does not match",
		},
		{
			name:     "order_status_outside_the_set",
			draft:    model.OrderDraft{Status: "lost"},
			update:   true,
			field:    "status",
			expected: "status must be one of: pending, paid, shipped, delivered, cancelled",
		},
		{
			name:     "inventory_create_needs_product",
			draft:    model.InventoryDraft{Quantity: 3},
			field:    "product_id",
			expected: "product_id must be greater than 0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.draft, tc.update)

			var verr *apperr.ValidationError
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tc.field, verr.Fields[0].Field)
			assert.Equal(t, tc.expected, verr.Fields[0].Message)
		})
	}
}

func TestValidate_InventoryQuantityUpdate(t *testing.T) {
	assert.NoError(t, Validate(model.InventoryDraft{Quantity: 3}, true))
	assert.Error(t, Validate(model.InventoryDraft{Quantity: -1}, true))
}

func TestDo_StockMovement(t *testing.T) {
	testCases := []struct {
		name             string
		draft            model.StockMovementDraft
		expectCall       bool
		response         any
		callErr          error
		expectedErr      error
		expectedKind     apperr.Kind
		expectedStock    int64
		expectedOutcome  string
		expectReconciled bool
	}{
		{
			name:            "import_confirmed",
			draft:           model.StockMovementDraft{Type: model.MovementImport, ProductID: 7, Quantity: 5},
			expectCall:      true,
			response:        map[string]any{"id": 1, "productId": 7, "quantity": 9},
			expectedStock:   9,
			expectedOutcome: "inventory/import/ok",
		},
		{
			name:            "zero_quantity",
			draft:           model.StockMovementDraft{Type: model.MovementImport, ProductID: 7},
			expectedKind:    apperr.KindValidation,
			expectedStock:   4,
			expectedOutcome: "inventory/import/invalid",
		},
		{
			name:            "upstream_failure",
			draft:           model.StockMovementDraft{Type: model.MovementImport, ProductID: 7, Quantity: 5},
			expectCall:      true,
			callErr:         &apperr.TransportError{Op: "import", Status: http.StatusBadRequest, Message: "not enough stock"},
			expectedKind:    apperr.KindBadRequest,
			expectedStock:   4,
			expectedOutcome: "inventory/import/failed",
		},
		{
			name:             "no_record_returned",
			draft:            model.StockMovementDraft{Type: model.MovementImport, ProductID: 7, Quantity: 5},
			expectCall:       true,
			response:         nil,
			expectedErr:      ErrUnconfirmed,
			expectedStock:    4,
			expectedOutcome:  "inventory/import/unconfirmed",
			expectReconciled: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := collection_client.NewMockClient(ctrl)
			view := listview.New[model.InventoryRecord](listview.WithNoticeTTL(time.Minute))
			defer view.Close()
			view.SetItems([]model.InventoryRecord{{ID: 1, ProductID: 7, CurrentStock: 4}})

			cache := &recordingCache{}
			observer := &recordingObserver{}
			reconciled := false
			m := New[model.InventoryRecord, model.InventoryDraft](model.ResourceInventory, client, view, normalize.New().Inventory, Config{
				Cache:     cache,
				Observer:  observer,
				Reconcile: func() { reconciled = true },
			})

			if tc.expectCall {
				client.EXPECT().Action(gomock.Any(), "import", tc.draft.Query(), map[string]any{}).Return(tc.response, tc.callErr)
			}

			_, err := m.Do(context.Background(), Action{
				Op:    "import",
				Draft: tc.draft,
				Call: func(ctx context.Context) (any, error) {
					return client.Action(ctx, "import", tc.draft.Query(), tc.draft.Payload())
				},
				Notice:      "stock imported",
				Invalidates: []string{string(model.ResourceTransactions)},
			})

			switch {
			case tc.expectedErr != nil:
				assert.ErrorIs(t, err, tc.expectedErr)
			case tc.expectedKind != apperr.KindUnknown:
				assert.Equal(t, tc.expectedKind, apperr.KindOf(err))
			default:
				require.NoError(t, err)
				assert.Equal(t, []string{"inventory", "transactions"}, cache.tags)
				assert.Equal(t, "stock imported", view.Snapshot().Notice.Message)
			}
			got, ok := view.Get(1)
			require.True(t, ok)
			assert.Equal(t, tc.expectedStock, got.CurrentStock)
			assert.Equal(t, []string{tc.expectedOutcome}, observer.outcomes)
			assert.Equal(t, tc.expectReconciled, reconciled)
		})
	}
}
