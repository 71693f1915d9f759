package idempotency

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"encore.dev"
	"encore.dev/beta/errs"
	"encore.dev/middleware"
	"encore.dev/storage/cache"

	"encore.app/backoffice/model"
)

type memoryStore struct {
	mu      sync.Mutex
	entries map[model.IdempotencyKey]model.IdempotencyEntry
	getErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: map[model.IdempotencyKey]model.IdempotencyEntry{}}
}

func (s *memoryStore) Get(_ context.Context, key model.IdempotencyKey) (model.IdempotencyEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return model.IdempotencyEntry{}, s.getErr
	}
	e, ok := s.entries[key]
	if !ok {
		return model.IdempotencyEntry{}, cache.Miss
	}
	return e, nil
}

func (s *memoryStore) Set(_ context.Context, key model.IdempotencyKey, e model.IdempotencyEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = e
	return nil
}

func (s *memoryStore) SetIfNotExists(_ context.Context, key model.IdempotencyKey, e model.IdempotencyEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; ok {
		return cache.KeyExists
	}
	s.entries[key] = e
	return nil
}

func (s *memoryStore) Delete(_ context.Context, keys ...model.IdempotencyKey) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, k := range keys {
		if _, ok := s.entries[k]; ok {
			delete(s.entries, k)
			n++
		}
	}
	return n, nil
}

type replayCounter struct{ n int }

func (c *replayCounter) IdempotentReplay() { c.n++ }

type itemResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func useStore(t *testing.T, s entryStore) {
	original := store
	store = s
	t.Cleanup(func() { store = original })
}

func newRequest(key string, payload any) middleware.Request {
	headers := http.Header{}
	if key != "" {
		headers.Set(Header, key)
	}
	return middleware.NewRequest(context.Background(), &encore.Request{
		Path:    "/v1/views/products/items",
		Headers: headers,
		Payload: payload,
		API:     &encore.APIDesc{ResponseType: reflect.TypeOf(&itemResponse{})},
	})
}

func TestExtractKey(t *testing.T) {
	testCases := []struct {
		name          string
		headers       http.Header
		expectedKey   string
		expectedError string
	}{
		{
			name:        "valid_key",
			headers:     http.Header{Header: []string{"create-42"}},
			expectedKey: "create-42",
		},
		{
			name:        "surrounding_spaces_are_trimmed",
			headers:     http.Header{Header: []string{"  create-42 "}},
			expectedKey: "create-42",
		},
		{
			name:          "missing_header",
			headers:       http.Header{},
			expectedError: "X-Idempotency-Key header is required",
		},
		{
			name:          "whitespace_only",
			headers:       http.Header{Header: []string{"   "}},
			expectedError: "X-Idempotency-Key header is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := middleware.NewRequest(context.Background(), &encore.Request{Path: "/v1", Headers: tc.headers})

			key, err := extractKey(req)

			if tc.expectedError != "" {
				require.NotNil(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
				assert.Equal(t, errs.InvalidArgument, err.Code)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.expectedKey, key)
		})
	}
}

func TestHashing(t *testing.T) {
	assert.Empty(t, hashing(nil))

	h := hashing([]byte(`{"name":"Bàn phím"}`))
	assert.Regexp(t, "^[a-f0-9]{64}$", h)
	assert.Equal(t, h, hashing([]byte(`{"name":"Bàn phím"}`)))
	assert.NotEqual(t, h, hashing([]byte(`{"name":"Bàn phím cơ"}`)))
}

func TestCheckBodyHash(t *testing.T) {
	testCases := []struct {
		name        string
		stored      string
		incoming    string
		expectError bool
	}{
		{name: "matching", stored: "abc", incoming: "abc"},
		{name: "nothing_stored", stored: "", incoming: "abc"},
		{name: "nothing_incoming", stored: "abc", incoming: ""},
		{name: "conflict", stored: "abc", incoming: "xyz", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkBodyHash(model.IdempotencyEntry{RequestBodyHash: tc.stored}, tc.incoming)
			if tc.expectError {
				require.NotNil(t, err)
				assert.Contains(t, err.Error(), "idempotency key conflict")
				return
			}
			assert.Nil(t, err)
		})
	}
}

func TestMiddleware_ReplaysCompletedRequest(t *testing.T) {
	s := newMemoryStore()
	useStore(t, s)
	counter := &replayCounter{}
	SetRecorder(counter)
	t.Cleanup(func() { SetRecorder(nil) })

	calls := 0
	next := func(req middleware.Request) middleware.Response {
		calls++
		return middleware.Response{Payload: &itemResponse{ID: 7, Name: "Bàn phím"}}
	}
	body := map[string]any{"name": "Bàn phím"}

	first := Middleware(newRequest("k1", body), next)
	require.NoError(t, first.Err)

	second := Middleware(newRequest("k1", body), next)
	require.NoError(t, second.Err)
	assert.Equal(t, &itemResponse{ID: 7, Name: "Bàn phím"}, second.Payload)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, counter.n)

	conflict := Middleware(newRequest("k1", map[string]any{"name": "Chuột"}), next)
	require.Error(t, conflict.Err)
	assert.Equal(t, 1, calls)
}

func TestMiddleware_FailedRequestCanRetry(t *testing.T) {
	s := newMemoryStore()
	useStore(t, s)

	calls := 0
	next := func(req middleware.Request) middleware.Response {
		calls++
		if calls == 1 {
			return middleware.Response{Err: &errs.Error{Code: errs.Unavailable, Message: "upstream down"}}
		}
		return middleware.Response{Payload: &itemResponse{ID: 3}}
	}

	assert.Error(t, Middleware(newRequest("k2", nil), next).Err)
	assert.Empty(t, s.entries)

	resp := Middleware(newRequest("k2", nil), next)
	require.NoError(t, resp.Err)
	assert.Equal(t, 2, calls)
}

func TestMiddleware_ProcessingEntryAborts(t *testing.T) {
	s := newMemoryStore()
	useStore(t, s)
	s.entries[model.IdempotencyKey{Path: "/v1/views/products/items", Key: "k3"}] = model.IdempotencyEntry{
		Status: model.IdempotencyProcessing,
	}

	resp := Middleware(newRequest("k3", nil), func(middleware.Request) middleware.Response {
		t.Fatal("next must not run while the first request is in flight")
		return middleware.Response{}
	})

	var e *errs.Error
	require.True(t, errors.As(resp.Err, &e))
	assert.Equal(t, errs.Aborted, e.Code)
}

func TestMiddleware_StoreUnavailable(t *testing.T) {
	s := newMemoryStore()
	s.getErr = errors.New("redis: connection refused")
	useStore(t, s)

	resp := Middleware(newRequest("k4", nil), func(middleware.Request) middleware.Response {
		t.Fatal("next must not run")
		return middleware.Response{}
	})

	assert.Equal(t, errs.Unavailable, errs.Code(resp.Err))
}

func TestMiddleware_MissingKey(t *testing.T) {
	useStore(t, newMemoryStore())

	called := false
	resp := Middleware(newRequest("", map[string]any{"name": "x"}), func(middleware.Request) middleware.Response {
		called = true
		return middleware.Response{}
	})

	require.Error(t, resp.Err)
	assert.Contains(t, resp.Err.Error(), "X-Idempotency-Key header is required")
	assert.False(t, called)
	assert.Nil(t, resp.Payload)
}
