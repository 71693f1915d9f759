package cache

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type recordingObserver struct {
	mu     sync.Mutex
	events map[string]int
}

func (r *recordingObserver) CacheEvent(tag, event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.events == nil {
		r.events = map[string]int{}
	}
	r.events[tag+":"+event]++
}

func (r *recordingObserver) count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[key]
}

func productsKey(page string) Key {
	return Key{Tag: "products", Params: url.Values{"page": {page}, "pageSize": {"10"}}}
}

func countingFetch(calls *int32, value any) func(context.Context) (any, error) {
	return func(context.Context) (any, error) {
		atomic.AddInt32(calls, 1)
		return value, nil
	}
}

func TestKey_StringIsCanonical(t *testing.T) {
	a := Key{Tag: "orders", Params: url.Values{"page": {"1"}, "pageSize": {"20"}}}
	b := Key{Tag: "orders", Params: url.Values{"pageSize": {"20"}, "page": {"1"}}}

	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, "orders?page=1&pageSize=20", a.String())
	assert.Equal(t, "orders?", Key{Tag: "orders"}.String())
}

func TestGetOrFetch_TTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	obs := &recordingObserver{}
	c := New(WithClock(clock.Now), WithObserver(obs))

	var calls int32
	fetch := countingFetch(&calls, "v1")

	v, err := c.GetOrFetch(context.Background(), productsKey("1"), fetch)
	require.NoError(t, err)
	assert.Equal(t, "v1", v)

	clock.Advance(DefaultTTL - time.Second)
	v, err = c.GetOrFetch(context.Background(), productsKey("1"), fetch)
	require.NoError(t, err)
	assert.Equal(t, "v1", v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	clock.Advance(time.Second)
	_, err = c.GetOrFetch(context.Background(), productsKey("1"), fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	assert.Equal(t, 1, obs.count("products:hit"))
	assert.Equal(t, 2, obs.count("products:miss"))
	assert.Equal(t, 1, obs.count("products:expired"))
}

func TestGetOrFetch_DeduplicatesInFlight(t *testing.T) {
	c := New()

	var calls int32
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	fetch := func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		once.Do(func() { close(started) })
		<-release
		return []int{1, 2, 3}, nil
	}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]any, callers)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = c.GetOrFetch(context.Background(), productsKey("1"), fetch)
	}()
	<-started
	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.GetOrFetch(context.Background(), productsKey("1"), fetch)
		}(i)
	}

	// let the followers join the flight before it completes
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, []int{1, 2, 3}, r)
	}
}

func TestGetOrFetch_FailureNotCached(t *testing.T) {
	c := New()
	boom := errors.New("boom")

	var calls int32
	_, err := c.GetOrFetch(context.Background(), productsKey("1"), func(context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	v, err := c.GetOrFetch(context.Background(), productsKey("1"), countingFetch(&calls, "ok"))
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestInvalidateTag(t *testing.T) {
	c := New()
	var calls int32

	for _, page := range []string{"1", "2"} {
		_, err := c.GetOrFetch(context.Background(), productsKey(page), countingFetch(&calls, page))
		require.NoError(t, err)
	}
	_, err := c.GetOrFetch(context.Background(), Key{Tag: "orders"}, countingFetch(&calls, "o"))
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	assert.Equal(t, 2, c.InvalidateTag("products"))
	assert.Equal(t, 1, c.Len())

	_, err = c.GetOrFetch(context.Background(), Key{Tag: "orders"}, countingFetch(&calls, "o"))
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	_, err = c.GetOrFetch(context.Background(), productsKey("1"), countingFetch(&calls, "1"))
	require.NoError(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}

func TestInvalidate_DuringFlightIsNotStored(t *testing.T) {
	c := New()
	release := make(chan struct{})
	started := make(chan struct{})

	done := make(chan any)
	go func() {
		v, _ := c.GetOrFetch(context.Background(), productsKey("1"), func(context.Context) (any, error) {
			close(started)
			<-release
			return "stale", nil
		})
		done <- v
	}()

	<-started
	c.Invalidate(productsKey("1"))
	close(release)
	assert.Equal(t, "stale", <-done)
	assert.Equal(t, 0, c.Len())

	var calls int32
	v, err := c.GetOrFetch(context.Background(), productsKey("1"), countingFetch(&calls, "fresh"))
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
}

func TestClear(t *testing.T) {
	c := New()
	var calls int32
	_, _ = c.GetOrFetch(context.Background(), productsKey("1"), countingFetch(&calls, 1))
	_, _ = c.GetOrFetch(context.Background(), Key{Tag: "orders"}, countingFetch(&calls, 2))

	c.Clear()

	assert.Equal(t, 0, c.Len())
	_, _ = c.GetOrFetch(context.Background(), productsKey("1"), countingFetch(&calls, 1))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetOrFetch_CallerCancellation(t *testing.T) {
	c := New()
	release := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error)
	go func() {
		_, err := c.GetOrFetch(ctx, productsKey("1"), func(fetchCtx context.Context) (any, error) {
			<-release
			return "late", fetchCtx.Err()
		})
		errCh <- err
	}()

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	close(release)
	assert.Eventually(t, func() bool { return c.Len() == 1 }, time.Second, time.Millisecond)
}

func TestFetch_Typed(t *testing.T) {
	c := New()

	got, err := Fetch(context.Background(), c, productsKey("1"), func(context.Context) ([]string, error) {
		return []string{"a"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)

	_, err = Fetch(context.Background(), c, productsKey("1"), func(context.Context) (int, error) {
		return 1, nil
	})
	assert.ErrorContains(t, err, "has type []string")
}
