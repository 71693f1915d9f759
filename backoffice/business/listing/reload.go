package listing

import (
	"context"
	"fmt"
	"time"

	"encore.dev/rlog"

	"encore.app/backoffice/apperr"
	"encore.app/backoffice/model"
	"encore.app/backoffice/normalize"
)

// Reload fetches the list through the cache and replaces the working set.
// Every call takes a sequence number; a response that arrives after a newer one
// was applied is dropped.
func (l *listing[T, D]) Reload(ctx context.Context, force bool) (*model.ViewPage, error) {
	seq := l.seq.Add(1)
	key := l.cacheKey()
	if force {
		l.cfg.Cache.Invalidate(key)
	}

	start := time.Now()
	raw, err := l.cfg.Cache.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return l.client.List(ctx, l.cfg.Params)
	})
	took := time.Since(start)
	if err != nil {
		l.cfg.Recorder.Reload(string(l.resource), "error", took)
		if ctx.Err() == nil {
			l.view.SetNotice(model.NoticeError, apperr.UserMessage(err))
		}
		return nil, fmt.Errorf("reload %s: %w", l.resource, err)
	}

	items := l.normalizeAll(raw)
	if !l.apply(seq, items) {
		l.cfg.Recorder.Reload(string(l.resource), "stale", took)
		rlog.Warn("discarding stale reload", "resource", l.resource, "seq", seq)
		return l.View()
	}

	l.cfg.Recorder.Reload(string(l.resource), "applied", took)
	l.cfg.Recorder.Items(string(l.resource), len(items))
	return l.View()
}

func (l *listing[T, D]) apply(seq uint64, items []T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if seq < l.applied {
		return false
	}
	l.applied = seq
	l.view.SetItems(items)
	return true
}

func (l *listing[T, D]) normalizeAll(raw any) []T {
	records := normalize.Unwrap(raw)
	items := make([]T, 0, len(records))
	for _, rec := range records {
		if item, ok := l.normalize(rec); ok {
			items = append(items, item)
		}
	}
	return items
}
