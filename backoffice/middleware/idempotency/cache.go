package idempotency

import (
	"context"
	"time"

	"encore.dev/storage/cache"

	"encore.app/backoffice/model"
)

var Cluster = cache.NewCluster("backoffice-idempotency", cache.ClusterConfig{
	EvictionPolicy: cache.AllKeysLRU,
})

// Entries keeps write outcomes for a day so retried requests replay the first answer.
var Entries = cache.NewStructKeyspace[model.IdempotencyKey, model.IdempotencyEntry](
	Cluster,
	cache.KeyspaceConfig{
		KeyPattern:    "idempotency/:Path/:Key",
		DefaultExpiry: cache.ExpireIn(24 * time.Hour),
	},
)

type entryStore interface {
	Get(ctx context.Context, key model.IdempotencyKey) (model.IdempotencyEntry, error)
	Set(ctx context.Context, key model.IdempotencyKey, entry model.IdempotencyEntry) error
	SetIfNotExists(ctx context.Context, key model.IdempotencyKey, entry model.IdempotencyEntry) error
	Delete(ctx context.Context, keys ...model.IdempotencyKey) (int, error)
}

var store entryStore = Entries
