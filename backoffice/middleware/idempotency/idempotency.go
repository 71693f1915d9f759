// Package idempotency replays the stored response of a create or update that is
// retried with the same X-Idempotency-Key.
package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"encore.dev/beta/errs"
	"encore.dev/middleware"
	"encore.dev/rlog"
	"encore.dev/storage/cache"

	"encore.app/backoffice/model"
)

const Header = "X-Idempotency-Key"

// Recorder counts replayed responses.
type Recorder interface {
	IdempotentReplay()
}

var recorder Recorder

// SetRecorder installs the replay counter. It is called once at service start.
func SetRecorder(r Recorder) { recorder = r }

//encore:middleware target=tag:idempotency
func Middleware(req middleware.Request, next middleware.Next) middleware.Response {
	key, err := extractKey(req)
	if err != nil {
		return middleware.Response{Err: err}
	}

	ctx := req.Context()
	cacheKey := model.IdempotencyKey{Path: req.Data().Path, Key: key}
	bodyHash := bodyHash(req)

	entry, getErr := store.Get(ctx, cacheKey)
	switch {
	case errors.Is(getErr, cache.Miss):
		return process(ctx, req, next, cacheKey, bodyHash)
	case getErr != nil:
		rlog.Error("failed to read idempotency entry", "error", getErr, "key", key)
		return middleware.Response{Err: &errs.Error{Code: errs.Unavailable, Message: "failed to check idempotency"}}
	}
	return existing(req, next, entry, bodyHash, key)
}

func extractKey(req middleware.Request) (string, *errs.Error) {
	var key string
	if headers := req.Data().Headers; headers != nil {
		key = strings.TrimSpace(headers.Get(Header))
	}
	if key == "" {
		return "", &errs.Error{Code: errs.InvalidArgument, Message: Header + " header is required"}
	}
	return key, nil
}

func process(ctx context.Context, req middleware.Request, next middleware.Next, cacheKey model.IdempotencyKey, bodyHash string) middleware.Response {
	now := time.Now()
	err := store.SetIfNotExists(ctx, cacheKey, model.IdempotencyEntry{
		Status:          model.IdempotencyProcessing,
		RequestBodyHash: bodyHash,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if errors.Is(err, cache.KeyExists) {
		return inFlight(cacheKey.Key)
	}
	if err != nil {
		rlog.Error("failed to mark request as processing", "error", err, "key", cacheKey.Key)
		return middleware.Response{Err: &errs.Error{Code: errs.Unavailable, Message: "failed to check idempotency"}}
	}

	resp := next(req)
	if resp.Err != nil {
		// a failed write may be retried with the same key
		if _, delErr := store.Delete(ctx, cacheKey); delErr != nil {
			rlog.Error("failed to clear idempotency entry", "error", delErr, "key", cacheKey.Key)
		}
		return resp
	}

	complete(ctx, cacheKey, bodyHash, now, resp)
	return resp
}

func existing(req middleware.Request, next middleware.Next, entry model.IdempotencyEntry, bodyHash, key string) middleware.Response {
	if err := checkBodyHash(entry, bodyHash); err != nil {
		return middleware.Response{Err: err}
	}

	switch entry.Status {
	case model.IdempotencyProcessing:
		return inFlight(key)
	case model.IdempotencyCompleted:
		if resp, ok := replay(req, entry, key); ok {
			return resp
		}
	default:
		rlog.Warn("unknown idempotency entry status", "key", key, "status", entry.Status)
	}
	return next(req)
}

func checkBodyHash(entry model.IdempotencyEntry, bodyHash string) *errs.Error {
	if bodyHash != "" && entry.RequestBodyHash != "" && bodyHash != entry.RequestBodyHash {
		return &errs.Error{Code: errs.InvalidArgument, Message: "idempotency key conflict: request body does not match previous request"}
	}
	return nil
}

func inFlight(key string) middleware.Response {
	rlog.Info("concurrent request with the same idempotency key", "key", key)
	return middleware.Response{Err: &errs.Error{Code: errs.Aborted, Message: "request is already being processed"}}
}

// replay decodes the stored payload into the endpoint's response type.
func replay(req middleware.Request, entry model.IdempotencyEntry, key string) (middleware.Response, bool) {
	if len(entry.Response) == 0 {
		return middleware.Response{}, false
	}
	api := req.Data().API
	if api == nil || api.ResponseType == nil {
		return middleware.Response{}, false
	}

	payload := reflect.New(api.ResponseType.Elem()).Interface()
	if err := json.Unmarshal(entry.Response, payload); err != nil {
		rlog.Error("failed to decode stored response", "error", err, "key", key)
		return middleware.Response{}, false
	}
	if recorder != nil {
		recorder.IdempotentReplay()
	}
	rlog.Info("replaying stored response", "key", key)
	return middleware.Response{Payload: payload}, true
}

func complete(ctx context.Context, cacheKey model.IdempotencyKey, bodyHash string, created time.Time, resp middleware.Response) {
	entry := model.IdempotencyEntry{
		Status:          model.IdempotencyCompleted,
		RequestBodyHash: bodyHash,
		CreatedAt:       created,
		UpdatedAt:       time.Now(),
	}
	if resp.Payload != nil {
		payload, err := json.Marshal(resp.Payload)
		if err != nil {
			rlog.Error("failed to encode response for replay", "error", err)
			return
		}
		entry.Response = payload
	}
	if err := store.Set(ctx, cacheKey, entry); err != nil {
		rlog.Error("failed to store response for replay", "error", err, "key", cacheKey.Key)
	}
}

func bodyHash(req middleware.Request) string {
	payload := req.Data().Payload
	if payload == nil {
		return ""
	}
	body, err := json.Marshal(payload)
	if err != nil {
		rlog.Error("failed to encode request body", "error", err)
		return ""
	}
	return hashing(body)
}

func hashing(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
