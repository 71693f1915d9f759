// Package mutate applies create, update and delete actions to a list view and
// the upstream API.
//
// Delete is optimistic: the item leaves the view at once and is put back at its
// old position if the upstream call fails. Create and update wait for the
// upstream confirmation before touching the view.
package mutate

import (
	"context"
	"errors"
	"fmt"

	"encore.app/backoffice/apperr"
	"encore.app/backoffice/model"
	"encore.app/backoffice/normalize"
	"encore.app/backoffice/remote"
)

// ErrUnconfirmed is returned when the upstream call succeeded but its response
// did not carry a usable record. The view is reconciled by a reload instead.
var ErrUnconfirmed = errors.New("mutation accepted but the response carried no record")

type Draft interface {
	Payload() map[string]any
}

// Target is the view state a mutator edits.
type Target[T model.Entity] interface {
	Get(id int64) (T, bool)
	Remove(id int64) (T, int, bool)
	InsertAt(index int, item T) bool
	Upsert(item T)
	SetNotice(level model.NoticeLevel, message string)
}

// Invalidator drops cached reads of a resource.
type Invalidator interface {
	InvalidateTag(tag string) int
}

type Observer interface {
	Mutation(resource, op, outcome string)
}

type Config struct {
	Cache    Invalidator
	Observer Observer
	// Reconcile is called when the view can no longer be trusted to match the
	// upstream state, typically to schedule a reload.
	Reconcile func()
}

type Mutator[T model.Entity, D Draft] struct {
	resource  model.Resource
	client    remote.Client
	view      Target[T]
	normalize func(raw any) (T, bool)
	cfg       Config
	guard     func(current T, draft D) error
}

func New[T model.Entity, D Draft](
	resource model.Resource,
	client remote.Client,
	view Target[T],
	normalize func(raw any) (T, bool),
	cfg Config,
) *Mutator[T, D] {
	return &Mutator[T, D]{
		resource:  resource,
		client:    client,
		view:      view,
		normalize: normalize,
		cfg:       cfg,
	}
}

// SetGuard installs a check run on update against the item currently in the
// view. Items not in the view are left to the upstream to judge.
func (m *Mutator[T, D]) SetGuard(guard func(current T, draft D) error) {
	m.guard = guard
}

// Create validates the draft, creates it upstream and appends the returned record.
func (m *Mutator[T, D]) Create(ctx context.Context, draft D) (T, error) {
	var zero T
	if err := Validate(draft, false); err != nil {
		m.observe("create", "invalid")
		return zero, err
	}

	raw, err := m.client.Create(ctx, draft.Payload())
	if err != nil {
		return zero, m.fail("create", err)
	}

	m.invalidate()
	created, ok := m.firstRecord(raw)
	if !ok || created.EntityID() <= 0 {
		m.unconfirmed("create")
		return zero, fmt.Errorf("create %s: %w", m.resource, ErrUnconfirmed)
	}
	m.view.Upsert(created)
	m.view.SetNotice(model.NoticeSuccess, "item created")
	m.observe("create", "ok")
	return created, nil
}

// Update validates the draft, updates id upstream and replaces the local item
// with the returned record.
func (m *Mutator[T, D]) Update(ctx context.Context, id int64, draft D) (T, error) {
	var zero T
	if id <= 0 {
		m.observe("update", "invalid")
		return zero, apperr.Invalid("id", "gt", "id must be a persisted identifier")
	}
	if err := Validate(draft, true); err != nil {
		m.observe("update", "invalid")
		return zero, err
	}
	if current, ok := m.view.Get(id); ok && m.guard != nil {
		if err := m.guard(current, draft); err != nil {
			m.observe("update", "rejected")
			return zero, err
		}
	}

	raw, err := m.client.Update(ctx, id, draft.Payload())
	if err != nil {
		return zero, m.fail("update", err)
	}

	m.invalidate()
	updated, ok := m.firstRecord(raw)
	if !ok || updated.EntityID() != id {
		m.unconfirmed("update")
		return zero, fmt.Errorf("update %s %d: %w", m.resource, id, ErrUnconfirmed)
	}
	m.view.Upsert(updated)
	m.view.SetNotice(model.NoticeSuccess, "item updated")
	m.observe("update", "ok")
	return updated, nil
}

// Action is a confirm-first write outside plain create and update, such as a
// stock import. Draft is validated before Call runs.
type Action struct {
	Op     string
	Draft  any
	Call   func(ctx context.Context) (any, error)
	Notice string
	// Invalidates lists further cache tags the write makes stale.
	Invalidates []string
}

// Do runs a and replaces the local item with the returned record.
func (m *Mutator[T, D]) Do(ctx context.Context, a Action) (T, error) {
	var zero T
	if a.Draft != nil {
		if err := Validate(a.Draft, false); err != nil {
			m.observe(a.Op, "invalid")
			return zero, err
		}
	}

	raw, err := a.Call(ctx)
	if err != nil {
		return zero, m.fail(a.Op, err)
	}

	m.invalidate(a.Invalidates...)
	item, ok := m.firstRecord(raw)
	if !ok || item.EntityID() <= 0 {
		m.unconfirmed(a.Op)
		return zero, fmt.Errorf("%s %s: %w", a.Op, m.resource, ErrUnconfirmed)
	}
	m.view.Upsert(item)
	if a.Notice != "" {
		m.view.SetNotice(model.NoticeSuccess, a.Notice)
	}
	m.observe(a.Op, "ok")
	return item, nil
}

// Remove deletes id optimistically. Removing an id that is not in the view is
// a no-op and makes no upstream call.
func (m *Mutator[T, D]) Remove(ctx context.Context, id int64) error {
	item, index, ok := m.view.Remove(id)
	if !ok {
		m.observe("remove", "noop")
		return nil
	}

	if _, err := m.client.Remove(ctx, id); err != nil {
		m.view.InsertAt(index, item)
		m.observe("remove", "rolled_back")
		m.view.SetNotice(model.NoticeError, apperr.UserMessage(err))
		return err
	}

	m.invalidate()
	m.view.SetNotice(model.NoticeSuccess, "item deleted")
	m.observe("remove", "ok")
	return nil
}

func (m *Mutator[T, D]) firstRecord(raw any) (T, bool) {
	for _, rec := range normalize.Unwrap(raw) {
		if item, ok := m.normalize(rec); ok {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (m *Mutator[T, D]) fail(op string, err error) error {
	m.observe(op, "failed")
	m.view.SetNotice(model.NoticeError, apperr.UserMessage(err))
	return err
}

func (m *Mutator[T, D]) unconfirmed(op string) {
	m.observe(op, "unconfirmed")
	if m.cfg.Reconcile != nil {
		m.cfg.Reconcile()
	}
}

func (m *Mutator[T, D]) invalidate(extra ...string) {
	if m.cfg.Cache == nil {
		return
	}
	m.cfg.Cache.InvalidateTag(string(m.resource))
	for _, tag := range extra {
		m.cfg.Cache.InvalidateTag(tag)
	}
}

func (m *Mutator[T, D]) observe(op, outcome string) {
	if m.cfg.Observer != nil {
		m.cfg.Observer.Mutation(string(m.resource), op, outcome)
	}
}
