package listview

import (
	"slices"
	"time"

	"encore.app/backoffice/model"
)

// Get returns the stored item with id.
func (v *View[T]) Get(id int64) (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if i := v.indexLocked(id); i >= 0 {
		return v.items[i], true
	}
	var zero T
	return zero, false
}

// Remove takes the item with id out of the working set and returns it with
// its former position.
func (v *View[T]) Remove(id int64) (T, int, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	var zero T
	i := v.indexLocked(id)
	if i < 0 {
		return zero, -1, false
	}
	removed := v.items[i]
	v.items = slices.Delete(slices.Clone(v.items), i, i+1)
	v.recomputeLocked()
	return removed, i, true
}

// InsertAt puts item back at index, clamped to the current length. It is a
// no-op when an item with the same id is already present.
func (v *View[T]) InsertAt(index int, item T) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.indexLocked(item.EntityID()) >= 0 {
		return false
	}
	index = max(0, min(index, len(v.items)))
	v.items = slices.Insert(slices.Clone(v.items), index, item)
	v.recomputeLocked()
	return true
}

// Upsert replaces the item with the same id, or appends it.
func (v *View[T]) Upsert(item T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	items := slices.Clone(v.items)
	if i := v.indexLocked(item.EntityID()); i >= 0 {
		items[i] = item
	} else {
		items = append(items, item)
	}
	v.items = items
	v.recomputeLocked()
}

// SetNotice shows a transient message that clears itself after the notice TTL.
func (v *View[T]) SetNotice(level model.NoticeLevel, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	if v.noticeTimer != nil {
		v.noticeTimer.Stop()
	}
	n := &model.Notice{Level: level, Message: message, ExpiresAt: v.now().Add(v.noticeTTL)}
	v.notice = n
	v.revision++
	v.noticeTimer = time.AfterFunc(v.noticeTTL, func() { v.clearNotice(n) })
}

func (v *View[T]) ClearNotice() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.notice != nil {
		v.notice = nil
		v.revision++
	}
}

func (v *View[T]) clearNotice(n *model.Notice) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.notice == n {
		v.notice = nil
		v.revision++
	}
}

func (v *View[T]) indexLocked(id int64) int {
	return slices.IndexFunc(v.items, func(it T) bool { return it.EntityID() == id })
}
