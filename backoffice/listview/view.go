// Package listview keeps the state of one list screen: the working set of
// entities plus the search, category, sort and page selection over it.
//
// Every method is safe for concurrent use. The search term is debounced: only
// the last term set within the quiet window is applied.
package listview

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"encore.app/backoffice/model"
)

const (
	DefaultPageSize  = 10
	DefaultDebounce  = 300 * time.Millisecond
	DefaultNoticeTTL = 5 * time.Second

	// windowRadius is how many page numbers are shown on each side of the current page.
	windowRadius = 2
)

// Page is a snapshot of the visible slice and the state that produced it.
type Page[T model.Entity] struct {
	Items         []T
	Page          int
	PageSize      int
	TotalPages    int
	TotalItems    int
	FilteredItems int
	PageWindow    []int
	SearchTerm    string
	PendingSearch bool
	Category      string
	SortKey       model.SortKey
	SortDirection model.SortDirection
	Revision      uint64
	Notice        *model.Notice
}

type View[T model.Entity] struct {
	debounce  time.Duration
	noticeTTL time.Duration
	now       func() time.Time

	mu       sync.Mutex
	items    []T
	filtered []T
	collator *collate.Collator

	searchTerm  string
	pendingTerm string
	pending     bool
	searchSeq   uint64
	searchTimer *time.Timer

	category string
	sortKey  model.SortKey
	sortDir  model.SortDirection
	page     int
	pageSize int
	revision uint64

	notice      *model.Notice
	noticeTimer *time.Timer
	closed      bool
}

type Option func(*options)

type options struct {
	pageSize  int
	debounce  time.Duration
	noticeTTL time.Duration
	lang      language.Tag
	sortKey   model.SortKey
	sortDir   model.SortDirection
	now       func() time.Time
}

func WithPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.debounce = d
		}
	}
}

func WithNoticeTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.noticeTTL = d
		}
	}
}

// WithLanguage selects the collation used for name sorting.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) { o.lang = tag }
}

func WithSort(key model.SortKey, dir model.SortDirection) Option {
	return func(o *options) {
		o.sortKey = key
		o.sortDir = dir
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func New[T model.Entity](opts ...Option) *View[T] {
	o := options{
		pageSize:  DefaultPageSize,
		debounce:  DefaultDebounce,
		noticeTTL: DefaultNoticeTTL,
		lang:      language.Und,
		sortKey:   model.SortByName,
		sortDir:   model.SortAscending,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &View[T]{
		debounce:  o.debounce,
		noticeTTL: o.noticeTTL,
		now:       o.now,
		collator:  collate.New(o.lang, collate.IgnoreCase),
		sortKey:   o.sortKey,
		sortDir:   o.sortDir,
		page:      1,
		pageSize:  o.pageSize,
	}
}

// SetItems replaces the working set and goes back to the first page. Items
// with an identifier already seen earlier in the slice are dropped.
func (v *View[T]) SetItems(items []T) {
	seen := make(map[int64]struct{}, len(items))
	unique := make([]T, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it.EntityID()]; dup {
			continue
		}
		seen[it.EntityID()] = struct{}{}
		unique = append(unique, it)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.items = unique
	v.page = 1
	v.recomputeLocked()
}

// SetSearchTerm schedules term to be applied once no other term has been set
// for the debounce window. Earlier pending terms are discarded.
func (v *View[T]) SetSearchTerm(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}

	v.pendingTerm = term
	v.pending = true
	v.searchSeq++
	seq := v.searchSeq
	if v.searchTimer != nil {
		v.searchTimer.Stop()
	}
	v.searchTimer = time.AfterFunc(v.debounce, func() { v.applySearch(seq) })
}

// FlushSearch applies a pending search term immediately.
func (v *View[T]) FlushSearch() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.pending {
		return
	}
	if v.searchTimer != nil {
		v.searchTimer.Stop()
	}
	v.applySearchLocked()
}

func (v *View[T]) applySearch(seq uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || !v.pending || seq != v.searchSeq {
		return
	}
	v.applySearchLocked()
}

func (v *View[T]) applySearchLocked() {
	v.searchTerm = v.pendingTerm
	v.pending = false
	v.searchSeq++
	v.page = 1
	v.recomputeLocked()
}

// SetCategory filters on the entities' group key; "" matches everything.
func (v *View[T]) SetCategory(category string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.category = strings.TrimSpace(category)
	v.page = 1
	v.recomputeLocked()
}

// SortBy sorts by key. Sorting by the current key again flips the direction,
// a new key starts ascending.
func (v *View[T]) SortBy(key model.SortKey) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if key == v.sortKey {
		if v.sortDir == model.SortAscending {
			v.sortDir = model.SortDescending
		} else {
			v.sortDir = model.SortAscending
		}
	} else {
		v.sortKey = key
		v.sortDir = model.SortAscending
	}
	v.recomputeLocked()
}

// GoToPage moves to page p. It reports false and changes nothing when p is
// outside [1, TotalPages].
func (v *View[T]) GoToPage(p int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if p < 1 || p > v.totalPagesLocked() {
		return false
	}
	if p != v.page {
		v.page = p
		v.revision++
	}
	return true
}

// Snapshot returns the visible page.
func (v *View[T]) Snapshot() Page[T] {
	v.mu.Lock()
	defer v.mu.Unlock()

	total := v.totalPagesLocked()
	start := (v.page - 1) * v.pageSize
	end := min(start+v.pageSize, len(v.filtered))
	start = min(start, end)

	var notice *model.Notice
	if v.notice != nil {
		n := *v.notice
		notice = &n
	}

	return Page[T]{
		Items:         slices.Clone(v.filtered[start:end]),
		Page:          v.page,
		PageSize:      v.pageSize,
		TotalPages:    total,
		TotalItems:    len(v.items),
		FilteredItems: len(v.filtered),
		PageWindow:    PageWindow(v.page, total),
		SearchTerm:    v.searchTerm,
		PendingSearch: v.pending,
		Category:      v.category,
		SortKey:       v.sortKey,
		SortDirection: v.sortDir,
		Revision:      v.revision,
		Notice:        notice,
	}
}

// Items returns the unfiltered working set in its stored order.
func (v *View[T]) Items() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.items)
}

func (v *View[T]) Revision() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.revision
}

// Close stops pending timers. Later search terms are ignored.
func (v *View[T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	if v.searchTimer != nil {
		v.searchTimer.Stop()
	}
	if v.noticeTimer != nil {
		v.noticeTimer.Stop()
	}
}

// PageWindow returns the page numbers within two of current, clamped to [1, total].
func PageWindow(current, total int) []int {
	if total <= 0 {
		return []int{}
	}
	start := max(1, current-windowRadius)
	end := min(total, current+windowRadius)
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

func (v *View[T]) totalPagesLocked() int {
	return (len(v.filtered) + v.pageSize - 1) / v.pageSize
}

func (v *View[T]) recomputeLocked() {
	term := strings.ToLower(strings.TrimSpace(v.searchTerm))

	filtered := make([]T, 0, len(v.items))
	for _, it := range v.items {
		if term != "" && !matchesTerm(it, term) {
			continue
		}
		if v.category != "" && !strings.EqualFold(it.GroupKey(), v.category) {
			continue
		}
		filtered = append(filtered, it)
	}
	slices.SortStableFunc(filtered, v.compareLocked)
	v.filtered = filtered

	if total := v.totalPagesLocked(); v.page > total {
		v.page = max(1, total)
	}
	v.revision++
}

func matchesTerm(it model.Entity, term string) bool {
	if strings.Contains(strings.ToLower(it.DisplayName()), term) {
		return true
	}
	for _, code := range it.SearchCodes() {
		if code != "" && strings.Contains(strings.ToLower(code), term) {
			return true
		}
	}
	return false
}

// compareLocked orders by the sort key, ties broken by identifier, then applies
// the direction to the whole result so descending is the exact reverse.
func (v *View[T]) compareLocked(a, b T) int {
	var c int
	switch v.sortKey {
	case model.SortByName:
		c = v.collator.CompareString(a.DisplayName(), b.DisplayName())
	case model.SortByPrice, model.SortByStock:
		c = cmp.Compare(a.SortMetric(v.sortKey), b.SortMetric(v.sortKey))
	case model.SortByDate:
		c = b.SortTime().Compare(a.SortTime())
	}
	if c == 0 {
		c = cmp.Compare(a.EntityID(), b.EntityID())
	}
	if v.sortDir == model.SortDescending {
		c = -c
	}
	return c
}
