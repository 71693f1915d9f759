package listing

import (
	"encoding/json"
	"fmt"

	"encore.app/backoffice/model"
)

func (l *listing[T, D]) View() (*model.ViewPage, error) {
	p := l.view.Snapshot()

	items := []byte("[]")
	if len(p.Items) > 0 {
		var err error
		if items, err = json.Marshal(p.Items); err != nil {
			return nil, fmt.Errorf("encode %s page: %w", l.resource, err)
		}
	}

	return &model.ViewPage{
		Resource:      l.resource,
		Items:         items,
		Page:          p.Page,
		PageSize:      p.PageSize,
		TotalPages:    p.TotalPages,
		TotalItems:    p.TotalItems,
		FilteredItems: p.FilteredItems,
		PageWindow:    p.PageWindow,
		SearchTerm:    p.SearchTerm,
		PendingSearch: p.PendingSearch,
		Category:      p.Category,
		SortKey:       p.SortKey,
		SortDirection: p.SortDirection,
		Revision:      p.Revision,
		Notice:        p.Notice,
	}, nil
}

// Search schedules a debounced search. immediate applies the term at once.
func (l *listing[T, D]) Search(term string, immediate bool) (*model.ViewPage, error) {
	l.view.SetSearchTerm(term)
	if immediate {
		l.view.FlushSearch()
	}
	return l.View()
}

func (l *listing[T, D]) Filter(category string) (*model.ViewPage, error) {
	l.view.SetCategory(category)
	return l.View()
}

func (l *listing[T, D]) Sort(key model.SortKey) (*model.ViewPage, error) {
	l.view.SortBy(key)
	return l.View()
}

// GoToPage ignores pages outside the current range and returns the unchanged view.
func (l *listing[T, D]) GoToPage(page int) (*model.ViewPage, error) {
	l.view.GoToPage(page)
	return l.View()
}

func (l *listing[T, D]) InventoryStats() (*model.InventoryStats, error) {
	records, ok := any(l.view.Items()).([]model.InventoryRecord)
	if !ok {
		return nil, ErrNoSummary
	}
	stats := model.SummarizeInventory(records)
	return &stats, nil
}
