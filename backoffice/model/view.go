package model

import (
	"encoding/json"
	"time"
)

type NoticeLevel string

const (
	NoticeError   NoticeLevel = "error"
	NoticeSuccess NoticeLevel = "success"
)

// Notice is a transient message shown above a list until it expires.
type Notice struct {
	Level     NoticeLevel `json:"level"`
	Message   string      `json:"message"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// ViewPage is the rendered state of one list screen.
type ViewPage struct {
	Resource      Resource        `json:"resource"`
	Items         json.RawMessage `json:"items"`
	Page          int             `json:"page"`
	PageSize      int             `json:"page_size"`
	TotalPages    int             `json:"total_pages"`
	TotalItems    int             `json:"total_items"`
	FilteredItems int             `json:"filtered_items"`
	PageWindow    []int           `json:"page_window"`
	SearchTerm    string          `json:"search_term"`
	PendingSearch bool            `json:"pending_search"`
	Category      string          `json:"category"`
	SortKey       SortKey         `json:"sort_key"`
	SortDirection SortDirection   `json:"sort_direction"`
	Revision      uint64          `json:"revision"`
	Notice        *Notice         `json:"notice,omitempty"`
}

// ItemChange is returned by create and update. Item is empty when the upstream
// accepted the write without echoing the record; the view is then reloaded.
type ItemChange struct {
	Item json.RawMessage `json:"item,omitempty"`
	View ViewPage        `json:"view"`
}
