// Package remote talks to the upstream e-commerce REST API, one client per resource.
package remote

//go:generate mockgen -source=client.go -destination=../mocks/remote/collection_client/client.go -package=collection_client

import (
	"context"
	"net/url"

	"encore.app/backoffice/model"
)

// Client wraps the REST calls of a single resource. Responses are returned as
// decoded JSON (json.Number for numbers) without any shape guarantee.
type Client interface {
	List(ctx context.Context, params url.Values) (any, error)
	Create(ctx context.Context, body map[string]any) (any, error)
	Update(ctx context.Context, id int64, body map[string]any) (any, error)
	// Remove may return a nil body when the server answers with an empty 200/204.
	Remove(ctx context.Context, id int64) (any, error)
	// Action posts to a named sub-route of the collection, e.g. "/api/Inventory/import".
	Action(ctx context.Context, name string, query url.Values, body map[string]any) (any, error)
}

// Endpoint describes where a resource lives on the upstream API.
type Endpoint struct {
	Resource model.Resource
	Path     string
	// UpdateSuffix is appended to the item path on update, e.g. "/status".
	UpdateSuffix string
}

// DefaultEndpoints are the routes of the upstream shop API.
var DefaultEndpoints = map[model.Resource]Endpoint{
	model.ResourceProducts:  {Resource: model.ResourceProducts, Path: "/api/Products"},
	model.ResourceInventory: {Resource: model.ResourceInventory, Path: "/api/Inventory", UpdateSuffix: "/quantity"},
	model.ResourceOrders:    {Resource: model.ResourceOrders, Path: "/api/Orders", UpdateSuffix: "/status"},
	model.ResourceCustomers: {Resource: model.ResourceCustomers, Path: "/api/Customers"},

	model.ResourceTransactions: {Resource: model.ResourceTransactions, Path: "/api/InventoryTransaction"},
}
