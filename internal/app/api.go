package app

import (
	"context"
	"fmt"
	"net/url"

	"catalogadmin/internal/client"
	"catalogadmin/internal/types"
)

// CatalogAPI is everything the dashboard needs from the backend.
type CatalogAPI interface {
	ListCollections(ctx context.Context, page int, query url.Values) ([]*types.Collection, types.PageMeta, error)
	ListCategories(ctx context.Context, page int, query url.Values) ([]*types.Category, types.PageMeta, error)
	ListProducts(ctx context.Context, page int, query url.Values) ([]*types.Product, types.PageMeta, error)
	ListVendorSKUs(ctx context.Context, page int, query url.Values) ([]*types.VendorSKU, types.PageMeta, error)
	GetRecord(ctx context.Context, res types.Resource, id types.ID) (any, error)
	// SaveRecord creates the record when id is zero and updates it otherwise.
	SaveRecord(ctx context.Context, res types.Resource, id types.ID, record any) (any, error)
	DeleteRecord(ctx context.Context, res types.Resource, id types.ID) error
}

type ClientAPI struct {
	client *client.Client
}

func NewClientAPI(client *client.Client) *ClientAPI {
	return &ClientAPI{client: client}
}

func (a *ClientAPI) ListCollections(ctx context.Context, page int, query url.Values) ([]*types.Collection, types.PageMeta, error) {
	return a.client.ListCollections(ctx, page, query)
}

func (a *ClientAPI) ListCategories(ctx context.Context, page int, query url.Values) ([]*types.Category, types.PageMeta, error) {
	return a.client.ListCategories(ctx, page, query)
}

func (a *ClientAPI) ListProducts(ctx context.Context, page int, query url.Values) ([]*types.Product, types.PageMeta, error) {
	return a.client.ListProducts(ctx, page, query)
}

func (a *ClientAPI) ListVendorSKUs(ctx context.Context, page int, query url.Values) ([]*types.VendorSKU, types.PageMeta, error) {
	return a.client.ListVendorSKUs(ctx, page, query)
}

func (a *ClientAPI) GetRecord(ctx context.Context, res types.Resource, id types.ID) (any, error) {
	switch res.Name {
	case types.ResourceCollections.Name:
		return client.Get[types.Collection](ctx, a.client, res, id)
	case types.ResourceCategories.Name:
		return client.Get[types.Category](ctx, a.client, res, id)
	case types.ResourceProducts.Name:
		return client.Get[types.Product](ctx, a.client, res, id)
	case types.ResourceVendorSKUs.Name:
		return client.Get[types.VendorSKU](ctx, a.client, res, id)
	default:
		return nil, fmt.Errorf("unknown resource: %q", res.Name)
	}
}

func (a *ClientAPI) SaveRecord(ctx context.Context, res types.Resource, id types.ID, record any) (any, error) {
	switch res.Name {
	case types.ResourceCollections.Name:
		return save[types.Collection](ctx, a.client, res, id, record)
	case types.ResourceCategories.Name:
		return save[types.Category](ctx, a.client, res, id, record)
	case types.ResourceProducts.Name:
		return save[types.Product](ctx, a.client, res, id, record)
	case types.ResourceVendorSKUs.Name:
		return save[types.VendorSKU](ctx, a.client, res, id, record)
	default:
		return nil, fmt.Errorf("unknown resource: %q", res.Name)
	}
}

func (a *ClientAPI) DeleteRecord(ctx context.Context, res types.Resource, id types.ID) error {
	return client.Remove(ctx, a.client, res, id)
}

func save[T any](ctx context.Context, c *client.Client, res types.Resource, id types.ID, record any) (*T, error) {
	if id.IsZero() {
		return client.Create[T](ctx, c, res, record)
	}
	return client.Update[T](ctx, c, res, id, record)
}
