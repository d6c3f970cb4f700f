package client

import (
	"context"
	"errors"
	"net/url"

	"catalogadmin/internal/types"
)

// List fetches one page of res and decodes each record as T.
func List[T any](ctx context.Context, c *Client, res types.Resource, page int, query url.Values) ([]*T, types.PageMeta, error) {
	var items []*T
	meta, err := c.FetchList(ctx, res.Endpoint(), page, query, &items)
	if err != nil {
		return nil, types.PageMeta{}, err
	}
	return compact(items), meta, nil
}

func Get[T any](ctx context.Context, c *Client, res types.Resource, id types.ID) (*T, error) {
	if id.IsZero() {
		return nil, errors.New(res.Singular + " id is required")
	}
	var out T
	if err := c.FetchOne(ctx, res.ItemEndpoint(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func Create[T any](ctx context.Context, c *Client, res types.Resource, payload any) (*T, error) {
	var out T
	if err := c.Create(ctx, res.Endpoint(), res.Singular, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func Update[T any](ctx context.Context, c *Client, res types.Resource, id types.ID, payload any) (*T, error) {
	if id.IsZero() {
		return nil, errors.New(res.Singular + " id is required")
	}
	var out T
	if err := c.Update(ctx, res.ItemEndpoint(id), res.Singular, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func Remove(ctx context.Context, c *Client, res types.Resource, id types.ID) error {
	if id.IsZero() {
		return errors.New(res.Singular + " id is required")
	}
	return c.Delete(ctx, res.ItemEndpoint(id))
}

func (c *Client) ListCollections(ctx context.Context, page int, query url.Values) ([]*types.Collection, types.PageMeta, error) {
	return List[types.Collection](ctx, c, types.ResourceCollections, page, query)
}

func (c *Client) ListCategories(ctx context.Context, page int, query url.Values) ([]*types.Category, types.PageMeta, error) {
	return List[types.Category](ctx, c, types.ResourceCategories, page, query)
}

func (c *Client) ListProducts(ctx context.Context, page int, query url.Values) ([]*types.Product, types.PageMeta, error) {
	return List[types.Product](ctx, c, types.ResourceProducts, page, query)
}

func (c *Client) ListVendorSKUs(ctx context.Context, page int, query url.Values) ([]*types.VendorSKU, types.PageMeta, error) {
	return List[types.VendorSKU](ctx, c, types.ResourceVendorSKUs, page, query)
}

func compact[T any](items []*T) []*T {
	out := items[:0]
	for _, item := range items {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}
