package main

import (
	"context"
	"fmt"
	"net/url"

	"catalogadmin/internal/app"
	catalogclient "catalogadmin/internal/client"
	"catalogadmin/internal/config"
	"catalogadmin/internal/logging"
	"catalogadmin/internal/types"
)

type clientFactory func(cfg config.Config, logger logging.Logger) (commandClient, error)

type commandClient interface {
	Health(ctx context.Context) (*catalogclient.HealthResponse, error)
	ListPage(ctx context.Context, res types.Resource, page int, query url.Values) ([]any, types.PageMeta, error)
	GetRecord(ctx context.Context, res types.Resource, id types.ID) (any, error)
	SaveRecord(ctx context.Context, res types.Resource, id types.ID, record any) (any, error)
	DeleteRecord(ctx context.Context, res types.Resource, id types.ID) error
	BaseURL() string
}

type catalogClientAdapter struct {
	client *catalogclient.Client
	api    *app.ClientAPI
}

func newCatalogClient(cfg config.Config, logger logging.Logger) (commandClient, error) {
	client := newHTTPClient(cfg, logger)
	return &catalogClientAdapter{client: client, api: app.NewClientAPI(client)}, nil
}

func newHTTPClient(cfg config.Config, logger logging.Logger) *catalogclient.Client {
	return catalogclient.New(cfg.APIBaseURL(),
		catalogclient.WithTimeout(cfg.RequestTimeout()),
		catalogclient.WithPerPage(cfg.PerPage()),
		catalogclient.WithLogger(logger),
	)
}

func (c *catalogClientAdapter) Health(ctx context.Context) (*catalogclient.HealthResponse, error) {
	return c.client.Health(ctx)
}

func (c *catalogClientAdapter) ListPage(ctx context.Context, res types.Resource, page int, query url.Values) ([]any, types.PageMeta, error) {
	switch res.Name {
	case types.ResourceCollections.Name:
		return erase(c.api.ListCollections(ctx, page, query))
	case types.ResourceCategories.Name:
		return erase(c.api.ListCategories(ctx, page, query))
	case types.ResourceProducts.Name:
		return erase(c.api.ListProducts(ctx, page, query))
	case types.ResourceVendorSKUs.Name:
		return erase(c.api.ListVendorSKUs(ctx, page, query))
	default:
		return nil, types.PageMeta{}, fmt.Errorf("unknown resource: %q", res.Name)
	}
}

func (c *catalogClientAdapter) GetRecord(ctx context.Context, res types.Resource, id types.ID) (any, error) {
	return c.api.GetRecord(ctx, res, id)
}

func (c *catalogClientAdapter) SaveRecord(ctx context.Context, res types.Resource, id types.ID, record any) (any, error) {
	return c.api.SaveRecord(ctx, res, id, record)
}

func (c *catalogClientAdapter) DeleteRecord(ctx context.Context, res types.Resource, id types.ID) error {
	return c.api.DeleteRecord(ctx, res, id)
}

func (c *catalogClientAdapter) BaseURL() string {
	return c.client.BaseURL()
}

func erase[T any](items []*T, meta types.PageMeta, err error) ([]any, types.PageMeta, error) {
	if err != nil {
		return nil, meta, err
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out, meta, nil
}
