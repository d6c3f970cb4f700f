package store

import (
	"context"
	"encoding/json"
	"errors"

	"catalogadmin/internal/types"
)

const RepositoryBackendBbolt = "bbolt"

var ErrNotFound = errors.New("record not found")

type Repository interface {
	Catalog() CatalogStore
	Backend() string
	Close() error
}

// CatalogStore keeps catalog records as JSON documents, one bucket per
// resource, ordered by their numeric id.
type CatalogStore interface {
	// Scan visits every record of res in id order.
	Scan(ctx context.Context, res types.Resource, fn func(raw []byte) error) error
	Get(ctx context.Context, res types.Resource, id types.ID) ([]byte, error)
	// Insert allocates the next id and stores whatever build returns for it.
	Insert(ctx context.Context, res types.Resource, build func(id types.ID) (any, error)) ([]byte, error)
	// Replace stores the result of update applied to the current document.
	Replace(ctx context.Context, res types.Resource, id types.ID, update func(current []byte) (any, error)) ([]byte, error)
	// Restore stores record under an explicit id, e.g. when loading fixtures.
	Restore(ctx context.Context, res types.Resource, id types.ID, record any) error
	Delete(ctx context.Context, res types.Resource, id types.ID) error
	Count(ctx context.Context, res types.Resource) (int, error)
}

// ListRecords decodes every record of res that keep accepts. A nil keep
// accepts everything.
func ListRecords[T any](ctx context.Context, s CatalogStore, res types.Resource, keep func(*T) bool) ([]*T, error) {
	out := make([]*T, 0)
	err := s.Scan(ctx, res, func(raw []byte) error {
		record := new(T)
		if err := json.Unmarshal(raw, record); err != nil {
			return err
		}
		if keep == nil || keep(record) {
			out = append(out, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func GetRecord[T any](ctx context.Context, s CatalogStore, res types.Resource, id types.ID) (*T, error) {
	raw, err := s.Get(ctx, res, id)
	if err != nil {
		return nil, err
	}
	record := new(T)
	if err := json.Unmarshal(raw, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Snapshot is a full export of the catalog.
type Snapshot struct {
	Collections []*types.Collection `json:"collections"`
	Categories  []*types.Category   `json:"categories"`
	Products    []*types.Product    `json:"products"`
	VendorSKUs  []*types.VendorSKU  `json:"vendor_skus"`
}

func Export(ctx context.Context, s CatalogStore) (*Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	if snap.Collections, err = ListRecords[types.Collection](ctx, s, types.ResourceCollections, nil); err != nil {
		return nil, err
	}
	if snap.Categories, err = ListRecords[types.Category](ctx, s, types.ResourceCategories, nil); err != nil {
		return nil, err
	}
	if snap.Products, err = ListRecords[types.Product](ctx, s, types.ResourceProducts, nil); err != nil {
		return nil, err
	}
	if snap.VendorSKUs, err = ListRecords[types.VendorSKU](ctx, s, types.ResourceVendorSKUs, nil); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Import restores every record of snap under its own id.
func Import(ctx context.Context, s CatalogStore, snap *Snapshot) error {
	if snap == nil {
		return nil
	}
	for _, c := range snap.Collections {
		if err := s.Restore(ctx, types.ResourceCollections, c.ID, c); err != nil {
			return err
		}
	}
	for _, c := range snap.Categories {
		if err := s.Restore(ctx, types.ResourceCategories, c.ID, c); err != nil {
			return err
		}
	}
	for _, p := range snap.Products {
		if err := s.Restore(ctx, types.ResourceProducts, p.ID, p); err != nil {
			return err
		}
	}
	for _, v := range snap.VendorSKUs {
		if err := s.Restore(ctx, types.ResourceVendorSKUs, v.ID, v); err != nil {
			return err
		}
	}
	return nil
}
