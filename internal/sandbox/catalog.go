package sandbox

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"catalogadmin/internal/store"
	"catalogadmin/internal/types"
)

func hasPrefixFold(value, prefix string) bool {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(value), strings.ToLower(prefix))
}

// matchActive accepts "active"/"inactive" as well as boolean spellings.
// Unknown values do not filter.
func matchActive(active bool, raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active", "true", "1", "yes":
		return active
	case "inactive", "false", "0", "no":
		return !active
	default:
		return true
	}
}

func matchID(id types.ID, raw string) bool {
	raw = strings.TrimSpace(raw)
	return raw == "" || strings.TrimSpace(id.String()) == raw
}

func matchCollection(c *types.Collection, q url.Values) bool {
	return hasPrefixFold(c.Name, q.Get("starts_with")) && matchActive(c.Active, q.Get("active"))
}

func matchCategory(c *types.Category, q url.Values) bool {
	return hasPrefixFold(c.Name, q.Get("starts_with")) &&
		matchActive(c.Active, q.Get("active")) &&
		matchID(c.CollectionID, q.Get("collection_id"))
}

func matchProduct(p *types.Product, q url.Values) bool {
	return hasPrefixFold(p.Name, q.Get("starts_with")) &&
		matchActive(p.Active, q.Get("active")) &&
		matchID(p.CategoryID, q.Get("category_id"))
}

func matchVendorSKU(v *types.VendorSKU, q url.Values) bool {
	vendor := strings.TrimSpace(q.Get("vendor"))
	if vendor != "" && !strings.EqualFold(v.Vendor, vendor) {
		return false
	}
	return hasPrefixFold(v.VendorSKU, q.Get("starts_with")) && matchActive(v.Active, q.Get("active"))
}

func timestamps(created *time.Time, now time.Time) (*time.Time, *time.Time) {
	updated := now
	if created == nil {
		c := now
		created = &c
	}
	return created, &updated
}

func stampCollection(c *types.Collection, id types.ID, created *time.Time, now time.Time) {
	c.ID = id
	c.Name = strings.TrimSpace(c.Name)
	c.CreatedAt, c.UpdatedAt = timestamps(created, now)
}

func stampCategory(c *types.Category, id types.ID, created *time.Time, now time.Time) {
	c.ID = id
	c.Name = strings.TrimSpace(c.Name)
	c.CreatedAt, c.UpdatedAt = timestamps(created, now)
}

func stampProduct(p *types.Product, id types.ID, created *time.Time, now time.Time) {
	p.ID = id
	p.Name = strings.TrimSpace(p.Name)
	p.SKU = strings.TrimSpace(p.SKU)
	p.CreatedAt, p.UpdatedAt = timestamps(created, now)
}

func stampVendorSKU(v *types.VendorSKU, id types.ID, created *time.Time, now time.Time) {
	v.ID = id
	v.Vendor = strings.TrimSpace(v.Vendor)
	v.VendorSKU = strings.TrimSpace(v.VendorSKU)
	v.CreatedAt, v.UpdatedAt = timestamps(created, now)
}

func (a *API) exists(ctx context.Context, res types.Resource, id types.ID) (bool, error) {
	_, err := a.Catalog.Get(ctx, res, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (a *API) requireRef(ctx context.Context, res types.Resource, field string, id types.ID) error {
	if id.IsZero() {
		return nil
	}
	ok, err := a.exists(ctx, res, id)
	if err != nil {
		return internalError("check "+field, err)
	}
	if !ok {
		return invalidError(field + " does not exist")
	}
	return nil
}

func (a *API) checkCategoryRefs(ctx context.Context, c *types.Category) error {
	return a.requireRef(ctx, types.ResourceCollections, "collection_id", c.CollectionID)
}

func (a *API) checkProductRefs(ctx context.Context, p *types.Product) error {
	return a.requireRef(ctx, types.ResourceCategories, "category_id", p.CategoryID)
}

// checkVendorSKURefs also fills in product_sku from the referenced product.
func (a *API) checkVendorSKURefs(ctx context.Context, v *types.VendorSKU) error {
	if err := a.requireRef(ctx, types.ResourceProducts, "product_id", v.ProductID); err != nil {
		return err
	}
	product, err := store.GetRecord[types.Product](ctx, a.Catalog, types.ResourceProducts, v.ProductID)
	if err != nil {
		return internalError("load product", err)
	}
	if strings.TrimSpace(v.ProductSKU) == "" {
		v.ProductSKU = product.SKU
	}
	return nil
}

// checkCollectionDelete refuses to orphan categories.
func (a *API) checkCollectionDelete(ctx context.Context, id types.ID) error {
	children, err := store.ListRecords(ctx, a.Catalog, types.ResourceCategories, func(c *types.Category) bool {
		return c.CollectionID.String() == id.String()
	})
	if err != nil {
		return internalError("check categories", err)
	}
	if len(children) > 0 {
		return conflictError("collection still has categories")
	}
	return nil
}
