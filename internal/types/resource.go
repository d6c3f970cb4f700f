package types

import (
	"fmt"
	"strings"
)

// Resource describes one catalog endpoint family.
type Resource struct {
	Name     string
	Singular string
	Label    string
}

func (r Resource) Endpoint() string {
	return "/" + r.Name
}

func (r Resource) ItemEndpoint(id ID) string {
	return "/" + r.Name + "/" + strings.TrimSpace(id.String())
}

var (
	ResourceCollections = Resource{Name: "collections", Singular: "collection", Label: "Collections"}
	ResourceCategories  = Resource{Name: "categories", Singular: "category", Label: "Categories"}
	ResourceProducts    = Resource{Name: "products", Singular: "product", Label: "Products"}
	ResourceVendorSKUs  = Resource{Name: "vendor_skus", Singular: "vendor_sku", Label: "Vendor SKUs"}
)

// Resources lists the catalog resources in dashboard tab order.
func Resources() []Resource {
	return []Resource{ResourceCollections, ResourceCategories, ResourceProducts, ResourceVendorSKUs}
}

// LookupResource resolves a resource by plural or singular name, accepting
// dashes in place of underscores.
func LookupResource(name string) (Resource, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "-", "_")
	for _, res := range Resources() {
		if res.Name == name || res.Singular == name {
			return res, nil
		}
	}
	return Resource{}, fmt.Errorf("unknown resource: %q", name)
}
