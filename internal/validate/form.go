package validate

import (
	"fmt"
	"strconv"
	"strings"

	"catalogadmin/internal/types"
)

type FieldKind int

const (
	FieldText FieldKind = iota
	FieldMultiline
	FieldBool
	FieldInt
)

// FormField describes one editable attribute of a catalog record.
type FormField struct {
	Key      string
	Label    string
	Kind     FieldKind
	Required bool
}

func FormFields(res types.Resource) []FormField {
	switch res.Name {
	case types.ResourceCollections.Name:
		return []FormField{
			{Key: "name", Label: "Name", Required: true},
			{Key: "description", Label: "Description", Kind: FieldMultiline},
			{Key: "position", Label: "Position", Kind: FieldInt},
			{Key: "active", Label: "Active", Kind: FieldBool},
		}
	case types.ResourceCategories.Name:
		return []FormField{
			{Key: "name", Label: "Name", Required: true},
			{Key: "collection_id", Label: "Collection ID"},
			{Key: "position", Label: "Position", Kind: FieldInt},
			{Key: "active", Label: "Active", Kind: FieldBool},
		}
	case types.ResourceProducts.Name:
		return []FormField{
			{Key: "name", Label: "Name", Required: true},
			{Key: "sku", Label: "SKU", Required: true},
			{Key: "price", Label: "Price", Required: true},
			{Key: "currency", Label: "Currency"},
			{Key: "category_id", Label: "Category ID"},
			{Key: "description", Label: "Description", Kind: FieldMultiline},
			{Key: "active", Label: "Active", Kind: FieldBool},
		}
	case types.ResourceVendorSKUs.Name:
		return []FormField{
			{Key: "vendor", Label: "Vendor", Required: true},
			{Key: "vendor_sku", Label: "Vendor SKU", Required: true},
			{Key: "product_id", Label: "Product ID", Required: true},
			{Key: "product_sku", Label: "Product SKU"},
			{Key: "active", Label: "Active", Kind: FieldBool},
		}
	default:
		return nil
	}
}

// NewRecord returns an empty, active record for res.
func NewRecord(res types.Resource) (any, error) {
	switch res.Name {
	case types.ResourceCollections.Name:
		return &types.Collection{Active: true}, nil
	case types.ResourceCategories.Name:
		return &types.Category{Active: true}, nil
	case types.ResourceProducts.Name:
		return &types.Product{Active: true}, nil
	case types.ResourceVendorSKUs.Name:
		return &types.VendorSKU{Active: true}, nil
	default:
		return nil, fmt.Errorf("unknown resource: %q", res.Name)
	}
}

// Values flattens a record into form values keyed like FormFields.
func Values(record any) map[string]string {
	switch r := record.(type) {
	case *types.Collection:
		return map[string]string{
			"name":        r.Name,
			"description": r.Description,
			"position":    strconv.Itoa(r.Position),
			"active":      strconv.FormatBool(r.Active),
		}
	case *types.Category:
		return map[string]string{
			"name":          r.Name,
			"collection_id": r.CollectionID.String(),
			"position":      strconv.Itoa(r.Position),
			"active":        strconv.FormatBool(r.Active),
		}
	case *types.Product:
		return map[string]string{
			"name":        r.Name,
			"sku":         r.SKU,
			"price":       r.Price.String(),
			"currency":    r.Currency,
			"category_id": r.CategoryID.String(),
			"description": r.Description,
			"active":      strconv.FormatBool(r.Active),
		}
	case *types.VendorSKU:
		return map[string]string{
			"vendor":      r.Vendor,
			"vendor_sku":  r.VendorSKU,
			"product_id":  r.ProductID.String(),
			"product_sku": r.ProductSKU,
			"active":      strconv.FormatBool(r.Active),
		}
	default:
		return map[string]string{}
	}
}

// Assign copies form values onto record. Unknown keys and values that do not
// parse are reported together as a ValidationError.
func Assign(record any, values map[string]string) error {
	verr := &ValidationError{}
	for key, raw := range values {
		raw = strings.TrimSpace(raw)
		if msg := assignField(record, key, raw); msg != "" {
			verr.add(key, msg)
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func assignField(record any, key, raw string) string {
	switch r := record.(type) {
	case *types.Collection:
		switch key {
		case "name":
			r.Name = raw
		case "description":
			r.Description = raw
		case "position":
			return parseInt(raw, &r.Position)
		case "active":
			return parseBool(raw, &r.Active)
		default:
			return "is not a collection field"
		}
	case *types.Category:
		switch key {
		case "name":
			r.Name = raw
		case "collection_id":
			r.CollectionID = types.ID(raw)
		case "position":
			return parseInt(raw, &r.Position)
		case "active":
			return parseBool(raw, &r.Active)
		default:
			return "is not a category field"
		}
	case *types.Product:
		switch key {
		case "name":
			r.Name = raw
		case "sku":
			r.SKU = raw
		case "price":
			r.Price = types.Decimal(raw)
		case "currency":
			r.Currency = strings.ToUpper(raw)
		case "category_id":
			r.CategoryID = types.ID(raw)
		case "description":
			r.Description = raw
		case "active":
			return parseBool(raw, &r.Active)
		default:
			return "is not a product field"
		}
	case *types.VendorSKU:
		switch key {
		case "vendor":
			r.Vendor = raw
		case "vendor_sku":
			r.VendorSKU = raw
		case "product_id":
			r.ProductID = types.ID(raw)
		case "product_sku":
			r.ProductSKU = raw
		case "active":
			return parseBool(raw, &r.Active)
		default:
			return "is not a vendor SKU field"
		}
	default:
		return "cannot be set on this record"
	}
	return ""
}

func parseInt(raw string, out *int) string {
	if raw == "" {
		*out = 0
		return ""
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return "must be a whole number"
	}
	*out = value
	return ""
}

func parseBool(raw string, out *bool) string {
	switch strings.ToLower(raw) {
	case "1", "t", "true", "yes", "y", "on":
		*out = true
	case "0", "f", "false", "no", "n", "off", "":
		*out = false
	default:
		return "must be true or false"
	}
	return ""
}
