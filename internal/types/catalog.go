package types

import "time"

type Collection struct {
	ID          ID         `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Active      bool       `json:"active"`
	Position    int        `json:"position,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (c *Collection) ItemID() ID { return c.ID }

type Category struct {
	ID           ID         `json:"id"`
	Name         string     `json:"name"`
	CollectionID ID         `json:"collection_id,omitempty"`
	Active       bool       `json:"active"`
	Position     int        `json:"position,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func (c *Category) ItemID() ID { return c.ID }

type Product struct {
	ID          ID         `json:"id"`
	Name        string     `json:"name"`
	SKU         string     `json:"sku"`
	Description string     `json:"description,omitempty"`
	Price       Decimal    `json:"price"`
	Currency    string     `json:"currency,omitempty"`
	CategoryID  ID         `json:"category_id,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (p *Product) ItemID() ID { return p.ID }

// VendorSKU maps a vendor's own SKU onto a catalog product.
type VendorSKU struct {
	ID         ID         `json:"id"`
	Vendor     string     `json:"vendor"`
	VendorSKU  string     `json:"vendor_sku"`
	ProductID  ID         `json:"product_id,omitempty"`
	ProductSKU string     `json:"product_sku,omitempty"`
	Active     bool       `json:"active"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

func (v *VendorSKU) ItemID() ID { return v.ID }
