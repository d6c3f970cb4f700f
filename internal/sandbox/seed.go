package sandbox

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"catalogadmin/internal/store"
	"catalogadmin/internal/types"
)

var (
	seedCollections = []string{"Kitchen", "Garden", "Office", "Outdoor", "Bath", "Lighting", "Storage", "Textiles"}
	seedKinds       = []string{"Essentials", "Premium", "Accessories"}
	seedMaterials   = []string{"Steel", "Oak", "Ceramic", "Linen", "Glass", "Copper", "Bamboo", "Walnut"}
	seedItems       = []string{"Mug", "Bowl", "Lamp", "Planter", "Shelf", "Towel", "Tray", "Basket", "Vase", "Hook"}
	seedVendors     = []string{"Acme", "Northwind", "Globex", "Initech"}
	seedCurrencies  = []string{"EUR", "USD"}
)

// Seed fills an empty catalog with deterministic sample data. Every
// collection gets three categories and every other product gets a vendor
// SKU. A catalog that already has collections is left alone.
func Seed(ctx context.Context, catalog store.CatalogStore, products int, now time.Time) (bool, error) {
	count, err := catalog.Count(ctx, types.ResourceCollections)
	if err != nil {
		return false, err
	}
	if count > 0 || products <= 0 {
		return false, nil
	}
	rng := rand.New(rand.NewPCG(42, uint64(products)))
	stamp := func(offset int) *time.Time {
		t := now.Add(-time.Duration(offset) * time.Hour).UTC()
		return &t
	}

	var categoryIDs []types.ID
	for i, name := range seedCollections {
		raw, err := catalog.Insert(ctx, types.ResourceCollections, func(id types.ID) (any, error) {
			return &types.Collection{
				ID:          id,
				Name:        name,
				Description: fmt.Sprintf("Everything for the %s.", strings.ToLower(name)),
				Active:      i%5 != 4,
				Position:    i,
				CreatedAt:   stamp(1000 - i),
				UpdatedAt:   stamp(1000 - i),
			}, nil
		})
		if err != nil {
			return false, err
		}
		collectionID := insertedID(raw)
		for j, kind := range seedKinds {
			raw, err := catalog.Insert(ctx, types.ResourceCategories, func(id types.ID) (any, error) {
				return &types.Category{
					ID:           id,
					Name:         name + " " + kind,
					CollectionID: collectionID,
					Active:       j != 2 || i%2 == 0,
					Position:     j,
					CreatedAt:    stamp(900 - i*3 - j),
					UpdatedAt:    stamp(900 - i*3 - j),
				}, nil
			})
			if err != nil {
				return false, err
			}
			categoryIDs = append(categoryIDs, insertedID(raw))
		}
	}

	for i := 0; i < products; i++ {
		material := seedMaterials[rng.IntN(len(seedMaterials))]
		item := seedItems[rng.IntN(len(seedItems))]
		sku := fmt.Sprintf("%s-%s-%04d", strings.ToUpper(material[:3]), strings.ToUpper(item[:3]), i+1)
		price := fmt.Sprintf("%d.%02d", 3+rng.IntN(240), rng.IntN(100))
		categoryID := categoryIDs[rng.IntN(len(categoryIDs))]
		raw, err := catalog.Insert(ctx, types.ResourceProducts, func(id types.ID) (any, error) {
			return &types.Product{
				ID:          id,
				Name:        fmt.Sprintf("%s %s %d", material, item, i+1),
				SKU:         sku,
				Description: productDescription(material, item, rng),
				Price:       types.Decimal(price),
				Currency:    seedCurrencies[i%len(seedCurrencies)],
				CategoryID:  categoryID,
				Active:      rng.IntN(10) != 0,
				CreatedAt:   stamp(products - i),
				UpdatedAt:   stamp(products - i),
			}, nil
		})
		if err != nil {
			return false, err
		}
		if i%2 != 0 {
			continue
		}
		productID := insertedID(raw)
		vendor := seedVendors[rng.IntN(len(seedVendors))]
		if _, err := catalog.Insert(ctx, types.ResourceVendorSKUs, func(id types.ID) (any, error) {
			return &types.VendorSKU{
				ID:         id,
				Vendor:     vendor,
				VendorSKU:  fmt.Sprintf("%s-%06d", strings.ToUpper(vendor[:2]), 100000+rng.IntN(900000)),
				ProductID:  productID,
				ProductSKU: sku,
				Active:     true,
				CreatedAt:  stamp(products - i),
				UpdatedAt:  stamp(products - i),
			}, nil
		}); err != nil {
			return false, err
		}
	}
	return true, nil
}

func productDescription(material, item string, rng *rand.Rand) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s %s\n\n", material, strings.ToLower(item))
	fmt.Fprintf(&b, "Made from **%s**, finished by hand.\n\n", strings.ToLower(material))
	fmt.Fprintf(&b, "- Weight: %d g\n", 100+rng.IntN(2000))
	fmt.Fprintf(&b, "- Care: %s\n", []string{"wipe clean", "dishwasher safe", "hand wash only"}[rng.IntN(3)])
	return b.String()
}

func insertedID(raw []byte) types.ID {
	var probe struct {
		ID types.ID `json:"id"`
	}
	_ = json.Unmarshal(raw, &probe)
	return probe.ID
}
