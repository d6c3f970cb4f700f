package validate

import (
	"errors"
	"strings"
	"testing"

	"catalogadmin/internal/types"
)

func TestProductValidation(t *testing.T) {
	err := Product(&types.Product{Name: " ", SKU: "bad sku", Price: "0", Currency: "usd"})
	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := map[string]string{
		"name":     "is required",
		"sku":      "may only contain letters, digits, dots, dashes and underscores",
		"price":    "must be a positive amount",
		"currency": "must be uppercase",
	}
	for key, msg := range want {
		if got := verr.Field(key); got != msg {
			t.Fatalf("field %s: expected %q, got %q", key, msg, got)
		}
	}
	if !strings.HasPrefix(verr.Error(), "validation failed: currency ") {
		t.Fatalf("unexpected message %q", verr.Error())
	}

	ok = Product(&types.Product{Name: "Steel mug", SKU: "MUG-01", Price: "12.50", Currency: "EUR"}) == nil
	if !ok {
		t.Fatalf("expected valid product")
	}
}

func TestPriceMustParse(t *testing.T) {
	err := Product(&types.Product{Name: "Mug", SKU: "MUG", Price: "twelve"})
	verr, ok := AsValidationError(err)
	if !ok || verr.Field("price") != "must be a positive amount" {
		t.Fatalf("unexpected error %v", err)
	}
	err = Product(&types.Product{Name: "Mug", SKU: "MUG"})
	verr, _ = AsValidationError(err)
	if verr.Field("price") != "is required" {
		t.Fatalf("expected required price, got %v", err)
	}
}

func TestCollectionCategoryAndVendorSKU(t *testing.T) {
	if err := Collection(&types.Collection{Name: "Kitchen"}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	verr, _ := AsValidationError(Collection(&types.Collection{Name: "Kitchen", Position: -1}))
	if verr.Field("position") != "must be 0 or more" {
		t.Fatalf("unexpected position message %q", verr.Field("position"))
	}
	if _, ok := AsValidationError(Category(&types.Category{})); !ok {
		t.Fatalf("expected category without name to fail")
	}
	verr, _ = AsValidationError(VendorSKU(&types.VendorSKU{Vendor: "Acme", VendorSKU: "AC-1"}))
	if verr.Field("product_id") != "is required" {
		t.Fatalf("expected product id required, got %+v", verr)
	}
	if err := Record(&types.VendorSKU{Vendor: "Acme", VendorSKU: "AC-1", ProductID: "7"}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if err := Record("nope"); err == nil {
		t.Fatalf("expected unsupported record error")
	}
}

func TestAssignAndValues(t *testing.T) {
	record, err := NewRecord(types.ResourceProducts)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	err = Assign(record, map[string]string{
		"name":     " Steel mug ",
		"sku":      "MUG-01",
		"price":    "9.99",
		"currency": "eur",
		"active":   "no",
	})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	product := record.(*types.Product)
	if product.Name != "Steel mug" || product.Currency != "EUR" || product.Active {
		t.Fatalf("unexpected product %+v", product)
	}
	if err := Record(product); err != nil {
		t.Fatalf("expected assigned product to validate: %v", err)
	}
	values := Values(product)
	if values["price"] != "9.99" || values["active"] != "false" {
		t.Fatalf("unexpected values %+v", values)
	}
	for _, field := range FormFields(types.ResourceProducts) {
		if _, ok := values[field.Key]; !ok {
			t.Fatalf("form field %s missing from values", field.Key)
		}
	}
}

func TestAssignReportsBadValues(t *testing.T) {
	record := &types.Collection{}
	err := Assign(record, map[string]string{"position": "two", "active": "maybe", "color": "red"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Field("position") != "must be a whole number" || verr.Field("active") != "must be true or false" {
		t.Fatalf("unexpected fields %+v", verr.Fields)
	}
	if verr.Field("color") != "is not a collection field" {
		t.Fatalf("expected unknown field error, got %+v", verr.Fields)
	}
}

func TestFormFieldsCoverEveryResource(t *testing.T) {
	for _, res := range types.Resources() {
		if len(FormFields(res)) == 0 {
			t.Fatalf("no form fields for %s", res.Name)
		}
		record, err := NewRecord(res)
		if err != nil {
			t.Fatalf("NewRecord(%s): %v", res.Name, err)
		}
		for _, field := range FormFields(res) {
			if _, ok := Values(record)[field.Key]; !ok {
				t.Fatalf("%s: field %s has no value", res.Name, field.Key)
			}
		}
	}
	if _, err := NewRecord(types.Resource{Name: "orders"}); err == nil {
		t.Fatalf("expected unknown resource error")
	}
}
