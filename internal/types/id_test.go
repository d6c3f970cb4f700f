package types

import (
	"encoding/json"
	"testing"
)

func TestIDDecodesStringsAndIntegers(t *testing.T) {
	var payload struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a": 42, "b": " abc ", "c": null}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.A != "42" {
		t.Fatalf("expected 42, got %q", payload.A)
	}
	if payload.B != "abc" {
		t.Fatalf("expected abc, got %q", payload.B)
	}
	if !payload.C.IsZero() {
		t.Fatalf("expected zero id, got %q", payload.C)
	}
}

func TestIDRejectsFractions(t *testing.T) {
	var id ID
	if err := json.Unmarshal([]byte(`1.5`), &id); err == nil {
		t.Fatalf("expected error for fractional id")
	}
}

func TestIDMarshalKeepsNumericShape(t *testing.T) {
	cases := map[ID]string{
		"42":  `42`,
		"0":   `0`,
		"007": `"007"`,
		"abc": `"abc"`,
		"":    `""`,
		"-1":  `"-1"`,
	}
	for id, want := range cases {
		raw, err := json.Marshal(id)
		if err != nil {
			t.Fatalf("marshal %q: %v", id, err)
		}
		if string(raw) != want {
			t.Fatalf("marshal %q: got %s want %s", id, raw, want)
		}
	}
}

func TestPageMetaNormalize(t *testing.T) {
	meta := PageMeta{CurrentPage: 0, TotalPages: 0, TotalDataCount: -3}.Normalize()
	if meta.CurrentPage != 1 || meta.TotalPages != 1 || meta.TotalDataCount != 0 {
		t.Fatalf("unexpected normalized meta: %+v", meta)
	}
	meta = PageMeta{CurrentPage: 5, TotalPages: 3}.Normalize()
	if meta.CurrentPage != 3 {
		t.Fatalf("expected current page clamped to 3, got %d", meta.CurrentPage)
	}
	if meta.HasMore() {
		t.Fatalf("expected no more pages")
	}
}

func TestLookupResource(t *testing.T) {
	res, err := LookupResource("vendor-skus")
	if err != nil {
		t.Fatalf("LookupResource: %v", err)
	}
	if res.Singular != "vendor_sku" {
		t.Fatalf("unexpected resource: %+v", res)
	}
	if _, err := LookupResource("product"); err != nil {
		t.Fatalf("singular lookup: %v", err)
	}
	if _, err := LookupResource("orders"); err == nil {
		t.Fatalf("expected error for unknown resource")
	}
	if got := ResourceProducts.ItemEndpoint("7"); got != "/products/7" {
		t.Fatalf("unexpected item endpoint: %q", got)
	}
}
