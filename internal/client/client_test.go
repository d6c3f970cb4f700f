package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"catalogadmin/internal/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, append([]Option{WithHTTPClient(server.Client())}, opts...)...)
}

func TestFetchListSendsPageAndFilters(t *testing.T) {
	var seen url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		seen = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"Steel"},{"id":"2","name":"Stone"}],"meta":{"current_page":2,"total_pages":3,"total_data_count":41}}`))
	}, WithPerPage(20))

	query := url.Values{}
	query.Set("starts_with", "st")
	query.Set("active", "")
	items, meta, err := c.ListCollections(context.Background(), 2, query)
	if err != nil {
		t.Fatalf("ListCollections: %v", err)
	}
	if got := seen.Get("page"); got != "2" {
		t.Fatalf("expected page=2, got %q", got)
	}
	if got := seen.Get("per_page"); got != "20" {
		t.Fatalf("expected per_page=20, got %q", got)
	}
	if got := seen.Get("starts_with"); got != "st" {
		t.Fatalf("expected starts_with=st, got %q", got)
	}
	if _, ok := seen["active"]; ok {
		t.Fatalf("empty filter values must be omitted, got %v", seen)
	}
	if len(items) != 2 || items[0].ID != "1" || items[1].ID != "2" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if meta.CurrentPage != 2 || meta.TotalPages != 3 || meta.TotalDataCount != 41 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestFetchListDefaultsMetaWhenMissing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	items, meta, err := c.ListProducts(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
	if meta.CurrentPage != 1 || meta.TotalPages != 1 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestNon2xxWithoutErrorsIsNetworkError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})
	_, _, err := c.ListCategories(context.Background(), 1, nil)
	reqErr := AsRequestError(err)
	if reqErr == nil {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.Kind != KindNetwork || reqErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("unexpected error: %+v", reqErr)
	}
	if reqErr.Message != "Network error (502)" {
		t.Fatalf("unexpected message: %q", reqErr.Message)
	}
}

func TestNon2xxUsesErrorListWhenPresent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"status":"failure","errors":["Name has already been taken","Price is invalid"]}`))
	})
	_, err := Create[types.Collection](context.Background(), c, types.ResourceCollections, map[string]any{"name": "dup"})
	reqErr := AsRequestError(err)
	if reqErr == nil {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.Kind != KindNetwork {
		t.Fatalf("non-2xx must classify as network, got %v", reqErr.Kind)
	}
	if UserMessage(err) != "Name has already been taken" {
		t.Fatalf("unexpected message: %q", UserMessage(err))
	}
	if len(reqErr.Errors) != 2 {
		t.Fatalf("expected both errors kept, got %v", reqErr.Errors)
	}
}

func TestFailureEnvelopeOn2xxIsApplicationError(t *testing.T) {
	var body map[string]map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/products/9" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{"status":"failure","errors":["Price must be greater than 0"]}`))
	})
	_, err := Update[types.Product](context.Background(), c, types.ResourceProducts, "9", map[string]any{"price": "-1"})
	reqErr := AsRequestError(err)
	if reqErr == nil || reqErr.Kind != KindApplication {
		t.Fatalf("expected application error, got %v", err)
	}
	if reqErr.Message != "Price must be greater than 0" {
		t.Fatalf("unexpected message: %q", reqErr.Message)
	}
	if _, ok := body["product"]; !ok {
		t.Fatalf("expected body wrapped under product key, got %v", body)
	}
}

func TestFailureEnvelopeWithoutErrorsFallsBack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"failure"}`))
	})
	err := Remove(context.Background(), c, types.ResourceVendorSKUs, "4")
	if UserMessage(err) != "Request failed" {
		t.Fatalf("unexpected message: %q", UserMessage(err))
	}
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	c := New(base)
	_, err := c.Health(context.Background())
	reqErr := AsRequestError(err)
	if reqErr == nil || reqErr.Kind != KindNetwork || reqErr.StatusCode != 0 {
		t.Fatalf("expected transport network error, got %v", err)
	}
	if reqErr.Message != "Network error" {
		t.Fatalf("unexpected message: %q", reqErr.Message)
	}
}

func TestCanceledContextUnwraps(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := c.ListProducts(ctx, 1, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}

func TestGetUnwrapsDataEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/1":
			_, _ = w.Write([]byte(`{"data":{"id":1,"name":"Anvil","sku":"AN-1","price":"12.50"}}`))
		case "/products/2":
			_, _ = w.Write([]byte(`{"id":2,"name":"Hammer","sku":"HM-2","price":7}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
		}
	})
	first, err := Get[types.Product](context.Background(), c, types.ResourceProducts, "1")
	if err != nil {
		t.Fatalf("Get wrapped: %v", err)
	}
	if first.Name != "Anvil" || first.Price != "12.50" {
		t.Fatalf("unexpected product: %+v", first)
	}
	second, err := Get[types.Product](context.Background(), c, types.ResourceProducts, "2")
	if err != nil {
		t.Fatalf("Get bare: %v", err)
	}
	if second.Price != "7" {
		t.Fatalf("unexpected price: %q", second.Price)
	}
	_, err = Get[types.Product](context.Background(), c, types.ResourceProducts, "3")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if UserMessage(err) != "not found" {
		t.Fatalf("unexpected message: %q", UserMessage(err))
	}
}

func TestGetRequiresID(t *testing.T) {
	c := New("http://127.0.0.1:1")
	if _, err := Get[types.Product](context.Background(), c, types.ResourceProducts, ""); err == nil {
		t.Fatalf("expected error for empty id")
	}
}
