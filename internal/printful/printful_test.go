package printful

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key", StoreID: "42"})
	return client, server
}

func TestListProductsParsesPaging(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header want bearer token got %q", got)
		}
		if got := r.Header.Get("X-PF-Store-Id"); got != "42" {
			t.Errorf("store id header want 42 got %q", got)
		}
		if got := r.URL.Query().Get("offset"); got != "20" {
			t.Errorf("offset want 20 got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": 200,
			"result": [
				{"id": 101, "external_id": "ext-101", "name": "Classic Tee", "variants": 4, "synced": 4, "thumbnail_url": "https://files.example.com/tee.png"}
			],
			"paging": {"total": 37, "offset": 20, "limit": 20}
		}`))
	}))

	list, err := client.ListProducts(context.Background(), 20, 20)
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if list.Total != 37 {
		t.Fatalf("total want 37 got %d", list.Total)
	}
	if len(list.Items) != 1 || list.Items[0].ID != 101 {
		t.Fatalf("unexpected items: %+v", list.Items)
	}
}

func TestListProductsServerErrorWrapsRequestFailed(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))

	_, err := client.ListProducts(context.Background(), 0, 20)
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("error want ErrRequestFailed got %v", err)
	}
}

func TestGetProductParsesVariants(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/store/products/101" {
			t.Errorf("path want /store/products/101 got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": 200,
			"result": {
				"sync_product": {"id": 101, "external_id": "ext-101", "name": "Classic Tee"},
				"sync_variants": [
					{"id": 9001, "external_id": "ext-9001", "sync_product_id": 101, "name": "Classic Tee / Black / M", "color": "Black", "size": "M", "retail_price": "24.95", "currency": "EUR", "in_stock": true, "files": []}
				]
			}
		}`))
	}))

	detail, err := client.GetProduct(context.Background(), 101)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if detail.Product.ID != 101 {
		t.Fatalf("product id want 101 got %d", detail.Product.ID)
	}
	if len(detail.Variants) != 1 {
		t.Fatalf("variants want 1 got %d", len(detail.Variants))
	}
	if detail.Variants[0].RetailPrice != "24.95" {
		t.Fatalf("retail price want 24.95 got %s", detail.Variants[0].RetailPrice)
	}
}

func TestPreviewImagesFiltersTypesAndURLs(t *testing.T) {
	variant := SyncVariant{
		Files: []VariantFile{
			{Type: "preview", Preview: "https://files.example.com/front.png"},
			{Type: "default", Preview: "https://files.example.com/print-file.png"},
			{Type: "preview", Preview: "not a url"},
			{Type: "preview", Preview: "ftp://files.example.com/back.png"},
			{Type: "preview", Preview: "", URL: "https://files.example.com/back.png"},
			{Type: "preview"},
		},
	}

	images := variant.PreviewImages()
	want := []string{
		"https://files.example.com/front.png",
		"https://files.example.com/back.png",
	}
	if len(images) != len(want) {
		t.Fatalf("preview images want %d got %d: %v", len(want), len(images), images)
	}
	for i := range want {
		if images[i] != want[i] {
			t.Fatalf("image %d want %s got %s", i, want[i], images[i])
		}
	}
}

func TestCreateOrderSendsConfirmFlag(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method want POST got %s", r.Method)
		}
		if r.URL.Query().Get("confirm") != "1" {
			t.Errorf("confirm query want 1 got %q", r.URL.Query().Get("confirm"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": 200, "result": {"id": 555001, "external_id": "order-ext", "status": "pending"}}`))
	}))

	result, err := client.CreateOrder(context.Background(), OrderInput{
		ExternalID: "order-ext",
		Recipient:  OrderRecipient{Name: "Jo Tester", Address1: "Main St 1", City: "Berlin", CountryCode: "DE", Zip: "10115"},
		Items:      []OrderItem{{SyncVariantID: 9001, Quantity: 1}},
		Confirm:    true,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if result.ID != 555001 {
		t.Fatalf("order id want 555001 got %d", result.ID)
	}
	if result.Status != "pending" {
		t.Fatalf("status want pending got %s", result.Status)
	}
}
