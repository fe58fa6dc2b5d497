package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/shopfront-gateway/internal/domain/cart"
	"github.com/example/shopfront-gateway/internal/domain/order"
	"github.com/example/shopfront-gateway/internal/domain/pricing"
)

// ============================================
// Product Tests
// ============================================

func TestClient_ListProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"_id":"p1","name":"Crochet Tote","prices":{"S":5000,"L":7000},"categories":["bestseller"]},
			{"_id":"p2","name":"Old Scarf","price":4500,"categories":["catalogue"]}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/api", nil)
	products, err := client.ListProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)

	info := products[0].PriceInfo()
	assert.Equal(t, pricing.KindRange, info.Kind)
	assert.Equal(t, 5000, info.Min)
	assert.Equal(t, 7000, info.Max)

	legacy := products[1].PriceInfo()
	assert.Equal(t, pricing.KindSingle, legacy.Kind)
	assert.Equal(t, 4500, legacy.Amount)
}

func TestClient_SearchProducts_EscapesQuery(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.SearchProducts(context.Background(), "bucket hat")

	require.NoError(t, err)
	assert.Equal(t, "/products/search/bucket%20hat", gotPath)
}

func TestClient_GetProduct_ScansCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"p1","name":"Tote"},{"_id":"p2","name":"Hat"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	product, err := client.GetProduct(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, "Hat", product.Name)

	_, err = client.GetProduct(context.Background(), "p9")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProduct_ImageURL(t *testing.T) {
	assert.Equal(t, "a.jpg", Product{Image: "a.jpg", Images: []string{"b.jpg"}}.ImageURL())
	assert.Equal(t, "b.jpg", Product{Images: []string{"b.jpg"}}.ImageURL())
	assert.Equal(t, "", Product{}.ImageURL())
}

// ============================================
// Order Tests
// ============================================

func TestClient_CreateOrder(t *testing.T) {
	var gotDraft OrderDraft
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotDraft))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"o123","total":10000}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	draft := OrderDraft{
		CustomerName:   "Ada",
		PhoneNumber:    "0800000000",
		DeliveryMethod: "pickup",
		Items: []cart.LineItem{
			{ProductID: "p1", Size: "S", Color: "Cream", Quantity: 2, UnitPrice: 5000},
		},
		Total:         10000,
		SubmissionKey: "key-1",
	}

	created, err := client.CreateOrder(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, "o123", created.ID)
	assert.Equal(t, "Ada", gotDraft.CustomerName)
	assert.Equal(t, "key-1", gotDraft.SubmissionKey)
	assert.Equal(t, 10000, gotDraft.Total)
}

func TestClient_CreateOrder_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"database unavailable"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.CreateOrder(context.Background(), OrderDraft{})

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Contains(t, httpErr.Error(), "database unavailable")
}

func TestClient_CreateOrder_MissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.CreateOrder(context.Background(), OrderDraft{})

	assert.Error(t, err)
}

func TestClient_DeclarePayment(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/orders/o123/payment", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	err := client.DeclarePayment(context.Background(), "o123", "Ada Lovelace")

	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", gotBody["paymentAccountName"])
	assert.Equal(t, "payment_made", gotBody["paymentStatus"])
}

func TestClient_GetOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/o123", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"_id":"o123",
			"customerName":"Ada",
			"status":"in_production",
			"statusHistory":[{"status":"pending","timestamp":"2025-06-01T10:00:00Z"}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	got, err := client.GetOrder(context.Background(), "o123")

	require.NoError(t, err)
	assert.Equal(t, "o123", got.ID)
	assert.Equal(t, order.StatusInProduction, got.Status)
	require.Len(t, got.StatusHistory, 1)
	assert.Equal(t, order.StatusPending, got.StatusHistory[0].Status)
}

func TestClient_GetOrder_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"no such order"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.GetOrder(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_NetworkErrorIsWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, nil)
	_, err := client.ListProducts(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
