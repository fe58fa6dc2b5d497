// Package upstream is the typed client for the external storefront REST API
// (catalog, order creation, payment declaration, order lookup).
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/example/shopfront-gateway/internal/domain/order"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the API rooted at baseURL (including the
// "/api" prefix). A nil httpClient gets a default with a request timeout;
// upstream calls are never issued without one.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SearchProducts fetches products matching the query.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	var products []Product
	path := "/products/search/" + url.PathEscape(query)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductsByCategory fetches products in a category.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]Product, error) {
	var products []Product
	path := "/products/category/" + url.PathEscape(category)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct finds a single product by ID. The API exposes no per-product
// endpoint, so this scans the catalog the same way the storefront UI does.
func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	products, err := c.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, ErrNotFound
}

// CreateOrder posts an order draft and returns the created record. The
// returned order ID is the customer's only handle on the order.
func (c *Client) CreateOrder(ctx context.Context, draft OrderDraft) (*order.Order, error) {
	var created order.Order
	if err := c.doJSON(ctx, http.MethodPost, "/orders", draft, &created); err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, fmt.Errorf("order created but response carried no id")
	}
	return &created, nil
}

// DeclarePayment records the payer's claimed account name against an order
// and moves its payment status to the declared state.
func (c *Client) DeclarePayment(ctx context.Context, orderID, accountName string) error {
	body := paymentPatch{
		PaymentAccountName: accountName,
		PaymentStatus:      string(order.StatusPaymentMade),
	}
	path := "/orders/" + url.PathEscape(orderID) + "/payment"
	return c.doJSON(ctx, http.MethodPatch, path, body, nil)
}

// GetOrder fetches the full order record, including its status history.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*order.Order, error) {
	var o order.Order
	path := "/orders/" + url.PathEscape(orderID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// doJSON issues one request and decodes the response into out (when non-nil).
// 404 maps to ErrNotFound, other non-2xx to *HTTPError.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readErrorMessage pulls a message out of an error body when the API sends
// one; error bodies vary between {"error": ...} and {"message": ...}.
func readErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
