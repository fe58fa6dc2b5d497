// Package api is the HTTP surface of the storefront gateway: the thin
// adapter between browser requests and the cart/checkout/tracking core.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/shopfront-gateway/internal/checkout"
	"github.com/example/shopfront-gateway/internal/domain/cart"
	"github.com/example/shopfront-gateway/internal/domain/order"
	"github.com/example/shopfront-gateway/internal/events"
	"github.com/example/shopfront-gateway/internal/infrastructure/cartstore"
	"github.com/example/shopfront-gateway/internal/upstream"
)

// UpstreamAPI is the slice of the upstream client the gateway consumes.
type UpstreamAPI interface {
	ListProducts(ctx context.Context) ([]upstream.Product, error)
	SearchProducts(ctx context.Context, query string) ([]upstream.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]upstream.Product, error)
	GetProduct(ctx context.Context, productID string) (*upstream.Product, error)
	CreateOrder(ctx context.Context, draft upstream.OrderDraft) (*order.Order, error)
	DeclarePayment(ctx context.Context, orderID, accountName string) error
	GetOrder(ctx context.Context, orderID string) (*order.Order, error)
}

type Handlers struct {
	api       UpstreamAPI
	store     cartstore.Store
	publisher checkout.Publisher
	sessions  *sessionManager
}

// NewHandlers wires the gateway handlers. publisher may be nil when no event
// broker is configured.
func NewHandlers(api UpstreamAPI, store cartstore.Store, publisher checkout.Publisher) *Handlers {
	return &Handlers{
		api:       api,
		store:     store,
		publisher: publisher,
		sessions:  newSessionManager(store, api, publisher),
	}
}

// ============================================
// Product handlers
// ============================================

type productView struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Image       string         `json:"image,omitempty"`
	Categories  []string       `json:"categories,omitempty"`
	Price       string         `json:"price"`
	Prices      map[string]int `json:"prices,omitempty"`
	Available   bool           `json:"available"`
}

func toProductView(p upstream.Product) productView {
	info := p.PriceInfo()
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.ImageURL(),
		Categories:  p.Categories,
		Price:       info.Display(),
		Prices:      info.Sizes,
		Available:   info.Available(),
	}
}

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.api.ListProducts(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeProductList(w, products)
}

func (h *Handlers) SearchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.api.SearchProducts(r.Context(), chi.URLParam(r, "query"))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeProductList(w, products)
}

func (h *Handlers) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.api.ProductsByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeProductList(w, products)
}

func writeProductList(w http.ResponseWriter, products []upstream.Product) {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	writeJSON(w, http.StatusOK, views)
}

// ============================================
// Cart handlers
// ============================================

type cartView struct {
	Items []cart.LineItem `json:"items"`
	Total int             `json:"total"`
	Count int             `json:"count"`
}

func toCartView(c *cart.Cart) cartView {
	return cartView{Items: c.Items(), Total: c.Total(), Count: c.Count()}
}

type addToCartRequest struct {
	ProductID     string `json:"productId"`
	Size          string `json:"size"`
	Color         string `json:"color"`
	Quantity      int    `json:"quantity"`
	CustomMessage string `json:"customMessage"`
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	h.withSessionCart(w, r, func(ctx context.Context, s *session) error {
		writeJSON(w, http.StatusOK, toCartView(s.cart))
		return nil
	})
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	h.withSessionCart(w, r, func(ctx context.Context, s *session) error {
		product, err := h.api.GetProduct(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, upstream.ErrNotFound) {
				writeError(w, http.StatusNotFound, "product_not_found", "we couldn't find that product")
				return nil
			}
			writeUpstreamError(w, err)
			return nil
		}

		// Unit price is resolved from the product's price table at add time
		// and frozen on the line item.
		unitPrice, ok := product.PriceInfo().ForSize(req.Size)
		if !ok {
			writeError(w, http.StatusUnprocessableEntity, "price_unavailable",
				"no price is available for the selected size")
			return nil
		}

		item := cart.LineItem{
			ProductID:     product.ID,
			Name:          product.Name,
			Image:         product.ImageURL(),
			UnitPrice:     unitPrice,
			Size:          req.Size,
			Color:         req.Color,
			Quantity:      req.Quantity,
			CustomMessage: req.CustomMessage,
		}
		if err := s.cart.Add(item); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_item", err.Error())
			return nil
		}
		h.persistCart(ctx, s)
		writeJSON(w, http.StatusOK, toCartView(s.cart))
		return nil
	})
}

func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_index", "cart index must be a number")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	h.withSessionCart(w, r, func(ctx context.Context, s *session) error {
		if err := s.cart.UpdateQuantity(index, req.Quantity); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_index", err.Error())
			return nil
		}
		h.persistCart(ctx, s)
		writeJSON(w, http.StatusOK, toCartView(s.cart))
		return nil
	})
}

func (h *Handlers) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_index", "cart index must be a number")
		return
	}

	h.withSessionCart(w, r, func(ctx context.Context, s *session) error {
		if err := s.cart.Remove(index); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_index", err.Error())
			return nil
		}
		h.persistCart(ctx, s)
		writeJSON(w, http.StatusOK, toCartView(s.cart))
		return nil
	})
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.withSessionCart(w, r, func(ctx context.Context, s *session) error {
		s.cart.Clear()
		h.persistCart(ctx, s)
		writeJSON(w, http.StatusOK, toCartView(s.cart))
		return nil
	})
}

// ============================================
// Checkout handlers
// ============================================

type checkoutResponse struct {
	OrderID string         `json:"orderId"`
	Phase   checkout.Phase `json:"phase"`
	Message string         `json:"message"`
}

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	var details checkout.CustomerDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	h.withSessionCart(w, r, func(ctx context.Context, s *session) error {
		flow := h.sessions.checkoutFlow(s)
		orderID, err := flow.Submit(ctx, details)
		if err != nil {
			writeFlowError(w, err)
			return nil
		}
		// The order ID is the customer's only way to track the order or
		// claim a payment later; it must be surfaced prominently.
		writeJSON(w, http.StatusCreated, checkoutResponse{
			OrderID: orderID,
			Phase:   flow.Phase(),
			Message: "Save your order ID — you will need it to track this order.",
		})
		return nil
	})
}

type declarePaymentRequest struct {
	AccountName string `json:"accountName"`
}

func (h *Handlers) DeclarePayment(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req declarePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	h.withSessionCart(w, r, func(ctx context.Context, s *session) error {
		// Prefer the session's live flow; fall back to a direct declaration
		// for customers returning with just their order ID.
		if s.flow != nil && s.flow.OrderID() == orderID {
			if err := s.flow.DeclarePayment(ctx, req.AccountName); err != nil {
				writeFlowError(w, err)
				return nil
			}
		} else if err := h.declareDirect(ctx, orderID, req.AccountName); err != nil {
			writeFlowError(w, err)
			return nil
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"orderId": orderID,
			"message": "Thank you! We will confirm your payment shortly.",
		})
		return nil
	})
}

func (h *Handlers) declareDirect(ctx context.Context, orderID, accountName string) error {
	trimmed := checkout.TrimAccountName(accountName)
	if trimmed == "" {
		return &checkout.ValidationError{Field: "accountName", Message: "account name used for payment is required"}
	}
	if err := h.api.DeclarePayment(ctx, orderID, trimmed); err != nil {
		return err
	}
	if h.publisher != nil {
		envelope := events.NewEnvelope(events.TypePaymentDeclared, events.PaymentDeclared{
			OrderID:     orderID,
			AccountName: trimmed,
		})
		if err := h.publisher.Publish(ctx, orderID, envelope); err != nil {
			log.Printf("[API] Failed to publish PaymentDeclared for order %s: %v", orderID, err)
		}
	}
	return nil
}

// ============================================
// Tracking handlers
// ============================================

type trackingView struct {
	Order    *order.Order   `json:"order"`
	Timeline order.Timeline `json:"timeline"`
}

func (h *Handlers) TrackOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	o, err := h.api.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order_not_found",
				"we couldn't find an order with that ID — please check it and try again")
			return
		}
		writeUpstreamError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trackingView{
		Order:    o,
		Timeline: order.BuildTimeline(o),
	})
}

// ============================================
// Shared plumbing
// ============================================

// withSessionCart resolves the request's session, runs fn holding the
// session lock, and converts a session resolution failure into a response.
func (h *Handlers) withSessionCart(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, s *session) error) {
	s, err := h.sessions.get(r.Context(), sessionIDFrom(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session_unavailable", err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = fn(r.Context(), s)
}

// persistCart writes the full snapshot after a mutation. The store already
// degrades to memory when the durable backend is down, so a residual failure
// is logged, not surfaced: storage trouble never breaks a browsing session.
func (h *Handlers) persistCart(ctx context.Context, s *session) {
	if err := h.store.Save(ctx, s.id, s.cart.Items()); err != nil {
		log.Printf("[API] Failed to persist cart for session %s: %v", s.id, err)
	}
}

func writeFlowError(w http.ResponseWriter, err error) {
	var vErr *checkout.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":   "validation_error",
			"field":   vErr.Field,
			"message": vErr.Message,
		})
	case errors.Is(err, checkout.ErrEmptyCart):
		writeError(w, http.StatusUnprocessableEntity, "empty_cart", "your cart is empty")
	case errors.Is(err, checkout.ErrNotSubmitted):
		writeError(w, http.StatusConflict, "no_order", "no submitted order to declare payment for")
	case errors.Is(err, checkout.ErrFlowCompleted):
		writeError(w, http.StatusConflict, "already_completed", "this checkout has already completed")
	case errors.Is(err, upstream.ErrNotFound):
		writeError(w, http.StatusNotFound, "order_not_found",
			"we couldn't find an order with that ID — please check it and try again")
	default:
		writeUpstreamError(w, err)
	}
}

func writeUpstreamError(w http.ResponseWriter, err error) {
	var httpErr *upstream.HTTPError
	if errors.As(err, &httpErr) {
		writeError(w, http.StatusBadGateway, "upstream_error", httpErr.Error())
		return
	}
	writeError(w, http.StatusBadGateway, "upstream_unreachable",
		"the store is temporarily unavailable, please try again")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"error": code, "message": msg})
}
