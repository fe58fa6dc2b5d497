package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the gateway's route table.
func NewRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(withSession)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.GetProducts)
		r.Get("/search/{query}", h.SearchProducts)
		r.Get("/category/{category}", h.ProductsByCategory)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddToCart)
		r.Patch("/items/{index}", h.UpdateCartItem)
		r.Delete("/items/{index}", h.RemoveCartItem)
	})

	r.Post("/checkout", h.Checkout)

	r.Route("/orders/{id}", func(r chi.Router) {
		r.Get("/", h.TrackOrder)
		r.Post("/payment", h.DeclarePayment)
	})

	return r
}
