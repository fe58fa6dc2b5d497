package upstream

import (
	"github.com/example/shopfront-gateway/internal/domain/cart"
	"github.com/example/shopfront-gateway/internal/domain/pricing"
)

// Product is the raw catalog record as the API serves it. Older records carry
// a flat price under one of several field names instead of the size table;
// PriceInfo folds all shapes into one canonical value.
type Product struct {
	ID          string         `json:"_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Image       string         `json:"image,omitempty"`
	Images      []string       `json:"images,omitempty"`
	Categories  []string       `json:"categories"`
	Prices      map[string]int `json:"prices,omitempty"`
	Price       *int           `json:"price,omitempty"`
	Cost        *int           `json:"cost,omitempty"`
	Amount      *int           `json:"amount,omitempty"`
}

// PriceInfo resolves the product's price shape once, at ingestion.
func (p Product) PriceInfo() pricing.PriceInfo {
	return pricing.Resolve(p.Prices, p.Price, p.Cost, p.Amount)
}

// ImageURL returns the display image, whichever field the record uses.
func (p Product) ImageURL() string {
	if p.Image != "" {
		return p.Image
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

func (p Product) HasCategory(category string) bool {
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// OrderDraft is the order-creation payload: customer form fields plus a value
// copy of the cart at submission time. The submission key is client-generated
// and stable across retries of the same draft.
type OrderDraft struct {
	CustomerName   string          `json:"customerName"`
	PhoneNumber    string          `json:"phoneNumber"`
	CustomerEmail  string          `json:"customerEmail,omitempty"`
	DeliveryMethod string          `json:"deliveryMethod"`
	Items          []cart.LineItem `json:"items"`
	Total          int             `json:"total"`
	SubmissionKey  string          `json:"submissionKey,omitempty"`
}

// paymentPatch is the body of the payment-declaration call, in the legacy
// vocabulary the endpoint expects.
type paymentPatch struct {
	PaymentAccountName string `json:"paymentAccountName"`
	PaymentStatus      string `json:"paymentStatus"`
}
