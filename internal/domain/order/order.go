// Package order holds the client-side projection of a server-owned order and
// the status progression logic used to render its lifecycle.
package order

import (
	"time"

	"github.com/example/shopfront-gateway/internal/domain/cart"
)

type Status string

// Canonical linear progression. The index within Progression defines the
// "completed" threshold for the timeline.
const (
	StatusPending          Status = "pending"
	StatusPaymentConfirmed Status = "payment_confirmed"
	StatusInProduction     Status = "in_production"
	StatusReady            Status = "ready"
	StatusShipped          Status = "shipped"
	StatusDelivered        Status = "delivered"
)

// Legacy vocabulary from the older API version. Tolerated on input, never
// part of the canonical progression.
const (
	StatusPaymentMade Status = "payment_made"
	StatusConfirmed   Status = "confirmed"
	StatusCancelled   Status = "cancelled"
)

// Progression is the fixed six-stage order lifecycle, in order.
var Progression = []Status{
	StatusPending,
	StatusPaymentConfirmed,
	StatusInProduction,
	StatusReady,
	StatusShipped,
	StatusDelivered,
}

// legacyAliases maps old status spellings onto their canonical stage.
// "payment_made" is deliberately absent: it is a customer claim, not a
// confirmation, and does not advance the progression.
var legacyAliases = map[Status]Status{
	StatusConfirmed: StatusPaymentConfirmed,
}

// Canonical normalizes a status to its canonical spelling where an alias
// exists; other values pass through unchanged.
func Canonical(s Status) Status {
	if alias, ok := legacyAliases[s]; ok {
		return alias
	}
	return s
}

// ProgressIndex maps a status to its position in the progression. Unknown and
// legacy statuses resolve to 0: "not yet progressed" is the lenient fallback,
// not an error.
func ProgressIndex(s Status) int {
	s = Canonical(s)
	for i, stage := range Progression {
		if stage == s {
			return i
		}
	}
	return 0
}

// StatusEntry is one server-written record in an order's append-only history.
type StatusEntry struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	AdminNote string    `json:"adminNote,omitempty"`
}

// Order is the read-only projection of a server-owned order record.
type Order struct {
	ID                 string          `json:"_id"`
	CustomerName       string          `json:"customerName"`
	PhoneNumber        string          `json:"phoneNumber"`
	CustomerEmail      string          `json:"customerEmail,omitempty"`
	DeliveryMethod     string          `json:"deliveryMethod"`
	Items              []cart.LineItem `json:"items"`
	Total              int             `json:"total"`
	Status             Status          `json:"status,omitempty"`
	PaymentStatus      Status          `json:"paymentStatus,omitempty"`
	PaymentAccountName string          `json:"paymentAccountName,omitempty"`
	PaymentConfirmedAt *time.Time      `json:"paymentConfirmedAt,omitempty"`
	StatusHistory      []StatusEntry   `json:"statusHistory,omitempty"`
	OrderDate          time.Time       `json:"orderDate,omitempty"`
}

// EffectiveStatus resolves the status to render, falling back to the legacy
// paymentStatus field and then to pending.
func (o *Order) EffectiveStatus() Status {
	if o.Status != "" {
		return o.Status
	}
	if o.PaymentStatus != "" {
		return o.PaymentStatus
	}
	return StatusPending
}
