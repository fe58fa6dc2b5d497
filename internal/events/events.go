// Package events defines the order-lifecycle events the gateway publishes for
// the shop owner's notification pipeline.
package events

import "time"

const (
	TypeOrderSubmitted  = "OrderSubmitted"
	TypePaymentDeclared = "PaymentDeclared"
)

// Envelope wraps every published event with its type discriminator.
type Envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// OrderSubmitted is published after the upstream API has accepted an order.
type OrderSubmitted struct {
	OrderID        string `json:"orderId"`
	SessionID      string `json:"sessionId"`
	CustomerName   string `json:"customerName"`
	DeliveryMethod string `json:"deliveryMethod"`
	ItemCount      int    `json:"itemCount"`
	Total          int    `json:"total"`
}

// PaymentDeclared is published when a customer reports having paid. It is a
// claim; confirmation stays a manual admin action.
type PaymentDeclared struct {
	OrderID     string `json:"orderId"`
	AccountName string `json:"accountName"`
}

func NewEnvelope(eventType string, data any) Envelope {
	return Envelope{
		Type:       eventType,
		OccurredAt: time.Now(),
		Data:       data,
	}
}
