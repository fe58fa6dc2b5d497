// Package notification turns order-lifecycle events into owner emails.
package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/shopfront-gateway/internal/email"
	"github.com/example/shopfront-gateway/internal/events"
)

type Handler struct {
	emailService *email.Service
}

func NewHandler(emailSvc *email.Service) *Handler {
	return &Handler{emailService: emailSvc}
}

// rawEnvelope defers payload decoding until the type is known.
type rawEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HandleEvent processes one event from the notification topic. Unknown event
// types are skipped, not failed, so the topic can grow without breaking old
// consumers.
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var envelope rawEnvelope
	if err := json.Unmarshal(value, &envelope); err != nil {
		log.Printf("[Notifier] Failed to unmarshal event: %v", err)
		return err
	}

	switch envelope.Type {
	case events.TypeOrderSubmitted:
		return h.handleOrderSubmitted(envelope)
	case events.TypePaymentDeclared:
		return h.handlePaymentDeclared(envelope)
	default:
		return nil
	}
}

func (h *Handler) handleOrderSubmitted(envelope rawEnvelope) error {
	var e events.OrderSubmitted
	if err := json.Unmarshal(envelope.Data, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal OrderSubmitted event: %v", err)
		return err
	}

	log.Printf("[Notifier] New order %s from %s (%d items)", e.OrderID, e.CustomerName, e.ItemCount)

	if err := h.emailService.SendNewOrderAlert(e); err != nil {
		log.Printf("[Notifier] Failed to send new-order alert for order %s: %v", e.OrderID, err)
		return err
	}
	return nil
}

func (h *Handler) handlePaymentDeclared(envelope rawEnvelope) error {
	var e events.PaymentDeclared
	if err := json.Unmarshal(envelope.Data, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal PaymentDeclared event: %v", err)
		return err
	}

	log.Printf("[Notifier] Payment declared for order %s by %s", e.OrderID, e.AccountName)

	if err := h.emailService.SendPaymentDeclaredAlert(e); err != nil {
		log.Printf("[Notifier] Failed to send payment alert for order %s: %v", e.OrderID, err)
		return err
	}
	return nil
}
