// Package checkout runs the order submission and payment declaration flows
// for one browsing session.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/example/shopfront-gateway/internal/domain/cart"
	"github.com/example/shopfront-gateway/internal/domain/order"
	"github.com/example/shopfront-gateway/internal/events"
	"github.com/example/shopfront-gateway/internal/infrastructure/cartstore"
	"github.com/example/shopfront-gateway/internal/upstream"
)

// Phase is the submission flow state. Failed is recoverable: the draft stays
// intact and Submit may be retried.
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseSubmitting      Phase = "submitting"
	PhaseAwaitingPayment Phase = "awaiting_payment"
	PhasePaymentDeclared Phase = "payment_declared"
	PhaseFailed          Phase = "failed"
)

const (
	DeliveryPickup   = "pickup"
	DeliveryDelivery = "delivery"
)

var (
	ErrEmptyCart     = errors.New("cart is empty, nothing to check out")
	ErrNotSubmitted  = errors.New("no submitted order to declare payment for")
	ErrFlowCompleted = errors.New("checkout already completed for this order")
)

// ValidationError is a field-level input failure. It is raised before any
// network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CustomerDetails is the checkout form input.
type CustomerDetails struct {
	Name           string `json:"customerName"`
	Phone          string `json:"phoneNumber"`
	Email          string `json:"customerEmail,omitempty"`
	DeliveryMethod string `json:"deliveryMethod"`
}

func (d CustomerDetails) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: "customerName", Message: "name is required"}
	}
	if strings.TrimSpace(d.Phone) == "" {
		return &ValidationError{Field: "phoneNumber", Message: "phone number is required"}
	}
	if d.DeliveryMethod != DeliveryPickup && d.DeliveryMethod != DeliveryDelivery {
		return &ValidationError{Field: "deliveryMethod", Message: "must be pickup or delivery"}
	}
	return nil
}

// OrderAPI is the slice of the upstream client the flow needs.
type OrderAPI interface {
	CreateOrder(ctx context.Context, draft upstream.OrderDraft) (*order.Order, error)
	DeclarePayment(ctx context.Context, orderID, accountName string) error
}

// Publisher emits order-lifecycle events. May be nil when no broker is wired.
type Publisher interface {
	Publish(ctx context.Context, key string, envelope events.Envelope) error
}

// Flow is the explicit session-scoped checkout context: one cart, one draft,
// one order. Safe for concurrent use; operations serialize on the flow.
type Flow struct {
	mu        sync.Mutex
	phase     Phase
	cart      *cart.Cart
	store     cartstore.Store
	sessionID string
	api       OrderAPI
	publisher Publisher

	draft   *upstream.OrderDraft
	orderID string
}

func NewFlow(sessionID string, c *cart.Cart, store cartstore.Store, api OrderAPI, publisher Publisher) *Flow {
	return &Flow{
		phase:     PhaseIdle,
		cart:      c,
		store:     store,
		sessionID: sessionID,
		api:       api,
		publisher: publisher,
	}
}

func (f *Flow) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// OrderID returns the identifier of the submitted order, empty until the
// upstream API has accepted one. It survives failed payment declarations so
// the customer can always retry.
func (f *Flow) OrderID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderID
}

// Submit validates the customer details and cart, posts the order draft and
// on success clears the cart and moves to AwaitingPayment. On failure the
// cart and draft are untouched and Submit may be called again; the retried
// draft keeps its submission key, so the server can deduplicate.
func (f *Flow) Submit(ctx context.Context, details CustomerDetails) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.phase {
	case PhaseIdle, PhaseFailed:
	case PhaseSubmitting:
		return "", fmt.Errorf("submission already in progress")
	default:
		return "", ErrFlowCompleted
	}

	if err := details.validate(); err != nil {
		return "", err
	}
	if f.cart.IsEmpty() {
		return "", ErrEmptyCart
	}

	draft := upstream.OrderDraft{
		CustomerName:   strings.TrimSpace(details.Name),
		PhoneNumber:    strings.TrimSpace(details.Phone),
		CustomerEmail:  strings.TrimSpace(details.Email),
		DeliveryMethod: details.DeliveryMethod,
		Items:          f.cart.Items(),
		Total:          f.cart.Total(),
	}
	// A retry of the same draft keeps its submission key so the server can
	// deduplicate a double submit. Any edit makes it a new draft.
	if f.draft != nil && sameDraft(*f.draft, draft) {
		draft.SubmissionKey = f.draft.SubmissionKey
	} else {
		draft.SubmissionKey = uuid.New().String()
	}
	f.draft = &draft

	f.phase = PhaseSubmitting
	created, err := f.api.CreateOrder(ctx, *f.draft)
	if err != nil {
		// Recoverable: draft and cart stay intact for a manual retry.
		f.phase = PhaseFailed
		return "", fmt.Errorf("submit order: %w", err)
	}

	f.orderID = created.ID
	f.phase = PhaseAwaitingPayment

	// Only confirmed success empties the cart.
	f.cart.Clear()
	if err := f.store.Save(ctx, f.sessionID, f.cart.Items()); err != nil {
		log.Printf("[Checkout] Failed to persist cleared cart for session %s: %v", f.sessionID, err)
	}

	f.publish(ctx, created.ID, events.NewEnvelope(events.TypeOrderSubmitted, events.OrderSubmitted{
		OrderID:        created.ID,
		SessionID:      f.sessionID,
		CustomerName:   f.draft.CustomerName,
		DeliveryMethod: f.draft.DeliveryMethod,
		ItemCount:      len(f.draft.Items),
		Total:          f.draft.Total,
	}))

	return created.ID, nil
}

// DeclarePayment records the account name the customer says they paid from.
// Failure leaves the flow in AwaitingPayment with the order ID retained.
func (f *Flow) DeclarePayment(ctx context.Context, accountName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase != PhaseAwaitingPayment {
		return ErrNotSubmitted
	}

	accountName = TrimAccountName(accountName)
	if accountName == "" {
		return &ValidationError{Field: "accountName", Message: "account name used for payment is required"}
	}

	if err := f.api.DeclarePayment(ctx, f.orderID, accountName); err != nil {
		return fmt.Errorf("declare payment for order %s: %w", f.orderID, err)
	}

	f.phase = PhasePaymentDeclared

	f.publish(ctx, f.orderID, events.NewEnvelope(events.TypePaymentDeclared, events.PaymentDeclared{
		OrderID:     f.orderID,
		AccountName: accountName,
	}))

	return nil
}

// TrimAccountName normalizes the account name a customer typed into the
// payment declaration form.
func TrimAccountName(name string) string {
	return strings.TrimSpace(name)
}

func sameDraft(a, b upstream.OrderDraft) bool {
	if a.CustomerName != b.CustomerName ||
		a.PhoneNumber != b.PhoneNumber ||
		a.CustomerEmail != b.CustomerEmail ||
		a.DeliveryMethod != b.DeliveryMethod ||
		a.Total != b.Total ||
		len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if a.Items[i] != b.Items[i] {
			return false
		}
	}
	return true
}

func (f *Flow) publish(ctx context.Context, key string, envelope events.Envelope) {
	if f.publisher == nil {
		return
	}
	if err := f.publisher.Publish(ctx, key, envelope); err != nil {
		// Notification is best effort; the order itself already succeeded.
		log.Printf("[Checkout] Failed to publish %s event for order %s: %v", envelope.Type, key, err)
	}
}
