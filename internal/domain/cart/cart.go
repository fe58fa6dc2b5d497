package cart

import "errors"

const (
	MinQuantity = 1
	MaxQuantity = 10
)

var (
	ErrInvalidProduct  = errors.New("product id is required")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrIndexOutOfRange = errors.New("cart index out of range")
)

// LineItem is one distinct product+size+color+message combination in a cart.
// The name, image and unit price are snapshots taken when the item was added;
// they are not re-synced if the product changes later. JSON tags follow the
// wire format the order API expects.
type LineItem struct {
	ProductID     string `json:"id"`
	Name          string `json:"name"`
	Image         string `json:"image"`
	UnitPrice     int    `json:"price"`
	Size          string `json:"size"`
	Color         string `json:"color"`
	Quantity      int    `json:"quantity"`
	CustomMessage string `json:"customMessage,omitempty"`
}

// sameSlot reports whether two line items occupy the same cart slot.
// Quantity and the snapshotted display fields do not participate.
func (li LineItem) sameSlot(other LineItem) bool {
	return li.ProductID == other.ProductID &&
		li.Size == other.Size &&
		li.Color == other.Color &&
		li.CustomMessage == other.CustomMessage
}

// Cart is an ordered sequence of line items. Insertion order is meaningful
// for display only. A Cart is not safe for concurrent use; callers own the
// session-level serialization.
type Cart struct {
	items []LineItem
}

func New() *Cart {
	return &Cart{}
}

// FromItems builds a cart from a restored snapshot. The slice is copied.
func FromItems(items []LineItem) *Cart {
	c := &Cart{items: make([]LineItem, len(items))}
	copy(c.items, items)
	return c
}

// Add merges the item into an existing slot when one matches on
// (productID, size, color, customMessage), summing quantities. Otherwise it
// appends a new slot. Merged quantities are not capped; the [1,10] clamp is
// an input nicety, not a cart invariant.
func (c *Cart) Add(item LineItem) error {
	if item.ProductID == "" {
		return ErrInvalidProduct
	}
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	for i := range c.items {
		if c.items[i].sameSlot(item) {
			c.items[i].Quantity += item.Quantity
			return nil
		}
	}
	c.items = append(c.items, item)
	return nil
}

// UpdateQuantity sets the quantity of the slot at index, clamped to
// [MinQuantity, MaxQuantity]. A quantity of zero or less removes the slot.
func (c *Cart) UpdateQuantity(index, quantity int) error {
	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	if quantity <= 0 {
		return c.Remove(index)
	}
	if quantity > MaxQuantity {
		quantity = MaxQuantity
	}
	c.items[index].Quantity = quantity
	return nil
}

// Remove deletes the slot at index, preserving the relative order of the rest.
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return nil
}

func (c *Cart) Clear() {
	c.items = c.items[:0]
}

// Items returns a copy of the line-item sequence.
func (c *Cart) Items() []LineItem {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Total recomputes the cart total from scratch on every call.
func (c *Cart) Total() int {
	var total int
	for _, item := range c.items {
		total += item.UnitPrice * item.Quantity
	}
	return total
}

// Count returns the summed quantity across all slots (the cart badge number).
func (c *Cart) Count() int {
	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}
