// Package pricing resolves the several product price shapes the catalog API
// serves (size-keyed tables, flat price/cost/amount scalars) into a single
// canonical PriceInfo value at ingestion time.
package pricing

import (
	"fmt"
	"math"
)

type Kind int

const (
	// KindUnavailable means the product carries no usable price at all.
	KindUnavailable Kind = iota
	// KindSingle is a single unit price, either a flat scalar or a size
	// table whose entries all agree.
	KindSingle
	// KindRange is a size table with distinct prices, summarised as [Min, Max].
	KindRange
)

// PriceInfo is the canonical price of a product. When the price came from a
// size table, Sizes holds the table so per-size lookups stay exact.
type PriceInfo struct {
	Kind   Kind
	Amount int            // set for KindSingle
	Min    int            // set for KindRange
	Max    int            // set for KindRange
	Sizes  map[string]int // set when resolved from a size table; may be sparse
}

// Resolve derives a PriceInfo from a raw product shape. The size table wins
// when present; otherwise the flat fields are consulted in priority order
// price, cost, amount.
func Resolve(sizes map[string]int, price, cost, amount *int) PriceInfo {
	if len(sizes) > 0 {
		return fromSizeTable(sizes)
	}
	for _, flat := range []*int{price, cost, amount} {
		if flat != nil {
			return PriceInfo{Kind: KindSingle, Amount: *flat}
		}
	}
	return PriceInfo{Kind: KindUnavailable}
}

func fromSizeTable(sizes map[string]int) PriceInfo {
	table := make(map[string]int, len(sizes))
	first := true
	var min, max int
	for size, p := range sizes {
		table[size] = p
		if first {
			min, max = p, p
			first = false
			continue
		}
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	if min == max {
		return PriceInfo{Kind: KindSingle, Amount: min, Sizes: table}
	}
	return PriceInfo{Kind: KindRange, Min: min, Max: max, Sizes: table}
}

// ForSize returns the unit price for the selected size. A size absent from a
// sparse table is unavailable, never zero. A flat-priced product (no size
// table) prices every size the same.
func (p PriceInfo) ForSize(size string) (int, bool) {
	if p.Kind == KindUnavailable {
		return 0, false
	}
	if p.Sizes != nil {
		price, ok := p.Sizes[size]
		return price, ok
	}
	return p.Amount, true
}

func (p PriceInfo) Available() bool {
	return p.Kind != KindUnavailable
}

// Display renders the resolved price the way the storefront shows it.
func (p PriceInfo) Display() string {
	switch p.Kind {
	case KindSingle:
		return FormatNaira(p.Amount)
	case KindRange:
		return FormatNaira(p.Min) + " - " + FormatNaira(p.Max)
	default:
		return "Price Unavailable"
	}
}

// FormatNaira formats a Naira amount in the storefront's compact style,
// e.g. 12000 becomes "₦12k".
func FormatNaira(amount int) string {
	return fmt.Sprintf("₦%dk", int(math.Round(float64(amount)/1000)))
}
