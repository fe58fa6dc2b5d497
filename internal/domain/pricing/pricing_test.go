package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

// ============================================
// Resolve Tests
// ============================================

func TestResolve_SizeTableWithDistinctValues(t *testing.T) {
	info := Resolve(map[string]int{"S": 5000, "L": 7000, "XL": 9000}, nil, nil, nil)

	assert.Equal(t, KindRange, info.Kind)
	assert.Equal(t, 5000, info.Min)
	assert.Equal(t, 9000, info.Max)
}

func TestResolve_SizeTableWithUniformValues(t *testing.T) {
	info := Resolve(map[string]int{"S": 5000, "L": 5000}, nil, nil, nil)

	assert.Equal(t, KindSingle, info.Kind)
	assert.Equal(t, 5000, info.Amount)
}

func TestResolve_SizeTableWinsOverFlatFields(t *testing.T) {
	info := Resolve(map[string]int{"S": 5000}, intPtr(1), intPtr(2), intPtr(3))

	assert.Equal(t, KindSingle, info.Kind)
	assert.Equal(t, 5000, info.Amount)
}

func TestResolve_FlatFieldPriority(t *testing.T) {
	tests := []struct {
		name                string
		price, cost, amount *int
		want                int
	}{
		{"price beats cost and amount", intPtr(100), intPtr(200), intPtr(300), 100},
		{"cost beats amount", nil, intPtr(200), intPtr(300), 200},
		{"amount alone", nil, nil, intPtr(300), 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Resolve(nil, tt.price, tt.cost, tt.amount)
			require.Equal(t, KindSingle, info.Kind)
			assert.Equal(t, tt.want, info.Amount)
		})
	}
}

func TestResolve_NothingPriced(t *testing.T) {
	info := Resolve(nil, nil, nil, nil)

	assert.Equal(t, KindUnavailable, info.Kind)
	assert.False(t, info.Available())
}

func TestResolve_EmptySizeTableFallsThrough(t *testing.T) {
	info := Resolve(map[string]int{}, intPtr(4500), nil, nil)

	require.Equal(t, KindSingle, info.Kind)
	assert.Equal(t, 4500, info.Amount)
}

// ============================================
// ForSize Tests
// ============================================

func TestForSize_ExactKey(t *testing.T) {
	info := Resolve(map[string]int{"S": 5000, "L": 7000}, nil, nil, nil)

	price, ok := info.ForSize("L")

	require.True(t, ok)
	assert.Equal(t, 7000, price)
}

func TestForSize_AbsentKeyIsUnavailableNotZero(t *testing.T) {
	info := Resolve(map[string]int{"S": 5000, "L": 7000}, nil, nil, nil)

	price, ok := info.ForSize("XXL")

	assert.False(t, ok)
	assert.Equal(t, 0, price)
}

func TestForSize_SparseUniformTableStaysExact(t *testing.T) {
	// A uniform table collapses to KindSingle but absent sizes must still
	// resolve as unavailable.
	info := Resolve(map[string]int{"S": 5000, "L": 5000}, nil, nil, nil)

	_, ok := info.ForSize("XXL")

	assert.False(t, ok)
}

func TestForSize_FlatPriceAppliesToAnySize(t *testing.T) {
	info := Resolve(nil, intPtr(4500), nil, nil)

	price, ok := info.ForSize("XXL")

	require.True(t, ok)
	assert.Equal(t, 4500, price)
}

func TestForSize_Unavailable(t *testing.T) {
	info := Resolve(nil, nil, nil, nil)

	_, ok := info.ForSize("S")

	assert.False(t, ok)
}

// ============================================
// Display Tests
// ============================================

func TestDisplay(t *testing.T) {
	tests := []struct {
		name string
		info PriceInfo
		want string
	}{
		{"single", Resolve(nil, intPtr(12000), nil, nil), "₦12k"},
		{"rounded up", Resolve(nil, intPtr(12500), nil, nil), "₦13k"},
		{"range", Resolve(map[string]int{"S": 5000, "XL": 9000}, nil, nil, nil), "₦5k - ₦9k"},
		{"unavailable", Resolve(nil, nil, nil, nil), "Price Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.Display())
		})
	}
}

func TestFormatNaira(t *testing.T) {
	assert.Equal(t, "₦5k", FormatNaira(5000))
	assert.Equal(t, "₦10k", FormatNaira(10000))
	assert.Equal(t, "₦0k", FormatNaira(200))
}
