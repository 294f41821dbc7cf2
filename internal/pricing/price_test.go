package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalPrice(t *testing.T) {
	testCases := []struct {
		name           string
		seats          int
		basePrice      int64
		hasAdditional  bool
		totalPeople    int
		totalBase      int
		totalExceed    int
		surchargeTotal int64
		expected       int64
	}{
		{
			name:     "no people",
			seats:    10, basePrice: 1_000_000, hasAdditional: true,
			totalPeople: 0, totalBase: 0, totalExceed: 0, surchargeTotal: 0,
			expected: 0,
		},
		{
			name:     "zero base price",
			seats:    10, basePrice: 0, hasAdditional: true,
			totalPeople: 5, totalBase: 5, totalExceed: 0, surchargeTotal: 0,
			expected: 0,
		},
		{
			name:     "within capacity",
			seats:    10, basePrice: 1_000_000, hasAdditional: true,
			totalPeople: 8, totalBase: 8, totalExceed: 0, surchargeTotal: 0,
			expected: 1_000_000,
		},
		{
			name:     "overflow with surcharge",
			seats:    10, basePrice: 1_000_000, hasAdditional: true,
			totalPeople: 12, totalBase: 10, totalExceed: 2, surchargeTotal: 200_000,
			expected: 1_200_000,
		},
		{
			name:     "overflow on tour without surcharge table",
			seats:    10, basePrice: 1_000_000, hasAdditional: false,
			totalPeople: 12, totalBase: 10, totalExceed: 2, surchargeTotal: 200_000,
			expected: 1_000_000,
		},
		{
			name:     "unknown capacity never surcharges",
			seats:    0, basePrice: 500_000, hasAdditional: true,
			totalPeople: 25, totalBase: 20, totalExceed: 5, surchargeTotal: 900_000,
			expected: 500_000,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTotalPrice(tc.seats, tc.basePrice, tc.hasAdditional, tc.totalPeople, tc.totalBase, tc.totalExceed, tc.surchargeTotal)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestComputeTotalPrice_Idempotent(t *testing.T) {
	first := ComputeTotalPrice(10, 1_000_000, true, 12, 10, 2, 200_000)
	second := ComputeTotalPrice(10, 1_000_000, true, 12, 10, 2, 200_000)
	assert.Equal(t, first, second)
}

func TestDiscountedBasePrice(t *testing.T) {
	testCases := []struct {
		name     string
		price    int64
		discount int
		expected int64
	}{
		{name: "no discount", price: 1_000_000, discount: 0, expected: 1_000_000},
		{name: "negative discount ignored", price: 1_000_000, discount: -5, expected: 1_000_000},
		{name: "ten percent", price: 1_000_000, discount: 10, expected: 900_000},
		{name: "rounds to nearest unit", price: 999, discount: 15, expected: 849},
		{name: "full discount", price: 1_000_000, discount: 100, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DiscountedBasePrice(tc.price, tc.discount))
		})
	}
}
