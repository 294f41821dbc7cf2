package pricing

import "math"

// DiscountedBasePrice applies the tour's percentage discount to its list
// price, rounded to the nearest whole currency unit.
func DiscountedBasePrice(price int64, discountPercent int) int64 {
	if discountPercent <= 0 {
		return price
	}
	if discountPercent >= 100 {
		return 0
	}
	return int64(math.Round(float64(price) * float64(100-discountPercent) / 100))
}

// ComputeTotalPrice derives the booking total. The tour price is a flat
// package price charged once per booking regardless of headcount; surcharges
// exist only to monetize exceeding the booked capacity.
func ComputeTotalPrice(seats int, basePrice int64, hasAdditional bool, totalPeople, totalBase, totalExceed int, surchargeTotal int64) int64 {
	if totalPeople == 0 || basePrice == 0 {
		return 0
	}
	if seats <= 0 || !hasAdditional {
		return basePrice
	}
	if totalPeople <= seats {
		return basePrice
	}
	return basePrice + surchargeTotal
}
