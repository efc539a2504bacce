package domain

import "github.com/shopspring/decimal"

// LineTotal multiplies a unit price by a quantity
func LineTotal(price float64, quantity int) float64 {
	total, _ := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity))).Float64()
	return total
}

// UnitPrice divides a total by its quantity. A zero quantity yields zero.
func UnitPrice(total float64, quantity int) float64 {
	if quantity == 0 {
		return 0
	}
	unit, _ := decimal.NewFromFloat(total).Div(decimal.NewFromInt(int64(quantity))).Float64()
	return unit
}

// CartTotals folds entries into the derived item count and amount
func CartTotals(entries []CartEntry) (totalItems int, totalAmount float64) {
	sum := decimal.Zero
	for _, entry := range entries {
		totalItems += entry.Quantity
		sum = sum.Add(decimal.NewFromFloat(entry.Item.Price).Mul(decimal.NewFromInt(int64(entry.Quantity))))
	}
	totalAmount, _ = sum.Float64()
	return totalItems, totalAmount
}
