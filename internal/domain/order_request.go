package domain

import (
	"fmt"
	"strings"
)

// OrderRequest is the customer's order form for a single menu item
type OrderRequest struct {
	FoodID       int
	Quantity     int
	CustomerName string
	Phone        string
}

// Validate checks the form against the current menu snapshot.
// Checks run in form order: name, phone, quantity, stock.
func (r OrderRequest) Validate(item MenuItem, found bool) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(r.CustomerName) == "" {
		errs = append(errs, ValidationError{Field: "customerName", Message: "name is required"})
	}
	if strings.TrimSpace(r.Phone) == "" {
		errs = append(errs, ValidationError{Field: "phone", Message: "phone is required"})
	}
	if r.Quantity < 1 {
		errs = append(errs, ValidationError{Field: "quantity", Message: "quantity must be at least 1"})
	}

	if !found {
		errs = append(errs, ValidationError{Field: "foodId", Message: ErrMenuItemNotFound.Error()})
	} else if r.Quantity > item.Quantity {
		errs = append(errs, ValidationError{
			Field:   "quantity",
			Message: fmt.Sprintf("only %d units available", item.Quantity),
		})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// CreateData builds the order payload with the total priced from the item
func (r OrderRequest) CreateData(item MenuItem) CreateOrderData {
	return CreateOrderData{
		FoodID:       item.ID,
		FoodName:     item.Name,
		CustomerName: strings.TrimSpace(r.CustomerName),
		Phone:        strings.TrimSpace(r.Phone),
		Quantity:     r.Quantity,
		TotalAmount:  LineTotal(item.Price, r.Quantity),
	}
}
