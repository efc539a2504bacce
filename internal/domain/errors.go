package domain

import (
	"errors"
	"strings"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrEmptyUpdate      = errors.New("update has no fields")
	ErrInvalidOrderID   = errors.New("invalid order id")
)

// ValidationError describes one rejected input field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned when form input is rejected before any dispatch
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Field + ": " + e.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
