package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// TimestampLayout is the ISO-8601 form orders are stamped with (always UTC)
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Order represents a submitted order as cached from the remote store
type Order struct {
	ID           string  `json:"id"`
	FoodID       int     `json:"foodId"`
	FoodName     string  `json:"foodName"`
	CustomerName string  `json:"customerName"`
	Phone        string  `json:"phone"`
	Quantity     int     `json:"quantity"`
	TotalAmount  float64 `json:"totalAmount"`
	Timestamp    string  `json:"timestamp"`
}

// OrderRecord is the stored form of an order. The id is the record key.
type OrderRecord struct {
	FoodID       int     `json:"foodId"`
	FoodName     string  `json:"foodName"`
	CustomerName string  `json:"customerName"`
	Phone        string  `json:"phone"`
	Quantity     int     `json:"quantity"`
	TotalAmount  float64 `json:"totalAmount"`
	Timestamp    string  `json:"timestamp"`
}

// CreateOrderData carries the fields a caller supplies for a new order
type CreateOrderData struct {
	FoodID       int
	FoodName     string
	CustomerName string
	Phone        string
	Quantity     int
	TotalAmount  float64
}

// NewOrderRecord stamps the creation time onto the order data
func NewOrderRecord(data CreateOrderData, now time.Time) OrderRecord {
	return OrderRecord{
		FoodID:       data.FoodID,
		FoodName:     data.FoodName,
		CustomerName: data.CustomerName,
		Phone:        data.Phone,
		Quantity:     data.Quantity,
		TotalAmount:  data.TotalAmount,
		Timestamp:    now.UTC().Format(TimestampLayout),
	}
}

// Order attaches the store-assigned id
func (r OrderRecord) Order(id string) Order {
	return Order{
		ID:           id,
		FoodID:       r.FoodID,
		FoodName:     r.FoodName,
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Quantity:     r.Quantity,
		TotalAmount:  r.TotalAmount,
		Timestamp:    r.Timestamp,
	}
}

// CreatedAt parses the order timestamp. Unparseable values yield the zero time.
func (o Order) CreatedAt() time.Time {
	t, err := time.Parse(time.RFC3339Nano, o.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// UnitPrice derives the per-unit price from the stored total
func (o Order) UnitPrice() float64 {
	return UnitPrice(o.TotalAmount, o.Quantity)
}

// SortOrdersNewestFirst orders by descending timestamp
func SortOrdersNewestFirst(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt().After(orders[j].CreatedAt())
	})
}

// FindOrder looks an order up by id
func FindOrder(orders []Order, id string) (Order, bool) {
	for _, o := range orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// OrderUpdate is a partial set of order fields. Nil fields are left untouched.
type OrderUpdate struct {
	FoodID       *int     `json:"foodId,omitempty"`
	FoodName     *string  `json:"foodName,omitempty"`
	CustomerName *string  `json:"customerName,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	Quantity     *int     `json:"quantity,omitempty"`
	TotalAmount  *float64 `json:"totalAmount,omitempty"`
}

// QuantityUpdate changes the quantity and recomputes the total from the unit price
func QuantityUpdate(o Order, quantity int) OrderUpdate {
	total := LineTotal(o.UnitPrice(), quantity)
	return OrderUpdate{Quantity: &quantity, TotalAmount: &total}
}

// IsEmpty reports whether the update carries no fields
func (u OrderUpdate) IsEmpty() bool {
	return u.FoodID == nil && u.FoodName == nil && u.CustomerName == nil &&
		u.Phone == nil && u.Quantity == nil && u.TotalAmount == nil
}

// Validate checks only the fields present
func (u OrderUpdate) Validate() error {
	if u.IsEmpty() {
		return ErrEmptyUpdate
	}
	if u.Quantity != nil && *u.Quantity < 1 {
		return errors.New("quantity must be at least 1")
	}
	if u.TotalAmount != nil && *u.TotalAmount < 0 {
		return errors.New("total amount must not be negative")
	}
	return nil
}

// Fields returns the wire representation sent to the store
func (u OrderUpdate) Fields() map[string]any {
	fields := make(map[string]any)
	if u.FoodID != nil {
		fields["foodId"] = *u.FoodID
	}
	if u.FoodName != nil {
		fields["foodName"] = *u.FoodName
	}
	if u.CustomerName != nil {
		fields["customerName"] = *u.CustomerName
	}
	if u.Phone != nil {
		fields["phone"] = *u.Phone
	}
	if u.Quantity != nil {
		fields["quantity"] = *u.Quantity
	}
	if u.TotalAmount != nil {
		fields["totalAmount"] = *u.TotalAmount
	}
	return fields
}

// Apply merges the present fields into the order
func (u OrderUpdate) Apply(o Order) Order {
	if u.FoodID != nil {
		o.FoodID = *u.FoodID
	}
	if u.FoodName != nil {
		o.FoodName = *u.FoodName
	}
	if u.CustomerName != nil {
		o.CustomerName = *u.CustomerName
	}
	if u.Phone != nil {
		o.Phone = *u.Phone
	}
	if u.Quantity != nil {
		o.Quantity = *u.Quantity
	}
	if u.TotalAmount != nil {
		o.TotalAmount = *u.TotalAmount
	}
	return o
}

// ValidateOrderID rejects ids that cannot be a key in the remote tree
func ValidateOrderID(id string) error {
	if strings.TrimSpace(id) == "" || strings.ContainsAny(id, ".$#[]/") {
		return fmt.Errorf("%w: %q", ErrInvalidOrderID, id)
	}
	return nil
}
