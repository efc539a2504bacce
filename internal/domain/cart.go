package domain

// CartEntry is a menu item snapshot pending order
type CartEntry struct {
	Item     MenuItem `json:"item"`
	Quantity int      `json:"quantity"`
}

// Subtotal returns price × quantity for the entry
func (e CartEntry) Subtotal() float64 {
	return LineTotal(e.Item.Price, e.Quantity)
}

// FindCartEntry looks an entry up by item id
func FindCartEntry(entries []CartEntry, id int) (CartEntry, bool) {
	for _, entry := range entries {
		if entry.Item.ID == id {
			return entry, true
		}
	}
	return CartEntry{}, false
}
