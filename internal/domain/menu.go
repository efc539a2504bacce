package domain

import (
	"fmt"
	"sort"
	"strings"
)

// MenuItem represents a purchasable catalog entry with its available stock
type MenuItem struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"desc"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image"`
}

// MenuRecord is the stored form of a menu item. The id is the record key.
type MenuRecord struct {
	Name        string  `json:"name"`
	Description string  `json:"desc"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image"`
}

// DefaultCatalog returns the catalog used to seed an empty store
func DefaultCatalog() []MenuItem {
	return []MenuItem{
		{
			ID:          1,
			Name:        "Hamburguesa de Pollo",
			Quantity:    40,
			Description: "Hamburguesa de pollo frito - lechuga, tomate, queso y mayonesa",
			Price:       24,
			Image:       "cb.jpeg",
		},
		{
			ID:          2,
			Name:        "Hamburguesa Vegetariana",
			Quantity:    30,
			Description: "Hamburguesa verde - lechuga, tomate, queso vegano y mayonesa",
			Price:       22,
			Image:       "vb.jpg",
		},
		{
			ID:          3,
			Name:        "Patatas Fritas",
			Quantity:    50,
			Description: "Patatas crujientes con sal y especias",
			Price:       8,
			Image:       "chips.jpeg",
		},
		{
			ID:          4,
			Name:        "Helado",
			Quantity:    30,
			Description: "Helado casero de vainilla con toppings",
			Price:       6,
			Image:       "ic.jpeg",
		},
	}
}

// Record strips the id for storage under the item's key
func (m MenuItem) Record() MenuRecord {
	return MenuRecord{
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Quantity:    m.Quantity,
		Image:       m.Image,
	}
}

// Item rebuilds a menu item from its stored record
func (r MenuRecord) Item(id int) MenuItem {
	return MenuItem{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Image:       r.Image,
	}
}

// Validate rejects negative price and stock
func (m MenuItem) Validate() error {
	if m.Price < 0 {
		return fmt.Errorf("menu item %d: price must not be negative", m.ID)
	}
	if m.Quantity < 0 {
		return fmt.Errorf("menu item %d: quantity must not be negative", m.ID)
	}
	return nil
}

// ImageURL resolves the item's image against the configured base URL
func (m MenuItem) ImageURL(base string) string {
	if base == "" {
		base = "/"
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + "images/" + m.Image
}

// FindMenuItem looks an item up by id
func FindMenuItem(items []MenuItem, id int) (MenuItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}

// SortMenuByID orders items by ascending id
func SortMenuByID(items []MenuItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
}
