package state

import (
	"github.com/YelzhanWeb/storefront/internal/domain"
)

type MenuState struct {
	Items   []domain.MenuItem `json:"items"`
	Loading bool              `json:"loading"`
	Error   string            `json:"error,omitempty"`

	Fetch       Op `json:"fetch"`
	StockUpdate Op `json:"stockUpdate"`
}

// InitialMenu starts with the catalog preloaded so the menu renders before the first fetch
func InitialMenu() MenuState {
	return MenuState{
		Items:       domain.DefaultCatalog(),
		Fetch:       Op{Status: StatusIdle},
		StockUpdate: Op{Status: StatusIdle},
	}
}

type MenuAction interface {
	Action
	menuAction()
}

type (
	FetchMenuStarted   struct{}
	FetchMenuSucceeded struct{ Items []domain.MenuItem }
	FetchMenuFailed    struct{ Err string }

	// DecreaseStock subtracts only when the item exists and has enough stock
	DecreaseStock struct{ ID, Quantity int }
	IncreaseStock struct{ ID, Quantity int }

	StockUpdateStarted   struct{ ID int }
	StockUpdateSucceeded struct{ ID, Quantity int }
	StockUpdateFailed    struct {
		ID  int
		Err string
	}

	ClearMenuError struct{}
)

func (FetchMenuStarted) Name() string     { return "menu/fetchMenu/pending" }
func (FetchMenuSucceeded) Name() string   { return "menu/fetchMenu/fulfilled" }
func (FetchMenuFailed) Name() string      { return "menu/fetchMenu/rejected" }
func (DecreaseStock) Name() string        { return "menu/decreaseStock" }
func (IncreaseStock) Name() string        { return "menu/increaseStock" }
func (StockUpdateStarted) Name() string   { return "menu/updateStock/pending" }
func (StockUpdateSucceeded) Name() string { return "menu/updateStock/fulfilled" }
func (StockUpdateFailed) Name() string    { return "menu/updateStock/rejected" }
func (ClearMenuError) Name() string       { return "menu/clearError" }

func (a FetchMenuFailed) Error() string   { return a.Err }
func (a StockUpdateFailed) Error() string { return a.Err }

func (FetchMenuStarted) menuAction()     {}
func (FetchMenuSucceeded) menuAction()   {}
func (FetchMenuFailed) menuAction()      {}
func (DecreaseStock) menuAction()        {}
func (IncreaseStock) menuAction()        {}
func (StockUpdateStarted) menuAction()   {}
func (StockUpdateSucceeded) menuAction() {}
func (StockUpdateFailed) menuAction()    {}
func (ClearMenuError) menuAction()       {}

func ReduceMenu(s MenuState, a MenuAction) MenuState {
	switch a := a.(type) {
	case FetchMenuStarted:
		s.Loading = true
		s.Error = ""
		s.Fetch = pending()

	case FetchMenuSucceeded:
		s.Loading = false
		s.Items = append([]domain.MenuItem(nil), a.Items...)
		s.Fetch = succeeded()

	case FetchMenuFailed:
		s.Loading = false
		s.Error = orDefault(a.Err, "failed to load menu")
		s.Fetch = failed(s.Error)

	case DecreaseStock:
		if a.Quantity <= 0 {
			break
		}
		s.Items = adjustStock(s.Items, a.ID, func(item domain.MenuItem) domain.MenuItem {
			if item.Quantity >= a.Quantity {
				item.Quantity -= a.Quantity
			}
			return item
		})

	case IncreaseStock:
		if a.Quantity <= 0 {
			break
		}
		s.Items = adjustStock(s.Items, a.ID, func(item domain.MenuItem) domain.MenuItem {
			item.Quantity += a.Quantity
			return item
		})

	case StockUpdateStarted:
		s.Loading = true
		s.StockUpdate = pending()

	case StockUpdateSucceeded:
		s.Loading = false
		s.Items = adjustStock(s.Items, a.ID, func(item domain.MenuItem) domain.MenuItem {
			item.Quantity = a.Quantity
			return item
		})
		s.StockUpdate = succeeded()

	case StockUpdateFailed:
		s.Loading = false
		s.Error = orDefault(a.Err, "failed to update stock")
		s.StockUpdate = failed(s.Error)

	case ClearMenuError:
		s.Error = ""

	default:
		unknownAction("menu", a)
	}
	return s
}

// adjustStock copies items and applies fn to the one matching id
func adjustStock(items []domain.MenuItem, id int, fn func(domain.MenuItem) domain.MenuItem) []domain.MenuItem {
	out := make([]domain.MenuItem, len(items))
	for i, item := range items {
		if item.ID == id {
			item = fn(item)
		}
		out[i] = item
	}
	return out
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
