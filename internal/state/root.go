package state

// Root is the whole application state. Values are treated as immutable once published.
type Root struct {
	Menu   MenuState   `json:"menu"`
	Cart   CartState   `json:"cart"`
	Orders OrdersState `json:"orders"`
	UI     UIState     `json:"ui"`
}

func Initial() Root {
	return Root{
		Menu:   InitialMenu(),
		Cart:   InitialCart(),
		Orders: InitialOrders(),
		UI:     InitialUI(),
	}
}

// Reduce routes the action to the slice that owns it
func Reduce(s Root, a Action) Root {
	switch a := a.(type) {
	case MenuAction:
		s.Menu = ReduceMenu(s.Menu, a)
	case CartAction:
		s.Cart = ReduceCart(s.Cart, a)
	case OrdersAction:
		s.Orders = ReduceOrders(s.Orders, a)
	case UIAction:
		s.UI = ReduceUI(s.UI, a)
	default:
		unknownAction("root", a)
	}
	return s
}

// Snapshot is the JSON view handed to readers, with the derived food flow
type Snapshot struct {
	Root
	Flow Flow `json:"flow"`
}

func (s Root) Snapshot() Snapshot {
	return Snapshot{Root: s, Flow: s.UI.Flow()}
}
