package model

// CartOpened asks the view layer to reveal the cart drawer. Adding an item is
// the only operation that raises it.
type CartOpened struct{}

func (e CartOpened) Type() string { return "CartOpened" }

type ItemAddedToCart struct {
	Key      SelectionKey
	Quantity int
}

func (e ItemAddedToCart) Type() string { return "ItemAddedToCart" }

type ItemRemovedFromCart struct {
	Key SelectionKey
}

func (e ItemRemovedFromCart) Type() string { return "ItemRemovedFromCart" }

type CartCleared struct{}

func (e CartCleared) Type() string { return "CartCleared" }
