package model

// LineItem is one entry in the cart. It carries a denormalized copy of the
// product fields taken at the moment of selection, so later catalog edits do
// not change what the shopper already put in the cart.
type LineItem struct {
	ProductID     string `json:"productId"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Category      string `json:"category"`
	PriceCents    int64  `json:"priceCents"`
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
	SelectedImage string `json:"selectedImage"`
	Quantity      int    `json:"quantity"`
}

// SelectionKey identifies a line for merge purposes: two additions with the
// same key increment quantity instead of creating a second line.
type SelectionKey struct {
	ProductID string
	Size      string
	Color     string
}

func (i LineItem) Key() SelectionKey {
	return SelectionKey{ProductID: i.ProductID, Size: i.SelectedSize, Color: i.SelectedColor}
}

func (i LineItem) SubtotalCents() int64 {
	return i.PriceCents * int64(i.Quantity)
}

// SnapshotStore persists the full line list under a single fixed key.
// Load returns (nil, nil) when no snapshot has ever been written.
type SnapshotStore interface {
	Save(items []LineItem) error
	Load() ([]LineItem, error)
}
