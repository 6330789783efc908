package model

type OrderPlaced struct {
	OrderID    string
	Number     int
	UserID     string
	TotalCents int64
}

func (e OrderPlaced) Type() string { return "OrderPlaced" }
