package model

import (
	"errors"
	"math/rand"
	"time"

	cartmodel "github.com/ruansmarques/MedFerpa-Store-2/pkg/cart/domain/model"
)

var ErrOrderNotFound = errors.New("order not found")

// GuestUserID marks an order placed without a signed-in account.
const GuestUserID = "guest"

type OrderStatus int

const (
	Pending OrderStatus = iota
	Paid
	Cancelled
)

func (s OrderStatus) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Paid:
		return "Paid"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Customer is the contact and address snapshot captured by the checkout form.
type Customer struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Document   string `json:"document"`
	PostalCode string `json:"postalCode"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	District   string `json:"district"`
}

// Order is created exactly once, inside the payment widget's submission
// callback, and never mutated by this system afterwards. Items are a
// snapshot of the cart at that moment.
type Order struct {
	ID         string               `json:"id"`
	Number     int                  `json:"orderNumber"`
	UserID     string               `json:"userId"`
	Customer   Customer             `json:"customer"`
	TotalCents int64                `json:"totalCents"`
	Items      []cartmodel.LineItem `json:"items"`
	Status     OrderStatus          `json:"status"`
	CreatedAt  time.Time            `json:"createdAt"`
}

// NewNumber draws the human-facing 5-digit order number. Collisions are
// possible and accepted; the record identity is the uuid ID.
func NewNumber() int {
	return rand.Intn(90000) + 10000
}

// OrderRepository is the document-store contract for the orders collection.
// Create assigns the creation timestamp on the store side; ListByUser
// returns the user's orders newest first.
type OrderRepository interface {
	NextID() (string, error)
	Create(order *Order) error
	ListByUser(userID string) ([]*Order, error)
}
