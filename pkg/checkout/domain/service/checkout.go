package service

import (
	"errors"

	log "github.com/sirupsen/logrus"

	cartmodel "github.com/ruansmarques/MedFerpa-Store-2/pkg/cart/domain/model"
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/common/domain"
	ordermodel "github.com/ruansmarques/MedFerpa-Store-2/pkg/order/domain/model"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("no transition from the current step")
)

type Step int

const (
	StepIdentification Step = iota + 1
	StepDelivery
	StepPayment
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepIdentification:
		return "Identification"
	case StepDelivery:
		return "Delivery"
	case StepPayment:
		return "Payment"
	case StepConfirmation:
		return "Confirmation"
	default:
		return "Unknown"
	}
}

// Cart is the slice of the cart service checkout needs: read the snapshot,
// read the total, clear on success.
type Cart interface {
	Items() []cartmodel.LineItem
	TotalCents() int64
	Clear()
}

// PaymentWidget is the embedded third-party payment form. Mount hands it the
// amount and payer email plus two callbacks: onSubmit runs when the shopper
// confirms payment and its error return travels back through the widget's
// own error channel; onError receives widget-side failures.
type PaymentWidget interface {
	Mount(amountCents int64, payerEmail string, onSubmit func() error, onError func(err error))
}

// Checkout is the linear four-step flow ending in order creation. Backward
// movement exists only from Delivery to Identification; once the payment
// widget is mounted there is nothing persisted yet, so abandoning it loses
// nothing.
type Checkout struct {
	cart       Cart
	orders     ordermodel.OrderRepository
	widget     PaymentWidget
	dispatcher domain.EventDispatcher

	step       Step
	customer   ordermodel.Customer
	userID     string
	processing bool
	placed     *ordermodel.Order
}

func NewCheckout(cart Cart, orders ordermodel.OrderRepository, widget PaymentWidget, dispatcher domain.EventDispatcher, userID string) *Checkout {
	if userID == "" {
		userID = ordermodel.GuestUserID
	}
	return &Checkout{
		cart:       cart,
		orders:     orders,
		widget:     widget,
		dispatcher: dispatcher,
		step:       StepIdentification,
		userID:     userID,
	}
}

func (c *Checkout) Step() Step                    { return c.step }
func (c *Checkout) Processing() bool              { return c.processing }
func (c *Checkout) Customer() ordermodel.Customer { return c.customer }
func (c *Checkout) Placed() *ordermodel.Order     { return c.placed }

func (c *Checkout) SetCustomer(customer ordermodel.Customer) { c.customer = customer }

// EmptyCart reports whether the flow must short-circuit to the empty-cart
// notice. After Confirmation the cart is empty by definition and the notice
// must not replace the receipt.
func (c *Checkout) EmptyCart() bool {
	return c.step != StepConfirmation && len(c.cart.Items()) == 0
}

// Next advances the flow. Entering Payment is what mounts the widget, with
// the current total and contact email.
func (c *Checkout) Next() error {
	if c.EmptyCart() {
		return ErrEmptyCart
	}
	switch c.step {
	case StepIdentification:
		c.step = StepDelivery
	case StepDelivery:
		c.step = StepPayment
		c.widget.Mount(c.cart.TotalCents(), c.customer.Email, c.submit, c.widgetError)
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Back is only allowed from Delivery to Identification.
func (c *Checkout) Back() error {
	if c.step != StepDelivery {
		return ErrInvalidTransition
	}
	c.step = StepIdentification
	return nil
}

// submit is the widget's submission callback and the sole path to order
// creation. A persistence failure propagates to the widget's error channel
// and leaves the cart intact so the shopper can retry; the processing flag
// is cleared on every exit path.
func (c *Checkout) submit() (err error) {
	c.processing = true
	defer func() { c.processing = false }()

	items := c.cart.Items()
	if len(items) == 0 {
		return ErrEmptyCart
	}

	id, err := c.orders.NextID()
	if err != nil {
		return err
	}

	order := &ordermodel.Order{
		ID:         id,
		Number:     ordermodel.NewNumber(),
		UserID:     c.userID,
		Customer:   c.customer,
		TotalCents: c.cart.TotalCents(),
		Items:      items,
		Status:     ordermodel.Pending,
	}
	if err := c.orders.Create(order); err != nil {
		return err
	}

	c.cart.Clear()
	c.placed = order
	c.step = StepConfirmation

	_ = c.dispatcher.Dispatch(ordermodel.OrderPlaced{
		OrderID:    order.ID,
		Number:     order.Number,
		UserID:     order.UserID,
		TotalCents: order.TotalCents,
	})
	return nil
}

func (c *Checkout) widgetError(err error) {
	log.WithError(err).Error("payment widget error")
}
