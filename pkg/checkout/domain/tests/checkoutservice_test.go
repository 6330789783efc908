package tests

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartmodel "github.com/ruansmarques/MedFerpa-Store-2/pkg/cart/domain/model"
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/checkout/domain/service"
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/common/domain"
	ordermodel "github.com/ruansmarques/MedFerpa-Store-2/pkg/order/domain/model"
)

func setup(t *testing.T, items ...cartmodel.LineItem) (*service.Checkout, *fakeCart, *mockOrderRepository, *fakeWidget) {
	cart := &fakeCart{items: items}
	orders := newMockOrderRepository()
	widget := &fakeWidget{}
	checkout := service.NewCheckout(cart, orders, widget, &mockEventDispatcher{}, "user-1")
	return checkout, cart, orders, widget
}

func line(productID string, priceCents int64, quantity int) cartmodel.LineItem {
	return cartmodel.LineItem{
		ProductID:     productID,
		Name:          "Tech T-Shirt",
		PriceCents:    priceCents,
		SelectedSize:  "M",
		SelectedColor: "Preto",
		Quantity:      quantity,
	}
}

func TestHappyPath(t *testing.T) {
	checkout, cart, orders, widget := setup(t, line("p1", 15900, 2))
	checkout.SetCustomer(ordermodel.Customer{Email: "ana@example.com", Name: "Ana"})

	require.Equal(t, service.StepIdentification, checkout.Step())
	require.NoError(t, checkout.Next())
	require.Equal(t, service.StepDelivery, checkout.Step())
	require.NoError(t, checkout.Next())
	require.Equal(t, service.StepPayment, checkout.Step())

	// Entering Payment mounted the widget with the total and payer email.
	require.True(t, widget.mounted)
	assert.Equal(t, int64(31800), widget.amountCents)
	assert.Equal(t, "ana@example.com", widget.payerEmail)

	require.NoError(t, widget.submit())

	assert.Equal(t, service.StepConfirmation, checkout.Step())
	assert.True(t, cart.cleared)
	assert.False(t, checkout.Processing())

	require.Len(t, orders.created, 1)
	order := orders.created[0]
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, ordermodel.Pending, order.Status)
	assert.Equal(t, int64(31800), order.TotalCents)
	assert.Len(t, order.Items, 1)
	assert.GreaterOrEqual(t, order.Number, 10000)
	assert.LessOrEqual(t, order.Number, 99999)
	assert.Equal(t, order, checkout.Placed())
}

func TestBackTransitions(t *testing.T) {
	checkout, _, _, _ := setup(t, line("p1", 100, 1))

	t.Run("Not from identification", func(t *testing.T) {
		assert.ErrorIs(t, checkout.Back(), service.ErrInvalidTransition)
	})

	t.Run("Delivery back to identification", func(t *testing.T) {
		require.NoError(t, checkout.Next())
		require.NoError(t, checkout.Back())
		assert.Equal(t, service.StepIdentification, checkout.Step())
	})

	t.Run("Not from payment", func(t *testing.T) {
		require.NoError(t, checkout.Next())
		require.NoError(t, checkout.Next())
		assert.ErrorIs(t, checkout.Back(), service.ErrInvalidTransition)
	})
}

func TestEmptyCartShortCircuits(t *testing.T) {
	checkout, _, _, widget := setup(t)

	assert.True(t, checkout.EmptyCart())
	assert.ErrorIs(t, checkout.Next(), service.ErrEmptyCart)
	// Payment was never reached.
	assert.Equal(t, service.StepIdentification, checkout.Step())
	assert.False(t, widget.mounted)
}

func TestCartEmptiedMidFlowShortCircuits(t *testing.T) {
	checkout, cart, orders, widget := setup(t, line("p1", 100, 1))

	require.NoError(t, checkout.Next())
	require.NoError(t, checkout.Next())
	cart.items = nil

	assert.True(t, checkout.EmptyCart())

	// Even a stray widget submission creates nothing once the cart is gone.
	assert.ErrorIs(t, widget.submit(), service.ErrEmptyCart)
	assert.Empty(t, orders.created)
	assert.Equal(t, service.StepPayment, checkout.Step())
}

func TestPersistFailureLeavesCartIntact(t *testing.T) {
	checkout, cart, orders, widget := setup(t, line("p1", 15900, 1))
	orders.createErr = errors.New("document store unavailable")

	require.NoError(t, checkout.Next())
	require.NoError(t, checkout.Next())

	err := widget.submit()

	assert.Error(t, err)
	assert.False(t, cart.cleared)
	assert.Equal(t, service.StepPayment, checkout.Step())
	assert.False(t, checkout.Processing())
	assert.Nil(t, checkout.Placed())

	// The shopper can retry through the same widget.
	orders.createErr = nil
	require.NoError(t, widget.submit())
	assert.Equal(t, service.StepConfirmation, checkout.Step())
	assert.True(t, cart.cleared)
}

func TestProcessingSetDuringSubmission(t *testing.T) {
	checkout, _, orders, widget := setup(t, line("p1", 100, 1))
	require.NoError(t, checkout.Next())
	require.NoError(t, checkout.Next())

	var processingDuringCreate bool
	orders.onCreate = func() { processingDuringCreate = checkout.Processing() }

	require.NoError(t, widget.submit())

	assert.True(t, processingDuringCreate)
	assert.False(t, checkout.Processing())
}

func TestGuestOrder(t *testing.T) {
	cart := &fakeCart{items: []cartmodel.LineItem{line("p1", 100, 1)}}
	orders := newMockOrderRepository()
	widget := &fakeWidget{}
	checkout := service.NewCheckout(cart, orders, widget, &mockEventDispatcher{}, "")

	require.NoError(t, checkout.Next())
	require.NoError(t, checkout.Next())
	require.NoError(t, widget.submit())

	require.Len(t, orders.created, 1)
	assert.Equal(t, ordermodel.GuestUserID, orders.created[0].UserID)
}

type fakeCart struct {
	items   []cartmodel.LineItem
	cleared bool
}

func (f *fakeCart) Items() []cartmodel.LineItem {
	return append([]cartmodel.LineItem(nil), f.items...)
}

func (f *fakeCart) TotalCents() int64 {
	var total int64
	for _, item := range f.items {
		total += item.PriceCents * int64(item.Quantity)
	}
	return total
}

func (f *fakeCart) Clear() {
	f.items = nil
	f.cleared = true
}

type fakeWidget struct {
	mounted     bool
	amountCents int64
	payerEmail  string
	onSubmit    func() error
	onError     func(error)
}

func (f *fakeWidget) Mount(amountCents int64, payerEmail string, onSubmit func() error, onError func(error)) {
	f.mounted = true
	f.amountCents = amountCents
	f.payerEmail = payerEmail
	f.onSubmit = onSubmit
	f.onError = onError
}

// submit plays the shopper confirming payment in the widget.
func (f *fakeWidget) submit() error {
	return f.onSubmit()
}

type mockOrderRepository struct {
	created   []*ordermodel.Order
	createErr error
	onCreate  func()
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{}
}

func (m *mockOrderRepository) NextID() (string, error) { return uuid.NewString(), nil }

func (m *mockOrderRepository) Create(order *ordermodel.Order) error {
	if m.onCreate != nil {
		m.onCreate()
	}
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, order)
	return nil
}

func (m *mockOrderRepository) ListByUser(userID string) ([]*ordermodel.Order, error) {
	var orders []*ordermodel.Order
	for _, order := range m.created {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

type mockEventDispatcher struct {
	events []domain.Event
}

func (m *mockEventDispatcher) Dispatch(event domain.Event) error {
	m.events = append(m.events, event)
	return nil
}
