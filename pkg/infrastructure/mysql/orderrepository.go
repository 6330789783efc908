package mysql

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ruansmarques/MedFerpa-Store-2/pkg/order/domain/model"
)

type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type orderRow struct {
	ID          string          `db:"id"`
	OrderNumber int             `db:"order_number"`
	UserID      string          `db:"user_id"`
	Customer    json.RawMessage `db:"customer"`
	TotalCents  int64           `db:"total_cents"`
	Items       json.RawMessage `db:"items"`
	Status      int             `db:"status"`
	CreatedAt   time.Time       `db:"created_at"`
}

func (r *orderRow) toModel() (*model.Order, error) {
	order := &model.Order{
		ID:         r.ID,
		Number:     r.OrderNumber,
		UserID:     r.UserID,
		TotalCents: r.TotalCents,
		Status:     model.OrderStatus(r.Status),
		CreatedAt:  r.CreatedAt,
	}
	if err := json.Unmarshal(r.Customer, &order.Customer); err != nil {
		return nil, errors.Wrap(err, "decode order customer")
	}
	if err := json.Unmarshal(r.Items, &order.Items); err != nil {
		return nil, errors.Wrap(err, "decode order items")
	}
	return order, nil
}

func (r *OrderRepository) NextID() (string, error) {
	return uuid.NewString(), nil
}

func (r *OrderRepository) Create(order *model.Order) error {
	order.CreatedAt = time.Now().UTC()

	customer, err := json.Marshal(order.Customer)
	if err != nil {
		return errors.Wrap(err, "marshal order customer")
	}
	items, err := json.Marshal(order.Items)
	if err != nil {
		return errors.Wrap(err, "marshal order items")
	}

	_, err = r.db.NamedExec(`
		INSERT INTO orders (id, order_number, user_id, customer, total_cents, items, status, created_at)
		VALUES (:id, :order_number, :user_id, :customer, :total_cents, :items, :status, :created_at)`,
		&orderRow{
			ID:          order.ID,
			OrderNumber: order.Number,
			UserID:      order.UserID,
			Customer:    customer,
			TotalCents:  order.TotalCents,
			Items:       items,
			Status:      int(order.Status),
			CreatedAt:   order.CreatedAt,
		})
	return errors.Wrap(err, "insert order")
}

func (r *OrderRepository) ListByUser(userID string) ([]*model.Order, error) {
	var rows []orderRow
	err := r.db.Select(&rows, `SELECT * FROM orders WHERE user_id = ? ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "select orders")
	}

	orders := make([]*model.Order, 0, len(rows))
	for i := range rows {
		order, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
