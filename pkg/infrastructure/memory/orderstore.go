package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ruansmarques/MedFerpa-Store-2/pkg/order/domain/model"
)

type OrderStore struct {
	mu     sync.Mutex
	orders map[string]*model.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]*model.Order)}
}

func (s *OrderStore) NextID() (string, error) {
	return uuid.NewString(), nil
}

func (s *OrderStore) Create(order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order.CreatedAt = time.Now().UTC()
	clone := *order
	s.orders[order.ID] = &clone
	return nil
}

func (s *OrderStore) ListByUser(userID string) ([]*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orders []*model.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			clone := *order
			orders = append(orders, &clone)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}
