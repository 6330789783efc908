package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ruansmarques/MedFerpa-Store-2/pkg/catalog/domain/model"
)

// ProductStore is the in-memory products collection, used by tests and by
// serve mode when no database is configured. Watchers are notified
// synchronously after every write, the way the hosted document store pushes
// snapshots.
type ProductStore struct {
	mu          sync.Mutex
	products    map[string]*model.Product
	watchers    map[int]func([]*model.Product)
	nextWatcher int
}

func NewProductStore() *ProductStore {
	return &ProductStore{
		products: make(map[string]*model.Product),
		watchers: make(map[int]func([]*model.Product)),
	}
}

func (s *ProductStore) NextID() (string, error) {
	return uuid.NewString(), nil
}

func (s *ProductStore) Create(product *model.Product) error {
	s.mu.Lock()
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	clone := *product
	s.products[product.ID] = &clone
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *ProductStore) Update(product *model.Product) error {
	s.mu.Lock()
	existing, ok := s.products[product.ID]
	if !ok {
		s.mu.Unlock()
		return model.ErrProductNotFound
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now().UTC()
	clone := *product
	s.products[product.ID] = &clone
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *ProductStore) Delete(id string) error {
	s.mu.Lock()
	if _, ok := s.products[id]; !ok {
		s.mu.Unlock()
		return model.ErrProductNotFound
	}
	delete(s.products, id)
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *ProductStore) Find(id string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

func (s *ProductStore) List() ([]*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(), nil
}

// Watch registers a live subscription. The current snapshot is delivered
// immediately, then one delivery per write until cancel is called.
func (s *ProductStore) Watch(onChange func(products []*model.Product)) (func(), error) {
	s.mu.Lock()
	id := s.nextWatcher
	s.nextWatcher++
	s.watchers[id] = onChange
	snapshot := s.list()
	s.mu.Unlock()

	onChange(snapshot)

	cancel := func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
	return cancel, nil
}

// list assumes the lock is held.
func (s *ProductStore) list() []*model.Product {
	products := make([]*model.Product, 0, len(s.products))
	for _, product := range s.products {
		clone := *product
		products = append(products, &clone)
	}
	sort.Slice(products, func(i, j int) bool {
		if !products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		}
		return products[i].ID < products[j].ID
	})
	return products
}

func (s *ProductStore) notify() {
	s.mu.Lock()
	snapshot := s.list()
	watchers := make([]func([]*model.Product), 0, len(s.watchers))
	for _, watcher := range s.watchers {
		watchers = append(watchers, watcher)
	}
	s.mu.Unlock()

	for _, watcher := range watchers {
		watcher(snapshot)
	}
}
