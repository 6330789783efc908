package service

import (
	log "github.com/sirupsen/logrus"

	"github.com/ruansmarques/MedFerpa-Store-2/pkg/cart/domain/model"
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/common/domain"
)

// CartService owns the shopper's line items. All mutation goes through it;
// every mutation rewrites the persisted snapshot. It is single-threaded by
// contract, like the rest of the session state.
type CartService interface {
	Add(item model.LineItem)
	Remove(index int)
	UpdateQuantity(index int, delta int)
	Clear()
	Items() []model.LineItem
	TotalCents() int64
	Count() int
}

func NewCartService(store model.SnapshotStore, dispatcher domain.EventDispatcher) CartService {
	s := &cartService{store: store, dispatcher: dispatcher}
	s.rehydrate()
	return s
}

type cartService struct {
	store      model.SnapshotStore
	dispatcher domain.EventDispatcher
	items      []model.LineItem
}

// rehydrate reads the previous session's snapshot once. A corrupt snapshot is
// discarded, not fatal: losing a stale cart must never take the app down.
func (s *cartService) rehydrate() {
	items, err := s.store.Load()
	if err != nil {
		log.WithError(err).Warn("discarding unreadable cart snapshot")
		return
	}
	s.items = items
}

func (s *cartService) Add(item model.LineItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	merged := false
	for i := range s.items {
		if s.items[i].Key() == item.Key() {
			s.items[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, item)
	}

	s.persist()
	_ = s.dispatcher.Dispatch(model.ItemAddedToCart{Key: item.Key(), Quantity: item.Quantity})
	_ = s.dispatcher.Dispatch(model.CartOpened{})
}

func (s *cartService) Remove(index int) {
	if index < 0 || index >= len(s.items) {
		return
	}

	removed := s.items[index]
	s.items = append(s.items[:index], s.items[index+1:]...)

	s.persist()
	_ = s.dispatcher.Dispatch(model.ItemRemovedFromCart{Key: removed.Key()})
}

func (s *cartService) UpdateQuantity(index int, delta int) {
	if index < 0 || index >= len(s.items) {
		return
	}

	quantity := s.items[index].Quantity + delta
	if quantity < 1 {
		quantity = 1
	}
	s.items[index].Quantity = quantity

	s.persist()
}

func (s *cartService) Clear() {
	s.items = nil

	s.persist()
	_ = s.dispatcher.Dispatch(model.CartCleared{})
}

func (s *cartService) Items() []model.LineItem {
	items := make([]model.LineItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *cartService) TotalCents() int64 {
	var total int64
	for _, item := range s.items {
		total += item.SubtotalCents()
	}
	return total
}

func (s *cartService) Count() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *cartService) persist() {
	if err := s.store.Save(s.items); err != nil {
		log.WithError(err).Error("persist cart snapshot")
	}
}
