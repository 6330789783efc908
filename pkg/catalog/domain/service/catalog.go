package service

import (
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/catalog/domain/model"
)

// CatalogService is the storefront read path: every view mount triggers a
// fresh read, there is no caching.
type CatalogService interface {
	ListProducts() ([]*model.Product, error)
	GetProduct(id string) (*model.Product, error)
}

func NewCatalogService(repo model.ProductRepository) CatalogService {
	return &catalogService{repo: repo}
}

type catalogService struct {
	repo model.ProductRepository
}

func (s *catalogService) ListProducts() ([]*model.Product, error) {
	return s.repo.List()
}

func (s *catalogService) GetProduct(id string) (*model.Product, error) {
	if id == "" {
		return nil, model.ErrProductNotFound
	}
	return s.repo.Find(id)
}
