package service

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ruansmarques/MedFerpa-Store-2/pkg/catalog/domain/model"
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/common/domain"
)

var (
	ErrColorNameRequired = errors.New("color name is required before uploading an image")
)

// BlobStorage uploads binary content and resolves an uploaded key to the
// public URL the storefront embeds.
type BlobStorage interface {
	Upload(key string, content io.Reader) error
	PublicURL(key string) (string, error)
}

// ProductDraft is the in-progress admin form. Color variants accumulate on
// it through image uploads before the product is saved.
type ProductDraft struct {
	Name        string
	PriceCents  int64
	Category    string
	Badges      []string
	Description string
	Features    []string
	Sizes       []string
	Colors      []model.ColorVariant
}

// AdminService composes product drafts into persisted records. Concurrent
// edits by two admins are not reconciled: last write wins.
type AdminService interface {
	// WatchProducts delivers the full ordered product list on every change
	// for as long as the subscription is held. The returned cancel func must
	// be called when the admin view goes away.
	WatchProducts(onChange func(products []*model.Product)) (cancel func(), err error)

	// UploadVariantImage stores the image and returns the resulting color
	// variant. The caller appends it to its draft; on error the draft is
	// left untouched.
	UploadVariantImage(fileName string, content io.Reader, colorName, colorHex string) (model.ColorVariant, error)

	// SaveProduct validates the draft and creates a new record, or updates
	// the record named by editingID when it is non-empty.
	SaveProduct(draft ProductDraft, editingID string) (*model.Product, error)

	// DeleteProduct issues the irreversible delete only after confirm
	// returns true.
	DeleteProduct(id string, confirm func() bool) error
}

func NewAdminService(repo model.ProductRepository, blobs BlobStorage, dispatcher domain.EventDispatcher) AdminService {
	return &adminService{repo: repo, blobs: blobs, dispatcher: dispatcher}
}

type adminService struct {
	repo       model.ProductRepository
	blobs      BlobStorage
	dispatcher domain.EventDispatcher
}

func (s *adminService) WatchProducts(onChange func(products []*model.Product)) (func(), error) {
	return s.repo.Watch(onChange)
}

func (s *adminService) UploadVariantImage(fileName string, content io.Reader, colorName, colorHex string) (model.ColorVariant, error) {
	if colorName == "" {
		return model.ColorVariant{}, ErrColorNameRequired
	}

	key := fmt.Sprintf("products/%d_%s", time.Now().UnixMilli(), fileName)
	if err := s.blobs.Upload(key, content); err != nil {
		return model.ColorVariant{}, err
	}

	url, err := s.blobs.PublicURL(key)
	if err != nil {
		return model.ColorVariant{}, err
	}

	variant := model.ColorVariant{Name: colorName, Hex: colorHex, Images: []string{url}}
	_ = s.dispatcher.Dispatch(model.VariantImageUploaded{ColorName: colorName, Key: key, URL: url})
	return variant, nil
}

func (s *adminService) SaveProduct(draft ProductDraft, editingID string) (*model.Product, error) {
	product := &model.Product{
		ID:          editingID,
		Slug:        model.DeriveSlug(draft.Name),
		Name:        draft.Name,
		PriceCents:  draft.PriceCents,
		Category:    draft.Category,
		Badges:      draft.Badges,
		Description: draft.Description,
		Features:    draft.Features,
		Sizes:       draft.Sizes,
		Colors:      draft.Colors,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if editingID != "" {
		if err := s.repo.Update(product); err != nil {
			return nil, err
		}
		_ = s.dispatcher.Dispatch(model.ProductUpdated{ProductID: product.ID, Name: product.Name})
		return product, nil
	}

	id, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}
	product.ID = id

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProductCreated{ProductID: product.ID, Name: product.Name, Slug: product.Slug})
	return product, nil
}

func (s *adminService) DeleteProduct(id string, confirm func() bool) error {
	if confirm == nil || !confirm() {
		return nil
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	_ = s.dispatcher.Dispatch(model.ProductDeleted{ProductID: id})
	return nil
}
