package tests

import (
	"bytes"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruansmarques/MedFerpa-Store-2/pkg/catalog/application/service"
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/catalog/domain/model"
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/common/domain"
)

func setup(t *testing.T) (service.AdminService, *mockProductRepository, *mockBlobStorage, *mockEventDispatcher) {
	repo := newMockProductRepository()
	blobs := &mockBlobStorage{baseURL: "https://cdn.example"}
	dispatcher := &mockEventDispatcher{}
	adminService := service.NewAdminService(repo, blobs, dispatcher)
	return adminService, repo, blobs, dispatcher
}

func draftWithColors() service.ProductDraft {
	return service.ProductDraft{
		Name:        "Tech T-Shirt",
		PriceCents:  15900,
		Category:    "Camiseta",
		Badges:      []string{"BEST SELLER"},
		Description: "A camiseta tecnológica.",
		Features:    []string{"Antiodor"},
		Sizes:       []string{"P", "M", "G"},
		Colors: []model.ColorVariant{
			{Name: "Preto", Hex: "#000000", Images: []string{"https://cdn.example/products/1_preto.jpg"}},
		},
	}
}

func TestSaveProductCreates(t *testing.T) {
	adminService, repo, _, dispatcher := setup(t)

	product, err := adminService.SaveProduct(draftWithColors(), "")

	require.NoError(t, err)
	require.NotEmpty(t, product.ID)
	assert.Equal(t, "tech-t-shirt", product.Slug)
	assert.False(t, repo.store[product.ID].CreatedAt.IsZero())

	require.Len(t, dispatcher.events, 1)
	created := dispatcher.events[0].(model.ProductCreated)
	assert.Equal(t, product.ID, created.ProductID)
}

func TestSaveProductRejectsInvalidDrafts(t *testing.T) {
	adminService, repo, _, _ := setup(t)

	t.Run("No color variants", func(t *testing.T) {
		draft := draftWithColors()
		draft.Colors = nil
		_, err := adminService.SaveProduct(draft, "")
		assert.ErrorIs(t, err, model.ErrNoColorVariants)
	})

	t.Run("Missing name", func(t *testing.T) {
		draft := draftWithColors()
		draft.Name = "   "
		_, err := adminService.SaveProduct(draft, "")
		assert.ErrorIs(t, err, model.ErrNameRequired)
	})

	t.Run("Negative price", func(t *testing.T) {
		draft := draftWithColors()
		draft.PriceCents = -1
		_, err := adminService.SaveProduct(draft, "")
		assert.ErrorIs(t, err, model.ErrNegativePrice)
	})

	// No write was issued for any rejected draft.
	assert.Empty(t, repo.store)
}

func TestSaveProductUpdatesExisting(t *testing.T) {
	adminService, repo, _, dispatcher := setup(t)
	created, err := adminService.SaveProduct(draftWithColors(), "")
	require.NoError(t, err)
	dispatcher.events = nil

	draft := draftWithColors()
	draft.Name = "Tech T-Shirt 2.0"
	draft.PriceCents = 16900

	updated, err := adminService.SaveProduct(draft, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "tech-t-shirt-20", updated.Slug)

	stored := repo.store[created.ID]
	assert.Equal(t, int64(16900), stored.PriceCents)
	assert.Equal(t, created.CreatedAt, stored.CreatedAt)

	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, "ProductUpdated", dispatcher.events[0].Type())
}

func TestUploadVariantImage(t *testing.T) {
	adminService, _, blobs, _ := setup(t)

	t.Run("Requires a color name", func(t *testing.T) {
		_, err := adminService.UploadVariantImage("preto.jpg", bytes.NewBufferString("img"), "", "#000000")
		assert.ErrorIs(t, err, service.ErrColorNameRequired)
		assert.Empty(t, blobs.uploads)
	})

	t.Run("Success builds the variant", func(t *testing.T) {
		variant, err := adminService.UploadVariantImage("preto.jpg", bytes.NewBufferString("img"), "Preto", "#000000")

		require.NoError(t, err)
		assert.Equal(t, "Preto", variant.Name)
		assert.Equal(t, "#000000", variant.Hex)
		require.Len(t, variant.Images, 1)

		require.Len(t, blobs.uploads, 1)
		key := blobs.uploads[0]
		assert.True(t, strings.HasPrefix(key, "products/"), key)
		assert.True(t, strings.HasSuffix(key, "_preto.jpg"), key)
		assert.Equal(t, "https://cdn.example/"+key, variant.Images[0])
	})

	t.Run("Upload failure yields no variant", func(t *testing.T) {
		blobs.uploadErr = errors.New("bucket unavailable")
		_, err := adminService.UploadVariantImage("azul.jpg", bytes.NewBufferString("img"), "Azul", "#2121ab")
		assert.Error(t, err)
	})
}

func TestDeleteProduct(t *testing.T) {
	adminService, repo, _, dispatcher := setup(t)
	created, err := adminService.SaveProduct(draftWithColors(), "")
	require.NoError(t, err)
	dispatcher.events = nil

	t.Run("Not confirmed is a no-op", func(t *testing.T) {
		require.NoError(t, adminService.DeleteProduct(created.ID, func() bool { return false }))
		assert.Contains(t, repo.store, created.ID)
		assert.Empty(t, dispatcher.events)
	})

	t.Run("Confirmed deletes", func(t *testing.T) {
		require.NoError(t, adminService.DeleteProduct(created.ID, func() bool { return true }))
		assert.NotContains(t, repo.store, created.ID)
		require.Len(t, dispatcher.events, 1)
		assert.Equal(t, "ProductDeleted", dispatcher.events[0].Type())
	})
}

func TestWatchProducts(t *testing.T) {
	adminService, _, _, _ := setup(t)

	var deliveries [][]*model.Product
	cancel, err := adminService.WatchProducts(func(products []*model.Product) {
		deliveries = append(deliveries, products)
	})
	require.NoError(t, err)

	// Initial snapshot arrives immediately, then one delivery per change.
	require.Len(t, deliveries, 1)
	assert.Empty(t, deliveries[0])

	_, err = adminService.SaveProduct(draftWithColors(), "")
	require.NoError(t, err)
	require.Len(t, deliveries, 2)
	assert.Len(t, deliveries[1], 1)

	cancel()
	_, err = adminService.SaveProduct(draftWithColors(), "")
	require.NoError(t, err)
	assert.Len(t, deliveries, 2)
}

type mockProductRepository struct {
	store    map[string]*model.Product
	watchers []func([]*model.Product)
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{store: make(map[string]*model.Product)}
}

func (m *mockProductRepository) NextID() (string, error) { return uuid.NewString(), nil }

func (m *mockProductRepository) Create(p *model.Product) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	clone := *p
	m.store[p.ID] = &clone
	m.notify()
	return nil
}

func (m *mockProductRepository) Update(p *model.Product) error {
	existing, ok := m.store[p.ID]
	if !ok {
		return model.ErrProductNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	clone := *p
	m.store[p.ID] = &clone
	m.notify()
	return nil
}

func (m *mockProductRepository) Delete(id string) error {
	if _, ok := m.store[id]; !ok {
		return model.ErrProductNotFound
	}
	delete(m.store, id)
	m.notify()
	return nil
}

func (m *mockProductRepository) Find(id string) (*model.Product, error) {
	if p, ok := m.store[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, model.ErrProductNotFound
}

func (m *mockProductRepository) List() ([]*model.Product, error) {
	products := make([]*model.Product, 0, len(m.store))
	for _, p := range m.store {
		clone := *p
		products = append(products, &clone)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func (m *mockProductRepository) Watch(onChange func([]*model.Product)) (func(), error) {
	m.watchers = append(m.watchers, onChange)
	products, _ := m.List()
	onChange(products)
	index := len(m.watchers) - 1
	return func() { m.watchers[index] = nil }, nil
}

func (m *mockProductRepository) notify() {
	products, _ := m.List()
	for _, watcher := range m.watchers {
		if watcher != nil {
			watcher(products)
		}
	}
}

type mockBlobStorage struct {
	baseURL   string
	uploads   []string
	uploadErr error
}

func (m *mockBlobStorage) Upload(key string, content io.Reader) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	m.uploads = append(m.uploads, key)
	return nil
}

func (m *mockBlobStorage) PublicURL(key string) (string, error) {
	return m.baseURL + "/" + key, nil
}

type mockEventDispatcher struct {
	events []domain.Event
}

func (m *mockEventDispatcher) Dispatch(event domain.Event) error {
	m.events = append(m.events, event)
	return nil
}
