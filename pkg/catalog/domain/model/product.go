package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNameRequired    = errors.New("product name is required")
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrNoColorVariants = errors.New("product needs at least one color variant")
)

// ColorVariant is a named, colored presentation of a product with its own
// image set. It has no lifecycle of its own: it lives and dies with the
// parent product.
type ColorVariant struct {
	Name   string   `json:"name"`
	Hex    string   `json:"hex"`
	Images []string `json:"images"`
}

type Product struct {
	ID          string         `json:"id"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	PriceCents  int64          `json:"priceCents"`
	Category    string         `json:"category"`
	Badges      []string       `json:"badges"`
	Description string         `json:"description"`
	Features    []string       `json:"features"`
	Sizes       []string       `json:"sizes"`
	Colors      []ColorVariant `json:"colors"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Displayable reports whether the product has an image to show. Products
// without a color variant never reach the store because Validate rejects
// them before persistence.
func (p *Product) Displayable() bool {
	return len(p.Colors) > 0 && len(p.Colors[0].Images) > 0
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	if p.PriceCents < 0 {
		return ErrNegativePrice
	}
	if len(p.Colors) == 0 {
		return ErrNoColorVariants
	}
	return nil
}

var slugStrip = regexp.MustCompile(`[^\w-]+`)

// DeriveSlug builds the URL-safe slug from a display name: lowercase, spaces
// to hyphens, everything outside word characters and hyphens dropped.
func DeriveSlug(name string) string {
	slug := strings.ReplaceAll(strings.ToLower(name), " ", "-")
	return slugStrip.ReplaceAllString(slug, "")
}

// ProductRepository is the document-store contract for the products
// collection. List and the Watch deliveries are ordered by creation time,
// newest first. Create assigns the creation timestamp on the store side.
type ProductRepository interface {
	NextID() (string, error)
	Create(product *Product) error
	Update(product *Product) error
	Delete(id string) error
	Find(id string) (*Product, error)
	List() ([]*Product, error)
	Watch(onChange func(products []*Product)) (cancel func(), err error)
}
