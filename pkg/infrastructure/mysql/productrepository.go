package mysql

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/ruansmarques/MedFerpa-Store-2/pkg/catalog/domain/model"
)

// ProductRepository stores products in MySQL. The nested parts of the
// document (badges, features, sizes, color variants) live in JSON columns,
// mirroring the document-store shape the storefront was written against.
type ProductRepository struct {
	db            *sqlx.DB
	watchInterval time.Duration
}

func NewProductRepository(db *sqlx.DB, watchInterval time.Duration) *ProductRepository {
	if watchInterval <= 0 {
		watchInterval = 2 * time.Second
	}
	return &ProductRepository{db: db, watchInterval: watchInterval}
}

type productRow struct {
	ID          string          `db:"id"`
	Slug        string          `db:"slug"`
	Name        string          `db:"name"`
	PriceCents  int64           `db:"price_cents"`
	Category    string          `db:"category"`
	Badges      json.RawMessage `db:"badges"`
	Description string          `db:"description"`
	Features    json.RawMessage `db:"features"`
	Sizes       json.RawMessage `db:"sizes"`
	Colors      json.RawMessage `db:"colors"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func toRow(p *model.Product) (*productRow, error) {
	badges, err := json.Marshal(p.Badges)
	if err != nil {
		return nil, errors.Wrap(err, "marshal badges")
	}
	features, err := json.Marshal(p.Features)
	if err != nil {
		return nil, errors.Wrap(err, "marshal features")
	}
	sizes, err := json.Marshal(p.Sizes)
	if err != nil {
		return nil, errors.Wrap(err, "marshal sizes")
	}
	colors, err := json.Marshal(p.Colors)
	if err != nil {
		return nil, errors.Wrap(err, "marshal colors")
	}
	return &productRow{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		PriceCents:  p.PriceCents,
		Category:    p.Category,
		Badges:      badges,
		Description: p.Description,
		Features:    features,
		Sizes:       sizes,
		Colors:      colors,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func (r *productRow) toModel() (*model.Product, error) {
	p := &model.Product{
		ID:          r.ID,
		Slug:        r.Slug,
		Name:        r.Name,
		PriceCents:  r.PriceCents,
		Category:    r.Category,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if err := json.Unmarshal(r.Badges, &p.Badges); err != nil {
		return nil, errors.Wrap(err, "decode badges")
	}
	if err := json.Unmarshal(r.Features, &p.Features); err != nil {
		return nil, errors.Wrap(err, "decode features")
	}
	if err := json.Unmarshal(r.Sizes, &p.Sizes); err != nil {
		return nil, errors.Wrap(err, "decode sizes")
	}
	if err := json.Unmarshal(r.Colors, &p.Colors); err != nil {
		return nil, errors.Wrap(err, "decode colors")
	}
	return p, nil
}

func (r *ProductRepository) NextID() (string, error) {
	return uuid.NewString(), nil
}

func (r *ProductRepository) Create(product *model.Product) error {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	row, err := toRow(product)
	if err != nil {
		return err
	}

	_, err = r.db.NamedExec(`
		INSERT INTO products (id, slug, name, price_cents, category, badges, description, features, sizes, colors, created_at, updated_at)
		VALUES (:id, :slug, :name, :price_cents, :category, :badges, :description, :features, :sizes, :colors, :created_at, :updated_at)`,
		row)
	return errors.Wrap(err, "insert product")
}

func (r *ProductRepository) Update(product *model.Product) error {
	product.UpdatedAt = time.Now().UTC()

	row, err := toRow(product)
	if err != nil {
		return err
	}

	result, err := r.db.NamedExec(`
		UPDATE products
		SET slug = :slug, name = :name, price_cents = :price_cents, category = :category,
		    badges = :badges, description = :description, features = :features,
		    sizes = :sizes, colors = :colors, updated_at = :updated_at
		WHERE id = :id`,
		row)
	if err != nil {
		return errors.Wrap(err, "update product")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update product rows affected")
	}
	if affected == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete product rows affected")
	}
	if affected == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Find(id string) (*model.Product, error) {
	var row productRow
	err := r.db.Get(&row, `SELECT * FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select product")
	}
	return row.toModel()
}

func (r *ProductRepository) List() ([]*model.Product, error) {
	var rows []productRow
	if err := r.db.Select(&rows, `SELECT * FROM products ORDER BY created_at DESC, id`); err != nil {
		return nil, errors.Wrap(err, "select products")
	}

	products := make([]*model.Product, 0, len(rows))
	for i := range rows {
		product, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// Watch polls the table and delivers the full list whenever its contents
// change. MySQL has no push channel, so this approximates the hosted
// document store's live snapshots; cancel stops the polling goroutine.
func (r *ProductRepository) Watch(onChange func(products []*model.Product)) (func(), error) {
	products, err := r.List()
	if err != nil {
		return nil, err
	}
	onChange(products)

	last, err := json.Marshal(products)
	if err != nil {
		return nil, errors.Wrap(err, "fingerprint products")
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(r.watchInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				products, err := r.List()
				if err != nil {
					log.WithError(err).Warn("product watch poll")
					continue
				}
				fingerprint, err := json.Marshal(products)
				if err != nil {
					log.WithError(err).Warn("product watch fingerprint")
					continue
				}
				if bytes.Equal(fingerprint, last) {
					continue
				}
				last = fingerprint
				onChange(products)
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }, nil
}
