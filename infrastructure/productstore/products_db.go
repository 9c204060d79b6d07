package productstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"warehouse/infrastructure/audit"
	"warehouse/infrastructure/sqlite"
	"warehouse/models"
)

// ErrNotFound is returned for unknown product ids.
var ErrNotFound = errors.New("product not found")

var productColumns = []string{"name", "sku", "location", "price", "quantity"}

// Repository stores products in sqlite. Every mutation writes an audit row in
// the same transaction.
type Repository struct {
	db    *sqlite.DB
	audit *audit.Service
}

func NewRepository(db *sqlite.DB, auditSvc *audit.Service) *Repository {
	if auditSvc == nil {
		auditSvc = audit.NewService()
	}
	return &Repository{db: db, audit: auditSvc}
}

// List returns every product ordered by id.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	err := r.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&items).OrderExpr("p.id ASC").Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (models.Product, error) {
	var p models.Product
	err := r.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		p, err = loadProduct(ctx, tx, id)
		return err
	})
	return p, err
}

// Create inserts p. Any id on p is ignored.
func (r *Repository) Create(ctx context.Context, actor string, p models.Product) (models.Product, error) {
	p.ID = 0
	err := r.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&p).Exec(ctx); err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		return r.audit.Write(ctx, tx, actor, audit.ActionProductCreate, audit.EntityProducts, p.ID, nil, p)
	})
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Update replaces every field of the product with p.ID.
func (r *Repository) Update(ctx context.Context, actor string, p models.Product) (models.Product, error) {
	err := r.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		before, err := loadProduct(ctx, tx, p.ID)
		if err != nil {
			return err
		}
		if err := saveProduct(ctx, tx, &p); err != nil {
			return err
		}
		return r.audit.Write(ctx, tx, actor, audit.ActionProductUpdate, audit.EntityProducts, p.ID, before, p)
	})
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Patch sets only the non-nil fields of p on the product with p.ID.
func (r *Repository) Patch(ctx context.Context, actor string, p models.Product) (models.Product, error) {
	var after models.Product
	err := r.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		before, err := loadProduct(ctx, tx, p.ID)
		if err != nil {
			return err
		}
		after = before
		if p.Name != nil {
			after.Name = p.Name
		}
		if p.StockKeepingUnit != nil {
			after.StockKeepingUnit = p.StockKeepingUnit
		}
		if p.Location != nil {
			after.Location = p.Location
		}
		if p.Price != nil {
			after.Price = p.Price
		}
		if p.Quantity != nil {
			after.Quantity = p.Quantity
		}
		if err := saveProduct(ctx, tx, &after); err != nil {
			return err
		}
		return r.audit.Write(ctx, tx, actor, audit.ActionProductPatch, audit.EntityProducts, p.ID, before, after)
	})
	if err != nil {
		return models.Product{}, err
	}
	return after, nil
}

func (r *Repository) Delete(ctx context.Context, actor string, id int64) error {
	return r.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		before, err := loadProduct(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.Product)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
			return fmt.Errorf("delete product %d: %w", id, err)
		}
		return r.audit.Write(ctx, tx, actor, audit.ActionProductDelete, audit.EntityProducts, id, before, nil)
	})
}

func loadProduct(ctx context.Context, tx bun.Tx, id int64) (models.Product, error) {
	var p models.Product
	err := tx.NewSelect().Model(&p).Where("p.id = ?", id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("load product %d: %w", id, err)
	}
	return p, nil
}

func saveProduct(ctx context.Context, tx bun.Tx, p *models.Product) error {
	_, err := tx.NewUpdate().
		Model(p).
		Column(productColumns...).
		Set("updated_at = CURRENT_TIMESTAMP").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update product %d: %w", p.ID, err)
	}
	return nil
}
