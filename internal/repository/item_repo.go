package repository

import (
	"context"

	"github.com/Sherman95/pos-carmita-villegas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemRepository is the catalog. Sale recording resolves name and price
// snapshots through it and decrements product stock inside the sale
// transaction; catalog CRUD itself lives elsewhere.
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	// DecrementStockTx subtracts qty from a product's stock. Services and
	// products without stock tracking are left untouched.
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error
}

type itemRepo struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) ItemRepository { return &itemRepo{db: db} }

func (r *itemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).First(&it, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) List(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error {
	return tx.Model(&model.Item{}).
		Where("id = ? AND tipo = ? AND stock IS NOT NULL", id, model.ItemProducto).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty)).Error
}
