package repository

import (
	"context"
	"time"

	"github.com/Sherman95/pos-carmita-villegas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClienteRepository is the client directory the POS core consumes. The sale
// path only reads it, plus one write: stamping ultima_visita on each sale.
type ClienteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context) ([]model.Cliente, error)
	TouchUltimaVisitaTx(tx *gorm.DB, id uuid.UUID, when time.Time) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) TouchUltimaVisitaTx(tx *gorm.DB, id uuid.UUID, when time.Time) error {
	return tx.Model(&model.Cliente{}).
		Where("id = ?", id).
		UpdateColumn("ultima_visita", when).Error
}
