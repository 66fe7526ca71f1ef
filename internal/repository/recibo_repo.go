package repository

import (
	"context"
	"time"

	"github.com/Sherman95/pos-carmita-villegas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReciboConVenta joins a stored receipt with its sale header.
type ReciboConVenta struct {
	Recibo model.ReciboVenta
	Venta  model.Venta
}

type ReciboRepository interface {
	Create(ctx context.Context, r *model.ReciboVenta) error
	// FindLatestByVenta returns the newest receipt of the sale, optionally
	// restricted to one doc type.
	FindLatestByVenta(ctx context.Context, ventaID uuid.UUID, docType string) (*model.ReciboVenta, error)
	ListByCliente(ctx context.Context, clientID uuid.UUID, from, to *time.Time, docType string) ([]ReciboConVenta, error)
}

type reciboRepo struct{ db *gorm.DB }

func NewReciboRepository(db *gorm.DB) ReciboRepository { return &reciboRepo{db: db} }

func (r *reciboRepo) Create(ctx context.Context, rec *model.ReciboVenta) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *reciboRepo) FindLatestByVenta(ctx context.Context, ventaID uuid.UUID, docType string) (*model.ReciboVenta, error) {
	q := r.db.WithContext(ctx).Where("venta_id = ?", ventaID)
	if docType != "" {
		q = q.Where("doc_type = ?", docType)
	}
	var rec model.ReciboVenta
	err := q.Order("created_at DESC").First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *reciboRepo) ListByCliente(ctx context.Context, clientID uuid.UUID, from, to *time.Time, docType string) ([]ReciboConVenta, error) {
	q := r.db.WithContext(ctx).
		Model(&model.ReciboVenta{}).
		Joins("JOIN sales ON sales.id = sale_receipts.venta_id").
		Where("sales.client_id = ?", clientID)
	if from != nil && to != nil {
		q = q.Where("sales.created_at >= ? AND sales.created_at < ?", *from, (*to).Add(24*time.Hour))
	}
	if docType != "" {
		q = q.Where("sale_receipts.doc_type = ?", docType)
	}

	var recibos []model.ReciboVenta
	if err := q.Order("sale_receipts.created_at DESC").Find(&recibos).Error; err != nil {
		return nil, err
	}

	out := make([]ReciboConVenta, 0, len(recibos))
	for _, rec := range recibos {
		var v model.Venta
		if err := r.db.WithContext(ctx).First(&v, "id = ?", rec.VentaID).Error; err != nil {
			return nil, err
		}
		out = append(out, ReciboConVenta{Recibo: rec, Venta: v})
	}
	return out, nil
}
