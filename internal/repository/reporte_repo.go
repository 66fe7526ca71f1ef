package repository

import (
	"context"
	"time"

	"github.com/Sherman95/pos-carmita-villegas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DetalleConVenta is one sale line joined back to its header, for by-item
// reports.
type DetalleConVenta struct {
	Detalle model.DetalleVenta
	Venta   model.Venta
}

// ReporteRepository holds the read-only rollup queries. All sums COALESCE to
// zero: an empty period is a valid zero-state, never an error.
type ReporteRepository interface {
	ResumenVentas(ctx context.Context, from, to time.Time) (int64, decimal.Decimal, error)
	VentasPorCliente(ctx context.Context, clientID uuid.UUID, from, to *time.Time) ([]model.Venta, int64, decimal.Decimal, error)
	VentasPorItem(ctx context.Context, itemID uuid.UUID, from, to *time.Time) ([]DetalleConVenta, int64, decimal.Decimal, error)
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

func (r *reporteRepo) ResumenVentas(ctx context.Context, from, to time.Time) (int64, decimal.Decimal, error) {
	type fila struct {
		Count int64
		Total decimal.Decimal
	}
	var f fila
	err := r.db.WithContext(ctx).
		Model(&model.Venta{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS total").
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&f).Error
	return f.Count, f.Total, err
}

func (r *reporteRepo) VentasPorCliente(ctx context.Context, clientID uuid.UUID, from, to *time.Time) ([]model.Venta, int64, decimal.Decimal, error) {
	q := r.db.WithContext(ctx).Model(&model.Venta{}).Where("client_id = ?", clientID)
	if from != nil && to != nil {
		q = q.Where("created_at >= ? AND created_at < ?", *from, *to)
	}

	var ventas []model.Venta
	if err := q.Order("created_at DESC").Find(&ventas).Error; err != nil {
		return nil, 0, decimal.Zero, err
	}

	count := int64(len(ventas))
	total := decimal.Zero
	for _, v := range ventas {
		total = total.Add(v.Total)
	}
	return ventas, count, total, nil
}

func (r *reporteRepo) VentasPorItem(ctx context.Context, itemID uuid.UUID, from, to *time.Time) ([]DetalleConVenta, int64, decimal.Decimal, error) {
	q := r.db.WithContext(ctx).
		Model(&model.DetalleVenta{}).
		Joins("JOIN sales ON sales.id = sale_details.venta_id").
		Where("sale_details.item_id = ?", itemID)
	if from != nil && to != nil {
		q = q.Where("sales.created_at >= ? AND sales.created_at < ?", *from, *to)
	}

	var detalles []model.DetalleVenta
	if err := q.Order("sale_details.created_at DESC").Find(&detalles).Error; err != nil {
		return nil, 0, decimal.Zero, err
	}

	out := make([]DetalleConVenta, 0, len(detalles))
	total := decimal.Zero
	for _, d := range detalles {
		var v model.Venta
		if err := r.db.WithContext(ctx).First(&v, "id = ?", d.VentaID).Error; err != nil {
			return nil, 0, decimal.Zero, err
		}
		out = append(out, DetalleConVenta{Detalle: d, Venta: v})
		total = total.Add(d.Subtotal)
	}
	return out, int64(len(out)), total, nil
}
