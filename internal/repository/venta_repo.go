package repository

import (
	"context"
	"time"

	"github.com/Sherman95/pos-carmita-villegas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaRepository interface {
	// CreateTx inserts the sale header and its detalles (gorm association
	// insert) inside tx.
	CreateTx(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context) ([]model.Venta, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]model.Venta, error)
	// ListPendientes returns OUTSTANDING credit sales with a saldo above the
	// rounding-dust epsilon, newest first, with the client preloaded.
	ListPendientes(ctx context.Context, epsilon decimal.Decimal) ([]model.Venta, error)
	// DescontarSaldoTx decrements a sale's outstanding balance inside tx.
	// The decrement is relative and guarded in the WHERE clause, so two
	// concurrent repayments can never overdraw the saldo: the loser matches
	// zero rows and gets gorm.ErrRecordNotFound. A remainder at or below
	// epsilon settles to zero with estado PAGADO. Returns the new saldo and
	// estado.
	DescontarSaldoTx(tx *gorm.DB, id uuid.UUID, monto, epsilon decimal.Decimal) (decimal.Decimal, string, error)
	// SumFacturado totals invoiced amounts (credit included) over
	// [desde, hasta); nil hasta means now.
	SumFacturado(ctx context.Context, desde time.Time, hasta *time.Time) (decimal.Decimal, error)
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) CreateTx(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Detalles", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) List(ctx context.Context) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) ListByRange(ctx context.Context, from, to time.Time) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at DESC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) ListPendientes(ctx context.Context, epsilon decimal.Decimal) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Where("estado_pago = ? AND saldo_pendiente > ?", model.PagoPendiente, epsilon).
		Order("created_at DESC").
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) DescontarSaldoTx(tx *gorm.DB, id uuid.UUID, monto, epsilon decimal.Decimal) (decimal.Decimal, string, error) {
	res := tx.Model(&model.Venta{}).
		Where("id = ? AND saldo_pendiente >= ?", id, monto).
		UpdateColumn("saldo_pendiente", gorm.Expr("saldo_pendiente - ?", monto))
	if res.Error != nil {
		return decimal.Zero, "", res.Error
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, "", gorm.ErrRecordNotFound
	}

	// The row is locked by the update above for the rest of the tx; read
	// back the remainder and settle rounding dust.
	var v model.Venta
	if err := tx.Select("saldo_pendiente").First(&v, "id = ?", id).Error; err != nil {
		return decimal.Zero, "", err
	}
	if v.SaldoPendiente.GreaterThan(epsilon) {
		return v.SaldoPendiente, model.PagoPendiente, nil
	}
	err := tx.Model(&model.Venta{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"saldo_pendiente": decimal.Zero,
			"estado_pago":     model.PagoCompleto,
		}).Error
	return decimal.Zero, model.PagoCompleto, err
}

func (r *ventaRepo) SumFacturado(ctx context.Context, desde time.Time, hasta *time.Time) (decimal.Decimal, error) {
	type fila struct{ Total decimal.Decimal }
	q := r.db.WithContext(ctx).
		Model(&model.Venta{}).
		Select("COALESCE(SUM(total), 0) AS total").
		Where("created_at >= ?", desde)
	if hasta != nil {
		q = q.Where("created_at < ?", *hasta)
	}
	var f fila
	err := q.Scan(&f).Error
	return f.Total, err
}
