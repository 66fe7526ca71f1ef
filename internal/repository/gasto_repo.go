package repository

import (
	"context"
	"time"

	"github.com/Sherman95/pos-carmita-villegas/internal/dto"
	"github.com/Sherman95/pos-carmita-villegas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TotalesGastos splits expense sums by payment method.
type TotalesGastos struct {
	Efectivo decimal.Decimal
	Digital  decimal.Decimal
}

func (t TotalesGastos) Total() decimal.Decimal { return t.Efectivo.Add(t.Digital) }

type GastoRepository interface {
	Create(ctx context.Context, g *model.Gasto) error
	List(ctx context.Context, filter dto.GastoFilter) ([]model.Gasto, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SumPorMetodo aggregates over [desde, hasta); nil hasta means now.
	SumPorMetodo(ctx context.Context, desde time.Time, hasta *time.Time) (TotalesGastos, error)
	SumPorCategoria(ctx context.Context, from, to time.Time) ([]dto.GastoCategoriaRow, error)
}

type gastoRepo struct{ db *gorm.DB }

func NewGastoRepository(db *gorm.DB) GastoRepository { return &gastoRepo{db: db} }

func (r *gastoRepo) Create(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gastoRepo) List(ctx context.Context, filter dto.GastoFilter) ([]model.Gasto, error) {
	q := r.db.WithContext(ctx).Model(&model.Gasto{})
	if filter.From != "" && filter.To != "" {
		// Cover the whole final day of the range.
		q = q.Where("fecha >= ?::date AND fecha < (?::date + INTERVAL '1 day')", filter.From, filter.To)
	}
	if filter.Categoria != "" && filter.Categoria != "TODAS" {
		q = q.Where("categoria = ?", filter.Categoria)
	}
	var gastos []model.Gasto
	err := q.Order("fecha DESC").Find(&gastos).Error
	return gastos, err
}

func (r *gastoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Gasto{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gastoRepo) SumPorMetodo(ctx context.Context, desde time.Time, hasta *time.Time) (TotalesGastos, error) {
	type fila struct {
		MetodoPago string
		Total      decimal.Decimal
	}
	q := r.db.WithContext(ctx).
		Model(&model.Gasto{}).
		Select("metodo_pago, COALESCE(SUM(monto), 0) AS total").
		Where("fecha >= ?", desde)
	if hasta != nil {
		q = q.Where("fecha < ?", *hasta)
	}
	var filas []fila
	if err := q.Group("metodo_pago").Scan(&filas).Error; err != nil {
		return TotalesGastos{}, err
	}
	var t TotalesGastos
	for _, f := range filas {
		if f.MetodoPago == model.PagoEfectivo {
			t.Efectivo = t.Efectivo.Add(f.Total)
		} else {
			t.Digital = t.Digital.Add(f.Total)
		}
	}
	return t, nil
}

func (r *gastoRepo) SumPorCategoria(ctx context.Context, from, to time.Time) ([]dto.GastoCategoriaRow, error) {
	var filas []dto.GastoCategoriaRow
	err := r.db.WithContext(ctx).
		Model(&model.Gasto{}).
		Select("categoria, COALESCE(SUM(monto), 0) AS total").
		Where("fecha >= ? AND fecha < ?", from, to).
		Group("categoria").
		Order("total DESC").
		Scan(&filas).Error
	return filas, err
}
