package repository

import (
	"context"
	"time"

	"github.com/Sherman95/pos-carmita-villegas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TotalesCobros aggregates collected money over an interval, split by method
// and by origin. Contado rows are the one-shot payments of non-credit sales;
// Abonos covers both initial deposits and later debt repayments — so
// Efectivo* + Digital* together count every collection exactly once.
type TotalesCobros struct {
	EfectivoContado decimal.Decimal
	EfectivoAbonos  decimal.Decimal
	DigitalContado  decimal.Decimal
	DigitalAbonos   decimal.Decimal
}

func (t TotalesCobros) Efectivo() decimal.Decimal { return t.EfectivoContado.Add(t.EfectivoAbonos) }
func (t TotalesCobros) Digital() decimal.Decimal  { return t.DigitalContado.Add(t.DigitalAbonos) }
func (t TotalesCobros) Total() decimal.Decimal    { return t.Efectivo().Add(t.Digital()) }

type AbonoRepository interface {
	CreateTx(tx *gorm.DB, a *model.Abono) error
	ListByVenta(ctx context.Context, ventaID uuid.UUID) ([]model.Abono, error)
	// SumCobros aggregates over [desde, hasta); a nil hasta means "now".
	// An interval with no entries yields all-zero totals.
	SumCobros(ctx context.Context, desde time.Time, hasta *time.Time) (TotalesCobros, error)
}

type abonoRepo struct{ db *gorm.DB }

func NewAbonoRepository(db *gorm.DB) AbonoRepository { return &abonoRepo{db: db} }

func (r *abonoRepo) CreateTx(tx *gorm.DB, a *model.Abono) error {
	return tx.Create(a).Error
}

func (r *abonoRepo) ListByVenta(ctx context.Context, ventaID uuid.UUID) ([]model.Abono, error) {
	var abonos []model.Abono
	err := r.db.WithContext(ctx).
		Where("venta_id = ?", ventaID).
		Order("created_at ASC").
		Find(&abonos).Error
	return abonos, err
}

func (r *abonoRepo) SumCobros(ctx context.Context, desde time.Time, hasta *time.Time) (TotalesCobros, error) {
	type fila struct {
		MetodoPago string
		Contado    bool
		Total      decimal.Decimal
	}

	q := r.db.WithContext(ctx).
		Model(&model.Abono{}).
		Select("metodo_pago, notas = ? AS contado, COALESCE(SUM(monto), 0) AS total", model.NotaContado).
		Where("created_at >= ?", desde)
	if hasta != nil {
		q = q.Where("created_at < ?", *hasta)
	}

	var filas []fila
	if err := q.Group("metodo_pago, contado").Scan(&filas).Error; err != nil {
		return TotalesCobros{}, err
	}

	var t TotalesCobros
	for _, f := range filas {
		switch {
		case f.MetodoPago == model.PagoEfectivo && f.Contado:
			t.EfectivoContado = t.EfectivoContado.Add(f.Total)
		case f.MetodoPago == model.PagoEfectivo:
			t.EfectivoAbonos = t.EfectivoAbonos.Add(f.Total)
		case f.Contado:
			t.DigitalContado = t.DigitalContado.Add(f.Total)
		default:
			t.DigitalAbonos = t.DigitalAbonos.Add(f.Total)
		}
	}
	return t, nil
}
