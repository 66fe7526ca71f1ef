package service

import (
	"github.com/Sherman95/pos-carmita-villegas/internal/apperrors"
	"github.com/Sherman95/pos-carmita-villegas/internal/dto"

	"github.com/shopspring/decimal"
)

// Modos de desglose de impuesto.
const (
	ImpuestoIncluido = "inclusive" // monto trae el impuesto dentro
	ImpuestoAditivo  = "aditivo"   // monto es el subtotal, impuesto encima
)

// DesglosarImpuesto splits an amount into subtotal/tax/total at the given
// rate (0.12 = 12%).
//
// In "inclusive" mode, monto is the tax-inclusive total:
//
//	subtotal = monto / (1 + rate)
//
// In "aditivo" mode, monto is the pre-tax subtotal:
//
//	impuesto = monto × rate
//
// Results round half-up to cents and always satisfy
// subtotal + impuesto == total.
func DesglosarImpuesto(monto, rate decimal.Decimal, modo string) (dto.DesgloseImpuesto, error) {
	if monto.IsNegative() || rate.IsNegative() {
		return dto.DesgloseImpuesto{}, apperrors.ErrMontoInvalido
	}

	switch modo {
	case ImpuestoIncluido, "":
		total := monto.Round(2)
		subtotal := monto.Div(decimal.NewFromInt(1).Add(rate)).Round(2)
		return dto.DesgloseImpuesto{
			Subtotal: subtotal,
			Impuesto: total.Sub(subtotal),
			Total:    total,
		}, nil
	case ImpuestoAditivo:
		subtotal := monto.Round(2)
		impuesto := subtotal.Mul(rate).Round(2)
		return dto.DesgloseImpuesto{
			Subtotal: subtotal,
			Impuesto: impuesto,
			Total:    subtotal.Add(impuesto),
		}, nil
	default:
		return dto.DesgloseImpuesto{}, apperrors.ErrMontoInvalido
	}
}
