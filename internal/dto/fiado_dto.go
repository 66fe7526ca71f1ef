package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbonoRequest struct {
	VentaID    string          `json:"saleId"      validate:"required,uuid"`
	Monto      decimal.Decimal `json:"monto"       validate:"required"`
	MetodoPago string          `json:"metodo_pago" validate:"omitempty,oneof=EFECTIVO TRANSFERENCIA"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// AbonoRegistradoResponse confirms a repayment and reports where the sale's
// balance landed.
type AbonoRegistradoResponse struct {
	Message        string          `json:"message"`
	AbonoID        string          `json:"abono_id"`
	SaleID         string          `json:"saleId"`
	MontoAbonado   decimal.Decimal `json:"monto_abonado"`
	SaldoPendiente decimal.Decimal `json:"saldo_pendiente"`
	EstadoPago     string          `json:"estado_pago"`
}

// VentaPendiente is one open sale inside a debtor's entry.
type VentaPendiente struct {
	ID             string          `json:"id"`
	CreatedAt      string          `json:"created_at"`
	Total          decimal.Decimal `json:"total"`
	SaldoPendiente decimal.Decimal `json:"saldo_pendiente"`
}

// DeudorResponse groups a client's outstanding credit. TotalDeuda always
// equals the sum of the listed sales' saldos — callers can re-derive it.
type DeudorResponse struct {
	ClienteID        string           `json:"cliente_id"`
	Nombre           string           `json:"nombre"`
	Telefono         *string          `json:"telefono"`
	TotalDeuda       decimal.Decimal  `json:"total_deuda"`
	VentasPendientes int              `json:"ventas_pendientes"`
	Ventas           []VentaPendiente `json:"ventas"`
}
