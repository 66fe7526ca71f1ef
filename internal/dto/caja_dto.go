package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Sherman95/pos-carmita-villegas/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	MontoInicial decimal.Decimal `json:"monto_inicial" validate:"min=0"`
	UsuarioID    *string         `json:"usuario_id"    validate:"omitempty,uuid"`
}

// CerrarCajaRequest closes the current session. TotalVentas / TotalGastos are
// accepted for display parity with the client, but monto_esperado is always
// re-derived server-side — a stale or tampered client value never wins.
type CerrarCajaRequest struct {
	MontoReal     decimal.Decimal `json:"monto_real"    validate:"min=0"`
	TotalVentas   decimal.Decimal `json:"total_ventas"  validate:"min=0"`
	TotalGastos   decimal.Decimal `json:"total_gastos"  validate:"min=0"`
	Observaciones *string         `json:"observaciones"`
}

// HistorialFilter is bound from the query string of GET /v1/caja/historial.
// Dates are YYYY-MM-DD; both empty means "latest 50 closed sessions". A lone
// bound filters half-open.
type HistorialFilter struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EstadoCajaResponse struct {
	IsOpen  bool              `json:"isOpen"`
	Session *model.SesionCaja `json:"session,omitempty"`
	Message string            `json:"message,omitempty"`
}

// ResumenEfectivo breaks down the cash/digital collections of the open
// interval for the blind-count screen.
type ResumenEfectivo struct {
	EfectivoVentas decimal.Decimal `json:"efectivo_ventas"`
	EfectivoAbonos decimal.Decimal `json:"efectivo_abonos"`
	DigitalTotal   decimal.Decimal `json:"digital_total"`
}

// PreviewCierreResponse is the side-effect-free closing preview. Calling it
// repeatedly before the arqueo is safe; nothing is persisted.
type PreviewCierreResponse struct {
	SessionID       string          `json:"session_id"`
	FechaApertura   string          `json:"fecha_apertura"`
	MontoInicial    decimal.Decimal `json:"monto_inicial"`
	Resumen         ResumenEfectivo `json:"resumen"`
	TotalVentas     decimal.Decimal `json:"total_ventas"`     // money actually collected
	TotalFacturado  decimal.Decimal `json:"total_facturado"`  // invoiced, credit included
	CreditoOtorgado decimal.Decimal `json:"credito_otorgado"` // facturado − collected
	TotalGastos     decimal.Decimal `json:"total_gastos"`
	GastosEfectivo  decimal.Decimal `json:"gastos_en_efectivo"`
	MontoEsperado   decimal.Decimal `json:"monto_esperado"`
}

// ReporteCierreResponse replays the reconciliation of a CLOSED session over
// its exact [apertura, cierre] interval.
type ReporteCierreResponse struct {
	Sesion              model.SesionCaja `json:"sesion"`
	TotalVentasEfectivo decimal.Decimal  `json:"total_ventas_efectivo"`
	TotalGastos         decimal.Decimal  `json:"total_gastos"`
	Esperado            decimal.Decimal  `json:"esperado"`
	MontoReal           decimal.Decimal  `json:"monto_real"`
	Diferencia          decimal.Decimal  `json:"diferencia"`
}
