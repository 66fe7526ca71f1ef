package dto

import "github.com/shopspring/decimal"

// PeriodoFilter selects a reporting window: either a named period
// (today|week|month|year, with optional year/month for month|year) or an
// explicit from/to pair. Named periods win when both are present.
type PeriodoFilter struct {
	Period string `form:"period" validate:"omitempty,oneof=today week month year"`
	Year   int    `form:"year"   validate:"omitempty,min=2000,max=2100"`
	Month  int    `form:"month"  validate:"omitempty,min=1,max=12"`
	From   string `form:"from"`
	To     string `form:"to"`
}

type ResumenVentas struct {
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// ResumenPeriodoResponse is the headline sales rollup of a period, with the
// invoiced total split at the default tax rate.
type ResumenPeriodoResponse struct {
	From     string           `json:"from"`
	To       string           `json:"to"`
	Resumen  ResumenVentas    `json:"resumen"`
	Desglose DesgloseImpuesto `json:"desglose"`
}

type VentasClienteResponse struct {
	Sales   []VentaListItem `json:"sales"`
	Summary ResumenVentas   `json:"summary"`
}

// VentaItemRow is one sale line of a by-item report: the line joined back to
// its sale header.
type VentaItemRow struct {
	ID             string          `json:"id"` // sale id, for drill-down
	CreatedAt      string          `json:"created_at"`
	TipoPago       string          `json:"tipo_pago"`
	ClientNombre   *string         `json:"client_nombre"`
	ClientCedula   *string         `json:"client_cedula"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Total          decimal.Decimal `json:"total"` // line subtotal
	TaxRate        decimal.Decimal `json:"tax_rate"`
}

type VentasItemResponse struct {
	Sales   []VentaItemRow `json:"sales"`
	Summary ResumenVentas  `json:"summary"`
}

// GastoCategoriaRow feeds the expense breakdown pie chart.
type GastoCategoriaRow struct {
	Categoria string          `json:"categoria"`
	Total     decimal.Decimal `json:"total"`
}

// DesgloseImpuesto is the subtotal/tax/total split of one amount.
type DesgloseImpuesto struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Impuesto decimal.Decimal `json:"impuesto"`
	Total    decimal.Decimal `json:"total"`
}
