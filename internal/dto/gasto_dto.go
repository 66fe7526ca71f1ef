package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Sherman95/pos-carmita-villegas/internal/model"
)

type CrearGastoRequest struct {
	Descripcion string          `json:"descripcion" validate:"required,min=3"`
	Monto       decimal.Decimal `json:"monto"       validate:"required"`
	Categoria   string          `json:"categoria"   validate:"omitempty,max=40"`
	MetodoPago  string          `json:"metodo_pago" validate:"omitempty,oneof=EFECTIVO TRANSFERENCIA"`
}

// GastoFilter is bound from the query string of GET /v1/gastos.
// Categoria "TODAS" (or empty) disables the category filter.
type GastoFilter struct {
	From      string `form:"from"`
	To        string `form:"to"`
	Categoria string `form:"categoria"`
}

// GastosResponse returns the rows plus their aggregate so the client never
// re-adds floating point money.
type GastosResponse struct {
	Expenses []model.Gasto   `json:"expenses"`
	Total    decimal.Decimal `json:"total"`
}
