package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Sherman95/pos-carmita-villegas/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ItemID   string `json:"item_id"  validate:"required,uuid"`
	Cantidad int    `json:"cantidad" validate:"required,min=1"`
}

// RegistrarVentaRequest creates a sale. Total is the tax-inclusive amount the
// client believes it charged; the server recomputes it from catalog prices
// and rejects mismatches. TaxRate is snapshotted onto the sale as-is.
type RegistrarVentaRequest struct {
	Items        []ItemVentaRequest `json:"items"         validate:"required,min=1,dive"`
	Total        decimal.Decimal    `json:"total"         validate:"required"`
	TipoPago     string             `json:"tipo_pago"     validate:"required,oneof=EFECTIVO TRANSFERENCIA CREDITO"`
	ClientID     *string            `json:"client_id"     validate:"omitempty,uuid"`
	TaxRate      decimal.Decimal    `json:"tax_rate"      validate:"min=0"`
	AbonoInicial decimal.Decimal    `json:"abono_inicial" validate:"min=0"`
}

type GuardarReciboRequest struct {
	PDFBase64 string `json:"pdfBase64" validate:"required"`
	DocType   string `json:"docType"   validate:"omitempty,max=30"`
}

// VentaRangoFilter is bound from the query string of GET /v1/ventas/rango.
type VentaRangoFilter struct {
	From string `form:"from" validate:"required"`
	To   string `form:"to"   validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VentaCreadaResponse struct {
	Message      string  `json:"message"`
	SaleID       string  `json:"saleId"`
	ClientNombre *string `json:"client_nombre"`
}

// VentaListItem is the flattened sale row for list/range endpoints.
type VentaListItem struct {
	ID           string          `json:"id"`
	Total        decimal.Decimal `json:"total"`
	TipoPago     string          `json:"tipo_pago"`
	EstadoPago   string          `json:"estado_pago"`
	ClientID     *string         `json:"client_id"`
	ClientNombre *string         `json:"client_nombre"`
	ClientCedula *string         `json:"client_cedula"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	CreatedAt    string          `json:"created_at"`
}

type VentaDetalleResponse struct {
	Sale     VentaListItem        `json:"sale"`
	Detalles []model.DetalleVenta `json:"details"`
}

type ReciboCreadoResponse struct {
	ReceiptID string `json:"receiptId"`
	DocType   string `json:"doc_type"`
	CreatedAt string `json:"created_at"`
}

// ReciboListItem joins a stored receipt with its sale header for the
// per-client receipt browser.
type ReciboListItem struct {
	ReceiptID    string          `json:"receipt_id"`
	SaleID       string          `json:"sale_id"`
	DocType      string          `json:"doc_type"`
	Total        decimal.Decimal `json:"total"`
	TipoPago     string          `json:"tipo_pago"`
	ClientNombre *string         `json:"client_nombre"`
	ClientCedula *string         `json:"client_cedula"`
	SaleCreated  string          `json:"sale_created_at"`
	Created      string          `json:"receipt_created_at"`
}
