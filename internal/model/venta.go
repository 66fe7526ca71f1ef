package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Metodos de pago aceptados. CREDITO only appears on the sale header — the
// money actually collected (Abono rows) is always EFECTIVO or TRANSFERENCIA.
const (
	PagoEfectivo      = "EFECTIVO"
	PagoTransferencia = "TRANSFERENCIA"
	PagoCredito       = "CREDITO"
)

// Estados de pago de una venta.
const (
	PagoCompleto  = "PAGADO"
	PagoPendiente = "PENDIENTE"
)

// Venta is a sale header. client_nombre / client_cedula are denormalized
// snapshots taken at sale time so history stays legible even if the client
// record is later edited or deleted. TaxRate is likewise frozen at creation.
//
// Invariant: SaldoPendiente == Total − SUM(abonos) and never negative; for
// non-credit sales SaldoPendiente is 0 and EstadoPago PAGADO from creation.
type Venta struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0" json:"tax_rate"`
	TipoPago      string          `gorm:"type:varchar(20);not null" json:"tipo_pago"`
	EstadoPago    string          `gorm:"type:varchar(20);not null;default:'PAGADO';index" json:"estado_pago"`
	SaldoPendiente decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"saldo_pendiente"`
	// MontoPagado is the money collected at sale time (full total for contado,
	// the abono inicial for credito).
	MontoPagado   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"monto_pagado"`
	ClientID      *uuid.UUID      `gorm:"type:uuid;index" json:"client_id"`
	ClientNombre  *string         `json:"client_nombre"`
	ClientCedula  *string         `json:"client_cedula"`
	SesionCajaID  *uuid.UUID      `gorm:"type:uuid;index" json:"sesion_caja_id"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`

	Detalles []DetalleVenta `gorm:"foreignKey:VentaID" json:"detalles,omitempty"`
	Abonos   []Abono        `gorm:"foreignKey:VentaID" json:"abonos,omitempty"`
	Cliente  *Cliente       `gorm:"foreignKey:ClientID" json:"-"`
}

func (Venta) TableName() string { return "sales" }

// DetalleVenta is one line of a sale. NombreProducto is a snapshot; the row
// is created once and never updated.
type DetalleVenta struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	VentaID        uuid.UUID       `gorm:"type:uuid;index;not null" json:"venta_id"`
	ItemID         *uuid.UUID      `gorm:"type:uuid;index" json:"item_id"`
	NombreProducto string          `gorm:"not null" json:"nombre_producto"`
	Cantidad       int             `gorm:"not null" json:"cantidad"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"precio_unitario"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (DetalleVenta) TableName() string { return "sale_details" }

// ReciboVenta stores an opaque receipt document supplied by the caller,
// keyed by sale and document type. The backend never renders PDFs itself.
type ReciboVenta struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	VentaID   uuid.UUID `gorm:"type:uuid;index;not null" json:"venta_id"`
	PDFBase64 string    `gorm:"column:pdf_base64;not null" json:"pdf_base64,omitempty"`
	DocType   string    `gorm:"type:varchar(30);not null;default:'receipt'" json:"doc_type"`
	CreatedAt time.Time `json:"created_at"`
}

func (ReciboVenta) TableName() string { return "sale_receipts" }
