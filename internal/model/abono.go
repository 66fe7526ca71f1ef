package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Notas values distinguishing the origin of a ledger entry.
// NotaContado marks the full payment of a non-credit sale; NotaAbonoInicial
// the upfront deposit of a credit sale; NotaAbonoDeuda a later repayment.
const (
	NotaContado      = "Pago al contado"
	NotaAbonoInicial = "Abono Inicial"
	NotaAbonoDeuda   = "Abono de Deuda"
)

// Abono is an append-only ledger entry for money received against a sale.
// Entries are NEVER modified or deleted; the sum of a sale's abonos can
// never exceed the sale's total.
type Abono struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	VentaID    uuid.UUID       `gorm:"type:uuid;index;not null" json:"venta_id"`
	Monto      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monto"`
	MetodoPago string          `gorm:"type:varchar(20);not null" json:"metodo_pago"`
	Notas      string          `gorm:"not null" json:"notas"`
	CreatedAt  time.Time       `gorm:"index" json:"created_at"`
}

func (Abono) TableName() string { return "payment_history" }
