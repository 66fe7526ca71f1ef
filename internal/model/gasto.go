package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gasto is a business expense, independent of any sale. It only relates to a
// cash session through time-range queries at reconciliation time.
type Gasto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Descripcion string          `gorm:"not null" json:"descripcion"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monto"`
	Categoria   string          `gorm:"type:varchar(40);not null;default:'GENERAL'" json:"categoria"`
	MetodoPago  string          `gorm:"type:varchar(20);not null;default:'EFECTIVO'" json:"metodo_pago"`
	Fecha       time.Time       `gorm:"index;autoCreateTime" json:"fecha"`
}

func (Gasto) TableName() string { return "expenses" }
