package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de una sesion de caja.
const (
	SesionAbierta = "ABIERTA"
	SesionCerrada = "CERRADA"
)

// SesionCaja represents one register shift, from opening float to arqueo.
// Estado: "ABIERTA" | "CERRADA". At most one row may be ABIERTA at any time;
// a partial unique index in the store enforces it (see infra.NewDatabase).
// Once CERRADA the row is frozen and never mutated again.
type SesionCaja struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UsuarioID     *uuid.UUID      `gorm:"type:uuid" json:"usuario_id"`
	MontoInicial  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monto_inicial"`
	Estado        string          `gorm:"type:varchar(20);not null;default:'ABIERTA';index" json:"estado"`
	FechaApertura time.Time       `gorm:"not null;autoCreateTime" json:"fecha_apertura"`
	FechaCierre   *time.Time      `json:"fecha_cierre"`

	// Closing snapshot — computed server-side at the instant of close.
	TotalVentasSistema *decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_ventas_sistema"`
	TotalGastosSistema *decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_gastos_sistema"`
	MontoEsperado      *decimal.Decimal `gorm:"type:decimal(12,2)" json:"monto_esperado"`
	MontoReal          *decimal.Decimal `gorm:"type:decimal(12,2)" json:"monto_real"`
	Diferencia         *decimal.Decimal `gorm:"type:decimal(12,2)" json:"diferencia"`
	Observaciones      *string          `json:"observaciones"`
}

func (SesionCaja) TableName() string { return "cash_registers" }
