package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de item del catalogo.
const (
	ItemProducto = "PRODUCTO"
	ItemServicio = "SERVICIO"
)

// Item is a catalog entry: a physical product or a salon service.
// Stock is nil for services; selling a product decrements it.
type Item struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Nombre    string          `gorm:"index;not null" json:"nombre"`
	Precio    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"precio"`
	Tipo      string          `gorm:"type:varchar(20);not null" json:"tipo"`
	Stock     *int            `json:"stock"`
	Active    bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Item) TableName() string { return "items" }
