package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is the client directory record. The POS core only reads it — to
// resolve credit-sale targets and snapshot nombre/cedula onto sales.
type Cliente struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Nombre       string     `gorm:"index;not null" json:"nombre"`
	Cedula       *string    `gorm:"uniqueIndex" json:"cedula"`
	Telefono     *string    `json:"telefono"`
	Email        *string    `json:"email"`
	Direccion    *string    `json:"direccion"`
	UltimaVisita *time.Time `json:"ultima_visita"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Cliente) TableName() string { return "clients" }
