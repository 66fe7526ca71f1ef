package dto

import "github.com/shopspring/decimal"

// PrecioResponse is the public price-check payload. Served from the redis
// cache when warm; never includes anything beyond what the price tag shows.
type PrecioResponse struct {
	Nombre string          `json:"nombre"`
	Precio decimal.Decimal `json:"precio"`
	Tipo   string          `json:"tipo"`
	Stock  *int            `json:"stock,omitempty"`
}
