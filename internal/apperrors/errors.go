// Package apperrors defines the sentinel business errors of the POS core.
// Services return these (optionally wrapped with %w); handlers map them to
// HTTP statuses in one place so user-actionable failures never surface as
// generic 500s.
package apperrors

import "errors"

// ErrCajaYaAbierta: attempted to open a session while another is ABIERTA.
var ErrCajaYaAbierta = errors.New("ya existe una caja abierta")

// ErrSinCajaAbierta: close/preview/report requested and no session is ABIERTA,
// or the given id is not the current open session.
var ErrSinCajaAbierta = errors.New("no hay caja abierta")

// ErrCajaCerrada: a sale, abono or gasto was attempted with the register closed.
var ErrCajaCerrada = errors.New("la caja está cerrada: abre turno primero")

// ErrClienteCreditoInvalido: credit sale against a missing/anonymous client.
var ErrClienteCreditoInvalido = errors.New("una venta a crédito requiere un cliente registrado")

// ErrMontoInvalido: non-positive amount, or an upfront payment / declared
// total outside the valid range.
var ErrMontoInvalido = errors.New("monto inválido")

// ErrSobrepago: an abono exceeds the sale's outstanding balance.
var ErrSobrepago = errors.New("el abono supera el saldo pendiente")

// ErrNotFound: referenced session/sale/client/item does not exist.
var ErrNotFound = errors.New("recurso no encontrado")
