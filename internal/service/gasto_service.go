package service

import (
	"context"
	"errors"

	"github.com/Sherman95/pos-carmita-villegas/internal/apperrors"
	"github.com/Sherman95/pos-carmita-villegas/internal/dto"
	"github.com/Sherman95/pos-carmita-villegas/internal/model"
	"github.com/Sherman95/pos-carmita-villegas/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GastoService interface {
	Crear(ctx context.Context, req dto.CrearGastoRequest) (*model.Gasto, error)
	Listar(ctx context.Context, filter dto.GastoFilter) (*dto.GastosResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type gastoService struct {
	gastos repository.GastoRepository
	caja   CajaService
}

func NewGastoService(gastos repository.GastoRepository, caja CajaService) GastoService {
	return &gastoService{gastos: gastos, caja: caja}
}

// Crear registers an expense against the open shift. A cash expense changes
// the expected drawer, so there must be a drawer to change.
func (s *gastoService) Crear(ctx context.Context, req dto.CrearGastoRequest) (*model.Gasto, error) {
	if _, err := s.caja.SesionAbierta(ctx); err != nil {
		return nil, err
	}
	if !req.Monto.IsPositive() {
		return nil, apperrors.ErrMontoInvalido
	}

	gasto := &model.Gasto{
		Descripcion: req.Descripcion,
		Monto:       req.Monto,
		Categoria:   req.Categoria,
		MetodoPago:  req.MetodoPago,
	}
	if gasto.Categoria == "" {
		gasto.Categoria = "GENERAL"
	}
	if gasto.MetodoPago == "" {
		gasto.MetodoPago = model.PagoEfectivo
	}
	if err := s.gastos.Create(ctx, gasto); err != nil {
		return nil, err
	}
	return gasto, nil
}

func (s *gastoService) Listar(ctx context.Context, filter dto.GastoFilter) (*dto.GastosResponse, error) {
	gastos, err := s.gastos.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, g := range gastos {
		total = total.Add(g.Monto)
	}
	return &dto.GastosResponse{Expenses: gastos, Total: total}, nil
}

func (s *gastoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	err := s.gastos.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
