package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Sherman95/pos-carmita-villegas/internal/apperrors"
	"github.com/Sherman95/pos-carmita-villegas/internal/dto"
	"github.com/Sherman95/pos-carmita-villegas/internal/model"
	"github.com/Sherman95/pos-carmita-villegas/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FiadoService interface {
	// ListarDeudores groups every sale with outstanding balance by client.
	ListarDeudores(ctx context.Context) ([]dto.DeudorResponse, error)
	RegistrarAbono(ctx context.Context, req dto.AbonoRequest) (*dto.AbonoRegistradoResponse, error)
	HistorialAbonos(ctx context.Context, ventaID uuid.UUID) ([]model.Abono, error)
}

type fiadoService struct {
	ventas repository.VentaRepository
	abonos repository.AbonoRepository
	caja   CajaService
}

func NewFiadoService(ventas repository.VentaRepository, abonos repository.AbonoRepository, caja CajaService) FiadoService {
	return &fiadoService{ventas: ventas, abonos: abonos, caja: caja}
}

// ── ListarDeudores ────────────────────────────────────────────────────────────

func (s *fiadoService) ListarDeudores(ctx context.Context) ([]dto.DeudorResponse, error) {
	pendientes, err := s.ventas.ListPendientes(ctx, saldoEpsilon)
	if err != nil {
		return nil, err
	}

	porCliente := make(map[string]*dto.DeudorResponse)
	for _, v := range pendientes {
		key := "sin-cliente"
		if v.ClientID != nil {
			key = v.ClientID.String()
		}
		deudor, ok := porCliente[key]
		if !ok {
			deudor = &dto.DeudorResponse{
				ClienteID:  key,
				TotalDeuda: decimal.Zero,
			}
			if v.ClientNombre != nil {
				deudor.Nombre = *v.ClientNombre
			}
			if v.Cliente != nil {
				deudor.Nombre = v.Cliente.Nombre
				deudor.Telefono = v.Cliente.Telefono
			}
			porCliente[key] = deudor
		}
		deudor.TotalDeuda = deudor.TotalDeuda.Add(v.SaldoPendiente)
		deudor.VentasPendientes++
		deudor.Ventas = append(deudor.Ventas, dto.VentaPendiente{
			ID:             v.ID.String(),
			CreatedAt:      v.CreatedAt.Format(time.RFC3339),
			Total:          v.Total,
			SaldoPendiente: v.SaldoPendiente,
		})
	}

	out := make([]dto.DeudorResponse, 0, len(porCliente))
	for _, d := range porCliente {
		out = append(out, *d)
	}
	// Biggest debts first; stable order for the UI.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TotalDeuda.Equal(out[j].TotalDeuda) {
			return out[i].TotalDeuda.GreaterThan(out[j].TotalDeuda)
		}
		return out[i].Nombre < out[j].Nombre
	})
	return out, nil
}

// ── RegistrarAbono ────────────────────────────────────────────────────────────

// RegistrarAbono collects a repayment on a credit sale. The ledger append and
// the balance decrement ride the same transaction, and the decrement itself is
// guarded in the store: a concurrent abono that would overdraw the saldo
// matches zero rows instead of committing. The sale's saldo can never drift
// from the sum of its abonos.
func (s *fiadoService) RegistrarAbono(ctx context.Context, req dto.AbonoRequest) (*dto.AbonoRegistradoResponse, error) {
	if _, err := s.caja.SesionAbierta(ctx); err != nil {
		return nil, err
	}

	ventaID, err := uuid.Parse(req.VentaID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	if !req.Monto.IsPositive() {
		return nil, apperrors.ErrMontoInvalido
	}
	venta, err := s.ventas.FindByID(ctx, ventaID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	metodo := req.MetodoPago
	if metodo == "" {
		metodo = model.PagoEfectivo
	}

	abono := &model.Abono{
		VentaID:    venta.ID,
		Monto:      req.Monto,
		MetodoPago: metodo,
		Notas:      model.NotaAbonoDeuda,
	}
	var (
		nuevoSaldo decimal.Decimal
		estado     string
	)
	err = runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		var err error
		nuevoSaldo, estado, err = s.ventas.DescontarSaldoTx(tx, venta.ID, req.Monto, saldoEpsilon)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No row covers the amount: the sale is already settled or the
			// monto exceeds what is left.
			return apperrors.ErrSobrepago
		}
		if err != nil {
			return err
		}
		return s.abonos.CreateTx(tx, abono)
	})
	if err != nil {
		return nil, err
	}

	return &dto.AbonoRegistradoResponse{
		Message:        "Abono registrado",
		AbonoID:        abono.ID.String(),
		SaleID:         venta.ID.String(),
		MontoAbonado:   req.Monto,
		SaldoPendiente: nuevoSaldo,
		EstadoPago:     estado,
	}, nil
}

// ── HistorialAbonos ───────────────────────────────────────────────────────────

func (s *fiadoService) HistorialAbonos(ctx context.Context, ventaID uuid.UUID) ([]model.Abono, error) {
	if _, err := s.ventas.FindByID(ctx, ventaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return s.abonos.ListByVenta(ctx, ventaID)
}
