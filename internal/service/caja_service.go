package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sherman95/pos-carmita-villegas/internal/apperrors"
	"github.com/Sherman95/pos-carmita-villegas/internal/dto"
	"github.com/Sherman95/pos-carmita-villegas/internal/model"
	"github.com/Sherman95/pos-carmita-villegas/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CajaService interface {
	Abrir(ctx context.Context, req dto.AbrirCajaRequest) (*model.SesionCaja, error)
	Estado(ctx context.Context) (*dto.EstadoCajaResponse, error)
	PreviewCierre(ctx context.Context) (*dto.PreviewCierreResponse, error)
	Cerrar(ctx context.Context, sesionID uuid.UUID, req dto.CerrarCajaRequest) (*model.SesionCaja, error)
	Historial(ctx context.Context, filter dto.HistorialFilter) ([]model.SesionCaja, error)
	ReporteCierre(ctx context.Context, sesionID uuid.UUID) (*dto.ReporteCierreResponse, error)
	// SesionAbierta is the open-register guard used by ventas, abonos and
	// gastos: every cash-handling operation requires an open shift.
	SesionAbierta(ctx context.Context) (*model.SesionCaja, error)
}

type cajaService struct {
	repo   repository.CajaRepository
	ventas repository.VentaRepository
	abonos repository.AbonoRepository
	gastos repository.GastoRepository
}

func NewCajaService(
	repo repository.CajaRepository,
	ventas repository.VentaRepository,
	abonos repository.AbonoRepository,
	gastos repository.GastoRepository,
) CajaService {
	return &cajaService{repo: repo, ventas: ventas, abonos: abonos, gastos: gastos}
}

const historialDefaultLimit = 50

// ── Abrir ─────────────────────────────────────────────────────────────────────

// Abrir opens a new shift. The check-and-create runs inside one transaction
// and the partial unique index backstops it, so two concurrent opens can
// never both succeed.
func (s *cajaService) Abrir(ctx context.Context, req dto.AbrirCajaRequest) (*model.SesionCaja, error) {
	sesion := &model.SesionCaja{
		MontoInicial: req.MontoInicial,
		Estado:       model.SesionAbierta,
	}
	if req.UsuarioID != nil {
		if uid, err := uuid.Parse(*req.UsuarioID); err == nil {
			sesion.UsuarioID = &uid
		}
	}

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.FindSesionAbiertaTx(tx); err == nil {
			return apperrors.ErrCajaYaAbierta
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return s.repo.CreateSesionTx(tx, sesion)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrCajaYaAbierta
		}
		return nil, err
	}
	return sesion, nil
}

// ── Estado ────────────────────────────────────────────────────────────────────

func (s *cajaService) Estado(ctx context.Context) (*dto.EstadoCajaResponse, error) {
	sesion, err := s.repo.FindSesionAbierta(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &dto.EstadoCajaResponse{IsOpen: false, Message: "Caja cerrada"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &dto.EstadoCajaResponse{IsOpen: true, Session: sesion, Message: "Caja abierta"}, nil
}

// ── PreviewCierre ─────────────────────────────────────────────────────────────

// PreviewCierre computes the expected drawer for the current shift without
// persisting anything; it is safe to call any number of times before Cerrar.
func (s *cajaService) PreviewCierre(ctx context.Context) (*dto.PreviewCierreResponse, error) {
	sesion, err := s.repo.FindSesionAbierta(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrSinCajaAbierta
	}
	if err != nil {
		return nil, err
	}
	return s.calcularCierre(ctx, sesion, nil)
}

// calcularCierre aggregates collections, invoicing and expenses over
// [fecha_apertura, hasta) and derives the expected drawer cash:
//
//	esperado = monto_inicial + efectivo cobrado − gastos en efectivo
//
// Every collection (contado, abono inicial, abono de deuda) writes exactly
// one Abono row, so summing the ledger counts each peso once.
func (s *cajaService) calcularCierre(ctx context.Context, sesion *model.SesionCaja, hasta *time.Time) (*dto.PreviewCierreResponse, error) {
	cobros, err := s.abonos.SumCobros(ctx, sesion.FechaApertura, hasta)
	if err != nil {
		return nil, fmt.Errorf("sumando cobros: %w", err)
	}
	gastos, err := s.gastos.SumPorMetodo(ctx, sesion.FechaApertura, hasta)
	if err != nil {
		return nil, fmt.Errorf("sumando gastos: %w", err)
	}
	facturado, err := s.ventas.SumFacturado(ctx, sesion.FechaApertura, hasta)
	if err != nil {
		return nil, fmt.Errorf("sumando facturado: %w", err)
	}

	esperado := sesion.MontoInicial.Add(cobros.Efectivo()).Sub(gastos.Efectivo)

	return &dto.PreviewCierreResponse{
		SessionID:     sesion.ID.String(),
		FechaApertura: sesion.FechaApertura.Format(time.RFC3339),
		MontoInicial:  sesion.MontoInicial,
		Resumen: dto.ResumenEfectivo{
			EfectivoVentas: cobros.EfectivoContado,
			EfectivoAbonos: cobros.EfectivoAbonos,
			DigitalTotal:   cobros.Digital(),
		},
		TotalVentas:     cobros.Total(),
		TotalFacturado:  facturado,
		CreditoOtorgado: facturado.Sub(cobros.Total()),
		TotalGastos:     gastos.Total(),
		GastosEfectivo:  gastos.Efectivo,
		MontoEsperado:   esperado,
	}, nil
}

// ── Cerrar ────────────────────────────────────────────────────────────────────

// Cerrar performs the arqueo. The expected amount is recomputed here, at the
// instant of close, from the same query PreviewCierre uses — a stale or
// tampered client value cannot reach the stored reconciliation. The
// transition is terminal: a closed session is never touched again.
func (s *cajaService) Cerrar(ctx context.Context, sesionID uuid.UUID, req dto.CerrarCajaRequest) (*model.SesionCaja, error) {
	sesion, err := s.repo.FindSesionAbierta(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrSinCajaAbierta
	}
	if err != nil {
		return nil, err
	}
	if sesion.ID != sesionID {
		return nil, apperrors.ErrSinCajaAbierta
	}

	ahora := time.Now()
	preview, err := s.calcularCierre(ctx, sesion, &ahora)
	if err != nil {
		return nil, err
	}

	esperado := preview.MontoEsperado
	diferencia := req.MontoReal.Sub(esperado)
	totalVentas := preview.TotalVentas
	totalGastos := preview.TotalGastos

	sesion.Estado = model.SesionCerrada
	sesion.FechaCierre = &ahora
	sesion.TotalVentasSistema = &totalVentas
	sesion.TotalGastosSistema = &totalGastos
	sesion.MontoEsperado = &esperado
	sesion.MontoReal = &req.MontoReal
	sesion.Diferencia = &diferencia
	sesion.Observaciones = req.Observaciones

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateSesionTx(tx, sesion)
	})
	if err != nil {
		return nil, err
	}
	return sesion, nil
}

// ── Historial ─────────────────────────────────────────────────────────────────

func (s *cajaService) Historial(ctx context.Context, filter dto.HistorialFilter) ([]model.SesionCaja, error) {
	var from, to *time.Time
	if filter.From != "" {
		f, err := time.Parse("2006-01-02", filter.From)
		if err != nil {
			return nil, fmt.Errorf("%w: from inválido", apperrors.ErrMontoInvalido)
		}
		from = &f
	}
	if filter.To != "" {
		t, err := time.Parse("2006-01-02", filter.To)
		if err != nil {
			return nil, fmt.Errorf("%w: to inválido", apperrors.ErrMontoInvalido)
		}
		// End of range is inclusive by day.
		t = t.Add(24 * time.Hour)
		to = &t
	}
	// A lone bound is honored half-open; the latest-50 cap only applies to
	// the unfiltered listing.
	limit := historialDefaultLimit
	if from != nil || to != nil {
		limit = 0
	}
	return s.repo.ListCerradas(ctx, from, to, limit)
}

// ── ReporteCierre ─────────────────────────────────────────────────────────────

// ReporteCierre replays the reconciliation of a closed session over its
// frozen [apertura, cierre] interval.
func (s *cajaService) ReporteCierre(ctx context.Context, sesionID uuid.UUID) (*dto.ReporteCierreResponse, error) {
	sesion, err := s.repo.FindSesionByID(ctx, sesionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if sesion.Estado != model.SesionCerrada || sesion.FechaCierre == nil {
		return nil, apperrors.ErrNotFound
	}

	preview, err := s.calcularCierre(ctx, sesion, sesion.FechaCierre)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReporteCierreResponse{
		Sesion:              *sesion,
		TotalVentasEfectivo: preview.Resumen.EfectivoVentas.Add(preview.Resumen.EfectivoAbonos),
		TotalGastos:         preview.TotalGastos,
		Esperado:            preview.MontoEsperado,
	}
	if sesion.MontoReal != nil {
		resp.MontoReal = *sesion.MontoReal
	}
	if sesion.Diferencia != nil {
		resp.Diferencia = *sesion.Diferencia
	}
	return resp, nil
}

// ── SesionAbierta ─────────────────────────────────────────────────────────────

func (s *cajaService) SesionAbierta(ctx context.Context) (*model.SesionCaja, error) {
	sesion, err := s.repo.FindSesionAbierta(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrCajaCerrada
	}
	if err != nil {
		return nil, err
	}
	return sesion, nil
}
