package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Sherman95/pos-carmita-villegas/internal/apperrors"
	"github.com/Sherman95/pos-carmita-villegas/internal/dto"
	"github.com/Sherman95/pos-carmita-villegas/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReporteService interface {
	Resumen(ctx context.Context, filter dto.PeriodoFilter) (*dto.ResumenPeriodoResponse, error)
	VentasPorCliente(ctx context.Context, clientID uuid.UUID, filter dto.PeriodoFilter) (*dto.VentasClienteResponse, error)
	VentasPorItem(ctx context.Context, itemID uuid.UUID, filter dto.PeriodoFilter) (*dto.VentasItemResponse, error)
	GastosPorCategoria(ctx context.Context, filter dto.PeriodoFilter) ([]dto.GastoCategoriaRow, error)
	Desglosar(monto, rate decimal.Decimal, modo string) (dto.DesgloseImpuesto, error)
}

type reporteService struct {
	reportes    repository.ReporteRepository
	gastos      repository.GastoRepository
	defaultRate decimal.Decimal
}

func NewReporteService(reportes repository.ReporteRepository, gastos repository.GastoRepository, defaultRate decimal.Decimal) ReporteService {
	return &reporteService{reportes: reportes, gastos: gastos, defaultRate: defaultRate}
}

// ── Periodos ──────────────────────────────────────────────────────────────────

// resolverPeriodo turns a PeriodoFilter into a half-open [from, to) interval
// in local time. Named periods win over from/to when both are supplied.
func resolverPeriodo(filter dto.PeriodoFilter, now time.Time) (time.Time, time.Time, error) {
	loc := now.Location()
	hoy := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch filter.Period {
	case "today":
		return hoy, hoy.Add(24 * time.Hour), nil
	case "week":
		// ISO week: Monday through Sunday.
		offset := (int(hoy.Weekday()) + 6) % 7
		lunes := hoy.AddDate(0, 0, -offset)
		return lunes, lunes.AddDate(0, 0, 7), nil
	case "month":
		y, m := now.Year(), now.Month()
		if filter.Year != 0 {
			y = filter.Year
		}
		if filter.Month != 0 {
			m = time.Month(filter.Month)
		}
		inicio := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return inicio, inicio.AddDate(0, 1, 0), nil
	case "year":
		y := now.Year()
		if filter.Year != 0 {
			y = filter.Year
		}
		inicio := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return inicio, inicio.AddDate(1, 0, 0), nil
	case "":
		if filter.From != "" && filter.To != "" {
			return parseRangoDias(filter.From, filter.To)
		}
		return time.Time{}, time.Time{}, fmt.Errorf("%w: periodo o rango requerido", apperrors.ErrMontoInvalido)
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: periodo desconocido", apperrors.ErrMontoInvalido)
	}
}

// ── Reportes ──────────────────────────────────────────────────────────────────

func (s *reporteService) Resumen(ctx context.Context, filter dto.PeriodoFilter) (*dto.ResumenPeriodoResponse, error) {
	from, to, err := resolverPeriodo(filter, time.Now())
	if err != nil {
		return nil, err
	}
	count, total, err := s.reportes.ResumenVentas(ctx, from, to)
	if err != nil {
		return nil, err
	}
	desglose, err := DesglosarImpuesto(total, s.defaultRate, ImpuestoIncluido)
	if err != nil {
		return nil, err
	}
	return &dto.ResumenPeriodoResponse{
		From:     from.Format("2006-01-02"),
		To:       to.Format("2006-01-02"),
		Resumen:  dto.ResumenVentas{Count: count, Total: total},
		Desglose: desglose,
	}, nil
}

func (s *reporteService) VentasPorCliente(ctx context.Context, clientID uuid.UUID, filter dto.PeriodoFilter) (*dto.VentasClienteResponse, error) {
	from, to, err := periodoOpcional(filter)
	if err != nil {
		return nil, err
	}
	ventas, count, total, err := s.reportes.VentasPorCliente(ctx, clientID, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.VentasClienteResponse{
		Sales:   toVentaListItems(ventas),
		Summary: dto.ResumenVentas{Count: count, Total: total},
	}, nil
}

func (s *reporteService) VentasPorItem(ctx context.Context, itemID uuid.UUID, filter dto.PeriodoFilter) (*dto.VentasItemResponse, error) {
	from, to, err := periodoOpcional(filter)
	if err != nil {
		return nil, err
	}
	filas, count, total, err := s.reportes.VentasPorItem(ctx, itemID, from, to)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.VentaItemRow, 0, len(filas))
	for _, f := range filas {
		rows = append(rows, dto.VentaItemRow{
			ID:             f.Venta.ID.String(),
			CreatedAt:      f.Venta.CreatedAt.Format(time.RFC3339),
			TipoPago:       f.Venta.TipoPago,
			ClientNombre:   f.Venta.ClientNombre,
			ClientCedula:   f.Venta.ClientCedula,
			Cantidad:       f.Detalle.Cantidad,
			PrecioUnitario: f.Detalle.PrecioUnitario,
			Total:          f.Detalle.Subtotal,
			TaxRate:        f.Venta.TaxRate,
		})
	}
	return &dto.VentasItemResponse{
		Sales:   rows,
		Summary: dto.ResumenVentas{Count: count, Total: total},
	}, nil
}

func (s *reporteService) GastosPorCategoria(ctx context.Context, filter dto.PeriodoFilter) ([]dto.GastoCategoriaRow, error) {
	from, to, err := resolverPeriodo(filter, time.Now())
	if err != nil {
		return nil, err
	}
	return s.gastos.SumPorCategoria(ctx, from, to)
}

// Desglosar applies the default rate when the caller does not name one.
func (s *reporteService) Desglosar(monto, rate decimal.Decimal, modo string) (dto.DesgloseImpuesto, error) {
	if rate.IsZero() {
		rate = s.defaultRate
	}
	return DesglosarImpuesto(monto, rate, modo)
}

// periodoOpcional resolves the filter to a range, or to nil bounds ("all
// history") when no period and no dates were given.
func periodoOpcional(filter dto.PeriodoFilter) (*time.Time, *time.Time, error) {
	if filter.Period == "" && filter.From == "" && filter.To == "" {
		return nil, nil, nil
	}
	from, to, err := resolverPeriodo(filter, time.Now())
	if err != nil {
		return nil, nil, err
	}
	return &from, &to, nil
}
