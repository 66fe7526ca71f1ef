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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode — fakes ignore the tx).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// saldoEpsilon is the residual under which a credit sale counts as settled;
// keeps a one-cent rounding leftover from stranding a debt forever.
var saldoEpsilon = decimal.NewFromFloat(0.01)

type VentaService interface {
	Registrar(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaCreadaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaDetalleResponse, error)
	Listar(ctx context.Context) ([]dto.VentaListItem, error)
	ListarPorRango(ctx context.Context, filter dto.VentaRangoFilter) ([]dto.VentaListItem, error)
	GuardarRecibo(ctx context.Context, ventaID uuid.UUID, req dto.GuardarReciboRequest) (*dto.ReciboCreadoResponse, error)
	ObtenerRecibo(ctx context.Context, ventaID uuid.UUID, docType string) (*model.ReciboVenta, error)
	RecibosPorCliente(ctx context.Context, clientID uuid.UUID, from, to, docType string) ([]dto.ReciboListItem, error)
}

type ventaService struct {
	ventas   repository.VentaRepository
	abonos   repository.AbonoRepository
	items    repository.ItemRepository
	clientes repository.ClienteRepository
	recibos  repository.ReciboRepository
	caja     CajaService
}

func NewVentaService(
	ventas repository.VentaRepository,
	abonos repository.AbonoRepository,
	items repository.ItemRepository,
	clientes repository.ClienteRepository,
	recibos repository.ReciboRepository,
	caja CajaService,
) VentaService {
	return &ventaService{
		ventas:   ventas,
		abonos:   abonos,
		items:    items,
		clientes: clientes,
		recibos:  recibos,
		caja:     caja,
	}
}

// ── Registrar ─────────────────────────────────────────────────────────────────

// Registrar records a sale atomically: header, lines, initial collection,
// stock decrement and client visit stamp all commit or none do. The total is
// recomputed from catalog prices; a client-side total that disagrees by more
// than a cent is rejected.
func (s *ventaService) Registrar(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaCreadaResponse, error) {
	sesion, err := s.caja.SesionAbierta(ctx)
	if err != nil {
		return nil, err
	}

	detalles, total, err := s.resolverDetalles(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	if !total.IsPositive() {
		return nil, apperrors.ErrMontoInvalido
	}
	if total.Sub(req.Total).Abs().GreaterThan(saldoEpsilon) {
		return nil, fmt.Errorf("%w: total declarado %s, calculado %s",
			apperrors.ErrMontoInvalido, req.Total.StringFixed(2), total.StringFixed(2))
	}

	var cliente *model.Cliente
	if req.ClientID != nil {
		// An unresolvable client only voids the credit when the sale is
		// fiado; on a cash sale it is just a bad reference.
		errCliente := apperrors.ErrNotFound
		if req.TipoPago == model.PagoCredito {
			errCliente = apperrors.ErrClienteCreditoInvalido
		}
		cid, err := uuid.Parse(*req.ClientID)
		if err != nil {
			return nil, errCliente
		}
		cliente, err = s.clientes.FindByID(ctx, cid)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCliente
		}
		if err != nil {
			return nil, err
		}
	}

	venta := &model.Venta{
		Total:        total,
		TaxRate:      req.TaxRate,
		TipoPago:     req.TipoPago,
		SesionCajaID: &sesion.ID,
		Detalles:     detalles,
	}
	if cliente != nil {
		venta.ClientID = &cliente.ID
		venta.ClientNombre = &cliente.Nombre
		venta.ClientCedula = cliente.Cedula
	}

	var abono *model.Abono
	switch req.TipoPago {
	case model.PagoCredito:
		// Fiado requires a registered client: there is no one to collect
		// from otherwise.
		if cliente == nil {
			return nil, apperrors.ErrClienteCreditoInvalido
		}
		if req.AbonoInicial.IsNegative() {
			return nil, apperrors.ErrMontoInvalido
		}
		if req.AbonoInicial.GreaterThan(total) {
			return nil, apperrors.ErrSobrepago
		}
		venta.MontoPagado = req.AbonoInicial
		venta.SaldoPendiente = total.Sub(req.AbonoInicial)
		if venta.SaldoPendiente.GreaterThan(saldoEpsilon) {
			venta.EstadoPago = model.PagoPendiente
		} else {
			venta.EstadoPago = model.PagoCompleto
		}
		if req.AbonoInicial.IsPositive() {
			abono = &model.Abono{
				Monto:      req.AbonoInicial,
				MetodoPago: model.PagoEfectivo,
				Notas:      model.NotaAbonoInicial,
			}
		}
	default: // contado: EFECTIVO o TRANSFERENCIA
		venta.MontoPagado = total
		venta.SaldoPendiente = decimal.Zero
		venta.EstadoPago = model.PagoCompleto
		abono = &model.Abono{
			Monto:      total,
			MetodoPago: req.TipoPago,
			Notas:      model.NotaContado,
		}
	}

	err = runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		if err := s.ventas.CreateTx(ctx, tx, venta); err != nil {
			return err
		}
		if abono != nil {
			abono.VentaID = venta.ID
			if err := s.abonos.CreateTx(tx, abono); err != nil {
				return err
			}
		}
		for _, d := range venta.Detalles {
			if d.ItemID == nil {
				continue
			}
			if err := s.items.DecrementStockTx(tx, *d.ItemID, d.Cantidad); err != nil {
				return err
			}
		}
		if cliente != nil {
			if err := s.clientes.TouchUltimaVisitaTx(tx, cliente.ID, time.Now()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.VentaCreadaResponse{
		Message:      "Venta registrada",
		SaleID:       venta.ID.String(),
		ClientNombre: venta.ClientNombre,
	}, nil
}

// resolverDetalles turns the requested lines into snapshot rows priced from
// the catalog, returning their sum.
func (s *ventaService) resolverDetalles(ctx context.Context, items []dto.ItemVentaRequest) ([]model.DetalleVenta, decimal.Decimal, error) {
	detalles := make([]model.DetalleVenta, 0, len(items))
	total := decimal.Zero
	for _, it := range items {
		itemID, err := uuid.Parse(it.ItemID)
		if err != nil {
			return nil, decimal.Zero, apperrors.ErrNotFound
		}
		item, err := s.items.FindByID(ctx, itemID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, apperrors.ErrNotFound
		}
		if err != nil {
			return nil, decimal.Zero, err
		}
		subtotal := item.Precio.Mul(decimal.NewFromInt(int64(it.Cantidad)))
		id := item.ID
		detalles = append(detalles, model.DetalleVenta{
			ItemID:         &id,
			NombreProducto: item.Nombre,
			Cantidad:       it.Cantidad,
			PrecioUnitario: item.Precio,
			Subtotal:       subtotal,
		})
		total = total.Add(subtotal)
	}
	return detalles, total, nil
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaDetalleResponse, error) {
	venta, err := s.ventas.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dto.VentaDetalleResponse{
		Sale:     toVentaListItem(*venta),
		Detalles: venta.Detalles,
	}, nil
}

func (s *ventaService) Listar(ctx context.Context) ([]dto.VentaListItem, error) {
	ventas, err := s.ventas.List(ctx)
	if err != nil {
		return nil, err
	}
	return toVentaListItems(ventas), nil
}

func (s *ventaService) ListarPorRango(ctx context.Context, filter dto.VentaRangoFilter) ([]dto.VentaListItem, error) {
	from, to, err := parseRangoDias(filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	ventas, err := s.ventas.ListByRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return toVentaListItems(ventas), nil
}

// parseRangoDias parses a YYYY-MM-DD pair into a [from, to) interval whose
// end is the day after "to" — the range is inclusive by day.
func parseRangoDias(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from inválido", apperrors.ErrMontoInvalido)
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to inválido", apperrors.ErrMontoInvalido)
	}
	return from, to.Add(24 * time.Hour), nil
}

func toVentaListItem(v model.Venta) dto.VentaListItem {
	item := dto.VentaListItem{
		ID:           v.ID.String(),
		Total:        v.Total,
		TipoPago:     v.TipoPago,
		EstadoPago:   v.EstadoPago,
		ClientNombre: v.ClientNombre,
		ClientCedula: v.ClientCedula,
		TaxRate:      v.TaxRate,
		CreatedAt:    v.CreatedAt.Format(time.RFC3339),
	}
	if v.ClientID != nil {
		s := v.ClientID.String()
		item.ClientID = &s
	}
	return item
}

func toVentaListItems(ventas []model.Venta) []dto.VentaListItem {
	out := make([]dto.VentaListItem, 0, len(ventas))
	for _, v := range ventas {
		out = append(out, toVentaListItem(v))
	}
	return out
}

// ── Recibos ───────────────────────────────────────────────────────────────────

func (s *ventaService) GuardarRecibo(ctx context.Context, ventaID uuid.UUID, req dto.GuardarReciboRequest) (*dto.ReciboCreadoResponse, error) {
	if _, err := s.ventas.FindByID(ctx, ventaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	rec := &model.ReciboVenta{
		VentaID:   ventaID,
		PDFBase64: req.PDFBase64,
		DocType:   req.DocType,
	}
	if rec.DocType == "" {
		rec.DocType = "receipt"
	}
	if err := s.recibos.Create(ctx, rec); err != nil {
		return nil, err
	}
	return &dto.ReciboCreadoResponse{
		ReceiptID: rec.ID.String(),
		DocType:   rec.DocType,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *ventaService) ObtenerRecibo(ctx context.Context, ventaID uuid.UUID, docType string) (*model.ReciboVenta, error) {
	rec, err := s.recibos.FindLatestByVenta(ctx, ventaID, docType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *ventaService) RecibosPorCliente(ctx context.Context, clientID uuid.UUID, fromStr, toStr, docType string) ([]dto.ReciboListItem, error) {
	var from, to *time.Time
	if fromStr != "" && toStr != "" {
		f, t, err := parseRangoDias(fromStr, toStr)
		if err != nil {
			return nil, err
		}
		from, to = &f, &t
	}
	rows, err := s.recibos.ListByCliente(ctx, clientID, from, to, docType)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReciboListItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.ReciboListItem{
			ReceiptID:    row.Recibo.ID.String(),
			SaleID:       row.Venta.ID.String(),
			DocType:      row.Recibo.DocType,
			Total:        row.Venta.Total,
			TipoPago:     row.Venta.TipoPago,
			ClientNombre: row.Venta.ClientNombre,
			ClientCedula: row.Venta.ClientCedula,
			SaleCreated:  row.Venta.CreatedAt.Format(time.RFC3339),
			Created:      row.Recibo.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}
