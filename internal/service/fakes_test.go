package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Sherman95/pos-carmita-villegas/internal/dto"
	"github.com/Sherman95/pos-carmita-villegas/internal/model"
	"github.com/Sherman95/pos-carmita-villegas/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository fakes. All DB() methods return nil so runTx invokes
// the callback directly, without a real transaction.

// ── fakeCajaRepo ──────────────────────────────────────────────────────────────

type fakeCajaRepo struct {
	sesiones map[uuid.UUID]*model.SesionCaja
}

func newFakeCajaRepo() *fakeCajaRepo {
	return &fakeCajaRepo{sesiones: make(map[uuid.UUID]*model.SesionCaja)}
}

func (r *fakeCajaRepo) DB() *gorm.DB { return nil }

func (r *fakeCajaRepo) CreateSesionTx(_ *gorm.DB, s *model.SesionCaja) error {
	// Mirrors the partial unique index on estado='ABIERTA'.
	for _, e := range r.sesiones {
		if e.Estado == model.SesionAbierta {
			return gorm.ErrDuplicatedKey
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.FechaApertura.IsZero() {
		s.FechaApertura = time.Now()
	}
	r.sesiones[s.ID] = s
	return nil
}

func (r *fakeCajaRepo) FindSesionAbierta(_ context.Context) (*model.SesionCaja, error) {
	return r.abierta()
}

func (r *fakeCajaRepo) FindSesionAbiertaTx(_ *gorm.DB) (*model.SesionCaja, error) {
	return r.abierta()
}

func (r *fakeCajaRepo) abierta() (*model.SesionCaja, error) {
	for _, s := range r.sesiones {
		if s.Estado == model.SesionAbierta {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCajaRepo) FindSesionByID(_ context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	s, ok := r.sesiones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeCajaRepo) UpdateSesionTx(_ *gorm.DB, s *model.SesionCaja) error {
	r.sesiones[s.ID] = s
	return nil
}

func (r *fakeCajaRepo) ListCerradas(_ context.Context, from, to *time.Time, limit int) ([]model.SesionCaja, error) {
	var out []model.SesionCaja
	for _, s := range r.sesiones {
		if s.Estado != model.SesionCerrada || s.FechaCierre == nil {
			continue
		}
		if from != nil && s.FechaCierre.Before(*from) {
			continue
		}
		if to != nil && !s.FechaCierre.Before(*to) {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaCierre.After(*out[j].FechaCierre) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ repository.CajaRepository = (*fakeCajaRepo)(nil)

// ── fakeVentaRepo ─────────────────────────────────────────────────────────────

type fakeVentaRepo struct {
	mu     sync.Mutex
	ventas map[uuid.UUID]*model.Venta
}

func newFakeVentaRepo() *fakeVentaRepo {
	return &fakeVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *fakeVentaRepo) DB() *gorm.DB { return nil }

func (r *fakeVentaRepo) CreateTx(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	for i := range v.Detalles {
		if v.Detalles[i].ID == uuid.Nil {
			v.Detalles[i].ID = uuid.New()
		}
		v.Detalles[i].VentaID = v.ID
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *fakeVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *fakeVentaRepo) List(_ context.Context) ([]model.Venta, error) {
	return r.filtered(func(*model.Venta) bool { return true }), nil
}

func (r *fakeVentaRepo) ListByRange(_ context.Context, from, to time.Time) ([]model.Venta, error) {
	return r.filtered(func(v *model.Venta) bool {
		return !v.CreatedAt.Before(from) && v.CreatedAt.Before(to)
	}), nil
}

func (r *fakeVentaRepo) ListPendientes(_ context.Context, epsilon decimal.Decimal) ([]model.Venta, error) {
	return r.filtered(func(v *model.Venta) bool {
		return v.EstadoPago == model.PagoPendiente && v.SaldoPendiente.GreaterThan(epsilon)
	}), nil
}

func (r *fakeVentaRepo) filtered(keep func(*model.Venta) bool) []model.Venta {
	var out []model.Venta
	for _, v := range r.ventas {
		if keep(v) {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// DescontarSaldoTx mirrors the guarded relative update: check and decrement
// happen under one lock, so a concurrent caller sees the committed saldo.
func (r *fakeVentaRepo) DescontarSaldoTx(_ *gorm.DB, id uuid.UUID, monto, epsilon decimal.Decimal) (decimal.Decimal, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.ventas[id]
	if !ok || v.SaldoPendiente.LessThan(monto) {
		return decimal.Zero, "", gorm.ErrRecordNotFound
	}
	v.SaldoPendiente = v.SaldoPendiente.Sub(monto)
	if !v.SaldoPendiente.GreaterThan(epsilon) {
		v.SaldoPendiente = decimal.Zero
		v.EstadoPago = model.PagoCompleto
	}
	return v.SaldoPendiente, v.EstadoPago, nil
}

func (r *fakeVentaRepo) SumFacturado(_ context.Context, desde time.Time, hasta *time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, v := range r.ventas {
		if enVentana(v.CreatedAt, desde, hasta) {
			total = total.Add(v.Total)
		}
	}
	return total, nil
}

var _ repository.VentaRepository = (*fakeVentaRepo)(nil)

// ── fakeAbonoRepo ─────────────────────────────────────────────────────────────

type fakeAbonoRepo struct {
	mu     sync.Mutex
	abonos []model.Abono
}

func (r *fakeAbonoRepo) CreateTx(_ *gorm.DB, a *model.Abono) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	r.abonos = append(r.abonos, *a)
	return nil
}

func (r *fakeAbonoRepo) ListByVenta(_ context.Context, ventaID uuid.UUID) ([]model.Abono, error) {
	var out []model.Abono
	for _, a := range r.abonos {
		if a.VentaID == ventaID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAbonoRepo) SumCobros(_ context.Context, desde time.Time, hasta *time.Time) (repository.TotalesCobros, error) {
	t := repository.TotalesCobros{}
	for _, a := range r.abonos {
		if !enVentana(a.CreatedAt, desde, hasta) {
			continue
		}
		contado := a.Notas == model.NotaContado
		efectivo := a.MetodoPago == model.PagoEfectivo
		switch {
		case contado && efectivo:
			t.EfectivoContado = t.EfectivoContado.Add(a.Monto)
		case contado:
			t.DigitalContado = t.DigitalContado.Add(a.Monto)
		case efectivo:
			t.EfectivoAbonos = t.EfectivoAbonos.Add(a.Monto)
		default:
			t.DigitalAbonos = t.DigitalAbonos.Add(a.Monto)
		}
	}
	return t, nil
}

var _ repository.AbonoRepository = (*fakeAbonoRepo)(nil)

// ── fakeGastoRepo ─────────────────────────────────────────────────────────────

type fakeGastoRepo struct {
	gastos []*model.Gasto
}

func (r *fakeGastoRepo) Create(_ context.Context, g *model.Gasto) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.Fecha.IsZero() {
		g.Fecha = time.Now()
	}
	r.gastos = append(r.gastos, g)
	return nil
}

func (r *fakeGastoRepo) List(_ context.Context, filter dto.GastoFilter) ([]model.Gasto, error) {
	var out []model.Gasto
	for _, g := range r.gastos {
		if filter.Categoria != "" && filter.Categoria != "TODAS" && g.Categoria != filter.Categoria {
			continue
		}
		out = append(out, *g)
	}
	return out, nil
}

func (r *fakeGastoRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, g := range r.gastos {
		if g.ID == id {
			r.gastos = append(r.gastos[:i], r.gastos[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeGastoRepo) SumPorMetodo(_ context.Context, desde time.Time, hasta *time.Time) (repository.TotalesGastos, error) {
	t := repository.TotalesGastos{}
	for _, g := range r.gastos {
		if !enVentana(g.Fecha, desde, hasta) {
			continue
		}
		if g.MetodoPago == model.PagoEfectivo {
			t.Efectivo = t.Efectivo.Add(g.Monto)
		} else {
			t.Digital = t.Digital.Add(g.Monto)
		}
	}
	return t, nil
}

func (r *fakeGastoRepo) SumPorCategoria(_ context.Context, from, to time.Time) ([]dto.GastoCategoriaRow, error) {
	sums := make(map[string]decimal.Decimal)
	for _, g := range r.gastos {
		if !enVentana(g.Fecha, from, &to) {
			continue
		}
		sums[g.Categoria] = sums[g.Categoria].Add(g.Monto)
	}
	var out []dto.GastoCategoriaRow
	for cat, total := range sums {
		out = append(out, dto.GastoCategoriaRow{Categoria: cat, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Categoria < out[j].Categoria })
	return out, nil
}

var _ repository.GastoRepository = (*fakeGastoRepo)(nil)

// ── fakeItemRepo ──────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items map[uuid.UUID]*model.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*model.Item)}
}

func (r *fakeItemRepo) add(nombre string, precio string, tipo string, stock *int) uuid.UUID {
	id := uuid.New()
	r.items[id] = &model.Item{
		ID:     id,
		Nombre: nombre,
		Precio: decimal.RequireFromString(precio),
		Tipo:   tipo,
		Stock:  stock,
		Active: true,
	}
	return id
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return it, nil
}

func (r *fakeItemRepo) List(_ context.Context) ([]model.Item, error) {
	var out []model.Item
	for _, it := range r.items {
		out = append(out, *it)
	}
	return out, nil
}

func (r *fakeItemRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) error {
	it, ok := r.items[id]
	if !ok || it.Tipo != model.ItemProducto || it.Stock == nil {
		return nil
	}
	*it.Stock -= qty
	return nil
}

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

// ── fakeClienteRepo ───────────────────────────────────────────────────────────

type fakeClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
	visitas  map[uuid.UUID]time.Time
}

func newFakeClienteRepo() *fakeClienteRepo {
	return &fakeClienteRepo{
		clientes: make(map[uuid.UUID]*model.Cliente),
		visitas:  make(map[uuid.UUID]time.Time),
	}
}

func (r *fakeClienteRepo) add(nombre, cedula string) uuid.UUID {
	id := uuid.New()
	r.clientes[id] = &model.Cliente{ID: id, Nombre: nombre, Cedula: &cedula}
	return id
}

func (r *fakeClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeClienteRepo) TouchUltimaVisitaTx(_ *gorm.DB, id uuid.UUID, when time.Time) error {
	r.visitas[id] = when
	return nil
}

var _ repository.ClienteRepository = (*fakeClienteRepo)(nil)

// ── fakeReciboRepo ────────────────────────────────────────────────────────────

type fakeReciboRepo struct {
	recibos []model.ReciboVenta
	ventas  *fakeVentaRepo
}

func (r *fakeReciboRepo) Create(_ context.Context, rec *model.ReciboVenta) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	r.recibos = append(r.recibos, *rec)
	return nil
}

func (r *fakeReciboRepo) FindLatestByVenta(_ context.Context, ventaID uuid.UUID, docType string) (*model.ReciboVenta, error) {
	var latest *model.ReciboVenta
	for i := range r.recibos {
		rec := &r.recibos[i]
		if rec.VentaID != ventaID {
			continue
		}
		if docType != "" && rec.DocType != docType {
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (r *fakeReciboRepo) ListByCliente(_ context.Context, clientID uuid.UUID, from, to *time.Time, docType string) ([]repository.ReciboConVenta, error) {
	var out []repository.ReciboConVenta
	for _, rec := range r.recibos {
		v, ok := r.ventas.ventas[rec.VentaID]
		if !ok || v.ClientID == nil || *v.ClientID != clientID {
			continue
		}
		if docType != "" && rec.DocType != docType {
			continue
		}
		if from != nil && to != nil && !enVentana(v.CreatedAt, *from, to) {
			continue
		}
		out = append(out, repository.ReciboConVenta{Recibo: rec, Venta: *v})
	}
	return out, nil
}

var _ repository.ReciboRepository = (*fakeReciboRepo)(nil)

// ── helpers ───────────────────────────────────────────────────────────────────

func enVentana(t, desde time.Time, hasta *time.Time) bool {
	if t.Before(desde) {
		return false
	}
	return hasta == nil || t.Before(*hasta)
}

// posFixture wires the full service stack over the in-memory fakes.
type posFixture struct {
	cajaRepo    *fakeCajaRepo
	ventaRepo   *fakeVentaRepo
	abonoRepo   *fakeAbonoRepo
	gastoRepo   *fakeGastoRepo
	itemRepo    *fakeItemRepo
	clienteRepo *fakeClienteRepo
	reciboRepo  *fakeReciboRepo

	caja   CajaService
	ventas VentaService
	fiados FiadoService
	gastos GastoService
}

func newPosFixture() *posFixture {
	f := &posFixture{
		cajaRepo:    newFakeCajaRepo(),
		ventaRepo:   newFakeVentaRepo(),
		abonoRepo:   &fakeAbonoRepo{},
		gastoRepo:   &fakeGastoRepo{},
		itemRepo:    newFakeItemRepo(),
		clienteRepo: newFakeClienteRepo(),
	}
	f.reciboRepo = &fakeReciboRepo{ventas: f.ventaRepo}
	f.caja = NewCajaService(f.cajaRepo, f.ventaRepo, f.abonoRepo, f.gastoRepo)
	f.ventas = NewVentaService(f.ventaRepo, f.abonoRepo, f.itemRepo, f.clienteRepo, f.reciboRepo, f.caja)
	f.fiados = NewFiadoService(f.ventaRepo, f.abonoRepo, f.caja)
	f.gastos = NewGastoService(f.gastoRepo, f.caja)
	return f
}

func (f *posFixture) abrirCaja(montoInicial string) *model.SesionCaja {
	sesion, err := f.caja.Abrir(context.Background(), dto.AbrirCajaRequest{
		MontoInicial: decimal.RequireFromString(montoInicial),
	})
	if err != nil {
		panic(err)
	}
	// Backdate the opening so same-millisecond movements stay inside the
	// shift window.
	sesion.FechaApertura = sesion.FechaApertura.Add(-time.Second)
	return sesion
}
