//go:build integration

package e2e

// End-to-end integration tests against real Postgres + Redis via
// testcontainers. Run with: go test -tags integration ./tests/e2e/... -v
//
// Scenarios:
//   T-E2E-1: Full shift cycle (abrir → venta contado → fiado → gasto →
//            resumen-dia → cierre con diferencia)
//   T-E2E-2: Second open while one session is ABIERTA → 409
//   T-E2E-3: Abono parcial reduces the debt; overpay → 422
//   T-E2E-4: Price check is served (and cached) without side effects
//   T-E2E-5: A sale that fails mid-transaction leaves no rows behind

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sherman95/pos-carmita-villegas/internal/config"
	"github.com/Sherman95/pos-carmita-villegas/internal/infra"
	"github.com/Sherman95/pos-carmita-villegas/internal/model"
	"github.com/Sherman95/pos-carmita-villegas/internal/router"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test env ─────────────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB

	corte   model.Item // servicio 15.00
	esmalte model.Item // producto 5.00, stock 10
	ana     model.Cliente
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("salon_test"),
		tcPostgres.WithUsername("salon"),
		tcPostgres.WithPassword("salon"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:           8000,
		Env:            "test",
		DatabaseURL:    pgURL,
		RedisURL:       rdURL,
		TaxRateDefault: 0.12,
		BusinessName:   "Salon E2E",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	env := &testEnv{db: db}

	// Seed catalog and one client
	stock := 10
	env.corte = model.Item{Nombre: "Corte de cabello", Precio: decimal.RequireFromString("15.00"), Tipo: model.ItemServicio, Active: true}
	env.esmalte = model.Item{Nombre: "Esmalte", Precio: decimal.RequireFromString("5.00"), Tipo: model.ItemProducto, Stock: &stock, Active: true}
	cedula := "0912345678"
	env.ana = model.Cliente{Nombre: "Ana María", Cedula: &cedula}
	require.NoError(t, db.Create(&env.corte).Error)
	require.NoError(t, db.Create(&env.esmalte).Error)
	require.NoError(t, db.Create(&env.ana).Error)

	engine := router.New(cfg, db, rdb)
	env.server = httptest.NewServer(engine)
	t.Cleanup(env.server.Close)

	return env
}

// ── T-E2E-1: full shift cycle ────────────────────────────────────────────────

func TestCicloCompletoDeTurno(t *testing.T) {
	env := setupTestEnv(t)
	srv := env.server

	// Abrir caja con 100.00
	resp := do(t, srv, http.MethodPost, "/v1/caja/abrir",
		jsonBody(t, map[string]any{"monto_inicial": "100.00"}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sesion struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &sesion)

	// Venta contado en efectivo: 2 cortes = 30.00
	resp = do(t, srv, http.MethodPost, "/v1/ventas", jsonBody(t, map[string]any{
		"items":     []map[string]any{{"item_id": env.corte.ID.String(), "cantidad": 2}},
		"total":     "30.00",
		"tipo_pago": "EFECTIVO",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Fiado: 3 esmaltes = 15.00, abono inicial 5.00
	resp = do(t, srv, http.MethodPost, "/v1/ventas", jsonBody(t, map[string]any{
		"items":         []map[string]any{{"item_id": env.esmalte.ID.String(), "cantidad": 3}},
		"total":         "15.00",
		"tipo_pago":     "CREDITO",
		"client_id":     env.ana.ID.String(),
		"abono_inicial": "5.00",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Stock decremented inside the sale tx
	var esmalte model.Item
	require.NoError(t, env.db.First(&esmalte, "id = ?", env.esmalte.ID).Error)
	require.NotNil(t, esmalte.Stock)
	assert.Equal(t, 7, *esmalte.Stock)

	// Gasto en efectivo: 12.00
	resp = do(t, srv, http.MethodPost, "/v1/gastos", jsonBody(t, map[string]any{
		"descripcion": "Compra de toallas",
		"monto":       "12.00",
		"metodo_pago": "EFECTIVO",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Resumen: 100 + 30 + 5 − 12 = 123.00 esperado
	resp = do(t, srv, http.MethodGet, "/v1/caja/resumen-dia", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var preview struct {
		MontoEsperado   string `json:"monto_esperado"`
		TotalFacturado  string `json:"total_facturado"`
		CreditoOtorgado string `json:"credito_otorgado"`
	}
	decodeJSON(t, resp, &preview)
	assert.Equal(t, "123", decimal.RequireFromString(preview.MontoEsperado).String())
	assert.Equal(t, "45", decimal.RequireFromString(preview.TotalFacturado).String())
	assert.Equal(t, "10", decimal.RequireFromString(preview.CreditoOtorgado).String())

	// Cierre declarando 120.00 → diferencia −3.00
	resp = do(t, srv, http.MethodPut, "/v1/caja/"+sesion.ID+"/cerrar",
		jsonBody(t, map[string]any{"monto_real": "120.00"}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cerrada struct {
		Estado     string  `json:"estado"`
		Diferencia *string `json:"diferencia"`
	}
	decodeJSON(t, resp, &cerrada)
	assert.Equal(t, "CERRADA", cerrada.Estado)
	require.NotNil(t, cerrada.Diferencia)
	assert.Equal(t, "-3", decimal.RequireFromString(*cerrada.Diferencia).String())

	// Con la caja cerrada, una venta nueva rebota con 409.
	resp = do(t, srv, http.MethodPost, "/v1/ventas", jsonBody(t, map[string]any{
		"items":     []map[string]any{{"item_id": env.corte.ID.String(), "cantidad": 1}},
		"total":     "15.00",
		"tipo_pago": "EFECTIVO",
	}))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

// ── T-E2E-2: single open session ─────────────────────────────────────────────

func TestSegundaAperturaConflicto(t *testing.T) {
	env := setupTestEnv(t)
	srv := env.server

	resp := do(t, srv, http.MethodPost, "/v1/caja/abrir",
		jsonBody(t, map[string]any{"monto_inicial": "50.00"}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, srv, http.MethodPost, "/v1/caja/abrir",
		jsonBody(t, map[string]any{"monto_inicial": "10.00"}))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

// ── T-E2E-3: abonos ──────────────────────────────────────────────────────────

func TestAbonosSobreFiado(t *testing.T) {
	env := setupTestEnv(t)
	srv := env.server

	resp := do(t, srv, http.MethodPost, "/v1/caja/abrir",
		jsonBody(t, map[string]any{"monto_inicial": "0.00"}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, srv, http.MethodPost, "/v1/ventas", jsonBody(t, map[string]any{
		"items":     []map[string]any{{"item_id": env.corte.ID.String(), "cantidad": 2}},
		"total":     "30.00",
		"tipo_pago": "CREDITO",
		"client_id": env.ana.ID.String(),
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var creada struct {
		SaleID string `json:"saleId"`
	}
	decodeJSON(t, resp, &creada)

	// Ana aparece como deudora con 30.00
	resp = do(t, srv, http.MethodGet, "/v1/fiados/deudores", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deudores []struct {
		Nombre     string `json:"nombre"`
		TotalDeuda string `json:"total_deuda"`
	}
	decodeJSON(t, resp, &deudores)
	require.Len(t, deudores, 1)
	assert.Equal(t, "Ana María", deudores[0].Nombre)
	assert.Equal(t, "30", decimal.RequireFromString(deudores[0].TotalDeuda).String())

	// Abono parcial de 10.00
	resp = do(t, srv, http.MethodPost, "/v1/fiados/abonos", jsonBody(t, map[string]any{
		"saleId":      creada.SaleID,
		"monto":       "10.00",
		"metodo_pago": "EFECTIVO",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var abonado struct {
		SaldoPendiente string `json:"saldo_pendiente"`
		EstadoPago     string `json:"estado_pago"`
	}
	decodeJSON(t, resp, &abonado)
	assert.Equal(t, "20", decimal.RequireFromString(abonado.SaldoPendiente).String())
	assert.Equal(t, "PENDIENTE", abonado.EstadoPago)

	// Sobrepago rebota con 422 y no toca el saldo.
	resp = do(t, srv, http.MethodPost, "/v1/fiados/abonos", jsonBody(t, map[string]any{
		"saleId": creada.SaleID,
		"monto":  "25.00",
	}))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	var venta model.Venta
	require.NoError(t, env.db.First(&venta, "id = ?", creada.SaleID).Error)
	assert.Equal(t, "20", venta.SaldoPendiente.String())
}

// ── T-E2E-4: price check ─────────────────────────────────────────────────────

func TestConsultaPrecios(t *testing.T) {
	env := setupTestEnv(t)
	srv := env.server

	// Twice: second hit comes from the redis cache.
	for i := 0; i < 2; i++ {
		resp := do(t, srv, http.MethodGet, "/v1/precio/"+env.corte.ID.String(), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var precio struct {
			Nombre string `json:"nombre"`
			Precio string `json:"precio"`
		}
		decodeJSON(t, resp, &precio)
		assert.Equal(t, "Corte de cabello", precio.Nombre)
		assert.Equal(t, "15", decimal.RequireFromString(precio.Precio).String())
	}

	resp := do(t, srv, http.MethodGet, "/v1/precio/00000000-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// ── T-E2E-5: sale atomicity ──────────────────────────────────────────────────

func TestVentaSinStockNoDejaRastros(t *testing.T) {
	env := setupTestEnv(t)
	srv := env.server

	resp := do(t, srv, http.MethodPost, "/v1/caja/abrir",
		jsonBody(t, map[string]any{"monto_inicial": "50.00"}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// 11 esmaltes contra stock 10: el decremento viola el CHECK de stock
	// despues de insertar el encabezado, las lineas y el abono, y la
	// transaccion entera se revierte.
	resp = do(t, srv, http.MethodPost, "/v1/ventas", jsonBody(t, map[string]any{
		"items":     []map[string]any{{"item_id": env.esmalte.ID.String(), "cantidad": 11}},
		"total":     "55.00",
		"tipo_pago": "EFECTIVO",
	}))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	resp.Body.Close()

	// Inspeccion directa del almacen: ni venta, ni detalles, ni abonos.
	var ventas, detalles, abonos int64
	require.NoError(t, env.db.Model(&model.Venta{}).Count(&ventas).Error)
	require.NoError(t, env.db.Model(&model.DetalleVenta{}).Count(&detalles).Error)
	require.NoError(t, env.db.Model(&model.Abono{}).Count(&abonos).Error)
	assert.Zero(t, ventas)
	assert.Zero(t, detalles)
	assert.Zero(t, abonos)

	// El stock queda intacto.
	var esmalte model.Item
	require.NoError(t, env.db.First(&esmalte, "id = ?", env.esmalte.ID).Error)
	require.NotNil(t, esmalte.Stock)
	assert.Equal(t, 10, *esmalte.Stock)
}
