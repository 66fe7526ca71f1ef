package router

import (
	"time"

	"github.com/Sherman95/pos-carmita-villegas/internal/config"
	"github.com/Sherman95/pos-carmita-villegas/internal/handler"
	"github.com/Sherman95/pos-carmita-villegas/internal/middleware"
	"github.com/Sherman95/pos-carmita-villegas/internal/repository"
	"github.com/Sherman95/pos-carmita-villegas/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	cajaRepo := repository.NewCajaRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	abonoRepo := repository.NewAbonoRepository(db)
	gastoRepo := repository.NewGastoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	itemRepo := repository.NewItemRepository(db)
	reciboRepo := repository.NewReciboRepository(db)
	reporteRepo := repository.NewReporteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	cajaSvc := service.NewCajaService(cajaRepo, ventaRepo, abonoRepo, gastoRepo)
	ventaSvc := service.NewVentaService(ventaRepo, abonoRepo, itemRepo, clienteRepo, reciboRepo, cajaSvc)
	fiadoSvc := service.NewFiadoService(ventaRepo, abonoRepo, cajaSvc)
	gastoSvc := service.NewGastoService(gastoRepo, cajaSvc)
	reporteSvc := service.NewReporteService(reporteRepo, gastoRepo, decimal.NewFromFloat(cfg.TaxRateDefault))

	// ── Handlers ─────────────────────────────────────────────────────────────
	cajaH := handler.NewCajaHandler(cajaSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	fiadosH := handler.NewFiadosHandler(fiadoSvc)
	gastosH := handler.NewGastosHandler(gastoSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	catalogoH := handler.NewCatalogoHandler(itemRepo, rdb)
	clientesH := handler.NewClientesHandler(clienteRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Price check — served from cache, no side effects
	r.GET("/v1/precio/:id", catalogoH.Precio)

	v1 := r.Group("/v1")
	{
		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", cajaH.Abrir)
			caja.GET("/estado", cajaH.Estado)
			caja.GET("/resumen-dia", cajaH.PreviewCierre)
			caja.PUT("/:id/cerrar", cajaH.Cerrar)
			caja.GET("/historial", cajaH.Historial)
			caja.GET("/:id/reporte", cajaH.ReporteCierre)
		}

		v1.POST("/ventas", ventasH.Registrar)
		v1.GET("/ventas", ventasH.Listar)
		v1.GET("/ventas/rango", ventasH.ListarPorRango)
		v1.GET("/ventas/:id", ventasH.Obtener)
		v1.POST("/ventas/:id/recibo", ventasH.GuardarRecibo)
		v1.GET("/ventas/:id/recibo", ventasH.ObtenerRecibo)
		v1.GET("/ventas/:id/abonos", fiadosH.HistorialAbonos)

		fiados := v1.Group("/fiados")
		{
			fiados.GET("/deudores", fiadosH.Deudores)
			fiados.POST("/abonos", fiadosH.RegistrarAbono)
		}

		v1.POST("/gastos", gastosH.Crear)
		v1.GET("/gastos", gastosH.Listar)
		v1.DELETE("/gastos/:id", gastosH.Eliminar)

		reportes := v1.Group("/reportes")
		{
			reportes.GET("/resumen", reportesH.Resumen)
			reportes.GET("/clientes/:id", reportesH.VentasPorCliente)
			reportes.GET("/items/:id", reportesH.VentasPorItem)
			reportes.GET("/gastos-categoria", reportesH.GastosPorCategoria)
			reportes.GET("/desglose", reportesH.Desglose)
		}

		v1.GET("/clientes", clientesH.Listar)
		v1.GET("/clientes/:id", clientesH.Obtener)
		v1.GET("/clientes/:id/recibos", ventasH.RecibosPorCliente)
		v1.GET("/items", catalogoH.Listar)
		v1.GET("/items/:id", catalogoH.Obtener)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
