package handler

import (
	"net/http"

	"github.com/Sherman95/pos-carmita-villegas/internal/apierror"
	"github.com/Sherman95/pos-carmita-villegas/internal/dto"
	"github.com/Sherman95/pos-carmita-villegas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Resumen godoc
// @Summary Resumen de ventas de un periodo
// @Tags reportes
// @Produce json
// @Param period query string false "today|week|month|year"
// @Param year query int false "Año (para month|year)"
// @Param month query int false "Mes 1-12 (para month)"
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Success 200 {object} dto.ResumenPeriodoResponse
// @Router /v1/reportes/resumen [get]
func (h *ReportesHandler) Resumen(c *gin.Context) {
	var filter dto.PeriodoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VentasPorCliente godoc
// @Summary Ventas de un cliente con resumen
// @Tags reportes
// @Produce json
// @Param id path string true "ID de cliente"
// @Success 200 {object} dto.VentasClienteResponse
// @Router /v1/reportes/clientes/{id} [get]
func (h *ReportesHandler) VentasPorCliente(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var filter dto.PeriodoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.VentasPorCliente(c.Request.Context(), id, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VentasPorItem godoc
// @Summary Ventas de un item del catalogo con resumen
// @Tags reportes
// @Produce json
// @Param id path string true "ID de item"
// @Success 200 {object} dto.VentasItemResponse
// @Router /v1/reportes/items/{id} [get]
func (h *ReportesHandler) VentasPorItem(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var filter dto.PeriodoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.VentasPorItem(c.Request.Context(), id, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GastosPorCategoria godoc
// @Summary Gastos de un periodo agrupados por categoria
// @Tags reportes
// @Produce json
// @Success 200 {array} dto.GastoCategoriaRow
// @Router /v1/reportes/gastos-categoria [get]
func (h *ReportesHandler) GastosPorCategoria(c *gin.Context) {
	var filter dto.PeriodoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	rows, err := h.svc.GastosPorCategoria(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Desglose godoc
// @Summary Desglosa un monto en subtotal, impuesto y total
// @Tags reportes
// @Produce json
// @Param monto query string true "Monto"
// @Param rate query string false "Tasa (0.12 = 12%); por defecto la configurada"
// @Param modo query string false "inclusive|aditivo"
// @Success 200 {object} dto.DesgloseImpuesto
// @Failure 422 {object} apierror.APIError
// @Router /v1/reportes/desglose [get]
func (h *ReportesHandler) Desglose(c *gin.Context) {
	monto, err := decimal.NewFromString(c.Query("monto"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("monto inválido"))
		return
	}
	rate := decimal.Zero
	if raw := c.Query("rate"); raw != "" {
		rate, err = decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("rate inválido"))
			return
		}
	}
	resp, err := h.svc.Desglosar(monto, rate, c.Query("modo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
