package handler

import (
	"net/http"

	"github.com/Sherman95/pos-carmita-villegas/internal/dto"
	"github.com/Sherman95/pos-carmita-villegas/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// Registrar godoc
// @Summary Registra una venta (contado o fiado)
// @Tags ventas
// @Accept json
// @Produce json
// @Param body body dto.RegistrarVentaRequest true "Venta"
// @Success 201 {object} dto.VentaCreadaResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/ventas [post]
func (h *VentasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista las ventas mas recientes
// @Tags ventas
// @Produce json
// @Success 200 {array} dto.VentaListItem
// @Router /v1/ventas [get]
func (h *VentasHandler) Listar(c *gin.Context) {
	ventas, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ventas)
}

// ListarPorRango godoc
// @Summary Ventas dentro de un rango de fechas
// @Tags ventas
// @Produce json
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {array} dto.VentaListItem
// @Router /v1/ventas/rango [get]
func (h *VentasHandler) ListarPorRango(c *gin.Context) {
	var filter dto.VentaRangoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	ventas, err := h.svc.ListarPorRango(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ventas)
}

// Obtener godoc
// @Summary Detalle de una venta
// @Tags ventas
// @Produce json
// @Param id path string true "ID de venta"
// @Success 200 {object} dto.VentaDetalleResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/ventas/{id} [get]
func (h *VentasHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GuardarRecibo godoc
// @Summary Adjunta un recibo (PDF en base64) a una venta
// @Tags ventas
// @Accept json
// @Produce json
// @Param id path string true "ID de venta"
// @Param body body dto.GuardarReciboRequest true "Documento"
// @Success 201 {object} dto.ReciboCreadoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/ventas/{id}/recibo [post]
func (h *VentasHandler) GuardarRecibo(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.GuardarReciboRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarRecibo(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ObtenerRecibo godoc
// @Summary Ultimo recibo almacenado de una venta
// @Tags ventas
// @Produce json
// @Param id path string true "ID de venta"
// @Param docType query string false "Tipo de documento"
// @Success 200 {object} model.ReciboVenta
// @Failure 404 {object} apierror.APIError
// @Router /v1/ventas/{id}/recibo [get]
func (h *VentasHandler) ObtenerRecibo(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	rec, err := h.svc.ObtenerRecibo(c.Request.Context(), id, c.Query("docType"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// RecibosPorCliente godoc
// @Summary Recibos almacenados de un cliente
// @Tags ventas
// @Produce json
// @Param id path string true "ID de cliente"
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Param docType query string false "Tipo de documento"
// @Success 200 {array} dto.ReciboListItem
// @Router /v1/clientes/{id}/recibos [get]
func (h *VentasHandler) RecibosPorCliente(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	recibos, err := h.svc.RecibosPorCliente(c.Request.Context(), id, c.Query("from"), c.Query("to"), c.Query("docType"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recibos)
}
