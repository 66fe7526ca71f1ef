package handler

import (
	"net/http"

	"github.com/Sherman95/pos-carmita-villegas/internal/dto"
	"github.com/Sherman95/pos-carmita-villegas/internal/service"

	"github.com/gin-gonic/gin"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Abrir godoc
// @Summary Abre una nueva sesion de caja
// @Tags caja
// @Accept json
// @Produce json
// @Param body body dto.AbrirCajaRequest true "Datos de apertura"
// @Success 201 {object} model.SesionCaja
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sesion, err := h.svc.Abrir(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sesion)
}

// Estado godoc
// @Summary Estado actual de la caja
// @Tags caja
// @Produce json
// @Success 200 {object} dto.EstadoCajaResponse
// @Router /v1/caja/estado [get]
func (h *CajaHandler) Estado(c *gin.Context) {
	resp, err := h.svc.Estado(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PreviewCierre godoc
// @Summary Resumen de cierre sin cerrar la sesion
// @Tags caja
// @Produce json
// @Success 200 {object} dto.PreviewCierreResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caja/resumen-dia [get]
func (h *CajaHandler) PreviewCierre(c *gin.Context) {
	resp, err := h.svc.PreviewCierre(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cerrar godoc
// @Summary Cierra la sesion de caja con arqueo
// @Tags caja
// @Accept json
// @Produce json
// @Param id path string true "ID de sesion"
// @Param body body dto.CerrarCajaRequest true "Declaracion de cierre"
// @Success 200 {object} model.SesionCaja
// @Failure 404 {object} apierror.APIError
// @Router /v1/caja/{id}/cerrar [put]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sesion, err := h.svc.Cerrar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sesion)
}

// Historial godoc
// @Summary Historial de sesiones cerradas
// @Tags caja
// @Produce json
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Success 200 {array} model.SesionCaja
// @Router /v1/caja/historial [get]
func (h *CajaHandler) Historial(c *gin.Context) {
	var filter dto.HistorialFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	sesiones, err := h.svc.Historial(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sesiones)
}

// ReporteCierre godoc
// @Summary Reporte de una sesion cerrada
// @Tags caja
// @Produce json
// @Param id path string true "ID de sesion"
// @Success 200 {object} dto.ReporteCierreResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/caja/{id}/reporte [get]
func (h *CajaHandler) ReporteCierre(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ReporteCierre(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
