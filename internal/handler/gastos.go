package handler

import (
	"net/http"

	"github.com/Sherman95/pos-carmita-villegas/internal/dto"
	"github.com/Sherman95/pos-carmita-villegas/internal/service"

	"github.com/gin-gonic/gin"
)

type GastosHandler struct{ svc service.GastoService }

func NewGastosHandler(svc service.GastoService) *GastosHandler { return &GastosHandler{svc: svc} }

// Crear godoc
// @Summary Registra un gasto contra la sesion abierta
// @Tags gastos
// @Accept json
// @Produce json
// @Param body body dto.CrearGastoRequest true "Gasto"
// @Success 201 {object} model.Gasto
// @Failure 409 {object} apierror.APIError
// @Router /v1/gastos [post]
func (h *GastosHandler) Crear(c *gin.Context) {
	var req dto.CrearGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	gasto, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gasto)
}

// Listar godoc
// @Summary Lista gastos con filtros opcionales
// @Tags gastos
// @Produce json
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Param categoria query string false "Categoria (TODAS para no filtrar)"
// @Success 200 {object} dto.GastosResponse
// @Router /v1/gastos [get]
func (h *GastosHandler) Listar(c *gin.Context) {
	var filter dto.GastoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary Elimina un gasto
// @Tags gastos
// @Param id path string true "ID de gasto"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/gastos/{id} [delete]
func (h *GastosHandler) Eliminar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
