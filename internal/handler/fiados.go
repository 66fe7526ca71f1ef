package handler

import (
	"net/http"

	"github.com/Sherman95/pos-carmita-villegas/internal/dto"
	"github.com/Sherman95/pos-carmita-villegas/internal/service"

	"github.com/gin-gonic/gin"
)

type FiadosHandler struct{ svc service.FiadoService }

func NewFiadosHandler(svc service.FiadoService) *FiadosHandler { return &FiadosHandler{svc: svc} }

// Deudores godoc
// @Summary Clientes con saldo pendiente, agrupados
// @Tags fiados
// @Produce json
// @Success 200 {array} dto.DeudorResponse
// @Router /v1/fiados/deudores [get]
func (h *FiadosHandler) Deudores(c *gin.Context) {
	deudores, err := h.svc.ListarDeudores(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deudores)
}

// RegistrarAbono godoc
// @Summary Registra un abono sobre una venta fiada
// @Tags fiados
// @Accept json
// @Produce json
// @Param body body dto.AbonoRequest true "Abono"
// @Success 201 {object} dto.AbonoRegistradoResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/fiados/abonos [post]
func (h *FiadosHandler) RegistrarAbono(c *gin.Context) {
	var req dto.AbonoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarAbono(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// HistorialAbonos godoc
// @Summary Abonos registrados sobre una venta
// @Tags fiados
// @Produce json
// @Param id path string true "ID de venta"
// @Success 200 {array} model.Abono
// @Failure 404 {object} apierror.APIError
// @Router /v1/ventas/{id}/abonos [get]
func (h *FiadosHandler) HistorialAbonos(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	abonos, err := h.svc.HistorialAbonos(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, abonos)
}
