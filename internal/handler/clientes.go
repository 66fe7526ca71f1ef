package handler

import (
	"errors"
	"net/http"

	"github.com/Sherman95/pos-carmita-villegas/internal/apierror"
	"github.com/Sherman95/pos-carmita-villegas/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ClientesHandler exposes the client directory reads the POS screens use.
type ClientesHandler struct{ repo repository.ClienteRepository }

func NewClientesHandler(repo repository.ClienteRepository) *ClientesHandler {
	return &ClientesHandler{repo: repo}
}

// Listar godoc
// @Summary Lista los clientes registrados
// @Tags clientes
// @Produce json
// @Success 200 {array} model.Cliente
// @Router /v1/clientes [get]
func (h *ClientesHandler) Listar(c *gin.Context) {
	clientes, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clientes)
}

// Obtener godoc
// @Summary Ficha de un cliente
// @Tags clientes
// @Produce json
// @Param id path string true "ID de cliente"
// @Success 200 {object} model.Cliente
// @Failure 404 {object} apierror.APIError
// @Router /v1/clientes/{id} [get]
func (h *ClientesHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	cliente, err := h.repo.FindByID(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, apierror.New("Cliente no encontrado"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cliente)
}
