package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Sherman95/pos-carmita-villegas/internal/apierror"
	"github.com/Sherman95/pos-carmita-villegas/internal/dto"
	"github.com/Sherman95/pos-carmita-villegas/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const precioCacheTTL = 4 * time.Hour

// CatalogoHandler serves the read-only catalog: the item list the sale screen
// loads and the cached price check.
type CatalogoHandler struct {
	repo repository.ItemRepository
	rdb  *redis.Client
}

func NewCatalogoHandler(repo repository.ItemRepository, rdb *redis.Client) *CatalogoHandler {
	return &CatalogoHandler{repo: repo, rdb: rdb}
}

// Listar godoc
// @Summary Lista el catalogo de productos y servicios
// @Tags catalogo
// @Produce json
// @Success 200 {array} model.Item
// @Router /v1/items [get]
func (h *CatalogoHandler) Listar(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Obtener godoc
// @Summary Devuelve un item del catalogo
// @Tags catalogo
// @Produce json
// @Param id path string true "ID de item"
// @Success 200 {object} model.Item
// @Failure 404 {object} apierror.APIError
// @Router /v1/items/{id} [get]
func (h *CatalogoHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Item no encontrado"))
		return
	}
	c.JSON(http.StatusOK, item)
}

// Precio godoc
// @Summary Consulta de precio de un item
// @Tags catalogo
// @Produce json
// @Param id path string true "ID de item"
// @Success 200 {object} dto.PrecioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/precio/{id} [get]
func (h *CatalogoHandler) Precio(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	ctx := c.Request.Context()
	cacheKey := "precio:" + id.String()

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.PrecioResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	item, err := h.repo.FindByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Item no encontrado"))
		return
	}

	resp := dto.PrecioResponse{
		Nombre: item.Nombre,
		Precio: item.Precio,
		Tipo:   item.Tipo,
		Stock:  item.Stock,
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, precioCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
