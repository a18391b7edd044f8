package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-curves/internal/application/catalog"
)

// CatalogHandler expone regiones, zonas, sucursales y familias para los filtros.
type CatalogHandler struct {
	svc *catalog.Service
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Regions godoc
// @Summary  Listar regiones
// @Tags     catalog
// @Produce  json
// @Security BearerAuth
// @Success  200  {object}  dto.OptionListResponse
// @Router   /api/regions [get]
func (h *CatalogHandler) Regions(c *fiber.Ctx) error {
	out, err := h.svc.Regions(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Zones godoc
// @Summary  Zonas de una región
// @Tags     catalog
// @Produce  json
// @Security BearerAuth
// @Param    region_id  query  int  false  "región"
// @Success  200  {object}  dto.OptionListResponse
// @Router   /api/zones [get]
func (h *CatalogHandler) Zones(c *fiber.Ctx) error {
	out, err := h.svc.Zones(c.UserContext(), queryID(c, "region_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stores godoc
// @Summary  Sucursales de una zona
// @Tags     catalog
// @Produce  json
// @Security BearerAuth
// @Param    zone_id  query  int  false  "zona"
// @Success  200  {object}  dto.OptionListResponse
// @Router   /api/stores [get]
func (h *CatalogHandler) Stores(c *fiber.Ctx) error {
	out, err := h.svc.Stores(c.UserContext(), queryID(c, "zone_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StoreInfo godoc
// @Summary  Región y zona de una sucursal
// @Tags     catalog
// @Produce  json
// @Security BearerAuth
// @Param    code  query  string  true  "código de sucursal"
// @Success  200  {object}  dto.StoreInfoResponse
// @Router   /api/stores/info [get]
func (h *CatalogHandler) StoreInfo(c *fiber.Ctx) error {
	out, err := h.svc.StoreInfo(c.UserContext(), c.Query("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Families godoc
// @Summary  Familias activas
// @Tags     catalog
// @Produce  json
// @Security BearerAuth
// @Success  200  {object}  dto.FamilyListResponse
// @Router   /api/families [get]
func (h *CatalogHandler) Families(c *fiber.Ctx) error {
	out, err := h.svc.Families(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// queryID lee un id numérico opcional; ausente o inválido = nil.
func queryID(c *fiber.Ctx, key string) *int64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}
