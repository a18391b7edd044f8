package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-curves/internal/application/dto"
	"github.com/jhoicas/retail-curves/internal/application/report"
)

// ReportHandler curvas de temporada de stock y ventas.
type ReportHandler struct {
	svc *report.Service
}

// NewReportHandler construye el handler.
func NewReportHandler(svc *report.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// StockCurves godoc
// @Summary      Curvas de stock por temporada
// @Description  Stock diario sumado; compara el año más reciente con los dos anteriores.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        region_id   query  int     false  "región"
// @Param        zone_id     query  int     false  "zona"
// @Param        store_code  query  string  false  "sucursal (fuerza su región y zona)"
// @Param        family_id   query  int     false  "familia"
// @Param        source      query  string  false  "all | stores | cdr"
// @Success      200  {object}  dto.CurvesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/curves [get]
func (h *ReportHandler) StockCurves(c *fiber.Ctx) error {
	var q dto.CurveQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "INVALID_QUERY", "filtros inválidos")
	}
	out, err := h.svc.StockCurves(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesCurves godoc
// @Summary      Curvas de ventas acumuladas por temporada
// @Description  Unidades vendidas acumuladas; excluye centros de distribución.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        region_id   query  int     false  "región"
// @Param        zone_id     query  int     false  "zona"
// @Param        store_code  query  string  false  "sucursal (fuerza su región y zona)"
// @Param        family_id   query  int     false  "familia"
// @Param        year        query  int     false  "año pivote"
// @Success      200  {object}  dto.CurvesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/curves [get]
func (h *ReportHandler) SalesCurves(c *fiber.Ctx) error {
	var q dto.CurveQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "INVALID_QUERY", "filtros inválidos")
	}
	out, err := h.svc.SalesCurves(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
