package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kirana-api/internal/application/analytics"
)

// SalesHandler reportes de ventas en la zona horaria de la tienda.
type SalesHandler struct {
	uc *analytics.SalesReportUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *analytics.SalesReportUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Today godoc
// @Summary      Ventas de hoy
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sales/today [get]
func (h *SalesHandler) Today(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	res, err := h.uc.Today(c.UserContext(), tenantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Month godoc
// @Summary      Ventas del mes en curso
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sales/month [get]
func (h *SalesHandler) Month(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	res, err := h.uc.Month(c.UserContext(), tenantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// Date godoc
// @Summary      Ventas de un día
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        date  path  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/date/{date} [get]
func (h *SalesHandler) Date(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	res, err := h.uc.Date(c.UserContext(), tenantID, c.Params("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
