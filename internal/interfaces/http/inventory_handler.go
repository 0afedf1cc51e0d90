package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kirana-api/internal/application/dto"
	"github.com/jhoicas/Kirana-api/internal/application/inventory"
)

// InventoryHandler entradas, bajas y consulta de stock por lotes (protegido).
type InventoryHandler struct {
	stock         *inventory.StockUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{stock: stock, replenishment: replenishment}
}

// AddStock godoc
// @Summary      Ingresar stock
// @Description  Crea un lote o lo suma al lote del mismo producto con el mismo vencimiento
//
//	(costo promedio ponderado). Sin cost_price usa el costo del catálogo o el 75 % del precio.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockRequest  true  "item_name, quantity, price, cost_price, expiry_date"
// @Success      201   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [post]
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var in dto.AddStockRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	res, err := h.stock.AddStockFromRequest(c.UserContext(), tenantID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// ReduceStock godoc
// @Summary      Dar de baja stock (merma, consumo propio)
// @Description  Descuenta en orden FIFO sin registrar venta.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReduceStockRequest  true  "item_name, quantity"
// @Success      200   {object}  dto.ReduceStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/reduce [post]
func (h *InventoryHandler) ReduceStock(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var in dto.ReduceStockRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	res, err := h.stock.ReduceStockFromRequest(c.UserContext(), tenantID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// List godoc
// @Summary      Inventario por producto
// @Description  Stock agregado, costo promedio, vencimiento más próximo y lotes. Los productos
//
//	con stock bajo aparecen primero con la cantidad sugerida de reposición.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	res, err := h.replenishment.ListInventory(c.UserContext(), tenantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
