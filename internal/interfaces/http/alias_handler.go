package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kirana-api/internal/application/dto"
	"github.com/jhoicas/Kirana-api/internal/application/usecase"
)

// AliasHandler administración de la tabla global de alias.
type AliasHandler struct {
	uc *usecase.AliasUseCase
}

// NewAliasHandler construye el handler.
func NewAliasHandler(uc *usecase.AliasUseCase) *AliasHandler {
	return &AliasHandler{uc: uc}
}

// List godoc
// @Summary      Listar alias
// @Tags         aliases
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.AliasDTO
// @Router       /api/aliases [get]
func (h *AliasHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear alias
// @Description  Solo el dueño de la tienda. El alias aplica a todas las tiendas.
// @Tags         aliases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAliasRequest  true  "alias, item_name"
// @Success      201   {object}  dto.AliasDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/aliases [post]
func (h *AliasHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAliasRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	res, err := h.uc.Create(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
