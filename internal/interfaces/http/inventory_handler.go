package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-empresas/internal/application/dto"
)

// InventoryService casos de uso de inventario (inventory.UseCase).
type InventoryService interface {
	Add(ctx context.Context, in dto.InventoryChangeRequest) (*dto.InventoryItemResponse, error)
	Remove(ctx context.Context, in dto.InventoryChangeRequest) (*dto.InventoryItemResponse, error)
	Check(ctx context.Context, companyNIT, productCode string) (*dto.InventoryCheckResponse, error)
	ListByCompany(ctx context.Context, companyNIT string) (*dto.CompanyInventoryResponse, error)
}

// InventoryHandler entradas, salidas y consultas de stock.
type InventoryHandler struct {
	uc InventoryService
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc InventoryService) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Add godoc
// @Summary      Agregar unidades al inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InventoryChangeRequest  true  "company_nit, product_code, quantity"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/add [post]
func (h *InventoryHandler) Add(c *fiber.Ctx) error {
	return h.change(c, h.uc.Add)
}

// Remove godoc
// @Summary      Retirar unidades del inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InventoryChangeRequest  true  "company_nit, product_code, quantity"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/v1/inventory/remove [post]
func (h *InventoryHandler) Remove(c *fiber.Ctx) error {
	return h.change(c, h.uc.Remove)
}

func (h *InventoryHandler) change(c *fiber.Ctx, op func(context.Context, dto.InventoryChangeRequest) (*dto.InventoryItemResponse, error)) error {
	var in dto.InventoryChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := op(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Check godoc
// @Summary      Cantidad de un producto en el inventario de una empresa
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        nit   path  string  true  "NIT"
// @Param        code  path  string  true  "Código del producto"
// @Success      200   {object}  dto.InventoryCheckResponse
// @Router       /api/v1/companies/{nit}/inventory/{code} [get]
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	out, err := h.uc.Check(c.UserContext(), c.Params("nit"), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByCompany godoc
// @Summary      Inventario completo de una empresa
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        nit  path  string  true  "NIT"
// @Success      200  {object}  dto.CompanyInventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{nit}/inventory [get]
func (h *InventoryHandler) ListByCompany(c *fiber.Ctx) error {
	out, err := h.uc.ListByCompany(c.UserContext(), c.Params("nit"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
