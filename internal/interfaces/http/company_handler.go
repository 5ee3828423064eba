package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-empresas/internal/application/dto"
)

// CompanyService casos de uso de empresas (usecase.CompanyUseCase).
type CompanyService interface {
	Register(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	Update(ctx context.Context, nit string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
	GetByNIT(ctx context.Context, nit string) (*dto.CompanyResponse, error)
	List(ctx context.Context, limit, offset int) (*dto.CompanyListResponse, error)
	Delete(ctx context.Context, nit string) error
}

// CompanyHandler maneja las peticiones HTTP para el recurso Company.
type CompanyHandler struct {
	uc CompanyService
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc CompanyService) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar empresa
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar empresa (campos omitidos se conservan)
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        nit   path  string                    true  "NIT"
// @Param        body  body  dto.UpdateCompanyRequest  true  "name, address, phone"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{nit} [patch]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("nit"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener empresa por NIT
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        nit  path  string  true  "NIT"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{nit} [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByNIT(c.UserContext(), c.Params("nit"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "empresa no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar empresas
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.CompanyListResponse
// @Router       /api/v1/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar empresa (con sus productos e inventario)
// @Tags         companies
// @Security     Bearer
// @Param        nit  path  string  true  "NIT"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{nit} [delete]
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("nit")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func pageParams(c *fiber.Ctx) (int, int) {
	p := dto.NewPageRequest(c.QueryInt("limit", dto.DefaultPageLimit), c.QueryInt("offset", 0))
	return p.Limit, p.Offset
}
