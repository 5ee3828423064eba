package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-empresas/internal/application/dto"
	"github.com/jhoicas/inventario-empresas/internal/application/report"
)

// ReportService reportes de inventario (report.UseCase).
type ReportService interface {
	PDF(ctx context.Context, companyNIT string) (*report.File, error)
	XLSX(ctx context.Context, companyNIT string) (*report.File, error)
	EnqueueEmail(ctx context.Context, companyNIT, email string) (*dto.InventoryReportEmailResponse, error)
}

// RecommendationService recomendaciones de IA (usecase.AIUseCase).
type RecommendationService interface {
	Recommendations(ctx context.Context, companyNIT string) (*dto.RecommendationsResponse, error)
}

// ReportHandler descargas, envío por correo y recomendaciones.
type ReportHandler struct {
	reports ReportService
	ai      RecommendationService
}

// NewReportHandler construye el handler.
func NewReportHandler(reports ReportService, ai RecommendationService) *ReportHandler {
	return &ReportHandler{reports: reports, ai: ai}
}

// PDF godoc
// @Summary      Reporte PDF del inventario (incluye recomendaciones de IA)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        nit  path  string  true  "NIT"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{nit}/inventory/report/pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	return h.download(c, h.reports.PDF)
}

// XLSX godoc
// @Summary      Exportar inventario a Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        nit  path  string  true  "NIT"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{nit}/inventory/report/xlsx [get]
func (h *ReportHandler) XLSX(c *fiber.Ctx) error {
	return h.download(c, h.reports.XLSX)
}

func (h *ReportHandler) download(c *fiber.Ctx, render func(context.Context, string) (*report.File, error)) error {
	file, err := render(c.UserContext(), c.Params("nit"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	return c.Send(file.Data)
}

// Email godoc
// @Summary      Enviar el reporte PDF por correo (asíncrono)
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        nit   path  string                           true  "NIT"
// @Param        body  body  dto.InventoryReportEmailRequest  true  "email destino"
// @Success      202   {object}  dto.InventoryReportEmailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{nit}/inventory/report/email [post]
func (h *ReportHandler) Email(c *fiber.Ctx) error {
	var in dto.InventoryReportEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.reports.EnqueueEmail(c.UserContext(), c.Params("nit"), in.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}

// Recommendations godoc
// @Summary      Recomendaciones de reabastecimiento generadas con IA
// @Description  Nunca falla por el proveedor de IA: sin clave, timeout o error se devuelve un texto por defecto.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        nit  path  string  true  "NIT"
// @Success      200  {object}  dto.RecommendationsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/companies/{nit}/inventory/recommendations [get]
func (h *ReportHandler) Recommendations(c *fiber.Ctx) error {
	out, err := h.ai.Recommendations(c.UserContext(), c.Params("nit"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
