package report

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/inventario-empresas/internal/application/dto"
	"github.com/jhoicas/inventario-empresas/internal/domain"
	"github.com/jhoicas/inventario-empresas/pkg/logger"
)

var tracer = otel.Tracer("report-usecase")

// Tipos de contenido de los archivos generados.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// UseCase reportes de inventario: PDF (con recomendaciones de IA), XLSX y envío por correo.
type UseCase struct {
	inventory   InventoryLister
	recommender Recommender
	pdf         PDFRenderer
	xlsx        SpreadsheetRenderer
	mailer      Mailer
	queue       EmailQueue
	log         *logger.Logger
	now         func() time.Time
}

// Deps colaboradores del caso de uso. Recommender, Mailer y EmailQueue son opcionales.
type Deps struct {
	Inventory   InventoryLister
	Recommender Recommender
	PDF         PDFRenderer
	XLSX        SpreadsheetRenderer
	Mailer      Mailer
	Queue       EmailQueue
}

// NewUseCase construye el caso de uso.
func NewUseCase(deps Deps, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		inventory:   deps.Inventory,
		recommender: deps.Recommender,
		pdf:         deps.PDF,
		xlsx:        deps.XLSX,
		mailer:      deps.Mailer,
		queue:       deps.Queue,
		log:         log.Component("report"),
		now:         time.Now,
	}
}

// PDF genera inventario_<nit>.pdf con la sección de recomendaciones.
func (uc *UseCase) PDF(ctx context.Context, companyNIT string) (*File, error) {
	ctx, span := tracer.Start(ctx, "report.pdf", trace.WithAttributes(attribute.String("company.nit", companyNIT)))
	defer span.End()

	doc, err := uc.document(ctx, companyNIT, true)
	if err != nil {
		return nil, err
	}
	data, err := uc.pdf.RenderInventoryPDF(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return &File{Name: fileName(doc, "pdf"), ContentType: ContentTypePDF, Data: data}, nil
}

// XLSX exporta el inventario a inventario_<nit>.xlsx.
func (uc *UseCase) XLSX(ctx context.Context, companyNIT string) (*File, error) {
	ctx, span := tracer.Start(ctx, "report.xlsx", trace.WithAttributes(attribute.String("company.nit", companyNIT)))
	defer span.End()

	doc, err := uc.document(ctx, companyNIT, false)
	if err != nil {
		return nil, err
	}
	data, err := uc.xlsx.RenderInventoryXLSX(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return &File{Name: fileName(doc, "xlsx"), ContentType: ContentTypeXLSX, Data: data}, nil
}

// EnqueueEmail valida el destinatario y la empresa y encola el envío.
func (uc *UseCase) EnqueueEmail(ctx context.Context, companyNIT, email string) (*dto.InventoryReportEmailResponse, error) {
	to, err := normalizeRecipient(email)
	if err != nil {
		return nil, err
	}
	if uc.queue == nil {
		return nil, fmt.Errorf("cola de tareas no configurada")
	}
	// Falla con ErrNotFound antes de encolar si la empresa no existe.
	if _, err := uc.inventory.ListByCompany(ctx, companyNIT); err != nil {
		return nil, err
	}
	id, queue, err := uc.queue.EnqueueInventoryReportEmail(ctx, companyNIT, to)
	if err != nil {
		return nil, fmt.Errorf("enqueue report email: %w", err)
	}
	uc.log.Info().Str("task_id", id).Str("company_nit", companyNIT).Str("to", to).Msg("envío de reporte encolado")
	return &dto.InventoryReportEmailResponse{TaskID: id, Queue: queue}, nil
}

// SendEmail genera el PDF y lo envía. Lo ejecuta el worker.
func (uc *UseCase) SendEmail(ctx context.Context, companyNIT, email string) error {
	ctx, span := tracer.Start(ctx, "report.send_email", trace.WithAttributes(attribute.String("company.nit", companyNIT)))
	defer span.End()

	to, err := normalizeRecipient(email)
	if err != nil {
		return err
	}
	if uc.mailer == nil {
		return fmt.Errorf("correo no configurado")
	}
	doc, err := uc.document(ctx, companyNIT, true)
	if err != nil {
		return err
	}
	data, err := uc.pdf.RenderInventoryPDF(ctx, doc)
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	attachment := File{Name: fileName(doc, "pdf"), ContentType: ContentTypePDF, Data: data}
	if err := uc.mailer.SendInventoryReport(ctx, to, doc, attachment); err != nil {
		return fmt.Errorf("send report email: %w", err)
	}
	uc.log.Info().Str("company_nit", companyNIT).Str("to", to).Msg("reporte enviado")
	return nil
}

func (uc *UseCase) document(ctx context.Context, companyNIT string, withAI bool) (Document, error) {
	inv, err := uc.inventory.ListByCompany(ctx, companyNIT)
	if err != nil {
		return Document{}, err
	}
	doc := Document{
		Company:     inv.Company,
		Items:       inv.Items,
		TotalUnits:  inv.Total,
		GeneratedAt: uc.now(),
	}
	if withAI && uc.recommender != nil {
		doc.Recommendations = uc.recommender.ForInventory(ctx, inv)
	}
	return doc, nil
}

func fileName(doc Document, ext string) string {
	return fmt.Sprintf("inventario_%s.%s", doc.Company.NIT, ext)
}

func normalizeRecipient(email string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Name != "" {
		return "", domain.NewError(domain.ErrInvalidInput, "invalid email address: %q", email)
	}
	return strings.ToLower(addr.Address), nil
}
