package report

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-empresas/internal/application/dto"
)

// Document datos del reporte de inventario de una empresa.
type Document struct {
	Company         dto.CompanyResponse
	Items           []dto.InventoryLine
	TotalUnits      int
	Recommendations string // vacío = sin sección de IA
	GeneratedAt     time.Time
}

// File archivo generado listo para descargar o adjuntar.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// InventoryLister lectura del inventario de una empresa.
type InventoryLister interface {
	ListByCompany(ctx context.Context, companyNIT string) (*dto.CompanyInventoryResponse, error)
}

// Recommender recomendaciones de IA para un inventario. Nunca falla.
type Recommender interface {
	ForInventory(ctx context.Context, inv *dto.CompanyInventoryResponse) string
}

// PDFRenderer genera el PDF del reporte.
type PDFRenderer interface {
	RenderInventoryPDF(ctx context.Context, doc Document) ([]byte, error)
}

// SpreadsheetRenderer genera la hoja de cálculo del reporte.
type SpreadsheetRenderer interface {
	RenderInventoryXLSX(ctx context.Context, doc Document) ([]byte, error)
}

// Mailer envía el reporte como adjunto.
type Mailer interface {
	SendInventoryReport(ctx context.Context, to string, doc Document, attachment File) error
}

// EmailQueue encola el envío asíncrono del reporte.
type EmailQueue interface {
	EnqueueInventoryReportEmail(ctx context.Context, companyNIT, email string) (taskID, queue string, err error)
}
