package report_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-empresas/internal/application/dto"
	"github.com/jhoicas/inventario-empresas/internal/application/report"
	"github.com/jhoicas/inventario-empresas/internal/domain"
)

type fakeInventory struct {
	inv *dto.CompanyInventoryResponse
	err error
}

func (f *fakeInventory) ListByCompany(context.Context, string) (*dto.CompanyInventoryResponse, error) {
	return f.inv, f.err
}

type fakeRecommender struct{ calls int }

func (f *fakeRecommender) ForInventory(context.Context, *dto.CompanyInventoryResponse) string {
	f.calls++
	return "Reabastecer Mouse."
}

type fakeRenderer struct{ docs []report.Document }

func (f *fakeRenderer) RenderInventoryPDF(_ context.Context, doc report.Document) ([]byte, error) {
	f.docs = append(f.docs, doc)
	return []byte("%PDF"), nil
}

func (f *fakeRenderer) RenderInventoryXLSX(_ context.Context, doc report.Document) ([]byte, error) {
	f.docs = append(f.docs, doc)
	return []byte("PK"), nil
}

type fakeMailer struct {
	to   []string
	file report.File
	err  error
}

func (f *fakeMailer) SendInventoryReport(_ context.Context, to string, _ report.Document, attachment report.File) error {
	f.to = append(f.to, to)
	f.file = attachment
	return f.err
}

type fakeQueue struct{ emails []string }

func (f *fakeQueue) EnqueueInventoryReportEmail(_ context.Context, _ string, email string) (string, string, error) {
	f.emails = append(f.emails, email)
	return "task-1", "reports", nil
}

func acmeInventory() *dto.CompanyInventoryResponse {
	return &dto.CompanyInventoryResponse{
		Company: dto.CompanyResponse{NIT: "900123456", Name: "Acme"},
		Items:   []dto.InventoryLine{{ProductCode: "P1", ProductName: "Mouse", Quantity: 3}},
		Total:   3,
	}
}

type fixture struct {
	inv      *fakeInventory
	ai       *fakeRecommender
	renderer *fakeRenderer
	mailer   *fakeMailer
	queue    *fakeQueue
	uc       *report.UseCase
}

func newFixture() *fixture {
	f := &fixture{
		inv:      &fakeInventory{inv: acmeInventory()},
		ai:       &fakeRecommender{},
		renderer: &fakeRenderer{},
		mailer:   &fakeMailer{},
		queue:    &fakeQueue{},
	}
	f.uc = report.NewUseCase(report.Deps{
		Inventory: f.inv, Recommender: f.ai, PDF: f.renderer, XLSX: f.renderer, Mailer: f.mailer, Queue: f.queue,
	}, nil)
	return f
}

func TestPDF_IncluyeRecomendaciones(t *testing.T) {
	f := newFixture()

	file, err := f.uc.PDF(context.Background(), "900123456")
	require.NoError(t, err)
	assert.Equal(t, "inventario_900123456.pdf", file.Name)
	assert.Equal(t, report.ContentTypePDF, file.ContentType)

	require.Len(t, f.renderer.docs, 1)
	doc := f.renderer.docs[0]
	assert.Equal(t, "Reabastecer Mouse.", doc.Recommendations)
	assert.Equal(t, 3, doc.TotalUnits)
	assert.False(t, doc.GeneratedAt.IsZero())
}

func TestXLSX_SinIA(t *testing.T) {
	f := newFixture()

	file, err := f.uc.XLSX(context.Background(), "900123456")
	require.NoError(t, err)
	assert.Equal(t, "inventario_900123456.xlsx", file.Name)
	assert.Zero(t, f.ai.calls)
}

func TestPDF_EmpresaInexistente(t *testing.T) {
	f := newFixture()
	f.inv.err = domain.NewError(domain.ErrNotFound, "company with NIT '1' not found")

	_, err := f.uc.PDF(context.Background(), "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.renderer.docs)
}

func TestEnqueueEmail_NormalizaYEncola(t *testing.T) {
	f := newFixture()

	res, err := f.uc.EnqueueEmail(context.Background(), "900123456", "  Ana@Acme.com ")
	require.NoError(t, err)
	assert.Equal(t, "task-1", res.TaskID)
	assert.Equal(t, []string{"ana@acme.com"}, f.queue.emails)
}

func TestEnqueueEmail_Validaciones(t *testing.T) {
	f := newFixture()

	for _, email := range []string{"", "no-es-email", "Ana <ana@acme.com>"} {
		_, err := f.uc.EnqueueEmail(context.Background(), "900123456", email)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, email)
	}

	f.inv.err = domain.NewError(domain.ErrNotFound, "company with NIT '1' not found")
	_, err := f.uc.EnqueueEmail(context.Background(), "1", "ana@acme.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.queue.emails)
}

func TestSendEmail_AdjuntaPDF(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.uc.SendEmail(context.Background(), "900123456", "ana@acme.com"))
	assert.Equal(t, []string{"ana@acme.com"}, f.mailer.to)
	assert.Equal(t, "inventario_900123456.pdf", f.mailer.file.Name)
	assert.Equal(t, []byte("%PDF"), f.mailer.file.Data)

	f.mailer.err = errors.New("smtp down")
	err := f.uc.SendEmail(context.Background(), "900123456", "ana@acme.com")
	assert.ErrorContains(t, err, "smtp down")
}
