package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/inventario-empresas/internal/application/dto"
	"github.com/jhoicas/inventario-empresas/internal/application/usecase"
	"github.com/jhoicas/inventario-empresas/internal/domain"
	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
	"github.com/jhoicas/inventario-empresas/internal/domain/repository/mocks"
)

func strPtr(s string) *string { return &s }

func mustCompany(t *testing.T) entity.Company {
	t.Helper()
	c, err := entity.NewCompany("123456789", "Acme", "Calle 1", "3001234567")
	require.NoError(t, err)
	return c
}

func TestCompanyRegister_Exitoso(t *testing.T) {
	repo := mocks.NewMockCompanyStore(gomock.NewController(t))
	repo.EXPECT().Exists(gomock.Any(), "123456789").Return(false, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	out, err := usecase.NewCompanyUseCase(repo).Register(context.Background(), dto.CreateCompanyRequest{
		NIT: " 123456789 ", Name: "Acme", Address: "Calle 1", Phone: "+57 3001234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "123456789", out.NIT)
	assert.Equal(t, "+57 3001234567", out.Phone)
}

func TestCompanyRegister_Duplicado(t *testing.T) {
	repo := mocks.NewMockCompanyStore(gomock.NewController(t))
	repo.EXPECT().Exists(gomock.Any(), "123456789").Return(true, nil)

	_, err := usecase.NewCompanyUseCase(repo).Register(context.Background(), dto.CreateCompanyRequest{
		NIT: "123456789", Name: "Acme", Address: "Calle 1", Phone: "300",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Datos inválidos no llegan al repositorio.
func TestCompanyRegister_Invalido(t *testing.T) {
	repo := mocks.NewMockCompanyStore(gomock.NewController(t))

	_, err := usecase.NewCompanyUseCase(repo).Register(context.Background(), dto.CreateCompanyRequest{
		NIT: "123", Name: "Acme", Address: "Calle 1", Phone: "300",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCompany)
	assert.Contains(t, err.Error(), "failed to register company")
}

func TestCompanyUpdate_CamposOpcionales(t *testing.T) {
	repo := mocks.NewMockCompanyStore(gomock.NewController(t))
	current := mustCompany(t)
	repo.EXPECT().GetByNIT(gomock.Any(), "123456789").Return(&current, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Cond(func(c entity.Company) bool {
		return c.Name() == "Acme" && c.Address() == "Carrera 7" && c.Phone() == "3001234567"
	})).Return(nil)

	out, err := usecase.NewCompanyUseCase(repo).Update(context.Background(), "123456789", dto.UpdateCompanyRequest{
		Address: strPtr(" Carrera 7 "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Carrera 7", out.Address)
	assert.Equal(t, "Acme", out.Name)
}

func TestCompanyUpdate_CampoVacioFalla(t *testing.T) {
	repo := mocks.NewMockCompanyStore(gomock.NewController(t))
	current := mustCompany(t)
	repo.EXPECT().GetByNIT(gomock.Any(), "123456789").Return(&current, nil)

	_, err := usecase.NewCompanyUseCase(repo).Update(context.Background(), "123456789", dto.UpdateCompanyRequest{
		Name: strPtr("Nuevo"), Phone: strPtr(""),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCompany)
}

func TestCompanyUpdate_NoExiste(t *testing.T) {
	repo := mocks.NewMockCompanyStore(gomock.NewController(t))
	repo.EXPECT().GetByNIT(gomock.Any(), "999999999").Return(nil, nil)

	_, err := usecase.NewCompanyUseCase(repo).Update(context.Background(), "999999999", dto.UpdateCompanyRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyList(t *testing.T) {
	repo := mocks.NewMockCompanyStore(gomock.NewController(t))
	repo.EXPECT().List(gomock.Any(), 20, 0).Return([]entity.Company{mustCompany(t)}, nil)

	out, err := usecase.NewCompanyUseCase(repo).List(context.Background(), 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Acme", out.Items[0].Name)
	assert.Equal(t, 20, out.Page.Limit)
}

func TestCompanyList_LimiteAcotado(t *testing.T) {
	repo := mocks.NewMockCompanyStore(gomock.NewController(t))
	repo.EXPECT().List(gomock.Any(), 100, 0).Return(nil, nil)

	out, err := usecase.NewCompanyUseCase(repo).List(context.Background(), 500, -3)
	require.NoError(t, err)
	assert.Equal(t, dto.PageResponse{Limit: 100, Offset: 0}, out.Page)
}

type invalidatorSpy struct{ nits []string }

func (s *invalidatorSpy) InvalidateCompany(_ context.Context, nit string) error {
	s.nits = append(s.nits, nit)
	return nil
}

func TestCompanyDelete_InvalidaCacheSoloSiBorra(t *testing.T) {
	repo := mocks.NewMockCompanyStore(gomock.NewController(t))
	spy := &invalidatorSpy{}
	uc := usecase.NewCompanyUseCase(repo).WithStockCache(spy)

	repo.EXPECT().Delete(gomock.Any(), "123456789").Return(nil)
	require.NoError(t, uc.Delete(context.Background(), "123456789"))

	repo.EXPECT().Delete(gomock.Any(), "000000").Return(domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(context.Background(), "000000"), domain.ErrNotFound)

	assert.Equal(t, []string{"123456789"}, spy.nits)
}
