package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/inventario-empresas/internal/domain"
	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
	"github.com/jhoicas/inventario-empresas/internal/domain/repository/mocks"
	"github.com/jhoicas/inventario-empresas/internal/domain/service"
)

func TestProductRegistration_Exitoso(t *testing.T) {
	ctrl := gomock.NewController(t)
	companies := mocks.NewMockCompanyStore(ctrl)
	companies.EXPECT().Exists(gomock.Any(), "123456789").Return(true, nil)

	svc := service.NewProductRegistrationService(companies)
	p, err := svc.Register(context.Background(), "PROD001", "Camiseta", []string{"algodón"},
		map[string]entity.Money{"USD": money(t, "100.00", entity.USD)}, "123456789")
	require.NoError(t, err)

	price, err := p.PriceFor("USD")
	require.NoError(t, err)
	assert.Equal(t, "100.00", price.StringFixed())
}

// Si la empresa no existe el producto nunca se construye: incluso con datos inválidos
// el error es de empresa.
func TestProductRegistration_EmpresaInexistente(t *testing.T) {
	ctrl := gomock.NewController(t)
	companies := mocks.NewMockCompanyStore(ctrl)
	companies.EXPECT().Exists(gomock.Any(), "999999999").Return(false, nil)

	svc := service.NewProductRegistrationService(companies)
	_, err := svc.Register(context.Background(), "", "", nil, nil, "999999999")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCompany)
	assert.NotErrorIs(t, err, domain.ErrInvalidProduct)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestProductRegistration_ReetiquetaErrorDeProducto(t *testing.T) {
	ctrl := gomock.NewController(t)
	companies := mocks.NewMockCompanyStore(ctrl)
	companies.EXPECT().Exists(gomock.Any(), "123456789").Return(true, nil)

	svc := service.NewProductRegistrationService(companies)
	_, err := svc.Register(context.Background(), "PROD001", " ", nil,
		map[string]entity.Money{"USD": money(t, "1", entity.USD)}, "123456789")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
	assert.Equal(t, "failed to register product: name is required", err.Error())
}

func TestProductRegistration_ErrorDePrecioSePropaga(t *testing.T) {
	ctrl := gomock.NewController(t)
	companies := mocks.NewMockCompanyStore(ctrl)
	companies.EXPECT().Exists(gomock.Any(), "123456789").Return(true, nil).Times(2)

	svc := service.NewProductRegistrationService(companies)
	_, err := svc.Register(context.Background(), "PROD001", "Camiseta", nil, map[string]entity.Money{}, "123456789")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
	assert.NotErrorIs(t, err, domain.ErrInvalidProduct)

	usd := money(t, "1", entity.USD)
	_, err = svc.Register(context.Background(), "PROD001", "Camiseta", nil,
		map[string]entity.Money{"usd": usd, "USD": usd}, "123456789")
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
	assert.Contains(t, err.Error(), "duplicated price")
}

func TestProductRegistration_ErrorDelAdaptador(t *testing.T) {
	ctrl := gomock.NewController(t)
	companies := mocks.NewMockCompanyStore(ctrl)
	boom := errors.New("conexión rechazada")
	companies.EXPECT().Exists(gomock.Any(), "123456789").Return(false, boom)

	svc := service.NewProductRegistrationService(companies)
	_, err := svc.Register(context.Background(), "PROD001", "Camiseta", nil, nil, "123456789")
	assert.ErrorIs(t, err, boom)
	assert.False(t, domain.IsValidation(err))
}
