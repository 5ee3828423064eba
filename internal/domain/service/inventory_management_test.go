package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/inventario-empresas/internal/domain"
	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
	"github.com/jhoicas/inventario-empresas/internal/domain/repository/mocks"
	"github.com/jhoicas/inventario-empresas/internal/domain/service"
)

const (
	testNIT  = "123456789"
	testCode = "PROD001"
)

func newMemService(s *memStore) *service.InventoryManagementService {
	return service.NewInventoryManagementService(memCompanies{s}, memProducts{s}, memInventory{s})
}

func seeded() *memStore {
	s := newMemStore()
	s.companies[testNIT] = true
	s.products[testCode] = testNIT
	return s
}

func TestAddToInventory_AcumulaCantidades(t *testing.T) {
	s := seeded()
	svc := newMemService(s)
	ctx := context.Background()

	item, err := svc.AddToInventory(ctx, testNIT, testCode, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity())

	item, err = svc.AddToInventory(ctx, testNIT, testCode, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, item.Quantity())
	assert.Equal(t, 8, s.quantity(t, testNIT, testCode))
	assert.Equal(t, 2, s.saves)
}

// Crear con 0 es válido; sumar 0 a un registro existente no.
func TestAddToInventory_CeroAlCrearYAlIncrementar(t *testing.T) {
	s := seeded()
	svc := newMemService(s)
	ctx := context.Background()

	item, err := svc.AddToInventory(ctx, testNIT, testCode, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity())

	_, err = svc.AddToInventory(ctx, testNIT, testCode, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInventory)
	assert.Equal(t, 1, s.saves)
}

func TestAddToInventory_CantidadNegativaAlCrear(t *testing.T) {
	s := seeded()
	_, err := newMemService(s).AddToInventory(context.Background(), testNIT, testCode, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInventory)
	assert.Zero(t, s.saves)
}

func TestAddToInventory_NoSuperaCantidadMaxima(t *testing.T) {
	s := seeded()
	svc := newMemService(s)
	ctx := context.Background()

	_, err := svc.AddToInventory(ctx, testNIT, testCode, entity.MaxQuantity+1)
	assert.ErrorIs(t, err, domain.ErrInvalidInventory)
	assert.Zero(t, s.saves)

	_, err = svc.AddToInventory(ctx, testNIT, testCode, entity.MaxQuantity)
	require.NoError(t, err)
	_, err = svc.AddToInventory(ctx, testNIT, testCode, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInventory)
	assert.Equal(t, entity.MaxQuantity, s.quantity(t, testNIT, testCode))
	assert.Equal(t, 1, s.saves)
}

func TestAddToInventory_EmpresaInexistente(t *testing.T) {
	ctrl := gomock.NewController(t)
	companies := mocks.NewMockCompanyStore(ctrl)
	products := mocks.NewMockProductStore(ctrl)
	inventory := mocks.NewMockInventoryStore(ctrl)
	companies.EXPECT().Exists(gomock.Any(), "000000000").Return(false, nil)
	// Ni producto ni inventario se consultan, y no se escribe nada.

	svc := service.NewInventoryManagementService(companies, products, inventory)
	_, err := svc.AddToInventory(context.Background(), "000000000", testCode, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCompany)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestAddToInventory_ProductoDeOtraEmpresa(t *testing.T) {
	ctrl := gomock.NewController(t)
	companies := mocks.NewMockCompanyStore(ctrl)
	products := mocks.NewMockProductStore(ctrl)
	inventory := mocks.NewMockInventoryStore(ctrl)
	companies.EXPECT().Exists(gomock.Any(), testNIT).Return(true, nil)
	products.EXPECT().Exists(gomock.Any(), testCode, testNIT).Return(false, nil)

	svc := service.NewInventoryManagementService(companies, products, inventory)
	_, err := svc.AddToInventory(context.Background(), testNIT, testCode, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
}

func TestAddToInventory_GuardaUnaVez(t *testing.T) {
	ctrl := gomock.NewController(t)
	companies := mocks.NewMockCompanyStore(ctrl)
	products := mocks.NewMockProductStore(ctrl)
	inventory := mocks.NewMockInventoryStore(ctrl)

	existing, err := entity.NewInventoryItem(testNIT, testCode, 10)
	require.NoError(t, err)
	savedAt := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)

	gomock.InOrder(
		companies.EXPECT().Exists(gomock.Any(), testNIT).Return(true, nil),
		products.EXPECT().Exists(gomock.Any(), testCode, testNIT).Return(true, nil),
		inventory.EXPECT().Find(gomock.Any(), testNIT, testCode).Return(&existing, nil),
		inventory.EXPECT().Save(gomock.Any(), gomock.Cond(func(item entity.InventoryItem) bool {
			return item.Quantity() == 15
		})).Return(savedAt, nil).Times(1),
	)

	svc := service.NewInventoryManagementService(companies, products, inventory)
	item, err := svc.AddToInventory(context.Background(), testNIT, testCode, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, item.Quantity())
	assert.Equal(t, savedAt, item.UpdatedAt(), "updated_at viene de lo persistido")
}

func TestRemoveFromInventory_StockInsuficienteNoModifica(t *testing.T) {
	s := seeded()
	svc := newMemService(s)
	ctx := context.Background()

	_, err := svc.AddToInventory(ctx, testNIT, testCode, 5)
	require.NoError(t, err)

	_, err = svc.RemoveFromInventory(ctx, testNIT, testCode, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInventory)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, s.quantity(t, testNIT, testCode))
	assert.Equal(t, 1, s.saves)
}

func TestRemoveFromInventory_SinRegistro(t *testing.T) {
	s := seeded()
	_, err := newMemService(s).RemoveFromInventory(context.Background(), testNIT, testCode, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
	assert.Contains(t, err.Error(), "is not in inventory for company")
}

func TestRemoveFromInventory_EmpresaInexistente(t *testing.T) {
	s := seeded()
	_, err := newMemService(s).RemoveFromInventory(context.Background(), "000000000", testCode, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidCompany)
}

func TestCheckInventory_Lectura(t *testing.T) {
	s := seeded()
	svc := newMemService(s)
	ctx := context.Background()

	// Sin validación de existencia: una empresa desconocida simplemente no tiene registro.
	_, found, err := svc.CheckInventory(ctx, "desconocida", "X")
	require.NoError(t, err)
	assert.False(t, found)

	_, err = svc.AddToInventory(ctx, testNIT, testCode, 7)
	require.NoError(t, err)
	qty, found, err := svc.CheckInventory(ctx, testNIT, testCode)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 7, qty)
}

// Escenario completo: empresa → producto → +50 → -20.
func TestEscenarioCompleto(t *testing.T) {
	s := newMemStore()
	ctx := context.Background()

	company, err := service.NewCompanyRegistrationService().Register("123456789", "Acme", "Calle 1", "3001234567")
	require.NoError(t, err)
	s.companies[company.NIT()] = true

	product, err := service.NewProductRegistrationService(memCompanies{s}).Register(ctx, "PROD001", "Camiseta", nil,
		map[string]entity.Money{"USD": money(t, "100.00", entity.USD)}, company.NIT())
	require.NoError(t, err)
	assert.Equal(t, "100.00", product.Prices()["USD"].Amount().StringFixed(2))
	s.products[product.Code()] = product.CompanyNIT()

	svc := newMemService(s)
	item, err := svc.AddToInventory(ctx, "123456789", "PROD001", 50)
	require.NoError(t, err)
	assert.Equal(t, 50, item.Quantity())

	item, err = svc.RemoveFromInventory(ctx, "123456789", "PROD001", 20)
	require.NoError(t, err)
	assert.Equal(t, 30, item.Quantity())
}
