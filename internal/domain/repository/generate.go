package repository

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/jhoicas/inventario-empresas/internal/domain/repository CompanyStore,ProductStore,InventoryStore,UserRepository
