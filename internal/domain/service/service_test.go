package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
)

// memStore repositorio en memoria para los escenarios con estado.
type memStore struct {
	mu        sync.Mutex
	companies map[string]bool
	products  map[string]string // code → companyNIT
	items     map[[2]string]entity.InventoryItem
	saves     int
}

func newMemStore() *memStore {
	return &memStore{
		companies: map[string]bool{},
		products:  map[string]string{},
		items:     map[[2]string]entity.InventoryItem{},
	}
}

type memCompanies struct{ s *memStore }
type memProducts struct{ s *memStore }
type memInventory struct{ s *memStore }

func (r memCompanies) Exists(_ context.Context, nit string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.companies[nit], nil
}

func (r memProducts) Exists(_ context.Context, code, companyNIT string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	owner, ok := r.s.products[code]
	return ok && owner == companyNIT, nil
}

func (r memInventory) Find(_ context.Context, companyNIT, productCode string) (*entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[[2]string{companyNIT, productCode}]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r memInventory) Save(_ context.Context, item entity.InventoryItem) (time.Time, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now().UTC()
	r.s.items[[2]string{item.CompanyNIT(), item.ProductCode()}] = item.WithUpdatedAt(now)
	r.s.saves++
	return now, nil
}

func (s *memStore) quantity(t *testing.T, nit, code string) int {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[[2]string{nit, code}]
	require.True(t, ok, "el par %s/%s debe existir", nit, code)
	return item.Quantity()
}

func money(t *testing.T, raw string, c entity.Currency) entity.Money {
	t.Helper()
	m, err := entity.ParseMoney(raw, c)
	require.NoError(t, err)
	return m
}
