package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-empresas/internal/domain"
	"github.com/jhoicas/inventario-empresas/internal/domain/service"
)

func TestCompanyRegistration_Exitoso(t *testing.T) {
	svc := service.NewCompanyRegistrationService()

	c, err := svc.Register("123456789", "Acme", "Calle 1", "+57 3001234567")
	require.NoError(t, err)
	assert.Equal(t, "123456789", c.NIT())
}

func TestCompanyRegistration_PrefijaError(t *testing.T) {
	svc := service.NewCompanyRegistrationService()

	_, err := svc.Register("123", "Acme", "Calle 1", "300")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCompany)
	assert.Equal(t, "failed to register company: NIT must have at least 5 characters", err.Error())
}
