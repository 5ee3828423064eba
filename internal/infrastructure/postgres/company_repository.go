package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/jhoicas/inventario-empresas/internal/domain"
	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
	"github.com/jhoicas/inventario-empresas/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyStore.
var _ repository.CompanyStore = (*CompanyRepo)(nil)

// psql constructor de consultas con placeholders $n.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// CompanyRepo implementación del puerto CompanyStore sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Exists informa si hay una empresa con ese NIT.
func (r *CompanyRepo) Exists(ctx context.Context, nit string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE nit = $1)`, nit).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check company exists: %w", err)
	}
	return exists, nil
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, company entity.Company) error {
	query := `
		INSERT INTO companies (nit, name, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.q.Exec(ctx, query, company.NIT(), company.Name(), company.Address(), company.Phone())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewError(domain.ErrDuplicate, "company with NIT '%s' already exists", company.NIT())
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByNIT obtiene una empresa por NIT.
func (r *CompanyRepo) GetByNIT(ctx context.Context, nit string) (*entity.Company, error) {
	query := `SELECT nit, name, address, phone FROM companies WHERE nit = $1`
	var rowNIT, name, address, phone string
	err := r.q.QueryRow(ctx, query, nit).Scan(&rowNIT, &name, &address, &phone)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by NIT: %w", err)
	}
	c, err := entity.NewCompany(rowNIT, name, address, phone)
	if err != nil {
		return nil, fmt.Errorf("rebuild company %s: %w", rowNIT, err)
	}
	return &c, nil
}

// Update actualiza nombre, dirección y teléfono.
func (r *CompanyRepo) Update(ctx context.Context, company entity.Company) error {
	query := `
		UPDATE companies SET name = $2, address = $3, phone = $4, updated_at = now()
		WHERE nit = $1`
	cmd, err := r.q.Exec(ctx, query, company.NIT(), company.Name(), company.Address(), company.Phone())
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve empresas ordenadas por NIT. limit <= 0 = sin límite.
func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]entity.Company, error) {
	qb := psql.Select("nit", "name", "address", "phone").From("companies").OrderBy("nit")
	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}
	if offset > 0 {
		qb = qb.Offset(uint64(offset))
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list companies: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	list := make([]entity.Company, 0)
	for rows.Next() {
		var nit, name, address, phone string
		if err := rows.Scan(&nit, &name, &address, &phone); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		c, err := entity.NewCompany(nit, name, address, phone)
		if err != nil {
			return nil, fmt.Errorf("rebuild company %s: %w", nit, err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Delete elimina una empresa; productos e inventario caen en cascada.
func (r *CompanyRepo) Delete(ctx context.Context, nit string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM companies WHERE nit = $1`, nit)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
