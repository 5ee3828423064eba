package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-empresas/internal/domain"
	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
	"github.com/jhoicas/inventario-empresas/internal/domain/repository"
)

var _ repository.ProductStore = (*ProductRepo)(nil)

// ProductRepo implementación de ProductStore sobre PostgreSQL.
// Los precios viven en product_prices (NUMERIC(18,2) por moneda).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Exists informa si el producto existe para esa empresa.
func (r *ProductRepo) Exists(ctx context.Context, code, companyNIT string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE code = $1 AND company_nit = $2)`
	if err := r.q.QueryRow(ctx, query, code, companyNIT).Scan(&exists); err != nil {
		return false, fmt.Errorf("check product exists: %w", err)
	}
	return exists, nil
}

// Create inserta el producto y sus precios en una misma transacción.
func (r *ProductRepo) Create(ctx context.Context, product entity.Product) error {
	err := pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO products (code, name, features, company_nit, created_at)
			VALUES ($1, $2, $3, $4, now())`,
			product.Code(), product.Name(), product.Features(), product.CompanyNIT(),
		)
		if err != nil {
			return err
		}
		prices := product.Prices()
		for _, currency := range product.PriceCurrencies() {
			_, err := tx.Exec(ctx,
				`INSERT INTO product_prices (product_code, currency, amount) VALUES ($1, $2, $3)`,
				product.Code(), currency, prices[currency].Amount(),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.NewError(domain.ErrDuplicate, "product with code '%s' already exists", product.Code())
	case isForeignKeyViolation(err):
		return domain.NewError(domain.ErrInvalidCompany, "company with NIT '%s' does not exist", product.CompanyNIT())
	default:
		return fmt.Errorf("insert product: %w", err)
	}
}

// GetByCode obtiene un producto con sus precios.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var row productRow
	err := r.q.QueryRow(ctx,
		`SELECT code, name, features, company_nit FROM products WHERE code = $1`, code,
	).Scan(&row.code, &row.name, &row.features, &row.companyNIT)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	prices, err := r.loadPrices(ctx, []string{row.code})
	if err != nil {
		return nil, err
	}
	p, err := row.toEntity(prices[row.code])
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByCompany lista productos de la empresa ordenados por código. limit <= 0 = sin límite.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyNIT string, limit, offset int) ([]entity.Product, error) {
	qb := psql.Select("code", "name", "features", "company_nit").
		From("products").
		Where("company_nit = ?", companyNIT).
		OrderBy("code")
	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}
	if offset > 0 {
		qb = qb.Offset(uint64(offset))
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list products: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	var found []productRow
	for rows.Next() {
		var row productRow
		if err := rows.Scan(&row.code, &row.name, &row.features, &row.companyNIT); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan product: %w", err)
		}
		found = append(found, row)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	codes := make([]string, 0, len(found))
	for _, row := range found {
		codes = append(codes, row.code)
	}
	prices, err := r.loadPrices(ctx, codes)
	if err != nil {
		return nil, err
	}

	list := make([]entity.Product, 0, len(found))
	for _, row := range found {
		p, err := row.toEntity(prices[row.code])
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, nil
}

// Delete elimina el producto; precios e inventario caen en cascada.
func (r *ProductRepo) Delete(ctx context.Context, code string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) loadPrices(ctx context.Context, codes []string) (map[string]map[string]decimal.Decimal, error) {
	out := make(map[string]map[string]decimal.Decimal, len(codes))
	if len(codes) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT product_code, currency, amount FROM product_prices WHERE product_code = ANY($1)`, codes)
	if err != nil {
		return nil, fmt.Errorf("list product prices: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var code, currency string
		var amount decimal.Decimal
		if err := rows.Scan(&code, &currency, &amount); err != nil {
			return nil, fmt.Errorf("scan product price: %w", err)
		}
		if out[code] == nil {
			out[code] = make(map[string]decimal.Decimal)
		}
		out[code][currency] = amount
	}
	return out, rows.Err()
}

type productRow struct {
	code       string
	name       string
	features   []string
	companyNIT string
}

func (row productRow) toEntity(amounts map[string]decimal.Decimal) (entity.Product, error) {
	prices := make(map[string]entity.Money, len(amounts))
	for code, amount := range amounts {
		currency, err := entity.ParseCurrency(code)
		if err != nil {
			return entity.Product{}, fmt.Errorf("rebuild product %s: %w", row.code, err)
		}
		m, err := entity.NewMoney(amount, currency)
		if err != nil {
			return entity.Product{}, fmt.Errorf("rebuild product %s: %w", row.code, err)
		}
		prices[code] = m
	}
	p, err := entity.NewProduct(row.code, row.name, row.features, prices, row.companyNIT)
	if err != nil {
		return entity.Product{}, fmt.Errorf("rebuild product %s: %w", row.code, err)
	}
	return p, nil
}
