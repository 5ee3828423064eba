package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-empresas/internal/domain/entity"
	"github.com/jhoicas/inventario-empresas/internal/domain/repository"
)

var _ repository.InventoryStore = (*InventoryRepo)(nil)

// InventoryRepo stock por (empresa, producto) sobre PostgreSQL (usable con pool o tx).
// Sólo la variante de TxRunner bloquea el par en Find.
type InventoryRepo struct {
	q       Querier
	locking bool
}

// NewInventoryRepository construye el adaptador de inventario. Find no toma locks (lecturas sobre el pool).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// newLockingInventoryRepository Find bloquea el par hasta el fin de la transacción de tx.
func newLockingInventoryRepository(tx Querier) *InventoryRepo {
	return &InventoryRepo{q: tx, locking: true}
}

const (
	findInventoryQuery = `
		SELECT quantity, updated_at
		FROM inventory WHERE company_nit = $1 AND product_code = $2`
	lockInventoryPairQuery = `SELECT pg_advisory_xact_lock(hashtextextended($1::text || '/' || $2::text, 0))`
)

// Find obtiene el registro del par; (nil, nil) si no existe.
// En modo locking el advisory lock serializa también el caso en que la fila aún no existe.
func (r *InventoryRepo) Find(ctx context.Context, companyNIT, productCode string) (*entity.InventoryItem, error) {
	query := findInventoryQuery
	if r.locking {
		if _, err := r.q.Exec(ctx, lockInventoryPairQuery, companyNIT, productCode); err != nil {
			return nil, fmt.Errorf("lock inventory: %w", err)
		}
		query += " FOR UPDATE"
	}

	var qty int
	var updatedAt time.Time
	err := r.q.QueryRow(ctx, query, companyNIT, productCode).Scan(&qty, &updatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	item, err := entity.NewInventoryItem(companyNIT, productCode, qty)
	if err != nil {
		return nil, fmt.Errorf("rebuild inventory %s/%s: %w", companyNIT, productCode, err)
	}
	item = item.WithUpdatedAt(updatedAt)
	return &item, nil
}

// Save inserta o actualiza la cantidad del par y devuelve el updated_at escrito.
func (r *InventoryRepo) Save(ctx context.Context, item entity.InventoryItem) (time.Time, error) {
	query := `
		INSERT INTO inventory (company_nit, product_code, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (company_nit, product_code)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()
		RETURNING updated_at`
	var updatedAt time.Time
	err := r.q.QueryRow(ctx, query, item.CompanyNIT(), item.ProductCode(), item.Quantity()).Scan(&updatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("upsert inventory: %w", err)
	}
	return updatedAt, nil
}

// ListByCompany inventario de la empresa ordenado por código de producto.
func (r *InventoryRepo) ListByCompany(ctx context.Context, companyNIT string) ([]entity.InventoryItem, error) {
	query, args, err := psql.Select("product_code", "quantity", "updated_at").
		From("inventory").
		Where("company_nit = ?", companyNIT).
		OrderBy("product_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list inventory: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	list := make([]entity.InventoryItem, 0)
	for rows.Next() {
		var code string
		var qty int
		var updatedAt time.Time
		if err := rows.Scan(&code, &qty, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		item, err := entity.NewInventoryItem(companyNIT, code, qty)
		if err != nil {
			return nil, fmt.Errorf("rebuild inventory %s/%s: %w", companyNIT, code, err)
		}
		list = append(list, item.WithUpdatedAt(updatedAt))
	}
	return list, rows.Err()
}
