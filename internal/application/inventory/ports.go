package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-empresas/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// La implementación debe serializar el read-modify-write de cada par (empresa, producto).
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(
		companies repository.CompanyRepository,
		products repository.ProductRepository,
		inventory repository.InventoryRepository,
	) error) error
}

// StockCache caché de lectura de cantidades (cache-aside). Fallos de caché nunca rompen la operación.
type StockCache interface {
	// Get devuelve hit=false cuando la llave no está en caché.
	Get(ctx context.Context, companyNIT, productCode string) (entry CachedStock, hit bool, err error)
	// Version marca opaca del par; cambia con cada Invalidate.
	Version(ctx context.Context, companyNIT, productCode string) (string, error)
	// Set escribe sólo si la versión del par sigue siendo version; si cambió no escribe y devuelve nil.
	Set(ctx context.Context, companyNIT, productCode string, entry CachedStock, version string) error
	Invalidate(ctx context.Context, companyNIT, productCode string) error
}

// CachedStock valor guardado en caché; Found=false recuerda la ausencia del par.
type CachedStock struct {
	Quantity int  `json:"quantity"`
	Found    bool `json:"found"`
}

// EventPublisher publica cambios de stock ya confirmados.
type EventPublisher interface {
	PublishInventoryChanged(ctx context.Context, event ChangedEvent) error
}

// Operaciones sobre el inventario.
const (
	OperationAdd    = "add"
	OperationRemove = "remove"
)

// ChangedEvent evento inventory.changed.
type ChangedEvent struct {
	EventID     string    `json:"event_id"`
	Operation   string    `json:"operation"` // add | remove
	CompanyNIT  string    `json:"company_nit"`
	ProductCode string    `json:"product_code"`
	Delta       int       `json:"delta"`
	Quantity    int       `json:"quantity"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Metrics registra el resultado de cada operación de inventario.
type Metrics interface {
	ObserveInventoryOperation(operation, outcome string)
}
