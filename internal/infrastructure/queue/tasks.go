// Package queue encola y procesa tareas en segundo plano con asynq.
package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeInventoryReportEmail genera el PDF del inventario y lo envía por correo.
const TypeInventoryReportEmail = "report:inventory_email"

// InventoryReportEmailPayload payload de TypeInventoryReportEmail.
type InventoryReportEmailPayload struct {
	CompanyNIT string `json:"company_nit"`
	Email      string `json:"email"`
}

// NewInventoryReportEmailTask construye la tarea.
func NewInventoryReportEmailTask(companyNIT, email string) (*asynq.Task, error) {
	b, err := json.Marshal(InventoryReportEmailPayload{CompanyNIT: companyNIT, Email: email})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return asynq.NewTask(TypeInventoryReportEmail, b), nil
}
