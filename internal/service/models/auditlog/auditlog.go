package auditlog

import "time"

// Event kinds published to the audit queues.
const (
	EventOrderCreated = "order.created"
	EventOrderDeleted = "order.deleted"
)

// Event represents an audit record for an order lifecycle change.
type Event struct {
	Kind       string    `json:"kind"`
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id,omitempty"`
	EmployeeID int64     `json:"employee_id,omitempty"`
	ItemCount  int       `json:"item_count,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
