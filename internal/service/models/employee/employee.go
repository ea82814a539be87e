package employee

// Employee represents the staff member who registered an order.
type Employee struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
