package customer

// Customer represents a buyer that orders are placed for.
type Customer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
