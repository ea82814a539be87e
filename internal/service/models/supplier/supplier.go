package supplier

// Supplier represents the vendor a product is sourced from.
type Supplier struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
