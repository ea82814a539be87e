package salesreport

// Total holds the overall sales aggregate across all order items.
type Total struct {
	TotalAmount int64   `json:"totalAmount"`
	TotalSale   float64 `json:"totalSale"`
}

// CustomerTotal holds the sales aggregate for a single customer.
// Customers without orders aggregate to zero via outer-join semantics.
type CustomerTotal struct {
	CustomerID  int64   `json:"id"`
	Name        string  `json:"name"`
	TotalAmount int64   `json:"totalAmount"`
	TotalSale   float64 `json:"totalSale"`
}
