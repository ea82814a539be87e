package product

import (
	"errors"

	"github.com/salesdesk/oms/internal/service/models/supplier"
)

// ErrProductNotFound is returned when a referenced product does not exist.
var ErrProductNotFound = errors.New("product not found")

// Product represents a sellable item with its current list price.
// Supplier is populated only by queries that join the suppliers table.
type Product struct {
	ID         int64              `json:"id"`
	Name       string             `json:"name"`
	Price      float64            `json:"price,omitempty"`
	SupplierID int64              `json:"supplierId,omitempty"`
	Supplier   *supplier.Supplier `json:"supplier,omitempty"`
}
