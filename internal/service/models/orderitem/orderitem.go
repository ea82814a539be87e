package orderitem

import (
	"github.com/salesdesk/oms/internal/service/models/product"
)

// OrderItem represents a line item within an order. Price is the product
// price captured at order time: later product price changes never touch it.
type OrderItem struct {
	ID        int64            `json:"id"`
	OrderID   int64            `json:"orderId"`
	ProductID int64            `json:"productId"`
	Amount    int64            `json:"amount"`
	Price     float64          `json:"price"`
	Discount  float64          `json:"discount"`
	Product   *product.Product `json:"product,omitempty"`
}

// LineTotal is the item's contribution to the sale value:
// amount * price * (1 - discount).
func (oi OrderItem) LineTotal() float64 {
	return float64(oi.Amount) * oi.Price * (1 - oi.Discount)
}
