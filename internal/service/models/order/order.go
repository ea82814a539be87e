package order

import (
	"time"

	"github.com/salesdesk/oms/internal/service/models/customer"
	"github.com/salesdesk/oms/internal/service/models/employee"
	"github.com/salesdesk/oms/internal/service/models/orderitem"
)

// Order represents a purchase transaction linking a customer and an
// employee to a set of line items.
type Order struct {
	ID         int64                 `json:"id"`
	Date       time.Time             `json:"date"`
	CustomerID int64                 `json:"customerId"`
	EmployeeID int64                 `json:"employeeId"`
	Customer   *customer.Customer    `json:"customer,omitempty"`
	Employee   *employee.Employee    `json:"employee,omitempty"`
	OrderItems []orderitem.OrderItem `json:"orderItems"`
}

// NewItemInput is a single requested line item in an order creation.
// The price is not part of the input: it is snapshotted from the product
// at creation time.
type NewItemInput struct {
	ProductID int64
	Amount    int64
	Discount  float64
}

// NewOrderInput is the input for creating an order with its items.
type NewOrderInput struct {
	CustomerID int64
	EmployeeID int64
	Items      []NewItemInput
}
