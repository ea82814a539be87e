package createorder

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/salesdesk/oms/internal/service/models/order"
	"github.com/salesdesk/oms/internal/service/models/orderitem"
	"github.com/salesdesk/oms/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, input order.NewOrderInput) (*order.Order, []orderitem.OrderItem, error)
}

// itemInCreateOrderRequest represents an item in a create order request.
// Price is not accepted from the client: it is snapshotted from the
// product at creation time.
type itemInCreateOrderRequest struct {
	ProductID int64   `json:"productId" validate:"gt=0"`
	Amount    int64   `json:"amount"    validate:"gt=0"`
	Discount  float64 `json:"discount"  validate:"gte=0,lt=1"`
}

// createOrderRequest represents a create order request.
type createOrderRequest struct {
	CustomerID int64                      `json:"customerId" validate:"gt=0"`
	EmployeeID int64                      `json:"employeeId" validate:"gt=0"`
	Items      []itemInCreateOrderRequest `json:"items"      validate:"required,min=1,dive"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts createOrderRequest to order.NewOrderInput.
func (r *createOrderRequest) toModel() order.NewOrderInput {
	items := make([]order.NewItemInput, len(r.Items))
	for i, item := range r.Items {
		items[i] = order.NewItemInput{
			ProductID: item.ProductID,
			Amount:    item.Amount,
			Discount:  item.Discount,
		}
	}

	return order.NewOrderInput{
		CustomerID: r.CustomerID,
		EmployeeID: r.EmployeeID,
		Items:      items,
	}
}

type createOrderResponse struct {
	Order      *order.Order          `json:"order"`
	OrderItems []orderitem.OrderItem `json:"orderItems"`
}

// CreateOrder handles the create order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err)

		return
	}

	if err := req.Validate(); err != nil {
		respond.BadRequest(w, err)

		return
	}

	createdOrder, createdItems, err := service.CreateOrder(r.Context(), req.toModel())
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusCreated, createOrderResponse{
		Order:      createdOrder,
		OrderItems: createdItems,
	})
}
