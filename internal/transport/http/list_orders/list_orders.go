package listorders

import (
	"context"
	"net/http"

	"github.com/salesdesk/oms/internal/service/models/order"
	"github.com/salesdesk/oms/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	ListOrders(ctx context.Context) ([]order.Order, error)
}

type listOrdersResponse struct {
	Orders []order.Order `json:"orders"`
}

// ListOrders handles the list orders request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	orders, err := service.ListOrders(r.Context())
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, listOrdersResponse{Orders: orders})
}
