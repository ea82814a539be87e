package getorder

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/salesdesk/oms/internal/service/models/order"
	"github.com/salesdesk/oms/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	GetOrder(ctx context.Context, id int64) (*order.Order, error)
}

type getOrderResponse struct {
	Order *order.Order `json:"order"`
}

// GetOrder handles the single order retrieval request. A missing order
// is reported as a 200 with a null order, not a 404.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.BadRequest(w, err)

		return
	}

	o, err := service.GetOrder(r.Context(), id)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, getOrderResponse{Order: o})
}
