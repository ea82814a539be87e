package deleteorder

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/salesdesk/oms/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	DeleteOrder(ctx context.Context, id int64) error
}

// DeleteOrder handles the delete order request. Deleting a non-existent
// order id succeeds without side effects.
func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.BadRequest(w, err)

		return
	}

	if err := service.DeleteOrder(r.Context(), id); err != nil {
		respond.Error(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
