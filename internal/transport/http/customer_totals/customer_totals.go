package customertotals

import (
	"context"
	"net/http"

	"github.com/salesdesk/oms/internal/service/models/salesreport"
	"github.com/salesdesk/oms/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	TotalSalePerCustomer(ctx context.Context) ([]salesreport.CustomerTotal, error)
}

type customerTotalsResponse struct {
	Total []salesreport.CustomerTotal `json:"total"`
}

// CustomerTotals handles the per-customer sales totals request.
func CustomerTotals(w http.ResponseWriter, r *http.Request, service service) {
	totals, err := service.TotalSalePerCustomer(r.Context())
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, customerTotalsResponse{Total: totals})
}
