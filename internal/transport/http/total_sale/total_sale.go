package totalsale

import (
	"context"
	"net/http"

	"github.com/salesdesk/oms/internal/service/models/salesreport"
	"github.com/salesdesk/oms/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	TotalSale(ctx context.Context) (*salesreport.Total, error)
}

type totalSaleResponse struct {
	Total *salesreport.Total `json:"total"`
}

// TotalSale handles the overall sales totals request.
func TotalSale(w http.ResponseWriter, r *http.Request, service service) {
	total, err := service.TotalSale(r.Context())
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, totalSaleResponse{Total: total})
}
