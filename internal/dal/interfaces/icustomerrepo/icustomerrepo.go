package icustomerrepo

import (
	"context"

	"github.com/salesdesk/oms/internal/service/models/salesreport"
)

// ICustomerRepository is an interface for customer postgres repository.
type ICustomerRepository interface {
	SalesTotals(ctx context.Context, threshold float64) ([]salesreport.CustomerTotal, error)
}
