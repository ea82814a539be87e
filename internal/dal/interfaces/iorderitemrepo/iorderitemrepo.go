package iorderitemrepo

import (
	"context"

	"github.com/salesdesk/oms/internal/service/models/orderitem"
	"github.com/salesdesk/oms/internal/service/models/salesreport"
)

// IOrderItemRepository is an interface for order item postgres repository.
type IOrderItemRepository interface {
	BulkInsert(ctx context.Context, orderItems []orderitem.OrderItem) ([]orderitem.OrderItem, error)
	Query(
		ctx context.Context,
		filter *orderitem.QueryOrderItemsModel,
	) ([]orderitem.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID int64) error
	Totals(ctx context.Context) (*salesreport.Total, error)
}
