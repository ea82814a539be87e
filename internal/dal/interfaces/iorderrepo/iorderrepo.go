package iorderrepo

import (
	"context"

	"github.com/salesdesk/oms/internal/service/models/order"
)

// IOrderRepository is an interface for order postgres repository.
type IOrderRepository interface {
	Insert(ctx context.Context, o order.Order) (*order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	GetByID(ctx context.Context, id int64) (*order.Order, error)
	Delete(ctx context.Context, id int64) error
}
