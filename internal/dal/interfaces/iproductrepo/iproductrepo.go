package iproductrepo

import (
	"context"

	"github.com/salesdesk/oms/internal/service/models/product"
)

// IProductRepository is an interface for product postgres repository.
type IProductRepository interface {
	GetByID(ctx context.Context, id int64) (*product.Product, error)
}
