package uow

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/salesdesk/oms/internal/dal/interfaces/iorderitemrepo"
	"github.com/salesdesk/oms/internal/dal/interfaces/iorderrepo"
	"github.com/salesdesk/oms/internal/dal/interfaces/iproductrepo"
	"github.com/salesdesk/oms/internal/dal/postgres"
	orderrepo "github.com/salesdesk/oms/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/salesdesk/oms/internal/dal/repositories/orderitem/postgres"
	productrepo "github.com/salesdesk/oms/internal/dal/repositories/product/postgres"
)

// unitOfWork groups the write-side repositories behind a single pgx
// transaction. Before Begin the repositories run against the pool;
// after Begin they are rebound to the transaction.
type unitOfWork struct {
	client        *postgres.Client
	tx            pgx.Tx
	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	productRepo   iproductrepo.IProductRepository
}

func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	return &unitOfWork{
		client:        client,
		orderRepo:     orderrepo.NewPostgresOrderRepository(client.Pool()),
		orderItemRepo: orderitemrepo.NewPostgresOrderItemRepository(client.Pool()),
		productRepo:   productrepo.NewPostgresProductRepository(client.Pool()),
	}
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return u.productRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)
	u.productRepo = productrepo.NewPostgresProductRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

// Rollback aborts the transaction. Safe to defer: after a successful
// Commit it reports nothing.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	if err := u.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
