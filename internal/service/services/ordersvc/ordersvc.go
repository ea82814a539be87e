package ordersvc

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/salesdesk/oms/internal/dal/interfaces/iauditrepo"
	"github.com/salesdesk/oms/internal/dal/interfaces/icustomerrepo"
	"github.com/salesdesk/oms/internal/dal/interfaces/iorderitemrepo"
	"github.com/salesdesk/oms/internal/dal/interfaces/iorderrepo"
	"github.com/salesdesk/oms/internal/dal/interfaces/ioutboxrepo"
	"github.com/salesdesk/oms/internal/dal/interfaces/iproductrepo"
	"github.com/salesdesk/oms/internal/dal/postgres"
	"github.com/salesdesk/oms/internal/dal/repositories/audit"
	customerrepo "github.com/salesdesk/oms/internal/dal/repositories/customer/postgres"
	"github.com/salesdesk/oms/internal/dal/uow"
	"github.com/salesdesk/oms/internal/service/models/auditlog"
	"github.com/salesdesk/oms/internal/service/models/order"
	"github.com/salesdesk/oms/internal/service/models/orderitem"
	"github.com/salesdesk/oms/internal/service/models/outbox"
	"github.com/salesdesk/oms/internal/service/models/salesreport"
)

const defaultSaleThreshold = 10000

// OrderService is a service for managing orders.
type OrderService struct {
	pgClient      *postgres.Client
	uowFactory    func() unitOfWork
	customerRepo  icustomerrepo.ICustomerRepository
	auditRepo     iauditrepo.IAuditRepository
	outboxRepo    ioutboxrepo.IOutboxRepository
	saleThreshold float64
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	ProductRepository() iproductrepo.IProductRepository
}

func (s *OrderService) newUOW() unitOfWork {
	return s.uowFactory()
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.uowFactory == nil {
		s.uowFactory = func() unitOfWork { return uow.NewUnitOfWork(s.pgClient) }
	}
	if s.customerRepo == nil && s.pgClient != nil {
		s.customerRepo = customerrepo.NewPostgresCustomerRepository(s.pgClient.Pool())
	}
	if s.saleThreshold == 0 {
		s.saleThreshold = viper.GetFloat64("report.customer_sale_threshold")
	}
	if s.saleThreshold == 0 {
		s.saleThreshold = defaultSaleThreshold
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithUnitOfWorkFactory overrides how units of work are created.
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.uowFactory = factory
	}
}

// WithCustomerRepository sets the customer repository.
func WithCustomerRepository(repo icustomerrepo.ICustomerRepository) option {
	return func(s *OrderService) {
		s.customerRepo = repo
	}
}

// WithAuditRepository sets the audit event publisher.
func WithAuditRepository(repo iauditrepo.IAuditRepository) option {
	return func(s *OrderService) {
		s.auditRepo = repo
	}
}

// WithOutboxRepository sets the outbox used when audit publishing fails.
func WithOutboxRepository(repo ioutboxrepo.IOutboxRepository) option {
	return func(s *OrderService) {
		s.outboxRepo = repo
	}
}

// WithSaleThreshold sets the per-customer report threshold.
func WithSaleThreshold(threshold float64) option {
	return func(s *OrderService) {
		s.saleThreshold = threshold
	}
}

// ListOrders retrieves all orders with their customer, employee and
// items (each item carrying its product id and name).
func (s *OrderService) ListOrders(ctx context.Context) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{})
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderItemQuery := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		orderItemQuery.OrderIds = append(orderItemQuery.OrderIds, o.ID)
	}
	orderItems, err := work.OrderItemRepository().Query(ctx, orderItemQuery)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range orderItems {
			if item.OrderID == orders[i].ID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}

	return orders, nil
}

// GetOrder retrieves a single order at full depth: customer, employee,
// items with product and the product's supplier. A missing order yields
// (nil, nil); the HTTP edge serializes that as a null order with 200,
// matching the long-standing API contract.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, nil
	}

	orderItems, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		OrderIds:        []int64{id},
		IncludeSupplier: true,
	})
	if err != nil {
		return nil, err
	}
	o.OrderItems = orderItems

	return o, nil
}

// CreateOrder creates an order and its items as one transaction. Each
// item's price is snapshotted from the referenced product at creation
// time; a missing product aborts the whole operation with rollback.
func (s *OrderService) CreateOrder(
	ctx context.Context,
	input order.NewOrderInput,
) (*order.Order, []orderitem.OrderItem, error) {
	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := work.Rollback(ctx); err != nil {
			slog.Error("Failed to roll back order creation", "error", err)
		}
	}()

	created, err := work.OrderRepository().Insert(ctx, order.Order{
		Date:       time.Now(),
		CustomerID: input.CustomerID,
		EmployeeID: input.EmployeeID,
	})
	if err != nil {
		return nil, nil, err
	}

	// Items are resolved sequentially so a missing product aborts
	// before any later lookups.
	items := make([]orderitem.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		p, err := work.ProductRepository().GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, nil, err
		}

		items = append(items, orderitem.OrderItem{
			OrderID:   created.ID,
			ProductID: item.ProductID,
			Amount:    item.Amount,
			Discount:  item.Discount,
			Price:     p.Price,
		})
	}

	insertedItems, err := work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return nil, nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, nil, err
	}

	created.OrderItems = insertedItems

	s.publishAudit(ctx, auditlog.Event{
		Kind:       auditlog.EventOrderCreated,
		OrderID:    created.ID,
		CustomerID: created.CustomerID,
		EmployeeID: created.EmployeeID,
		ItemCount:  len(insertedItems),
		OccurredAt: time.Now(),
	})

	return created, insertedItems, nil
}

// DeleteOrder removes an order and all its items as one transaction.
// Deleting a non-existent id is a no-op success.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		if err := work.Rollback(ctx); err != nil {
			slog.Error("Failed to roll back order deletion", "error", err)
		}
	}()

	if err := work.OrderItemRepository().DeleteByOrderID(ctx, id); err != nil {
		return err
	}

	if err := work.OrderRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := work.Commit(ctx); err != nil {
		return err
	}

	s.publishAudit(ctx, auditlog.Event{
		Kind:       auditlog.EventOrderDeleted,
		OrderID:    id,
		OccurredAt: time.Now(),
	})

	return nil
}

// TotalSale computes the overall sales aggregate across all order items.
func (s *OrderService) TotalSale(ctx context.Context) (*salesreport.Total, error) {
	work := s.newUOW()

	return work.OrderItemRepository().Totals(ctx)
}

// TotalSalePerCustomer computes per-customer aggregates, keeping only
// customers whose total sale value exceeds the configured threshold.
func (s *OrderService) TotalSalePerCustomer(ctx context.Context) ([]salesreport.CustomerTotal, error) {
	return s.customerRepo.SalesTotals(ctx, s.saleThreshold)
}

// publishAudit publishes an after-commit audit event. Publish failures
// never fail the operation: the event is parked in the outbox and the
// worker retries it later.
func (s *OrderService) publishAudit(ctx context.Context, event auditlog.Event) {
	if s.auditRepo == nil {
		return
	}

	publishErr := s.auditRepo.Publish(ctx, event)
	if publishErr == nil {
		return
	}
	slog.Warn("Failed to publish audit event, parking in outbox",
		"kind", event.Kind,
		"order_id", event.OrderID,
		"error", publishErr,
	)

	if s.outboxRepo == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal audit event for outbox", "error", err)

		return
	}

	now := time.Now()
	msg := outbox.Message{
		QueueName:   audit.QueueName,
		RoutingKey:  audit.QueueName,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  5,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}
	if err := s.outboxRepo.Insert(ctx, msg); err != nil {
		slog.Error("Failed to insert audit event into outbox",
			"kind", event.Kind,
			"order_id", event.OrderID,
			"error", err,
		)
	}
}
