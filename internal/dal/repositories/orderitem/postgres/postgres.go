package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/salesdesk/oms/internal/dal/postgres"
	"github.com/salesdesk/oms/internal/service/models/orderitem"
	"github.com/salesdesk/oms/internal/service/models/product"
	"github.com/salesdesk/oms/internal/service/models/salesreport"
	"github.com/salesdesk/oms/internal/service/models/supplier"
)

// OrderItemDal represents order item data access layer model.
type OrderItemDal struct {
	Id        int64   `db:"id"`
	OrderId   int64   `db:"order_id"`
	ProductId int64   `db:"product_id"`
	Amount    int64   `db:"amount"`
	Price     float64 `db:"price"`
	Discount  float64 `db:"discount"`
}

// ToModel converts OrderItemDal to service layer OrderItem model.
func (oi *OrderItemDal) ToModel() *orderitem.OrderItem {
	return &orderitem.OrderItem{
		ID:        oi.Id,
		OrderID:   oi.OrderId,
		ProductID: oi.ProductId,
		Amount:    oi.Amount,
		Price:     oi.Price,
		Discount:  oi.Discount,
	}
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.Conn) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts multiple order items and returns them with the
// generated ids. Prices must already be snapshotted by the caller.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	orderItems []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(orderItems) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	builder := r.sb.
		Insert("order_items").
		Columns("order_id", "product_id", "amount", "price", "discount")

	for _, oi := range orderItems {
		builder = builder.Values(oi.OrderID, oi.ProductID, oi.Amount, oi.Price, oi.Discount)
	}

	query, args, err := builder.
		Suffix("RETURNING id, order_id, product_id, amount, price, discount").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	result := make([]orderitem.OrderItem, 0, len(orderItems))
	i := 0
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.Amount,
			&dal.Price,
			&dal.Discount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		model := dal.ToModel()
		model.Product = orderItems[i].Product
		i++

		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Query retrieves order items with their product joined in. When the
// filter asks for suppliers, the product's supplier is joined as well.
func (r *PostgresOrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	columns := []string{
		"oi.id",
		"oi.order_id",
		"oi.product_id",
		"oi.amount",
		"oi.price",
		"oi.discount",
		"p.name AS product_name",
	}
	if filter.IncludeSupplier {
		columns = append(columns,
			"p.price AS product_price",
			"p.supplier_id",
			"s.name AS supplier_name",
		)
	}

	builder := r.sb.
		Select(columns...).
		From("order_items oi").
		Join("products p ON p.id = oi.product_id")

	if filter.IncludeSupplier {
		builder = builder.Join("suppliers s ON s.id = p.supplier_id")
	}

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"oi.id": filter.Ids})
	}

	if len(filter.OrderIds) > 0 {
		builder = builder.Where(sq.Eq{"oi.order_id": filter.OrderIds})
	}

	if len(filter.ProductIds) > 0 {
		builder = builder.Where(sq.Eq{"oi.product_id": filter.ProductIds})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	result := []orderitem.OrderItem{}
	for rows.Next() {
		model, err := scanOrderItem(rows, filter.IncludeSupplier)
		if err != nil {
			return nil, err
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// DeleteByOrderID removes all items belonging to the given order.
func (r *PostgresOrderItemRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	query, args, err := r.sb.Delete("order_items").Where(sq.Eq{"order_id": orderID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}

	return nil
}

// Totals computes the overall sales aggregate across all order items:
// sum of amounts and sum of amount*price*(1-discount).
func (r *PostgresOrderItemRepository) Totals(ctx context.Context) (*salesreport.Total, error) {
	query, _, err := r.sb.
		Select(
			"COALESCE(SUM(amount), 0)::bigint AS total_amount",
			"COALESCE(SUM(amount * price * (1 - discount)), 0)::float8 AS total_sale",
		).
		From("order_items").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var total salesreport.Total
	if err := r.conn.QueryRow(ctx, query).Scan(&total.TotalAmount, &total.TotalSale); err != nil {
		return nil, fmt.Errorf("failed to query order item totals: %w", err)
	}

	return &total, nil
}

func scanOrderItem(rows pgx.Rows, includeSupplier bool) (*orderitem.OrderItem, error) {
	var dal OrderItemDal
	var productName string

	dest := []interface{}{
		&dal.Id,
		&dal.OrderId,
		&dal.ProductId,
		&dal.Amount,
		&dal.Price,
		&dal.Discount,
		&productName,
	}

	var productPrice float64
	var supplierID int64
	var supplierName string
	if includeSupplier {
		dest = append(dest, &productPrice, &supplierID, &supplierName)
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("failed to scan order item: %w", err)
	}

	model := dal.ToModel()
	model.Product = &product.Product{ID: dal.ProductId, Name: productName}
	if includeSupplier {
		model.Product.Price = productPrice
		model.Product.SupplierID = supplierID
		model.Product.Supplier = &supplier.Supplier{ID: supplierID, Name: supplierName}
	}

	return model, nil
}
