package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/salesdesk/oms/internal/dal/postgres"
	"github.com/salesdesk/oms/internal/service/models/customer"
	"github.com/salesdesk/oms/internal/service/models/employee"
	"github.com/salesdesk/oms/internal/service/models/order"
	"github.com/salesdesk/oms/internal/service/models/orderitem"
)

// OrderDal represents order data access layer model. Customer and
// employee names come from the joined reference tables.
type OrderDal struct {
	Id           int64     `db:"id"`
	Date         time.Time `db:"date"`
	CustomerId   int64     `db:"customer_id"`
	EmployeeId   int64     `db:"employee_id"`
	CustomerName string    `db:"customer_name"`
	EmployeeName string    `db:"employee_name"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() *order.Order {
	return &order.Order{
		ID:         o.Id,
		Date:       o.Date,
		CustomerID: o.CustomerId,
		EmployeeID: o.EmployeeId,
		Customer:   &customer.Customer{ID: o.CustomerId, Name: o.CustomerName},
		Employee:   &employee.Employee{ID: o.EmployeeId, Name: o.EmployeeName},
		OrderItems: []orderitem.OrderItem{}, // populated separately
	}
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.Conn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert inserts a single order and returns it with the generated id.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	query, args, err := r.sb.
		Insert("orders").
		Columns("date", "customer_id", "employee_id").
		Values(o.Date, o.CustomerID, o.EmployeeID).
		Suffix("RETURNING id, date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	var date pgtype.Timestamptz
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&o.ID, &date); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}
	o.Date = date.Time

	return &o, nil
}

// Query retrieves orders with their customer and employee hydrated from
// the joined reference tables.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	builder := r.selectOrders()

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"o.id": filter.Ids})
	}

	if len(filter.CustomerIds) > 0 {
		builder = builder.Where(sq.Eq{"o.customer_id": filter.CustomerIds})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	result := []order.Order{}
	for rows.Next() {
		model, err := scanOrder(rows)
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

// GetByID retrieves a single order by id. A missing order yields
// (nil, nil), not an error.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	query, args, err := r.selectOrders().Where(sq.Eq{"o.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("rows iteration error: %w", err)
		}

		return nil, nil
	}

	return scanOrder(rows)
}

// Delete removes the order row. Deleting a non-existent id is a no-op.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("orders").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return nil
}

func (r *PostgresOrderRepository) selectOrders() sq.SelectBuilder {
	return r.sb.
		Select(
			"o.id",
			"o.date",
			"o.customer_id",
			"o.employee_id",
			"c.name AS customer_name",
			"e.name AS employee_name",
		).
		From("orders o").
		Join("customers c ON c.id = o.customer_id").
		Join("employees e ON e.id = o.employee_id")
}

func scanOrder(rows pgx.Rows) (*order.Order, error) {
	var dal OrderDal
	var date pgtype.Timestamptz

	err := rows.Scan(
		&dal.Id,
		&date,
		&dal.CustomerId,
		&dal.EmployeeId,
		&dal.CustomerName,
		&dal.EmployeeName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	dal.Date = date.Time

	return dal.ToModel(), nil
}
