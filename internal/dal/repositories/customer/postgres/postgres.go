package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/salesdesk/oms/internal/dal/postgres"
	"github.com/salesdesk/oms/internal/service/models/salesreport"
)

// PostgresCustomerRepository represents a Postgres customer repository.
type PostgresCustomerRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresCustomerRepository creates a new Postgres customer repository.
func NewPostgresCustomerRepository(conn postgres.Conn) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SalesTotals computes per-customer sales aggregates. Customers without
// orders contribute zero via the left joins; only customers whose total
// sale value exceeds the threshold are returned.
func (r *PostgresCustomerRepository) SalesTotals(
	ctx context.Context,
	threshold float64,
) ([]salesreport.CustomerTotal, error) {
	query, args, err := r.sb.
		Select(
			"c.id",
			"c.name",
			"COALESCE(SUM(oi.amount), 0)::bigint AS total_amount",
			"COALESCE(SUM(oi.amount * oi.price * (1 - oi.discount)), 0)::float8 AS total_sale",
		).
		From("customers c").
		LeftJoin("orders o ON o.customer_id = c.id").
		LeftJoin("order_items oi ON oi.order_id = o.id").
		GroupBy("c.id", "c.name").
		Having("COALESCE(SUM(oi.amount * oi.price * (1 - oi.discount)), 0) > ?", threshold).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer sales totals: %w", err)
	}
	defer rows.Close()

	result := []salesreport.CustomerTotal{}
	for rows.Next() {
		var total salesreport.CustomerTotal
		err := rows.Scan(
			&total.CustomerID,
			&total.Name,
			&total.TotalAmount,
			&total.TotalSale,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer sales total: %w", err)
		}
		result = append(result, total)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
