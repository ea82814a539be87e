package postgresrepo

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConn struct {
	sql  string
	args []any
	row  pgx.Row
}

func (c *recordingConn) Query(_ context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	c.sql = sql
	c.args = args
	return nil, pgx.ErrNoRows
}

func (c *recordingConn) QueryRow(_ context.Context, sql string, args ...interface{}) pgx.Row {
	c.sql = sql
	c.args = args
	return c.row
}

func (c *recordingConn) Exec(_ context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	c.sql = sql
	c.args = arguments
	return pgconn.CommandTag{}, nil
}

type totalsRow struct {
	amount int64
	sale   float64
}

func (r totalsRow) Scan(dest ...any) error {
	*dest[0].(*int64) = r.amount
	*dest[1].(*float64) = r.sale
	return nil
}

func TestTotalsQuery(t *testing.T) {
	t.Parallel()

	conn := &recordingConn{row: totalsRow{amount: 5, sale: 27}}
	repo := NewPostgresOrderItemRepository(conn)

	total, err := repo.Totals(context.Background())
	require.NoError(t, err)

	assert.Contains(t, conn.sql, "FROM order_items")
	assert.Contains(t, conn.sql,
		"COALESCE(SUM(amount), 0)::bigint AS total_amount")
	assert.Contains(t, conn.sql,
		"COALESCE(SUM(amount * price * (1 - discount)), 0)::float8 AS total_sale")

	assert.Equal(t, int64(5), total.TotalAmount)
	assert.Equal(t, float64(27), total.TotalSale)
}
