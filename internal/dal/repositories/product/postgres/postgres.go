package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/salesdesk/oms/internal/dal/postgres"
	"github.com/salesdesk/oms/internal/service/models/product"
	"github.com/salesdesk/oms/internal/service/models/supplier"
)

// ProductDal represents product data access layer model.
type ProductDal struct {
	Id           int64   `db:"id"`
	Name         string  `db:"name"`
	Price        float64 `db:"price"`
	SupplierId   int64   `db:"supplier_id"`
	SupplierName string  `db:"supplier_name"`
}

// ToModel converts ProductDal to service layer Product model.
func (p *ProductDal) ToModel() *product.Product {
	return &product.Product{
		ID:         p.Id,
		Name:       p.Name,
		Price:      p.Price,
		SupplierID: p.SupplierId,
		Supplier:   &supplier.Supplier{ID: p.SupplierId, Name: p.SupplierName},
	}
}

// PostgresProductRepository represents a Postgres product repository.
type PostgresProductRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(conn postgres.Conn) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetByID retrieves a product with its supplier. A missing product is
// reported as product.ErrProductNotFound.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	query, args, err := r.sb.
		Select(
			"p.id",
			"p.name",
			"p.price",
			"p.supplier_id",
			"s.name AS supplier_name",
		).
		From("products p").
		Join("suppliers s ON s.id = p.supplier_id").
		Where(sq.Eq{"p.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var dal ProductDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.Name,
		&dal.Price,
		&dal.SupplierId,
		&dal.SupplierName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, product.ErrProductNotFound)
		}

		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return dal.ToModel(), nil
}
