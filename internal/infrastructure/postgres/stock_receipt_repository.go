package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockReceiptRepository = (*StockReceiptRepo)(nil)

// StockReceiptRepo implementación de StockReceiptRepository sobre la tabla product_warehouse.
type StockReceiptRepo struct {
	q Querier
}

// NewStockReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockReceiptRepository(q Querier) *StockReceiptRepo {
	return &StockReceiptRepo{q: q}
}

// ExistsForOrder indica si el pedido ya tiene línea de ingreso.
func (r *StockReceiptRepo) ExistsForOrder(ctx context.Context, orderID int) (bool, error) {
	var one int
	err := r.q.QueryRow(ctx, `SELECT 1 FROM product_warehouse WHERE id_order = $1`, orderID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("receipt exists for order: %w", err)
	}
	return true, nil
}

// Create inserta la línea y devuelve el ID generado. El UNIQUE sobre id_order convierte una
// carrera perdida en domain.ErrConflict.
func (r *StockReceiptRepo) Create(ctx context.Context, receipt *entity.StockReceipt) (int, error) {
	query := `
		INSERT INTO product_warehouse (id_warehouse, id_product, id_order, amount, price, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id_product_warehouse`
	var id int
	err := r.q.QueryRow(ctx, query,
		receipt.WarehouseID, receipt.ProductID, receipt.OrderID, receipt.Amount, receipt.Price,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrConflict
		}
		return 0, fmt.Errorf("insert product_warehouse: %w", err)
	}
	receipt.ID = id
	return id, nil
}

// GetByID obtiene una línea de ingreso por ID.
func (r *StockReceiptRepo) GetByID(ctx context.Context, id int) (*entity.StockReceipt, error) {
	query := `
		SELECT id_product_warehouse, id_warehouse, id_product, id_order, amount, price, created_at
		FROM product_warehouse WHERE id_product_warehouse = $1`
	var s entity.StockReceipt
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.WarehouseID, &s.ProductID, &s.OrderID, &s.Amount, &s.Price, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product_warehouse: %w", err)
	}
	return &s, nil
}
