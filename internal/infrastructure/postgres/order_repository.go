package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// FindMatchingForUpdate busca el pedido coincidente y bloquea su fila (SELECT FOR UPDATE).
// Los pendientes van primero para no quedar ocultos tras uno ya despachado.
func (r *OrderRepo) FindMatchingForUpdate(ctx context.Context, productID, amount int, before time.Time) (*entity.Order, error) {
	query := `
		SELECT id_order, id_product, amount, created_at, fulfilled_at
		FROM "order"
		WHERE id_product = $1 AND amount = $2 AND created_at < $3
		ORDER BY fulfilled_at IS NOT NULL, created_at, id_order
		LIMIT 1
		FOR UPDATE`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, productID, amount, before).Scan(
		&o.ID, &o.ProductID, &o.Amount, &o.CreatedAt, &o.FulfilledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find matching order: %w", err)
	}
	return &o, nil
}

// MarkFulfilled fija fulfilled_at = now() en el pedido.
func (r *OrderRepo) MarkFulfilled(ctx context.Context, orderID int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE "order" SET fulfilled_at = now() WHERE id_order = $1`, orderID)
	if err != nil {
		return fmt.Errorf("mark order fulfilled: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("mark order %d fulfilled: %w", orderID, domain.ErrNotFound)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id int) (*entity.Order, error) {
	query := `
		SELECT id_order, id_product, amount, created_at, fulfilled_at
		FROM "order" WHERE id_order = $1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.ProductID, &o.Amount, &o.CreatedAt, &o.FulfilledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}
