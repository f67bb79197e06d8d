package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
// Usado dentro de transacciones para garantizar consistencia.
type OrderRepository interface {
	// FindMatchingForUpdate busca el pedido con el mismo producto y cantidad creado antes de
	// `before` y bloquea su fila (SELECT FOR UPDATE). Orden de desempate: pendientes primero,
	// luego CreatedAt ascendente, luego ID ascendente. Devuelve nil, nil si no hay coincidencia.
	FindMatchingForUpdate(ctx context.Context, productID, amount int, before time.Time) (*entity.Order, error)
	// MarkFulfilled fija FulfilledAt a la hora del servidor.
	MarkFulfilled(ctx context.Context, orderID int) error
	GetByID(ctx context.Context, id int) (*entity.Order, error)
}
