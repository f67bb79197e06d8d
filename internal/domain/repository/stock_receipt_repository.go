package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockReceiptRepository define el puerto de persistencia para las líneas Product_Warehouse.
type StockReceiptRepository interface {
	ExistsForOrder(ctx context.Context, orderID int) (bool, error)
	// Create inserta la línea con CreatedAt = hora del servidor y devuelve el ID generado.
	// Si ya existe una línea para el pedido devuelve domain.ErrConflict.
	Create(ctx context.Context, receipt *entity.StockReceipt) (int, error)
	GetByID(ctx context.Context, id int) (*entity.StockReceipt, error)
}
