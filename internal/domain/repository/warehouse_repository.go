package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de lectura para Warehouse (DIP).
type WarehouseRepository interface {
	// GetByID devuelve nil, nil si la bodega no existe.
	GetByID(ctx context.Context, id int) (*entity.Warehouse, error)
}
