package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ProductRepository define el puerto de lectura para Product (DIP).
type ProductRepository interface {
	Exists(ctx context.Context, id int) (bool, error)
	// GetByID devuelve nil, nil si el producto no existe.
	GetByID(ctx context.Context, id int) (*entity.Product, error)
}
