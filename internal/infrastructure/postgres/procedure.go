package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Almacen-api/internal/application/warehouse"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

var _ warehouse.ProcedureCaller = (*ProcedureRepo)(nil)

// ProcedureName rutina del servidor que ejecuta el despacho completo.
const ProcedureName = "add_product_to_warehouse"

// ProcedureRepo invoca la rutina add_product_to_warehouse. La rutina es atómica por sí misma
// (una sola sentencia), por lo que no se abre transacción explícita.
type ProcedureRepo struct {
	pool *pgxpool.Pool
}

// NewProcedureRepo construye el adaptador.
func NewProcedureRepo(pool *pgxpool.Pool) *ProcedureRepo {
	return &ProcedureRepo{pool: pool}
}

// AddProductToWarehouse llama a la rutina con parámetros posicionales y devuelve el ID generado.
// Los errores de PostgreSQL se devuelven como domain.ErrStoreExecution con el mensaje de la rutina.
func (r *ProcedureRepo) AddProductToWarehouse(ctx context.Context, productID, warehouseID, amount int, createdAt time.Time) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx, `SELECT `+ProcedureName+`($1, $2, $3, $4)`,
		productID, warehouseID, amount, createdAt,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return 0, domain.Wrap(domain.ErrStoreExecution, storeMessage(err), err)
		}
		return 0, err
	}
	return id, nil
}
