package warehouse

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error la transacción se revierte completa; si no, se hace Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
		orderRepo repository.OrderRepository,
		receiptRepo repository.StockReceiptRepository,
	) error) error
}

// ProcedureCaller invoca la rutina del servidor que ejecuta el despacho completo de forma atómica.
type ProcedureCaller interface {
	AddProductToWarehouse(ctx context.Context, productID, warehouseID, amount int, createdAt time.Time) (int, error)
}

// Pinger comprueba la conectividad con la base de datos.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Recorder registra el resultado de cada despacho (métricas).
type Recorder interface {
	ObserveFulfillment(variant, outcome string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveFulfillment(string, string, time.Duration) {}
