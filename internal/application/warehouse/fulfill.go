package warehouse

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Mensajes devueltos al cliente.
const (
	MsgProductNotFound   = "Product does not exist"
	MsgWarehouseNotFound = "Warehouse does not exist"
	MsgInvalidAmount     = "Amount must be greater than 0"
	MsgNoMatchingOrder   = "No matching order found"
	MsgOrderCompleted    = "Order already completed"
	MsgReceiptNotFound   = "Receipt does not exist"
	MsgDeadlineExceeded  = "fulfillment deadline exceeded"
	MsgStoreFailure      = "internal store error"
	MsgProcedureFailure  = "stored procedure execution failed"
)

// Variantes de despacho (etiqueta de métricas y logs).
const (
	VariantTransaction = "transaction"
	VariantProcedure   = "procedure"
)

// DefaultTimeout plazo por defecto de cada despacho.
const DefaultTimeout = 5 * time.Second

var tracer = otel.Tracer("github.com/jhoicas/Almacen-api/internal/application/warehouse")

// FulfillmentInput entrada para despachar un pedido de reposición.
type FulfillmentInput struct {
	ProductID   int
	WarehouseID int
	Amount      int
	CreatedAt   time.Time
}

// Config parámetros del caso de uso.
type Config struct {
	Timeout time.Duration
}

// FulfillmentUseCase despacha pedidos de reposición: valida, busca el pedido, lo marca como
// despachado y registra la línea en Product_Warehouse, todo en una sola transacción.
type FulfillmentUseCase struct {
	txRunner    TxRunner
	procedure   ProcedureCaller
	receiptRepo repository.StockReceiptRepository
	pinger      Pinger
	recorder    Recorder
	log         zerolog.Logger
	timeout     time.Duration
}

// NewFulfillmentUseCase construye el caso de uso. recorder puede ser nil.
func NewFulfillmentUseCase(
	txRunner TxRunner,
	procedure ProcedureCaller,
	receiptRepo repository.StockReceiptRepository,
	pinger Pinger,
	recorder Recorder,
	log zerolog.Logger,
	cfg Config,
) *FulfillmentUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &FulfillmentUseCase{
		txRunner:    txRunner,
		procedure:   procedure,
		receiptRepo: receiptRepo,
		pinger:      pinger,
		recorder:    recorder,
		log:         log.With().Str("component", "fulfillment").Logger(),
		timeout:     cfg.Timeout,
	}
}

// FulfillWarehouseRequest inicia una transacción, valida producto, bodega y cantidad, bloquea el
// pedido coincidente (SELECT FOR UPDATE), verifica que no tenga línea previa, lo marca como
// despachado, inserta la línea al precio unitario × cantidad y hace Commit. Cualquier fallo
// revierte la transacción completa.
func (uc *FulfillmentUseCase) FulfillWarehouseRequest(ctx context.Context, input FulfillmentInput) (receiptID int, err error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	ctx, span := uc.startSpan(ctx, "warehouse.FulfillWarehouseRequest", input)
	started := time.Now()
	fulfillmentID := uuid.New().String()
	var orderID int
	defer func() {
		uc.finish(span, VariantTransaction, fulfillmentID, input, orderID, receiptID, err, started)
	}()

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		warehouseRepo repository.WarehouseRepository,
		orderRepo repository.OrderRepository,
		receiptRepo repository.StockReceiptRepository,
	) error {
		ok, err := productRepo.Exists(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewError(domain.ErrInvalidInput, MsgProductNotFound)
		}

		wh, err := warehouseRepo.GetByID(ctx, input.WarehouseID)
		if err != nil {
			return err
		}
		if wh == nil {
			return domain.NewError(domain.ErrInvalidInput, MsgWarehouseNotFound)
		}

		if input.Amount <= 0 {
			return domain.NewError(domain.ErrInvalidInput, MsgInvalidAmount)
		}

		order, err := orderRepo.FindMatchingForUpdate(ctx, input.ProductID, input.Amount, input.CreatedAt)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NewError(domain.ErrNotFound, MsgNoMatchingOrder)
		}
		orderID = order.ID

		done, err := receiptRepo.ExistsForOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		if done {
			return domain.NewError(domain.ErrConflict, MsgOrderCompleted)
		}

		if err := orderRepo.MarkFulfilled(ctx, order.ID); err != nil {
			return err
		}

		product, err := productRepo.GetByID(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		id, err := receiptRepo.Create(ctx, &entity.StockReceipt{
			WarehouseID: input.WarehouseID,
			ProductID:   input.ProductID,
			OrderID:     order.ID,
			Amount:      input.Amount,
			Price:       entity.TotalPrice(product.Price, input.Amount),
		})
		if err != nil {
			return err
		}
		receiptID = id
		return nil
	})
	if err != nil {
		return 0, classify(ctx, err, domain.ErrInternal, MsgStoreFailure)
	}
	return receiptID, nil
}

// FulfillWarehouseRequestViaProcedure delega el despacho completo a la rutina del servidor.
// Los errores de la base se reportan como domain.ErrStoreExecution sin descomponer.
func (uc *FulfillmentUseCase) FulfillWarehouseRequestViaProcedure(ctx context.Context, input FulfillmentInput) (receiptID int, err error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	ctx, span := uc.startSpan(ctx, "warehouse.FulfillWarehouseRequestViaProcedure", input)
	started := time.Now()
	fulfillmentID := uuid.New().String()
	defer func() {
		uc.finish(span, VariantProcedure, fulfillmentID, input, 0, receiptID, err, started)
	}()

	receiptID, err = uc.procedure.AddProductToWarehouse(ctx, input.ProductID, input.WarehouseID, input.Amount, input.CreatedAt)
	if err != nil {
		return 0, classify(ctx, err, domain.ErrStoreExecution, MsgProcedureFailure)
	}
	return receiptID, nil
}

// GetReceipt obtiene una línea de ingreso por ID.
func (uc *FulfillmentUseCase) GetReceipt(ctx context.Context, id int) (*entity.StockReceipt, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	receipt, err := uc.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, classify(ctx, err, domain.ErrInternal, MsgStoreFailure)
	}
	if receipt == nil {
		return nil, domain.NewError(domain.ErrNotFound, MsgReceiptNotFound)
	}
	return receipt, nil
}

// Ping verifica la conexión con la base de datos.
func (uc *FulfillmentUseCase) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return uc.pinger.Ping(ctx)
}

// classify convierte err en un fallo tipado. Los fallos ya tipados se conservan; el vencimiento
// del plazo es interno; el resto se reporta como fallback.
func classify(ctx context.Context, err error, fallback error, msg string) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.Wrap(domain.ErrInternal, MsgDeadlineExceeded, err)
	}
	if errors.Is(err, domain.ErrConflict) {
		return domain.Wrap(domain.ErrConflict, MsgOrderCompleted, err)
	}
	return domain.Wrap(fallback, msg, err)
}

func (uc *FulfillmentUseCase) startSpan(ctx context.Context, name string, input FulfillmentInput) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.Int("warehouse.product_id", input.ProductID),
		attribute.Int("warehouse.warehouse_id", input.WarehouseID),
		attribute.Int("warehouse.amount", input.Amount),
	))
}

func (uc *FulfillmentUseCase) finish(
	span trace.Span,
	variant, fulfillmentID string,
	input FulfillmentInput,
	orderID, receiptID int,
	err error,
	started time.Time,
) {
	elapsed := time.Since(started)
	outcome := "OK"
	if err != nil {
		outcome = domain.KindName(domain.KindOf(err))
	}
	uc.recorder.ObserveFulfillment(variant, outcome, elapsed)

	span.SetAttributes(
		attribute.String("warehouse.fulfillment_id", fulfillmentID),
		attribute.String("warehouse.outcome", outcome),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	} else {
		span.SetAttributes(attribute.Int("warehouse.receipt_id", receiptID))
	}
	span.End()

	var ev *zerolog.Event
	switch {
	case err == nil:
		ev = uc.log.Info()
	case outcome == "INTERNAL" || outcome == "STORE_EXECUTION":
		ev = uc.log.Error().Err(err)
	default:
		ev = uc.log.Warn().Str("reason", domain.MessageOf(err))
	}
	ev.Str("fulfillment_id", fulfillmentID).
		Str("variant", variant).
		Int("product_id", input.ProductID).
		Int("warehouse_id", input.WarehouseID).
		Int("amount", input.Amount).
		Int("order_id", orderID).
		Int("receipt_id", receiptID).
		Str("outcome", outcome).
		Dur("elapsed", elapsed).
		Msg("despacho de reposición")
}
