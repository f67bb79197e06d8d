package http

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/warehouse"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// WarehouseFulfiller operaciones del motor de despacho que expone la API.
type WarehouseFulfiller interface {
	FulfillWarehouseRequest(ctx context.Context, input warehouse.FulfillmentInput) (int, error)
	FulfillWarehouseRequestViaProcedure(ctx context.Context, input warehouse.FulfillmentInput) (int, error)
	GetReceipt(ctx context.Context, id int) (*entity.StockReceipt, error)
}

// WarehouseHandler maneja las peticiones HTTP de despacho de reposición.
type WarehouseHandler struct {
	uc WarehouseFulfiller
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc WarehouseFulfiller) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// AddProduct godoc
// @Summary      Despachar pedido de reposición
// @Description  Busca el pedido coincidente, lo marca como despachado y registra la línea en Product_Warehouse en una sola transacción.
// @Tags         warehouse
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WarehouseRequest  true  "idProduct, idWarehouse, amount, createdAt"
// @Success      201   {object}  dto.ReceiptCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "No matching order found (NOT_FOUND)"
// @Failure      409   {object}  dto.ErrorResponse  "Order already completed (CONFLICT)"
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/warehouse [post]
func (h *WarehouseHandler) AddProduct(c *fiber.Ctx) error {
	input, ok := parseWarehouseRequest(c)
	if !ok {
		return nil
	}
	id, err := h.uc.FulfillWarehouseRequest(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, id)
}

// AddProductViaProcedure godoc
// @Summary      Despachar pedido mediante procedimiento almacenado
// @Description  Igual que POST /api/warehouse, pero toda la lógica corre en la rutina add_product_to_warehouse.
// @Tags         warehouse
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WarehouseRequest  true  "idProduct, idWarehouse, amount, createdAt"
// @Success      201   {object}  dto.ReceiptCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/warehouse/via-procedure [post]
func (h *WarehouseHandler) AddProductViaProcedure(c *fiber.Ctx) error {
	input, ok := parseWarehouseRequest(c)
	if !ok {
		return nil
	}
	id, err := h.uc.FulfillWarehouseRequestViaProcedure(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, id)
}

// GetReceipt godoc
// @Summary      Obtener línea de ingreso
// @Tags         warehouse
// @Produce      json
// @Param        id   path  int  true  "IdProductWarehouse"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouse/receipts/{id} [get]
func (h *WarehouseHandler) GetReceipt(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"})
	}
	r, err := h.uc.GetReceipt(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ReceiptResponse{
		IdProductWarehouse: r.ID,
		IdWarehouse:        r.WarehouseID,
		IdProduct:          r.ProductID,
		IdOrder:            r.OrderID,
		Amount:             r.Amount,
		Price:              r.Price,
		CreatedAt:          r.CreatedAt,
	})
}

func parseWarehouseRequest(c *fiber.Ctx) (warehouse.FulfillmentInput, bool) {
	var in dto.WarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		return warehouse.FulfillmentInput{}, false
	}
	return warehouse.FulfillmentInput{
		ProductID:   in.IdProduct,
		WarehouseID: in.IdWarehouse,
		Amount:      in.Amount,
		CreatedAt:   in.CreatedAt,
	}, true
}

func created(c *fiber.Ctx, id int) error {
	c.Location(fmt.Sprintf("/api/warehouse/receipts/%d", id))
	return c.Status(fiber.StatusCreated).JSON(dto.ReceiptCreatedResponse{ID: id})
}

// writeError traduce el tipo de fallo del dominio a código HTTP.
func writeError(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	status := fiber.StatusInternalServerError
	switch kind {
	case domain.ErrInvalidInput:
		status = fiber.StatusBadRequest
	case domain.ErrNotFound:
		status = fiber.StatusNotFound
	case domain.ErrConflict:
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: domain.KindName(kind), Message: domain.MessageOf(err)})
}
