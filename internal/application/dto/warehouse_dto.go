package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseRequest body para POST /api/warehouse y /api/warehouse/via-procedure.
type WarehouseRequest struct {
	IdProduct   int       `json:"idProduct"`
	IdWarehouse int       `json:"idWarehouse"`
	Amount      int       `json:"amount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ReceiptCreatedResponse respuesta 201 con el ID de la línea creada.
type ReceiptCreatedResponse struct {
	ID int `json:"id"`
}

// ReceiptResponse salida de una línea de ingreso (Product_Warehouse).
type ReceiptResponse struct {
	IdProductWarehouse int             `json:"idProductWarehouse"`
	IdWarehouse        int             `json:"idWarehouse"`
	IdProduct          int             `json:"idProduct"`
	IdOrder            int             `json:"idOrder"`
	Amount             int             `json:"amount"`
	Price              decimal.Decimal `json:"price"`
	CreatedAt          time.Time       `json:"createdAt"`
}
