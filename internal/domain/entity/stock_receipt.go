package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockReceipt es la línea de ingreso de mercancía (tabla Product_Warehouse) que
// despacha exactamente un pedido. Price es el total: precio unitario × Amount.
type StockReceipt struct {
	ID          int
	WarehouseID int
	ProductID   int
	OrderID     int
	Amount      int
	Price       decimal.Decimal
	CreatedAt   time.Time
}

// TotalPrice calcula el precio total de una línea de ingreso.
func TotalPrice(unitPrice decimal.Decimal, amount int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(amount)))
}
