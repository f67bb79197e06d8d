package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo. Price es el precio unitario vigente;
// el motor de despacho solo lo lee.
type Product struct {
	ID          int
	Name        string
	Description string
	Price       decimal.Decimal
}
