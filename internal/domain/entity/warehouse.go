package entity

// Warehouse representa una bodega que recibe mercancía.
type Warehouse struct {
	ID      int
	Name    string
	Address string
}
