package entity

import "time"

// Order representa un pedido de reposición. FulfilledAt nil significa pendiente.
type Order struct {
	ID          int
	ProductID   int
	Amount      int
	CreatedAt   time.Time
	FulfilledAt *time.Time
}

// IsPending indica si el pedido aún no ha sido despachado.
func (o *Order) IsPending() bool {
	return o.FulfilledAt == nil
}
