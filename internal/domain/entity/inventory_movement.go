package entity

import "time"

// Tipos de movimiento de inventario (kardex).
const (
	InventoryMovementIN         = "IN"         // entrada a bodega
	InventoryMovementOUT        = "OUT"        // salida de bodega
	InventoryMovementADJUSTMENT = "ADJUSTMENT" // corrección manual
)

// InventoryMovement es un registro inmutable del kardex: cada delta de stock de un
// producto con el saldo resultante. Quantity siempre positiva; el tipo determina el signo.
// Reproducir los registros de un producto en orden cronológico debe reconstruir cada
// BalanceAfter a partir del anterior.
type InventoryMovement struct {
	ID           string
	ProductID    string
	Type         string
	Quantity     int
	Reason       string // texto libre: "Carga del Día", "Venta #id", "Corrección Manual"
	BalanceAfter int    // stock del producto inmediatamente después de este registro
	ReferenceID  string // opcional: id de la venta o carga que originó el movimiento
	CreatedAt    time.Time
}
