package dto

import "time"

// KardexEntryResponse una fila del historial de movimientos de inventario.
type KardexEntryResponse struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	Product      string    `json:"product"`
	Type         string    `json:"type"` // IN, OUT, ADJUSTMENT
	Quantity     int       `json:"quantity"`
	Reason       string    `json:"reason"`
	BalanceAfter int       `json:"balance_after"`
}
