package entity

import "time"

// Estados de un lote de inversión.
const (
	BatchStatusActive   = "ACTIVE"
	BatchStatusFinished = "FINISHED"
)

// ProductBatch agrupa productos que comparten una base de costo (una inversión),
// para seguir su rentabilidad agregada. La inversión vive como movimientos
// INVESTMENT asociados al lote, no como campo del lote.
type ProductBatch struct {
	ID          string
	Name        string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
