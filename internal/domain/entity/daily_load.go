package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la carga del día. OPEN es el inicial; CLOSED es terminal (no se reabre).
const (
	LoadStatusOpen   = "OPEN"
	LoadStatusClosed = "CLOSED"
)

// DailyLoad es la asignación de stock de un día para venta directa (venta ambulante).
// Existe a lo sumo una carga por fecha calendario, sin importar su estado.
type DailyLoad struct {
	ID        string
	Date      string // fecha calendario YYYY-MM-DD; única
	Status    string
	Notes     string
	TotalSold decimal.Decimal // acumulado de ventas registradas contra la carga
	Items     []*DailyLoadItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen indica si la carga acepta ventas.
func (l *DailyLoad) IsOpen() bool {
	return l.Status == LoadStatusOpen
}

// DailyLoadItem es la porción de un producto asignada a una carga.
// Invariante en todo momento: QuantitySold + QuantityReturned <= QuantityTaken.
// Tras el cierre la desigualdad se vuelve igualdad exacta.
type DailyLoadItem struct {
	ID               string
	DailyLoadID      string
	ProductID        string
	QuantityTaken    int // unidades sacadas de bodega, fijo desde la creación
	QuantitySold     int
	QuantityReturned int             // se fija una sola vez, al cerrar la carga
	UnitPrice        decimal.Decimal // precio de venta congelado al crear la carga
	Product          *Product        // detalle para presentación; puede ser nil
}

// Available devuelve las unidades aún vendibles del ítem.
func (i *DailyLoadItem) Available() int {
	return i.QuantityTaken - i.QuantitySold - i.QuantityReturned
}
