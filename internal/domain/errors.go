package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrProductNotFound  = errors.New("producto no encontrado")
	ErrDuplicateLoad    = errors.New("ya existe una carga para esta fecha")
	ErrLoadNotFound     = errors.New("carga no encontrada")
	ErrLoadNotOpen      = errors.New("no hay carga abierta")
	ErrLoadClosed       = errors.New("esta carga ya fue cerrada")
	ErrItemNotInLoad    = errors.New("producto no está en la carga del día")
	ErrStockBelowZero   = errors.New("el ajuste dejaría el stock en negativo")
)

// InsufficientStockError indica que el stock principal de un producto no alcanza
// para la cantidad solicitada. Incluye nombre y disponible para el mensaje al usuario.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("no hay suficiente stock de %q. Disponible: %d", e.ProductName, e.Available)
}

// InsufficientLoadStockError indica que la carga del día no tiene unidades
// disponibles suficientes de un producto (tomadas − vendidas − devueltas).
type InsufficientLoadStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientLoadStockError) Error() string {
	return fmt.Sprintf("no hay suficientes de %q. Disponible: %d", e.ProductName, e.Available)
}
