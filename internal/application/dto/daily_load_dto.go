package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastano/conta-negocios/internal/domain/entity"
)

// CreateLoadRequest body para POST /api/daily-loads.
// Date opcional (YYYY-MM-DD); vacío = hoy.
type CreateLoadRequest struct {
	Date  string            `json:"date,omitempty"`
	Notes string            `json:"notes,omitempty"`
	Items []LoadItemRequest `json:"items"`
}

// LoadItemRequest un producto y la cantidad que se lleva en la carga.
type LoadItemRequest struct {
	ProductID     string `json:"product_id"`
	QuantityTaken int    `json:"quantity_taken"`
}

// RegisterLoadSaleRequest body para POST /api/daily-loads/sell.
type RegisterLoadSaleRequest struct {
	LoadID string            `json:"load_id"`
	Items  []SaleLineRequest `json:"items"`
}

// SaleLineRequest cantidad vendida de un producto.
type SaleLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// LoadItemResponse ítem de la carga con su detalle de producto.
type LoadItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name,omitempty"`
	QuantityTaken    int             `json:"quantity_taken"`
	QuantitySold     int             `json:"quantity_sold"`
	QuantityReturned int             `json:"quantity_returned"`
	Available        int             `json:"available"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
}

// LoadResponse carga del día con sus ítems.
type LoadResponse struct {
	ID        string             `json:"id"`
	Date      string             `json:"date"`
	Status    string             `json:"status"`
	Notes     string             `json:"notes,omitempty"`
	TotalSold decimal.Decimal    `json:"total_sold"`
	Items     []LoadItemResponse `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
}

// RegisterSaleResponse respuesta de POST /api/daily-loads/sell.
type RegisterSaleResponse struct {
	Load      LoadResponse    `json:"load"`
	SaleTotal decimal.Decimal `json:"sale_total"`
}

// NewLoadResponse convierte la entidad al DTO de respuesta.
func NewLoadResponse(l *entity.DailyLoad) LoadResponse {
	resp := LoadResponse{
		ID:        l.ID,
		Date:      l.Date,
		Status:    l.Status,
		Notes:     l.Notes,
		TotalSold: l.TotalSold,
		Items:     make([]LoadItemResponse, 0, len(l.Items)),
		CreatedAt: l.CreatedAt,
	}
	for _, it := range l.Items {
		item := LoadItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			QuantityTaken:    it.QuantityTaken,
			QuantitySold:     it.QuantitySold,
			QuantityReturned: it.QuantityReturned,
			Available:        it.Available(),
			UnitPrice:        it.UnitPrice,
		}
		if it.Product != nil {
			item.ProductName = it.Product.Name
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}
