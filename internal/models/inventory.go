package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// money goes over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// Part is a stocked spare part
type Part struct {
	ID           string          `json:"id" gorm:"Column:id;type:varchar(36);primaryKey"`
	Name         string          `json:"nombreProducto" gorm:"Column:nombre_pieza;not null;index"`
	Category     string          `json:"categoria" gorm:"Column:categoria;not null"`
	Stock        int             `json:"cantidad" gorm:"Column:stock_actual;not null;default:0"`
	MinimumStock int             `json:"stockMinimo" gorm:"Column:stock_minimo;not null;default:0"`
	Unit         string          `json:"unidad" gorm:"Column:unidad_medida"`
	UnitCost     decimal.Decimal `json:"precioUnitario" gorm:"Column:costo_unitario;type:decimal(10,2);not null;default:0"`
}

// TableName overrides the gorm table name
func (Part) TableName() string {
	return "inventario_refacciones"
}

// LowStock reports whether the part is at or below its minimum
func (p Part) LowStock() bool {
	return p.Stock <= p.MinimumStock
}

// MaterialUsage accumulates how many units of a part a ticket consumed.
// There is at most one row per (ticket, part) pair.
type MaterialUsage struct {
	ID           string    `json:"id" gorm:"Column:id;type:varchar(36);primaryKey"`
	TicketID     string    `json:"servicioId" gorm:"Column:servicio_id;type:varchar(36);not null;uniqueIndex:idx_servicio_material"`
	PartID       string    `json:"materialId" gorm:"Column:material_id;type:varchar(36);not null;uniqueIndex:idx_servicio_material"`
	QuantityUsed int       `json:"cantidadUsada" gorm:"Column:cantidad_usada;not null"`
	UsedAt       time.Time `json:"fechaUso" gorm:"Column:fecha_uso;not null"`
}

// TableName overrides the gorm table name
func (MaterialUsage) TableName() string {
	return "servicios_materiales"
}

// MaterialUsageDetail is a usage record joined with its part
type MaterialUsageDetail struct {
	ID           string    `json:"id" gorm:"Column:id"`
	TicketID     string    `json:"servicioId" gorm:"Column:servicio_id"`
	PartID       string    `json:"materialId" gorm:"Column:material_id"`
	PartName     string    `json:"nombrePieza" gorm:"Column:nombre_pieza"`
	Category     string    `json:"categoria" gorm:"Column:categoria"`
	QuantityUsed int       `json:"cantidadUsada" gorm:"Column:cantidad_usada"`
	UsedAt       time.Time `json:"fechaUso" gorm:"Column:fecha_uso"`
}

// SaleCardStatus tracks whether a board for sale is still in stock
type SaleCardStatus string

const (
	SaleCardAvailable SaleCardStatus = "DISPONIBLE"
	SaleCardSold      SaleCardStatus = "VENDIDO"
)

// SaleCard is a replacement board offered for sale
type SaleCard struct {
	ID          string          `json:"id" gorm:"Column:id;type:varchar(36);primaryKey"`
	BrandID     int             `json:"marcaId" gorm:"Column:marca_id"`
	Model       string          `json:"modelo" gorm:"Column:modelo;not null"`
	Description string          `json:"descripcion" gorm:"Column:descripcion;type:text"`
	SalePrice   decimal.Decimal `json:"precioVenta" gorm:"Column:precio_venta;type:decimal(10,2);not null"`
	Status      SaleCardStatus  `json:"estado" gorm:"Column:estado;type:varchar(20);not null"`
	SoldAt      *time.Time      `json:"fechaVenta" gorm:"Column:fecha_venta"`
}

// TableName overrides the gorm table name
func (SaleCard) TableName() string {
	return "tarjetas_venta"
}
