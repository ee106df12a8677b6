package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TicketStatus is the workflow state of a repair ticket
type TicketStatus string

const (
	// TicketStatusPending is assigned on creation
	TicketStatusPending TicketStatus = "PENDIENTE"
	// TicketStatusInProgress means a technician is working on the device
	TicketStatusInProgress TicketStatus = "EN_PROCESO"
	// TicketStatusFinished means the repair is done but not handed over
	TicketStatusFinished TicketStatus = "FINALIZADO"
	// TicketStatusDelivered means the device was returned to the customer
	TicketStatusDelivered TicketStatus = "ENTREGADO"
)

// Known reports whether s is one of the workflow states the shop uses.
func (s TicketStatus) Known() bool {
	switch s {
	case TicketStatusPending, TicketStatusInProgress, TicketStatusFinished, TicketStatusDelivered:
		return true
	}
	return false
}

// Closed reports whether the ticket is finished or delivered, ignoring case.
func (s TicketStatus) Closed() bool {
	up := TicketStatus(strings.ToUpper(string(s)))
	return up == TicketStatusFinished || up == TicketStatusDelivered
}

// Ticket is a repair order ("servicio") for one device
type Ticket struct {
	ID                string              `json:"id" gorm:"Column:id;type:varchar(36);primaryKey"`
	Folio             int64               `json:"folioServicio" gorm:"Column:folio_servicio;autoIncrement;uniqueIndex"`
	EquipmentID       string              `json:"equipoId" gorm:"Column:equipo_id;type:varchar(36);index;not null"`
	TechnicianID      string              `json:"tecnicoId" gorm:"Column:tecnico_id;type:varchar(36);index;not null"`
	ReportedProblem   string              `json:"problemaReportado" gorm:"Column:problema_reportado;type:text;not null"`
	ReceivedAt        time.Time           `json:"fechaIngreso" gorm:"Column:fecha_ingreso;not null;index"`
	Diagnosis         *string             `json:"diagnosticoTecnico" gorm:"Column:diagnostico_tecnico;type:text"`
	Status            TicketStatus        `json:"estado" gorm:"Column:estado;type:varchar(20);not null;index"`
	EstimatedDelivery *time.Time          `json:"fechaEstimadaEntrega" gorm:"Column:fecha_estimada_entrega"`
	CompletedAt       *time.Time          `json:"fechaFinalizacion" gorm:"Column:fecha_finalizacion;index"`
	DeliveredAt       *time.Time          `json:"fechaEntregaCliente" gorm:"Column:fecha_entrega_cliente"`
	RepairCost        decimal.NullDecimal `json:"costoReparacion" gorm:"Column:costo_reparacion;type:decimal(10,2)"`
}

// TableName overrides the gorm table name
func (Ticket) TableName() string {
	return "servicios"
}

// TicketDetail is a ticket enriched with customer, device and technician data
type TicketDetail struct {
	Ticket
	CustomerName   string `json:"nombreCliente" gorm:"Column:nombre_cliente"`
	CustomerPhone  string `json:"numeroCelular" gorm:"Column:numero_celular"`
	Brand          string `json:"marca" gorm:"Column:marca"`
	Model          string `json:"modelo" gorm:"Column:modelo"`
	TechnicianName string `json:"tecnicoNombre" gorm:"Column:tecnico_nombre"`
}
