package repository

import (
	"context"
	"time"

	"github.com/IDS-Mandujano/electronica-back/internal/database"
	"github.com/IDS-Mandujano/electronica-back/internal/models"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TicketRepository persists repair tickets
type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	List(ctx context.Context) ([]models.TicketDetail, error)
	FindByID(ctx context.Context, id string) (*models.TicketDetail, error)
	UpdateDiagnosis(ctx context.Context, id string, update DiagnosisUpdate) error
	Finalize(ctx context.Context, id string, f Finalization) error
	Delete(ctx context.Context, id string) error
}

// DiagnosisUpdate holds the technician-controlled columns
type DiagnosisUpdate struct {
	Diagnosis         *string
	Status            models.TicketStatus
	EstimatedDelivery *time.Time
}

// Finalization holds the columns written when a ticket is delivered.
// Diagnosis is only written when non-nil.
type Finalization struct {
	CompletedAt time.Time
	DeliveredAt *time.Time
	RepairCost  decimal.Decimal
	Diagnosis   *string
}

type ticketRepository struct {
	db database.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db database.DB) TicketRepository {
	return &ticketRepository{db: db}
}

const ticketDetailColumns = `servicios.*,
	COALESCE(CONCAT_WS(' ', c.nombre, c.apellidos), '') AS nombre_cliente,
	COALESCE(c.numero_celular, '') AS numero_celular,
	COALESCE(m.nombre_marca, '') AS marca,
	COALESCE(e.modelo, '') AS modelo,
	COALESCE(u.nombre_completo, '') AS tecnico_nombre`

// detailQuery left-joins the catalog tables so tickets with dangling
// references are still returned.
func detailQuery(db *gorm.DB) *gorm.DB {
	return db.Table("servicios").
		Select(ticketDetailColumns).
		Joins("LEFT JOIN equipos e ON e.id = servicios.equipo_id").
		Joins("LEFT JOIN clientes c ON c.id = e.cliente_id").
		Joins("LEFT JOIN marcas m ON m.id = e.marca_id").
		Joins("LEFT JOIN users u ON u.id = servicios.tecnico_id")
}

func (r *ticketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	db, err := conn(ctx, r.db)
	if err != nil {
		return err
	}

	if err := db.Create(ticket).Error; err != nil {
		return errors.Wrap(err, "failed to create ticket")
	}
	return nil
}

func (r *ticketRepository) List(ctx context.Context) ([]models.TicketDetail, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return nil, err
	}

	tickets := []models.TicketDetail{}
	if err := detailQuery(db).Order("servicios.fecha_ingreso DESC").Scan(&tickets).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tickets")
	}
	return tickets, nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id string) (*models.TicketDetail, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var ticket models.TicketDetail
	result := detailQuery(db).Where("servicios.id = ?", id).Limit(1).Scan(&ticket)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to get ticket")
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &ticket, nil
}

func (r *ticketRepository) UpdateDiagnosis(ctx context.Context, id string, update DiagnosisUpdate) error {
	db, err := conn(ctx, r.db)
	if err != nil {
		return err
	}

	result := db.Model(&models.Ticket{}).Where("id = ?", id).Updates(map[string]interface{}{
		"diagnostico_tecnico":    update.Diagnosis,
		"estado":                 update.Status,
		"fecha_estimada_entrega": update.EstimatedDelivery,
	})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update diagnosis")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ticketRepository) Finalize(ctx context.Context, id string, f Finalization) error {
	db, err := conn(ctx, r.db)
	if err != nil {
		return err
	}

	values := map[string]interface{}{
		"estado":                models.TicketStatusDelivered,
		"fecha_finalizacion":    f.CompletedAt,
		"fecha_entrega_cliente": f.DeliveredAt,
		"costo_reparacion":      f.RepairCost,
	}
	if f.Diagnosis != nil {
		values["diagnostico_tecnico"] = *f.Diagnosis
	}

	result := db.Model(&models.Ticket{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to finalize ticket")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the ticket row. Usage records that reference it are kept.
func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	db, err := conn(ctx, r.db)
	if err != nil {
		return err
	}

	result := db.Where("id = ?", id).Delete(&models.Ticket{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete ticket")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
