package service

import (
	"context"
	"strings"
	"time"

	"github.com/IDS-Mandujano/electronica-back/internal/messaging"
	"github.com/IDS-Mandujano/electronica-back/internal/models"
	"github.com/IDS-Mandujano/electronica-back/internal/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CreateTicketRequest opens a repair ticket for a device
type CreateTicketRequest struct {
	EquipmentID     string `validate:"required"`
	TechnicianID    string `validate:"required"`
	ReportedProblem string `validate:"required"`
}

// UpdateDiagnosisRequest is the technician-side update. Any status string
// is accepted.
type UpdateDiagnosisRequest struct {
	Diagnosis         *string
	Status            models.TicketStatus `validate:"required"`
	EstimatedDelivery *time.Time
}

// FinalizeRequest marks a ticket as delivered
type FinalizeRequest struct {
	RepairCost   decimal.Decimal
	DeliveryDate *time.Time
}

// DeliveryPatch amends a delivered ticket. Nil fields keep their value.
type DeliveryPatch struct {
	RepairCost   *decimal.Decimal
	Diagnosis    *string
	DeliveryDate *time.Time
}

// TicketDelivered is the payload of the servicio.entregado event
type TicketDelivered struct {
	TicketID    string          `json:"servicioId"`
	Folio       int64           `json:"folioServicio"`
	RepairCost  decimal.Decimal `json:"costoReparacion"`
	CompletedAt time.Time       `json:"fechaFinalizacion"`
	DeliveredAt *time.Time      `json:"fechaEntregaCliente"`
}

// TicketService drives the repair ticket lifecycle
type TicketService interface {
	Create(ctx context.Context, req CreateTicketRequest) (*models.Ticket, error)
	List(ctx context.Context) ([]models.TicketDetail, error)
	ListFinalized(ctx context.Context) ([]models.TicketDetail, error)
	Get(ctx context.Context, id string) (*models.TicketDetail, error)
	UpdateDiagnosis(ctx context.Context, id string, req UpdateDiagnosisRequest) (*models.TicketDetail, error)
	FinalizeDelivery(ctx context.Context, id string, req FinalizeRequest) (*models.TicketDetail, error)
	UpdateDelivery(ctx context.Context, id string, patch DeliveryPatch) (*models.TicketDetail, error)
	Delete(ctx context.Context, id string) error
}

type ticketService struct {
	cfg Config
}

// NewTicketService creates a new ticket service
func NewTicketService(cfg Config) TicketService {
	return &ticketService{cfg: cfg.withDefaults()}
}

func (s *ticketService) Create(ctx context.Context, req CreateTicketRequest) (*models.Ticket, error) {
	req.EquipmentID = strings.TrimSpace(req.EquipmentID)
	req.TechnicianID = strings.TrimSpace(req.TechnicianID)
	req.ReportedProblem = strings.TrimSpace(req.ReportedProblem)
	if err := validateRequest(req, "Datos incompletos para crear servicio"); err != nil {
		return nil, err
	}

	ticket := &models.Ticket{
		ID:              uuid.NewString(),
		EquipmentID:     req.EquipmentID,
		TechnicianID:    req.TechnicianID,
		ReportedProblem: req.ReportedProblem,
		ReceivedAt:      s.cfg.Clock(),
		Status:          models.TicketStatusPending,
	}
	if err := s.cfg.Store.Tickets().Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.cfg.Logger.WithFields(logrus.Fields{
		"ticket_id": ticket.ID,
		"folio":     ticket.Folio,
	}).Info("Ticket created")
	return ticket, nil
}

func (s *ticketService) List(ctx context.Context) ([]models.TicketDetail, error) {
	return s.cfg.Store.Tickets().List(ctx)
}

func (s *ticketService) ListFinalized(ctx context.Context) ([]models.TicketDetail, error) {
	all, err := s.cfg.Store.Tickets().List(ctx)
	if err != nil {
		return nil, err
	}

	closed := make([]models.TicketDetail, 0, len(all))
	for _, t := range all {
		if t.Status.Closed() {
			closed = append(closed, t)
		}
	}
	return closed, nil
}

func (s *ticketService) Get(ctx context.Context, id string) (*models.TicketDetail, error) {
	return s.cfg.Store.Tickets().FindByID(ctx, id)
}

func (s *ticketService) UpdateDiagnosis(ctx context.Context, id string, req UpdateDiagnosisRequest) (*models.TicketDetail, error) {
	req.Status = models.TicketStatus(strings.TrimSpace(string(req.Status)))
	if err := validateRequest(req, "El estado es requerido"); err != nil {
		return nil, err
	}
	if !req.Status.Known() {
		s.cfg.Logger.WithFields(logrus.Fields{
			"ticket_id": id,
			"estado":    req.Status,
		}).Warn("Ticket moved to an unrecognized status")
	}

	err := s.cfg.Store.Tickets().UpdateDiagnosis(ctx, id, repository.DiagnosisUpdate{
		Diagnosis:         req.Diagnosis,
		Status:            req.Status,
		EstimatedDelivery: req.EstimatedDelivery,
	})
	if err != nil {
		return nil, err
	}
	return s.cfg.Store.Tickets().FindByID(ctx, id)
}

func (s *ticketService) FinalizeDelivery(ctx context.Context, id string, req FinalizeRequest) (*models.TicketDetail, error) {
	if req.RepairCost.IsNegative() {
		return nil, &ValidationError{Message: "El costo de reparación no puede ser negativo"}
	}

	f := repository.Finalization{
		CompletedAt: s.cfg.Clock(),
		DeliveredAt: req.DeliveryDate,
		RepairCost:  req.RepairCost,
	}
	if err := s.cfg.Store.Tickets().Finalize(ctx, id, f); err != nil {
		return nil, err
	}
	return s.afterFinalize(ctx, id, f)
}

// UpdateDelivery merges patch into a ticket and finalizes it again. An
// existing completion timestamp is kept.
func (s *ticketService) UpdateDelivery(ctx context.Context, id string, patch DeliveryPatch) (*models.TicketDetail, error) {
	if patch.RepairCost != nil && patch.RepairCost.IsNegative() {
		return nil, &ValidationError{Message: "El costo de reparación no puede ser negativo"}
	}

	var f repository.Finalization
	err := s.cfg.Store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		current, err := tx.Tickets().FindByID(ctx, id)
		if err != nil {
			return err
		}

		f = repository.Finalization{
			CompletedAt: s.cfg.Clock(),
			DeliveredAt: current.DeliveredAt,
			RepairCost:  current.RepairCost.Decimal,
		}
		if current.CompletedAt != nil {
			f.CompletedAt = *current.CompletedAt
		}
		if patch.RepairCost != nil {
			f.RepairCost = *patch.RepairCost
		}
		if patch.DeliveryDate != nil {
			f.DeliveredAt = patch.DeliveryDate
		}
		if d := trimPtr(patch.Diagnosis); d != nil && *d != "" {
			f.Diagnosis = d
		}

		return tx.Tickets().Finalize(ctx, id, f)
	})
	if err != nil {
		return nil, err
	}
	return s.afterFinalize(ctx, id, f)
}

func (s *ticketService) afterFinalize(ctx context.Context, id string, f repository.Finalization) (*models.TicketDetail, error) {
	ticket, err := s.cfg.Store.Tickets().FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload finalized ticket")
	}

	s.cfg.Logger.WithFields(logrus.Fields{
		"ticket_id": id,
		"cost":      f.RepairCost.String(),
	}).Info("Ticket delivered")

	publish(ctx, s.cfg, messaging.Event{
		Type:       messaging.EventTicketDelivered,
		Subject:    id,
		OccurredAt: f.CompletedAt,
		Payload: TicketDelivered{
			TicketID:    id,
			Folio:       ticket.Folio,
			RepairCost:  f.RepairCost,
			CompletedAt: f.CompletedAt,
			DeliveredAt: f.DeliveredAt,
		},
	})
	return ticket, nil
}

func (s *ticketService) Delete(ctx context.Context, id string) error {
	if err := s.cfg.Store.Tickets().Delete(ctx, id); err != nil {
		return err
	}
	s.cfg.Logger.WithField("ticket_id", id).Info("Ticket deleted")
	return nil
}
