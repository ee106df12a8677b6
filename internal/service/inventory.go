package service

import (
	"context"
	"strings"

	"github.com/IDS-Mandujano/electronica-back/internal/messaging"
	"github.com/IDS-Mandujano/electronica-back/internal/models"
	"github.com/IDS-Mandujano/electronica-back/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// PartInput carries the part fields of a create or update. Nil fields are
// absent from the request.
type PartInput struct {
	Name         *string
	Category     *string
	Stock        *int `validate:"omitempty,gte=0"`
	MinimumStock *int `validate:"omitempty,gte=0"`
	Unit         *string
	UnitCost     *decimal.Decimal
}

// UseMaterialRequest consumes part stock for a ticket
type UseMaterialRequest struct {
	PartID   string `validate:"required"`
	TicketID string `validate:"required"`
	Quantity int    `validate:"gt=0"`
}

// CreateSaleCardRequest adds a board to the sale stock
type CreateSaleCardRequest struct {
	BrandID     int
	Model       string `validate:"required"`
	Description string
	SalePrice   *decimal.Decimal
}

// PartLowStock is the payload of the refaccion.stock_bajo event
type PartLowStock struct {
	PartID       string `json:"refaccionId"`
	Name         string `json:"nombrePieza"`
	Stock        int    `json:"stockActual"`
	MinimumStock int    `json:"stockMinimo"`
}

// InventoryService manages spare parts, their consumption by tickets and
// the boards held for sale
type InventoryService interface {
	ListParts(ctx context.Context) ([]models.Part, error)
	GetPart(ctx context.Context, id string) (*models.Part, error)
	CreatePart(ctx context.Context, in PartInput) (*models.Part, error)
	UpdatePart(ctx context.Context, id string, in PartInput) (*models.Part, error)
	DeletePart(ctx context.Context, id string) error

	UseMaterial(ctx context.Context, req UseMaterialRequest) (*models.Part, error)
	ListTicketMaterials(ctx context.Context, ticketID string) ([]models.MaterialUsageDetail, error)

	ListSaleCards(ctx context.Context) ([]models.SaleCard, error)
	CreateSaleCard(ctx context.Context, req CreateSaleCardRequest) (*models.SaleCard, error)
}

type inventoryService struct {
	cfg Config
}

// NewInventoryService creates a new inventory service
func NewInventoryService(cfg Config) InventoryService {
	return &inventoryService{cfg: cfg.withDefaults()}
}

func (s *inventoryService) ListParts(ctx context.Context) ([]models.Part, error) {
	return s.cfg.Store.Parts().List(ctx)
}

func (s *inventoryService) GetPart(ctx context.Context, id string) (*models.Part, error) {
	return s.cfg.Store.Parts().FindByID(ctx, id)
}

func (s *inventoryService) CreatePart(ctx context.Context, in PartInput) (*models.Part, error) {
	in.Name = trimPtr(in.Name)
	in.Category = trimPtr(in.Category)
	if in.Name == nil || *in.Name == "" || in.Category == nil || *in.Category == "" {
		return nil, &ValidationError{Message: "Datos inválidos"}
	}
	if err := validateRequest(in, "Datos inválidos"); err != nil {
		return nil, err
	}

	part := &models.Part{ID: uuid.NewString()}
	applyPartInput(part, in)
	if err := s.cfg.Store.Parts().Create(ctx, part); err != nil {
		return nil, err
	}

	s.cfg.Logger.WithFields(logrus.Fields{
		"part_id": part.ID,
		"stock":   part.Stock,
	}).Info("Part created")
	return part, nil
}

func (s *inventoryService) UpdatePart(ctx context.Context, id string, in PartInput) (*models.Part, error) {
	in.Name = trimPtr(in.Name)
	in.Category = trimPtr(in.Category)
	if (in.Name != nil && *in.Name == "") || (in.Category != nil && *in.Category == "") {
		return nil, &ValidationError{Message: "Datos inválidos"}
	}
	if err := validateRequest(in, "Datos inválidos"); err != nil {
		return nil, err
	}

	var part *models.Part
	err := s.cfg.Store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		current, err := tx.Parts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		applyPartInput(current, in)
		if err := tx.Parts().Update(ctx, current); err != nil {
			return err
		}
		part = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return part, nil
}

func applyPartInput(part *models.Part, in PartInput) {
	if in.Name != nil {
		part.Name = *in.Name
	}
	if in.Category != nil {
		part.Category = *in.Category
	}
	if in.Stock != nil {
		part.Stock = *in.Stock
	}
	if in.MinimumStock != nil {
		part.MinimumStock = *in.MinimumStock
	}
	if in.Unit != nil {
		part.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.UnitCost != nil {
		part.UnitCost = *in.UnitCost
	}
}

func (s *inventoryService) DeletePart(ctx context.Context, id string) error {
	if err := s.cfg.Store.Parts().Delete(ctx, id); err != nil {
		return err
	}
	s.cfg.Logger.WithField("part_id", id).Info("Part deleted")
	return nil
}

// UseMaterial checks stock, records the usage and deducts stock in one
// transaction. The part row is locked from the check until commit.
func (s *inventoryService) UseMaterial(ctx context.Context, req UseMaterialRequest) (*models.Part, error) {
	req.PartID = strings.TrimSpace(req.PartID)
	req.TicketID = strings.TrimSpace(req.TicketID)
	if err := validateRequest(req, "Datos inválidos"); err != nil {
		return nil, err
	}

	var part *models.Part
	err := s.cfg.Store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		ledger := tx.MaterialUsages()

		ok, err := ledger.CheckStock(ctx, req.PartID, req.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientStock
		}

		if err := ledger.RecordUsage(ctx, req.TicketID, req.PartID, req.Quantity, s.cfg.Clock()); err != nil {
			return err
		}
		if err := ledger.DeductStock(ctx, req.PartID, req.Quantity); err != nil {
			return err
		}

		part, err = tx.Parts().FindByID(ctx, req.PartID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log := s.cfg.Logger.WithFields(logrus.Fields{
		"part_id":   part.ID,
		"ticket_id": req.TicketID,
		"quantity":  req.Quantity,
		"remaining": part.Stock,
	})
	log.Info("Material used")

	if part.LowStock() {
		log.Warn("Part at or below minimum stock")
		publish(ctx, s.cfg, messaging.Event{
			Type:       messaging.EventPartLowStock,
			Subject:    part.ID,
			OccurredAt: s.cfg.Clock(),
			Payload: PartLowStock{
				PartID:       part.ID,
				Name:         part.Name,
				Stock:        part.Stock,
				MinimumStock: part.MinimumStock,
			},
		})
	}
	return part, nil
}

func (s *inventoryService) ListTicketMaterials(ctx context.Context, ticketID string) ([]models.MaterialUsageDetail, error) {
	return s.cfg.Store.MaterialUsages().ListByTicket(ctx, ticketID)
}

func (s *inventoryService) ListSaleCards(ctx context.Context) ([]models.SaleCard, error) {
	return s.cfg.Store.SaleCards().List(ctx)
}

func (s *inventoryService) CreateSaleCard(ctx context.Context, req CreateSaleCardRequest) (*models.SaleCard, error) {
	req.Model = strings.TrimSpace(req.Model)
	if err := validateRequest(req, "Datos inválidos"); err != nil {
		return nil, err
	}
	if req.SalePrice == nil || req.SalePrice.IsNegative() {
		return nil, &ValidationError{Message: "Datos inválidos"}
	}

	card := &models.SaleCard{
		ID:          uuid.NewString(),
		BrandID:     req.BrandID,
		Model:       req.Model,
		Description: strings.TrimSpace(req.Description),
		SalePrice:   *req.SalePrice,
		Status:      models.SaleCardAvailable,
	}
	if err := s.cfg.Store.SaleCards().Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}
