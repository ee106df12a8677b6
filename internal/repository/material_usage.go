package repository

import (
	"context"
	"time"

	"github.com/IDS-Mandujano/electronica-back/internal/database"
	"github.com/IDS-Mandujano/electronica-back/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaterialUsageRepository is the ledger of parts consumed by tickets.
// Stock deduction lives here so every stock decrement goes through one
// guarded statement.
type MaterialUsageRepository interface {
	// CheckStock reports whether the part exists and has at least qty
	// units. Inside a transaction the part row stays locked until commit.
	CheckStock(ctx context.Context, partID string, qty int) (bool, error)
	// RecordUsage inserts the (ticket, part) row or adds qty to it.
	RecordUsage(ctx context.Context, ticketID, partID string, qty int, usedAt time.Time) error
	// DeductStock subtracts qty from the part's stock, refusing to go
	// below zero.
	DeductStock(ctx context.Context, partID string, qty int) error
	ListByTicket(ctx context.Context, ticketID string) ([]models.MaterialUsageDetail, error)
}

type materialUsageRepository struct {
	db database.DB
}

// NewMaterialUsageRepository creates a new material usage repository
func NewMaterialUsageRepository(db database.DB) MaterialUsageRepository {
	return &materialUsageRepository{db: db}
}

func (r *materialUsageRepository) CheckStock(ctx context.Context, partID string, qty int) (bool, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return false, err
	}

	var part models.Part
	err = db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "stock_actual").
		Where("id = ?", partID).
		Take(&part).Error
	if err != nil {
		if IsRecordNotFoundError(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "failed to check stock")
	}
	return part.Stock >= qty, nil
}

func (r *materialUsageRepository) RecordUsage(ctx context.Context, ticketID, partID string, qty int, usedAt time.Time) error {
	db, err := conn(ctx, r.db)
	if err != nil {
		return err
	}

	usage := models.MaterialUsage{
		ID:           uuid.NewString(),
		TicketID:     ticketID,
		PartID:       partID,
		QuantityUsed: qty,
		UsedAt:       usedAt,
	}
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "servicio_id"}, {Name: "material_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"cantidad_usada": gorm.Expr("servicios_materiales.cantidad_usada + ?", qty),
		}),
	}).Create(&usage).Error
	if err != nil {
		return errors.Wrap(err, "failed to record material usage")
	}
	return nil
}

func (r *materialUsageRepository) DeductStock(ctx context.Context, partID string, qty int) error {
	db, err := conn(ctx, r.db)
	if err != nil {
		return err
	}

	result := db.Model(&models.Part{}).
		Where("id = ? AND stock_actual >= ?", partID, qty).
		UpdateColumn("stock_actual", gorm.Expr("stock_actual - ?", qty))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to deduct stock")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&models.Part{}).Where("id = ?", partID).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to deduct stock")
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrInsufficientStock
}

func (r *materialUsageRepository) ListByTicket(ctx context.Context, ticketID string) ([]models.MaterialUsageDetail, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return nil, err
	}

	rows := []models.MaterialUsageDetail{}
	err = db.Table("servicios_materiales sm").
		Select(`sm.id, sm.servicio_id, sm.material_id,
			COALESCE(p.nombre_pieza, '') AS nombre_pieza,
			COALESCE(p.categoria, '') AS categoria,
			sm.cantidad_usada, sm.fecha_uso`).
		Joins("LEFT JOIN inventario_refacciones p ON p.id = sm.material_id").
		Where("sm.servicio_id = ?", ticketID).
		Order("sm.fecha_uso ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ticket materials")
	}
	return rows, nil
}
