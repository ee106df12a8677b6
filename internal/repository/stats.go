package repository

import (
	"context"
	"time"

	"github.com/IDS-Mandujano/electronica-back/internal/database"
	"github.com/IDS-Mandujano/electronica-back/internal/models"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// StatsRepository aggregates delivered tickets over [from, to)
type StatsRepository interface {
	Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	CountDelivered(ctx context.Context, from, to time.Time) (int64, error)
}

type statsRepository struct {
	db database.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db database.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return decimal.Zero, err
	}

	var total decimal.Decimal
	err = db.Model(&models.Ticket{}).
		Select("COALESCE(SUM(costo_reparacion), 0)").
		Where("estado = ? AND fecha_finalizacion >= ? AND fecha_finalizacion < ?", models.TicketStatusDelivered, from, to).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to sum revenue")
	}
	return total, nil
}

func (r *statsRepository) CountDelivered(ctx context.Context, from, to time.Time) (int64, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return 0, err
	}

	var count int64
	err = db.Model(&models.Ticket{}).
		Where("estado = ? AND fecha_finalizacion >= ? AND fecha_finalizacion < ?", models.TicketStatusDelivered, from, to).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count delivered tickets")
	}
	return count, nil
}
