package repository

import (
	"context"

	"github.com/IDS-Mandujano/electronica-back/internal/database"
	"github.com/IDS-Mandujano/electronica-back/internal/models"

	"github.com/pkg/errors"
)

// SaleCardRepository persists boards offered for sale
type SaleCardRepository interface {
	List(ctx context.Context) ([]models.SaleCard, error)
	Create(ctx context.Context, card *models.SaleCard) error
}

type saleCardRepository struct {
	db database.DB
}

// NewSaleCardRepository creates a new sale card repository
func NewSaleCardRepository(db database.DB) SaleCardRepository {
	return &saleCardRepository{db: db}
}

func (r *saleCardRepository) List(ctx context.Context) ([]models.SaleCard, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return nil, err
	}

	cards := []models.SaleCard{}
	if err := db.Order("modelo ASC").Find(&cards).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list sale cards")
	}
	return cards, nil
}

func (r *saleCardRepository) Create(ctx context.Context, card *models.SaleCard) error {
	db, err := conn(ctx, r.db)
	if err != nil {
		return err
	}

	if err := db.Create(card).Error; err != nil {
		return errors.Wrap(err, "failed to create sale card")
	}
	return nil
}
