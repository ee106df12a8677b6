package repository

import (
	"context"

	"github.com/IDS-Mandujano/electronica-back/internal/database"
	"github.com/IDS-Mandujano/electronica-back/internal/models"

	"github.com/pkg/errors"
)

// PartRepository persists inventory parts
type PartRepository interface {
	List(ctx context.Context) ([]models.Part, error)
	FindByID(ctx context.Context, id string) (*models.Part, error)
	Create(ctx context.Context, part *models.Part) error
	Update(ctx context.Context, part *models.Part) error
	Delete(ctx context.Context, id string) error
}

type partRepository struct {
	db database.DB
}

// NewPartRepository creates a new part repository
func NewPartRepository(db database.DB) PartRepository {
	return &partRepository{db: db}
}

func (r *partRepository) List(ctx context.Context) ([]models.Part, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return nil, err
	}

	parts := []models.Part{}
	if err := db.Order("nombre_pieza ASC").Find(&parts).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list parts")
	}
	return parts, nil
}

func (r *partRepository) FindByID(ctx context.Context, id string) (*models.Part, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var part models.Part
	if err := db.Where("id = ?", id).Take(&part).Error; err != nil {
		if IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get part")
	}
	return &part, nil
}

func (r *partRepository) Create(ctx context.Context, part *models.Part) error {
	db, err := conn(ctx, r.db)
	if err != nil {
		return err
	}

	if err := db.Create(part).Error; err != nil {
		return errors.Wrap(err, "failed to create part")
	}
	return nil
}

// Update writes every column of part, zero values included
func (r *partRepository) Update(ctx context.Context, part *models.Part) error {
	db, err := conn(ctx, r.db)
	if err != nil {
		return err
	}

	result := db.Model(&models.Part{}).
		Where("id = ?", part.ID).
		Select("nombre_pieza", "categoria", "stock_actual", "stock_minimo", "unidad_medida", "costo_unitario").
		Updates(part)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update part")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *partRepository) Delete(ctx context.Context, id string) error {
	db, err := conn(ctx, r.db)
	if err != nil {
		return err
	}

	result := db.Where("id = ?", id).Delete(&models.Part{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete part")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
