package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/milassets/backend/errs"
	"github.com/milassets/backend/models"
)

// Assets persists asset records. Base and role rules live in the handlers;
// this layer only knows about storage and the store-level unique index on
// serial numbers.
type Assets struct {
	db *gorm.DB
}

// NewAssets creates an asset repository over db.
func NewAssets(db *gorm.DB) *Assets {
	return &Assets{db: db}
}

// ListForActor returns every asset for admins, base-filtered assets for
// everyone else.
func (r *Assets) ListForActor(actor *models.User) ([]models.Asset, error) {
	query := r.db.Order("id ASC")
	if actor.Role != models.RoleAdmin {
		query = query.Where("base = ?", actor.Base)
	}
	var assets []models.Asset
	if err := query.Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// GetByID returns an asset by primary key.
func (r *Assets) GetByID(id uint) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &asset, nil
}

// Create persists a new asset. The unique index on serial_number catches
// collisions without a check-then-act race.
func (r *Assets) Create(asset *models.Asset) error {
	if err := r.db.Create(asset).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrDuplicate
		}
		return err
	}
	return nil
}

// Save writes back a modified asset.
func (r *Assets) Save(asset *models.Asset) error {
	if err := r.db.Save(asset).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrDuplicate
		}
		return err
	}
	return nil
}

// Delete removes an asset by id.
func (r *Assets) Delete(id uint) error {
	res := r.db.Delete(&models.Asset{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
