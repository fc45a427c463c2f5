package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parkstack/service-parking/internal/domain"
	lotDomain "github.com/parkstack/service-parking/internal/domain/lot"
)

// LotModel is the GORM persistence model for the parking_lots table.
type LotModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name              string    `gorm:"type:varchar(255);not null"`
	Location          string    `gorm:"type:varchar(255);not null"`
	TotalCapacity     int       `gorm:"not null;check:total_capacity >= 0"`
	AvailableCapacity int       `gorm:"not null;check:available_capacity >= 0"`
	CreatedAt         time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt         time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (LotModel) TableName() string {
	return "parking_lots"
}

// LotRepositoryImpl is the GORM-based implementation of LotRepository.
type LotRepositoryImpl struct {
	db *gorm.DB
}

// NewLotRepository creates a new GORM-based lot repository.
func NewLotRepository(db *gorm.DB) *LotRepositoryImpl {
	return &LotRepositoryImpl{db: db}
}

// FindByID retrieves a lot by its unique ID.
func (r *LotRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*lotDomain.Lot, error) {
	var model LotModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("parking lot", id.String())
		}
		return nil, err
	}
	return lotToDomain(&model), nil
}

// FindAll retrieves all lots, newest first.
func (r *LotRepositoryImpl) FindAll(ctx context.Context) ([]*lotDomain.Lot, error) {
	var models []LotModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	lots := make([]*lotDomain.Lot, len(models))
	for i := range models {
		lots[i] = lotToDomain(&models[i])
	}
	return lots, nil
}

// Save persists a new lot aggregate.
func (r *LotRepositoryImpl) Save(ctx context.Context, l *lotDomain.Lot) error {
	return r.db.WithContext(ctx).Create(lotToModel(l)).Error
}

// Update persists administrative edits to an existing lot.
func (r *LotRepositoryImpl) Update(ctx context.Context, l *lotDomain.Lot) error {
	model := lotToModel(l)
	result := r.db.WithContext(ctx).
		Model(&LotModel{}).
		Where("id = ?", model.ID).
		Select("Name", "Location", "TotalCapacity", "AvailableCapacity", "UpdatedAt").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("parking lot", model.ID.String())
	}
	return nil
}

// Delete removes a lot.
func (r *LotRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&LotModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("parking lot", id.String())
	}
	return nil
}

// lotToDomain maps a LotModel to the domain Lot aggregate.
func lotToDomain(model *LotModel) *lotDomain.Lot {
	return lotDomain.Reconstitute(
		model.ID,
		model.Name,
		model.Location,
		model.TotalCapacity,
		model.AvailableCapacity,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// lotToModel maps a domain Lot aggregate to a LotModel for persistence.
func lotToModel(l *lotDomain.Lot) *LotModel {
	return &LotModel{
		ID:                l.ID(),
		Name:              l.Name(),
		Location:          l.Location(),
		TotalCapacity:     l.TotalCapacity(),
		AvailableCapacity: l.AvailableCapacity(),
		CreatedAt:         l.CreatedAt(),
		UpdatedAt:         l.UpdatedAt(),
	}
}
