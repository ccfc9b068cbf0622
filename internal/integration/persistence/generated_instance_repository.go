package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
	"github.com/finledger/backend/internal/integration/persistence/model"
)

// generatedInstanceRepository implements the adapter.GeneratedInstanceRepository interface.
type generatedInstanceRepository struct {
	db *gorm.DB
}

// NewGeneratedInstanceRepository creates a new generated instance repository instance.
func NewGeneratedInstanceRepository(db *gorm.DB) adapter.GeneratedInstanceRepository {
	return &generatedInstanceRepository{
		db: db,
	}
}

// Create persists a new instance record. A unique-key collision surfaces as
// domainerror.ErrDuplicateKey.
func (r *generatedInstanceRepository) Create(ctx context.Context, instance *entity.GeneratedInstance) error {
	instanceModel := model.GeneratedInstanceFromEntity(instance)
	if err := r.db.WithContext(ctx).Create(instanceModel).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

// FindByKey retrieves the instance for a (rule, date) pair.
func (r *generatedInstanceRepository) FindByKey(ctx context.Context, ruleID uuid.UUID, date time.Time) (*entity.GeneratedInstance, error) {
	var instanceModel model.GeneratedInstanceModel
	result := r.db.WithContext(ctx).
		Where("unique_key = ?", entity.InstanceKey(ruleID, date)).
		First(&instanceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGeneratedInstanceNotFound
		}
		return nil, result.Error
	}
	return instanceModel.ToEntity(), nil
}

// FindInWindow retrieves all instances for a user with dates in [start, end].
func (r *generatedInstanceRepository) FindInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.GeneratedInstance, error) {
	var instanceModels []model.GeneratedInstanceModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, entity.DateOnly(start), entity.DateOnly(end)).
		Order("date ASC").
		Find(&instanceModels)
	if result.Error != nil {
		return nil, result.Error
	}

	instances := make([]*entity.GeneratedInstance, len(instanceModels))
	for i, im := range instanceModels {
		instances[i] = im.ToEntity()
	}
	return instances, nil
}

// DeleteByKey removes the instance for a (rule, date) pair.
func (r *generatedInstanceRepository) DeleteByKey(ctx context.Context, ruleID uuid.UUID, date time.Time) error {
	return r.db.WithContext(ctx).
		Delete(&model.GeneratedInstanceModel{}, "unique_key = ?", entity.InstanceKey(ruleID, date)).
		Error
}
