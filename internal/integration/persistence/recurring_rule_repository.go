// Package persistence implements repository interfaces for database operations.
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

// recurringRuleRepository implements the adapter.RecurringRuleRepository interface.
type recurringRuleRepository struct {
	db *gorm.DB
}

// NewRecurringRuleRepository creates a new recurring rule repository instance.
func NewRecurringRuleRepository(db *gorm.DB) adapter.RecurringRuleRepository {
	return &recurringRuleRepository{
		db: db,
	}
}

// Create persists a new rule. An active-signature collision surfaces as
// domainerror.ErrDuplicateKey.
func (r *recurringRuleRepository) Create(ctx context.Context, rule *entity.RecurringRule) error {
	ruleModel := model.RecurringRuleFromEntity(rule)
	if err := r.db.WithContext(ctx).Create(ruleModel).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

// FindByID retrieves a rule by its ID.
func (r *recurringRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringRule, error) {
	var ruleModel model.RecurringRuleModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&ruleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecurringRuleNotFound
		}
		return nil, result.Error
	}
	return ruleModel.ToEntity(), nil
}

// FindActiveBySignature retrieves the active rule with the given signature for a user.
func (r *recurringRuleRepository) FindActiveBySignature(ctx context.Context, userID uuid.UUID, signature string) (*entity.RecurringRule, error) {
	var ruleModel model.RecurringRuleModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND signature = ? AND active = ?", userID, signature, true).
		First(&ruleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecurringRuleNotFound
		}
		return nil, result.Error
	}
	return ruleModel.ToEntity(), nil
}

// FindActiveByUser retrieves all active rules for a user.
func (r *recurringRuleRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringRule, error) {
	return r.findRules(ctx, r.db.WithContext(ctx).Where("user_id = ? AND active = ?", userID, true))
}

// FindByUser retrieves all rules for a user, active and inactive.
func (r *recurringRuleRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringRule, error) {
	return r.findRules(ctx, r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *recurringRuleRepository) findRules(ctx context.Context, query *gorm.DB) ([]*entity.RecurringRule, error) {
	var ruleModels []model.RecurringRuleModel
	result := query.Order("created_at ASC").Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rules := make([]*entity.RecurringRule, len(ruleModels))
	for i, rm := range ruleModels {
		rules[i] = rm.ToEntity()
	}
	return rules, nil
}

// DeactivateDuplicates deactivates every active rule sharing the signature except keepID.
func (r *recurringRuleRepository) DeactivateDuplicates(ctx context.Context, userID uuid.UUID, signature string, keepID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.RecurringRuleModel{}).
		Where("user_id = ? AND signature = ? AND active = ? AND id <> ?", userID, signature, true, keepID).
		Updates(map[string]interface{}{
			"active":           false,
			"active_signature": nil,
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Update persists changes to an existing rule.
func (r *recurringRuleRepository) Update(ctx context.Context, rule *entity.RecurringRule) error {
	ruleModel := model.RecurringRuleFromEntity(rule)
	// Save writes all fields, including a NULL active_signature when the rule
	// was deactivated.
	if err := r.db.WithContext(ctx).Save(ruleModel).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

// Delete hard-removes a rule.
func (r *recurringRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RecurringRuleModel{}, "id = ?", id).Error
}

// FindActiveOwners lists the distinct users owning at least one active rule.
func (r *recurringRuleRepository) FindActiveOwners(ctx context.Context) ([]uuid.UUID, error) {
	var owners []uuid.UUID
	result := r.db.WithContext(ctx).
		Model(&model.RecurringRuleModel{}).
		Where("active = ?", true).
		Distinct("user_id").
		Pluck("user_id", &owners)
	if result.Error != nil {
		return nil, result.Error
	}
	return owners, nil
}

// translateDuplicate maps gorm's translated unique-constraint error to the
// domain sentinel the use cases recover from.
func translateDuplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerror.ErrDuplicateKey
	}
	return err
}
