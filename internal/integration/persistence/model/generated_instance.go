package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/domain/entity"
)

// GeneratedInstanceModel represents the generated_instances table. The unique
// index on UniqueKey is the engine's idempotency guarantee.
type GeneratedInstanceModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RuleID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Date          time.Time  `gorm:"type:date;not null;index"`
	UniqueKey     string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	Outcome       string     `gorm:"type:varchar(10);not null"`
	TransactionID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GeneratedInstanceModel.
func (GeneratedInstanceModel) TableName() string {
	return "generated_instances"
}

// ToEntity converts a GeneratedInstanceModel to a domain GeneratedInstance entity.
func (m *GeneratedInstanceModel) ToEntity() *entity.GeneratedInstance {
	return &entity.GeneratedInstance{
		ID:            m.ID,
		RuleID:        m.RuleID,
		UserID:        m.UserID,
		Date:          entity.DateOnly(m.Date),
		UniqueKey:     m.UniqueKey,
		Outcome:       entity.InstanceOutcome(m.Outcome),
		TransactionID: m.TransactionID,
		CreatedAt:     m.CreatedAt,
	}
}

// GeneratedInstanceFromEntity creates a GeneratedInstanceModel from a domain entity.
func GeneratedInstanceFromEntity(instance *entity.GeneratedInstance) *GeneratedInstanceModel {
	return &GeneratedInstanceModel{
		ID:            instance.ID,
		RuleID:        instance.RuleID,
		UserID:        instance.UserID,
		Date:          instance.Date,
		UniqueKey:     instance.UniqueKey,
		Outcome:       string(instance.Outcome),
		TransactionID: instance.TransactionID,
		CreatedAt:     instance.CreatedAt,
	}
}
