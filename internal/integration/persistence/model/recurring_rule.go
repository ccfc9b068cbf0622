// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/domain/entity"
)

// RecurringRuleModel represents the recurring_rules table in the database.
//
// ActiveSignature carries the rule's signature while the rule is active and
// is NULL otherwise. NULLs never collide in a unique index, which gives the
// "at most one active rule per (user, signature)" constraint without a
// partial index.
type RecurringRuleModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_rules_user_active_signature"`
	Frequency       string     `gorm:"type:varchar(10);not null"`
	Interval        int        `gorm:"not null"`
	StartDate       time.Time  `gorm:"type:date;not null"`
	EndDate         *time.Time `gorm:"type:date"`
	Signature       string     `gorm:"type:varchar(64);not null;index"`
	ActiveSignature *string    `gorm:"type:varchar(64);uniqueIndex:idx_rules_user_active_signature"`
	Active          bool       `gorm:"not null;default:true"`

	// Template fields, flattened
	TemplateType     string          `gorm:"type:varchar(10);not null"`
	TemplateAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TemplateCurrency string          `gorm:"type:varchar(3);not null"`
	CategoryID       *uuid.UUID      `gorm:"type:uuid"`
	AccountID        *uuid.UUID      `gorm:"type:uuid"`
	ToAccountID      *uuid.UUID      `gorm:"type:uuid"`
	Note             string          `gorm:"type:text"`
	Tags             []string        `gorm:"serializer:json"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the RecurringRuleModel.
func (RecurringRuleModel) TableName() string {
	return "recurring_rules"
}

// ToEntity converts a RecurringRuleModel to a domain RecurringRule entity.
func (m *RecurringRuleModel) ToEntity() *entity.RecurringRule {
	return &entity.RecurringRule{
		ID:        m.ID,
		UserID:    m.UserID,
		Frequency: entity.Frequency(m.Frequency),
		Interval:  m.Interval,
		StartDate: entity.DateOnly(m.StartDate),
		EndDate:   dateOnlyPtr(m.EndDate),
		Template: entity.TransactionTemplate{
			Type:        entity.TransactionType(m.TemplateType),
			Amount:      m.TemplateAmount,
			Currency:    m.TemplateCurrency,
			CategoryID:  m.CategoryID,
			AccountID:   m.AccountID,
			ToAccountID: m.ToAccountID,
			Note:        m.Note,
			Tags:        m.Tags,
		},
		Signature: m.Signature,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// RecurringRuleFromEntity creates a RecurringRuleModel from a domain entity.
func RecurringRuleFromEntity(rule *entity.RecurringRule) *RecurringRuleModel {
	m := &RecurringRuleModel{
		ID:               rule.ID,
		UserID:           rule.UserID,
		Frequency:        string(rule.Frequency),
		Interval:         rule.Interval,
		StartDate:        rule.StartDate,
		EndDate:          rule.EndDate,
		Signature:        rule.Signature,
		Active:           rule.Active,
		TemplateType:     string(rule.Template.Type),
		TemplateAmount:   rule.Template.Amount,
		TemplateCurrency: rule.Template.Currency,
		CategoryID:       rule.Template.CategoryID,
		AccountID:        rule.Template.AccountID,
		ToAccountID:      rule.Template.ToAccountID,
		Note:             rule.Template.Note,
		Tags:             rule.Template.Tags,
		CreatedAt:        rule.CreatedAt,
		UpdatedAt:        rule.UpdatedAt,
	}
	if rule.Active {
		signature := rule.Signature
		m.ActiveSignature = &signature
	}
	return m
}

func dateOnlyPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	day := entity.DateOnly(*t)
	return &day
}
