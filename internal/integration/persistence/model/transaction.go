package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finledger/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type        string          `gorm:"type:varchar(10);not null;index"`
	Currency    string          `gorm:"type:varchar(3);not null"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	AccountID   *uuid.UUID      `gorm:"type:uuid;index"`
	ToAccountID *uuid.UUID      `gorm:"type:uuid"`
	Notes       string          `gorm:"type:text"`
	Tags        []string        `gorm:"serializer:json"`
	Status      string          `gorm:"type:varchar(10);not null;index"`

	RecurringRuleID *uuid.UUID `gorm:"type:uuid;index"`
	Fingerprint     *string    `gorm:"type:varchar(128);uniqueIndex"`

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Transaction{
		ID:              m.ID,
		UserID:          m.UserID,
		Date:            entity.DateOnly(m.Date),
		Description:     m.Description,
		Amount:          m.Amount,
		Type:            entity.TransactionType(m.Type),
		Currency:        m.Currency,
		CategoryID:      m.CategoryID,
		AccountID:       m.AccountID,
		ToAccountID:     m.ToAccountID,
		Notes:           m.Notes,
		Tags:            m.Tags,
		Status:          entity.TransactionStatus(m.Status),
		RecurringRuleID: m.RecurringRuleID,
		Fingerprint:     m.Fingerprint,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		DeletedAt:       deletedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var deletedAt gorm.DeletedAt
	if transaction.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *transaction.DeletedAt, Valid: true}
	}

	return &TransactionModel{
		ID:              transaction.ID,
		UserID:          transaction.UserID,
		Date:            transaction.Date,
		Description:     transaction.Description,
		Amount:          transaction.Amount,
		Type:            string(transaction.Type),
		Currency:        transaction.Currency,
		CategoryID:      transaction.CategoryID,
		AccountID:       transaction.AccountID,
		ToAccountID:     transaction.ToAccountID,
		Notes:           transaction.Notes,
		Tags:            transaction.Tags,
		Status:          string(transaction.Status),
		RecurringRuleID: transaction.RecurringRuleID,
		Fingerprint:     transaction.Fingerprint,
		CreatedAt:       transaction.CreatedAt,
		UpdatedAt:       transaction.UpdatedAt,
		DeletedAt:       deletedAt,
	}
}
