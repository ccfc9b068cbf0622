package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestTransactionTemplate_Normalize(t *testing.T) {
	template := TransactionTemplate{
		Type:     TransactionTypeExpense,
		Amount:   decimal.NewFromFloat(9.99),
		Currency: "eur",
		Note:     "  Streaming  ",
		Tags:     []string{"media", "media", " monthly ", ""},
	}
	template.Normalize()

	if template.Currency != "EUR" {
		t.Errorf("expected currency uppercased, got %q", template.Currency)
	}
	if template.Note != "Streaming" {
		t.Errorf("expected note trimmed, got %q", template.Note)
	}
	expected := []string{"media", "monthly"}
	if len(template.Tags) != len(expected) {
		t.Fatalf("expected tags %v, got %v", expected, template.Tags)
	}
	for i := range expected {
		if template.Tags[i] != expected[i] {
			t.Errorf("expected tags %v, got %v", expected, template.Tags)
			break
		}
	}
}

func TestInstanceKey(t *testing.T) {
	ruleID := uuid.MustParse("7f3f9a3c-1de9-4b5a-8a0f-0f6e3a2b1c4d")
	noon := time.Date(2024, time.March, 15, 12, 45, 0, 0, time.UTC)

	key := InstanceKey(ruleID, noon)
	if key != "7f3f9a3c-1de9-4b5a-8a0f-0f6e3a2b1c4d_2024-03-15" {
		t.Errorf("unexpected key %q", key)
	}
	if key != InstanceKey(ruleID, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected the key to be independent of time of day")
	}
}

func TestNewRecurringRule_TruncatesDates(t *testing.T) {
	start := time.Date(2024, time.January, 31, 18, 30, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 30, 6, 0, 0, 0, time.UTC)

	rule := NewRecurringRule(uuid.New(), FrequencyMonthly, 1, start, &end, TransactionTemplate{
		Type:     TransactionTypeExpense,
		Amount:   decimal.NewFromFloat(1),
		Currency: "EUR",
	}, "sig")

	if !rule.StartDate.Equal(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected start truncated to midnight, got %s", rule.StartDate)
	}
	if rule.EndDate == nil || !rule.EndDate.Equal(time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected end truncated to midnight")
	}
	if !rule.Active {
		t.Error("expected a new rule to be active")
	}
}
