package recurring

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
)

// fakeRuleRepo is an in-memory RecurringRuleRepository enforcing the
// one-active-rule-per-signature constraint the real store carries.
type fakeRuleRepo struct {
	mu    sync.Mutex
	rules map[uuid.UUID]*entity.RecurringRule
}

func newFakeRuleRepo() *fakeRuleRepo {
	return &fakeRuleRepo{rules: make(map[uuid.UUID]*entity.RecurringRule)}
}

func (r *fakeRuleRepo) Create(_ context.Context, rule *entity.RecurringRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rules {
		if existing.Active && rule.Active &&
			existing.UserID == rule.UserID && existing.Signature == rule.Signature {
			return domainerror.ErrDuplicateKey
		}
	}
	copied := *rule
	r.rules[rule.ID] = &copied
	return nil
}

func (r *fakeRuleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.RecurringRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.rules[id]
	if !ok {
		return nil, domainerror.ErrRecurringRuleNotFound
	}
	copied := *rule
	return &copied, nil
}

func (r *fakeRuleRepo) FindActiveBySignature(_ context.Context, userID uuid.UUID, signature string) (*entity.RecurringRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rule := range r.rules {
		if rule.Active && rule.UserID == userID && rule.Signature == signature {
			copied := *rule
			return &copied, nil
		}
	}
	return nil, domainerror.ErrRecurringRuleNotFound
}

func (r *fakeRuleRepo) FindActiveByUser(_ context.Context, userID uuid.UUID) ([]*entity.RecurringRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.RecurringRule
	for _, rule := range r.rules {
		if rule.Active && rule.UserID == userID {
			copied := *rule
			out = append(out, &copied)
		}
	}
	sortRules(out)
	return out, nil
}

func (r *fakeRuleRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.RecurringRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.RecurringRule
	for _, rule := range r.rules {
		if rule.UserID == userID {
			copied := *rule
			out = append(out, &copied)
		}
	}
	sortRules(out)
	return out, nil
}

func (r *fakeRuleRepo) DeactivateDuplicates(_ context.Context, userID uuid.UUID, signature string, keepID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, rule := range r.rules {
		if rule.Active && rule.UserID == userID && rule.Signature == signature && rule.ID != keepID {
			rule.Active = false
			count++
		}
	}
	return count, nil
}

func (r *fakeRuleRepo) Update(_ context.Context, rule *entity.RecurringRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rules[rule.ID]; !ok {
		return domainerror.ErrRecurringRuleNotFound
	}
	copied := *rule
	r.rules[rule.ID] = &copied
	return nil
}

func (r *fakeRuleRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rules[id]; !ok {
		return domainerror.ErrRecurringRuleNotFound
	}
	delete(r.rules, id)
	return nil
}

func (r *fakeRuleRepo) FindActiveOwners(_ context.Context) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, rule := range r.rules {
		if rule.Active && !seen[rule.UserID] {
			seen[rule.UserID] = true
			out = append(out, rule.UserID)
		}
	}
	return out, nil
}

func sortRules(rules []*entity.RecurringRule) {
	sort.Slice(rules, func(i, j int) bool {
		if !rules[i].CreatedAt.Equal(rules[j].CreatedAt) {
			return rules[i].CreatedAt.Before(rules[j].CreatedAt)
		}
		return rules[i].ID.String() < rules[j].ID.String()
	})
}

// fakeInstanceRepo is an in-memory GeneratedInstanceRepository keyed by the
// instance unique key, so duplicate writes collide exactly like the real store.
type fakeInstanceRepo struct {
	mu        sync.Mutex
	instances map[string]*entity.GeneratedInstance
}

func newFakeInstanceRepo() *fakeInstanceRepo {
	return &fakeInstanceRepo{instances: make(map[string]*entity.GeneratedInstance)}
}

func (r *fakeInstanceRepo) Create(_ context.Context, instance *entity.GeneratedInstance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.instances[instance.UniqueKey]; ok {
		return domainerror.ErrDuplicateKey
	}
	copied := *instance
	r.instances[instance.UniqueKey] = &copied
	return nil
}

func (r *fakeInstanceRepo) FindByKey(_ context.Context, ruleID uuid.UUID, date time.Time) (*entity.GeneratedInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	instance, ok := r.instances[entity.InstanceKey(ruleID, date)]
	if !ok {
		return nil, domainerror.ErrGeneratedInstanceNotFound
	}
	copied := *instance
	return &copied, nil
}

func (r *fakeInstanceRepo) FindInWindow(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.GeneratedInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.GeneratedInstance
	for _, instance := range r.instances {
		if instance.UserID != userID {
			continue
		}
		if instance.Date.Before(start) || instance.Date.After(end) {
			continue
		}
		copied := *instance
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeInstanceRepo) DeleteByKey(_ context.Context, ruleID uuid.UUID, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := entity.InstanceKey(ruleID, date)
	if _, ok := r.instances[key]; !ok {
		return domainerror.ErrGeneratedInstanceNotFound
	}
	delete(r.instances, key)
	return nil
}

// fakeTransactionRepo is an in-memory TransactionRepository. failNext makes
// the next Create return the given error, to exercise partial-failure paths.
type fakeTransactionRepo struct {
	mu           sync.Mutex
	transactions map[uuid.UUID]*entity.Transaction
	failNext     error
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{transactions: make(map[uuid.UUID]*entity.Transaction)}
}

func (r *fakeTransactionRepo) Create(_ context.Context, transaction *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	copied := *transaction
	r.transactions[transaction.ID] = &copied
	return nil
}

func (r *fakeTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction, ok := r.transactions[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	copied := *transaction
	return &copied, nil
}

func (r *fakeTransactionRepo) FindByRecurringRule(_ context.Context, ruleID uuid.UUID) ([]*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Transaction
	for _, transaction := range r.transactions {
		if transaction.RecurringRuleID != nil && *transaction.RecurringRuleID == ruleID {
			copied := *transaction
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeTransactionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.transactions)
}
