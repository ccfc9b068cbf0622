package dto

import (
	"time"

	"github.com/finledger/backend/internal/application/usecase/recurring"
)

// TransactionTemplateRequest represents a transaction template in API requests.
type TransactionTemplateRequest struct {
	Type        string   `json:"type" binding:"required,oneof=expense income transfer"`
	Amount      string   `json:"amount" binding:"required"`
	Currency    string   `json:"currency" binding:"required,len=3"`
	CategoryID  *string  `json:"category_id,omitempty"`
	AccountID   *string  `json:"account_id,omitempty"`
	ToAccountID *string  `json:"to_account_id,omitempty"`
	Note        string   `json:"note,omitempty" binding:"omitempty,max=1000"`
	Tags        []string `json:"tags,omitempty"`
}

// TransactionTemplatePatchRequest represents a partial template in update requests.
type TransactionTemplatePatchRequest struct {
	Type        *string  `json:"type,omitempty" binding:"omitempty,oneof=expense income transfer"`
	Amount      *string  `json:"amount,omitempty"`
	Currency    *string  `json:"currency,omitempty" binding:"omitempty,len=3"`
	CategoryID  *string  `json:"category_id,omitempty"`
	AccountID   *string  `json:"account_id,omitempty"`
	ToAccountID *string  `json:"to_account_id,omitempty"`
	Note        *string  `json:"note,omitempty" binding:"omitempty,max=1000"`
	Tags        []string `json:"tags,omitempty"`
}

// CreateRecurringRuleRequest represents the request body for rule creation.
type CreateRecurringRuleRequest struct {
	Frequency string                     `json:"frequency" binding:"required,oneof=weekly monthly yearly"`
	Interval  int                        `json:"interval" binding:"required,min=1"`
	StartDate string                     `json:"start_date" binding:"required"`
	EndDate   *string                    `json:"end_date,omitempty"`
	Template  TransactionTemplateRequest `json:"template" binding:"required"`
}

// UpdateRecurringRuleRequest represents the request body for a rule update.
// An empty end_date string clears the end date, making the rule open-ended.
type UpdateRecurringRuleRequest struct {
	Frequency *string                          `json:"frequency,omitempty" binding:"omitempty,oneof=weekly monthly yearly"`
	Interval  *int                             `json:"interval,omitempty" binding:"omitempty,min=1"`
	StartDate *string                          `json:"start_date,omitempty"`
	EndDate   *string                          `json:"end_date,omitempty"`
	Active    *bool                            `json:"active,omitempty"`
	Template  *TransactionTemplatePatchRequest `json:"template,omitempty"`
}

// SplitRecurringRuleRequest represents the request body for a rule split.
type SplitRecurringRuleRequest struct {
	SplitDate string                     `json:"split_date" binding:"required"`
	Template  TransactionTemplateRequest `json:"template" binding:"required"`
}

// MaterializeOccurrenceRequest represents the request body for materializing
// one occurrence. The template override is optional.
type MaterializeOccurrenceRequest struct {
	Date     string                      `json:"date" binding:"required"`
	Template *TransactionTemplateRequest `json:"template,omitempty"`
}

// OccurrenceDateRequest represents the request body for ignore and undo-ignore.
type OccurrenceDateRequest struct {
	Date string `json:"date" binding:"required"`
}

// TransactionTemplateResponse represents a transaction template in API responses.
type TransactionTemplateResponse struct {
	Type        string   `json:"type"`
	Amount      string   `json:"amount"`
	Currency    string   `json:"currency"`
	CategoryID  *string  `json:"category_id,omitempty"`
	AccountID   *string  `json:"account_id,omitempty"`
	ToAccountID *string  `json:"to_account_id,omitempty"`
	Note        string   `json:"note,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// RecurringRuleResponse represents a recurring rule in API responses.
type RecurringRuleResponse struct {
	ID        string                      `json:"id"`
	UserID    string                      `json:"user_id"`
	Frequency string                      `json:"frequency"`
	Interval  int                         `json:"interval"`
	StartDate string                      `json:"start_date"`
	EndDate   *string                     `json:"end_date,omitempty"`
	Template  TransactionTemplateResponse `json:"template"`
	Active    bool                        `json:"active"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// ListRecurringRulesResponse represents the response for listing rules.
type ListRecurringRulesResponse struct {
	Rules []RecurringRuleResponse `json:"rules"`
}

// SplitRecurringRuleResponse represents the response of a rule split.
type SplitRecurringRuleResponse struct {
	Original RecurringRuleResponse `json:"original"`
	NewRule  RecurringRuleResponse `json:"new_rule"`
}

// PreviewItemResponse represents one previewed occurrence.
type PreviewItemResponse struct {
	RuleID   string                      `json:"rule_id"`
	Date     string                      `json:"date"`
	Template TransactionTemplateResponse `json:"template"`
	Status   string                      `json:"status"`
}

// PreviewResponse represents the response of a period preview.
type PreviewResponse struct {
	WindowStart string                `json:"window_start"`
	WindowEnd   string                `json:"window_end"`
	Items       []PreviewItemResponse `json:"items"`
}

// OccurrenceResultResponse represents the per-occurrence outcome of a run.
type OccurrenceResultResponse struct {
	RuleID        string  `json:"rule_id"`
	Date          string  `json:"date"`
	Outcome       string  `json:"outcome"`
	TransactionID *string `json:"transaction_id,omitempty"`
	Reason        string  `json:"reason,omitempty"`
}

// RunResponse represents the response of a generation run.
type RunResponse struct {
	Generated int                        `json:"generated"`
	Results   []OccurrenceResultResponse `json:"results"`
}

// MaterializeResponse represents the response of materializing one occurrence.
type MaterializeResponse struct {
	TransactionID string `json:"transaction_id"`
	RuleID        string `json:"rule_id"`
	Date          string `json:"date"`
}

// IgnoreOccurrenceResponse represents the response of ignoring an occurrence.
type IgnoreOccurrenceResponse struct {
	RuleID string `json:"rule_id"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

// ToRecurringRuleResponse maps a use-case rule output to its API response form.
func ToRecurringRuleResponse(rule *recurring.RuleOutput) RecurringRuleResponse {
	resp := RecurringRuleResponse{
		ID:        rule.ID.String(),
		UserID:    rule.UserID.String(),
		Frequency: string(rule.Frequency),
		Interval:  rule.Interval,
		StartDate: rule.StartDate.Format("2006-01-02"),
		Template:  toTemplateResponse(rule),
		Active:    rule.Active,
		CreatedAt: rule.CreatedAt,
		UpdatedAt: rule.UpdatedAt,
	}
	if rule.EndDate != nil {
		endDate := rule.EndDate.Format("2006-01-02")
		resp.EndDate = &endDate
	}
	return resp
}

func toTemplateResponse(rule *recurring.RuleOutput) TransactionTemplateResponse {
	template := rule.Template
	resp := TransactionTemplateResponse{
		Type:     string(template.Type),
		Amount:   template.Amount.String(),
		Currency: template.Currency,
		Note:     template.Note,
		Tags:     template.Tags,
	}
	if template.CategoryID != nil {
		id := template.CategoryID.String()
		resp.CategoryID = &id
	}
	if template.AccountID != nil {
		id := template.AccountID.String()
		resp.AccountID = &id
	}
	if template.ToAccountID != nil {
		id := template.ToAccountID.String()
		resp.ToAccountID = &id
	}
	return resp
}

// ToPreviewResponse maps a use-case preview output to its API response form.
func ToPreviewResponse(output *recurring.PreviewOutput) PreviewResponse {
	items := make([]PreviewItemResponse, 0, len(output.Items))
	for _, item := range output.Items {
		itemResp := PreviewItemResponse{
			RuleID: item.RuleID.String(),
			Date:   item.Date.Format("2006-01-02"),
			Status: string(item.Status),
		}
		itemResp.Template = TransactionTemplateResponse{
			Type:     string(item.Template.Type),
			Amount:   item.Template.Amount.String(),
			Currency: item.Template.Currency,
			Note:     item.Template.Note,
			Tags:     item.Template.Tags,
		}
		if item.Template.CategoryID != nil {
			id := item.Template.CategoryID.String()
			itemResp.Template.CategoryID = &id
		}
		if item.Template.AccountID != nil {
			id := item.Template.AccountID.String()
			itemResp.Template.AccountID = &id
		}
		if item.Template.ToAccountID != nil {
			id := item.Template.ToAccountID.String()
			itemResp.Template.ToAccountID = &id
		}
		items = append(items, itemResp)
	}
	return PreviewResponse{
		WindowStart: output.WindowStart.Format("2006-01-02"),
		WindowEnd:   output.WindowEnd.Format("2006-01-02"),
		Items:       items,
	}
}

// ToRunResponse maps a use-case run output to its API response form.
func ToRunResponse(output *recurring.RunOutput) RunResponse {
	results := make([]OccurrenceResultResponse, 0, len(output.Results))
	for _, result := range output.Results {
		resp := OccurrenceResultResponse{
			RuleID:  result.RuleID.String(),
			Date:    result.Date.Format("2006-01-02"),
			Outcome: string(result.Outcome),
			Reason:  result.Reason,
		}
		if result.TransactionID != nil {
			id := result.TransactionID.String()
			resp.TransactionID = &id
		}
		results = append(results, resp)
	}
	return RunResponse{
		Generated: output.Generated,
		Results:   results,
	}
}
