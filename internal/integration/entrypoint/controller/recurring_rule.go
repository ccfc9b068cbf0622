// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/backend/internal/application/usecase/recurring"
	"github.com/finledger/backend/internal/domain/entity"
	domainerror "github.com/finledger/backend/internal/domain/error"
	"github.com/finledger/backend/internal/integration/entrypoint/dto"
	"github.com/finledger/backend/internal/integration/entrypoint/middleware"
)

// RecurringRuleController handles recurring rule endpoints.
type RecurringRuleController struct {
	createUseCase      *recurring.CreateRuleUseCase
	listUseCase        *recurring.ListRulesUseCase
	getUseCase         *recurring.GetRuleUseCase
	updateUseCase      *recurring.UpdateRuleUseCase
	deleteUseCase      *recurring.DeleteRuleUseCase
	previewUseCase     *recurring.PreviewUseCase
	runUseCase         *recurring.RunUseCase
	materializeUseCase *recurring.MaterializeUseCase
	splitUseCase       *recurring.SplitRuleUseCase
	ignoreUseCase      *recurring.IgnoreOccurrenceUseCase
	undoIgnoreUseCase  *recurring.UndoIgnoreUseCase
}

// NewRecurringRuleController creates a new recurring rule controller instance.
func NewRecurringRuleController(
	createUseCase *recurring.CreateRuleUseCase,
	listUseCase *recurring.ListRulesUseCase,
	getUseCase *recurring.GetRuleUseCase,
	updateUseCase *recurring.UpdateRuleUseCase,
	deleteUseCase *recurring.DeleteRuleUseCase,
	previewUseCase *recurring.PreviewUseCase,
	runUseCase *recurring.RunUseCase,
	materializeUseCase *recurring.MaterializeUseCase,
	splitUseCase *recurring.SplitRuleUseCase,
	ignoreUseCase *recurring.IgnoreOccurrenceUseCase,
	undoIgnoreUseCase *recurring.UndoIgnoreUseCase,
) *RecurringRuleController {
	return &RecurringRuleController{
		createUseCase:      createUseCase,
		listUseCase:        listUseCase,
		getUseCase:         getUseCase,
		updateUseCase:      updateUseCase,
		deleteUseCase:      deleteUseCase,
		previewUseCase:     previewUseCase,
		runUseCase:         runUseCase,
		materializeUseCase: materializeUseCase,
		splitUseCase:       splitUseCase,
		ignoreUseCase:      ignoreUseCase,
		undoIgnoreUseCase:  undoIgnoreUseCase,
	}
}

// Create handles POST /recurring-rules requests.
func (c *RecurringRuleController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateRecurringRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start_date format, expected YYYY-MM-DD",
		})
		return
	}

	var endDate *time.Time
	if req.EndDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end_date format, expected YYYY-MM-DD",
			})
			return
		}
		endDate = &parsed
	}

	template, err := toTemplateEntity(req.Template)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), recurring.CreateRuleInput{
		UserID:    userID,
		Frequency: entity.Frequency(req.Frequency),
		Interval:  req.Interval,
		StartDate: startDate,
		EndDate:   endDate,
		Template:  template,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	status := http.StatusCreated
	if output.Existing {
		status = http.StatusOK
	}
	ctx.JSON(status, dto.ToRecurringRuleResponse(output.Rule))
}

// List handles GET /recurring-rules requests.
func (c *RecurringRuleController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	input := recurring.ListRulesInput{
		UserID:     userID,
		ActiveOnly: ctx.Query("active") == "true",
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	rules := make([]dto.RecurringRuleResponse, 0, len(output.Rules))
	for _, rule := range output.Rules {
		rules = append(rules, dto.ToRecurringRuleResponse(rule))
	}
	ctx.JSON(http.StatusOK, dto.ListRecurringRulesResponse{Rules: rules})
}

// Get handles GET /recurring-rules/:id requests.
func (c *RecurringRuleController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	ruleID, ok := parseRuleID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), recurring.GetRuleInput{
		RuleID: ruleID,
		UserID: userID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringRuleResponse(output.Rule))
}

// Update handles PATCH /recurring-rules/:id requests.
func (c *RecurringRuleController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	ruleID, ok := parseRuleID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateRecurringRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := recurring.UpdateRuleInput{
		RuleID:   ruleID,
		UserID:   userID,
		Interval: req.Interval,
		Active:   req.Active,
	}

	if req.Frequency != nil {
		frequency := entity.Frequency(*req.Frequency)
		input.Frequency = &frequency
	}
	if req.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start_date format, expected YYYY-MM-DD",
			})
			return
		}
		input.StartDate = &startDate
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			input.ClearEndDate = true
		} else {
			endDate, err := time.Parse("2006-01-02", *req.EndDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
					Error: "Invalid end_date format, expected YYYY-MM-DD",
				})
				return
			}
			input.EndDate = &endDate
		}
	}
	if req.Template != nil {
		patch, err := toTemplatePatch(*req.Template)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: err.Error(),
			})
			return
		}
		input.Template = patch
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringRuleResponse(output.Rule))
}

// Delete handles DELETE /recurring-rules/:id requests.
func (c *RecurringRuleController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	ruleID, ok := parseRuleID(ctx)
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), recurring.DeleteRuleInput{
		RuleID: ruleID,
		UserID: userID,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Preview handles GET /recurring-rules/preview requests.
func (c *RecurringRuleController) Preview(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	anchor, ok := parseMonthQuery(ctx)
	if !ok {
		return
	}

	output, err := c.previewUseCase.Execute(ctx.Request.Context(), recurring.PreviewInput{
		UserID:     userID,
		Period:     recurring.PreviewPeriodMonthly,
		AnchorDate: anchor,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPreviewResponse(output))
}

// Run handles POST /recurring-rules/run requests.
func (c *RecurringRuleController) Run(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	anchor, ok := parseMonthQuery(ctx)
	if !ok {
		return
	}

	output, err := c.runUseCase.Execute(ctx.Request.Context(), recurring.RunInput{
		UserID:     userID,
		Period:     recurring.PreviewPeriodMonthly,
		AnchorDate: anchor,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRunResponse(output))
}

// Materialize handles POST /recurring-rules/:id/materialize requests.
func (c *RecurringRuleController) Materialize(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	ruleID, ok := parseRuleID(ctx)
	if !ok {
		return
	}

	var req dto.MaterializeOccurrenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	input := recurring.MaterializeInput{
		RuleID: ruleID,
		UserID: userID,
		Date:   date,
	}
	if req.Template != nil {
		template, err := toTemplateEntity(*req.Template)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: err.Error(),
			})
			return
		}
		input.TemplateOverride = &template
	}

	output, err := c.materializeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.MaterializeResponse{
		TransactionID: output.Transaction.ID.String(),
		RuleID:        ruleID.String(),
		Date:          output.Instance.Date.Format("2006-01-02"),
	})
}

// Split handles POST /recurring-rules/:id/split requests.
func (c *RecurringRuleController) Split(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	ruleID, ok := parseRuleID(ctx)
	if !ok {
		return
	}

	var req dto.SplitRecurringRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	splitDate, err := time.Parse("2006-01-02", req.SplitDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid split_date format, expected YYYY-MM-DD",
		})
		return
	}

	template, err := toTemplateEntity(req.Template)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	output, err := c.splitUseCase.Execute(ctx.Request.Context(), recurring.SplitRuleInput{
		RuleID:      ruleID,
		UserID:      userID,
		SplitDate:   splitDate,
		NewTemplate: template,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SplitRecurringRuleResponse{
		Original: dto.ToRecurringRuleResponse(output.Original),
		NewRule:  dto.ToRecurringRuleResponse(output.NewRule),
	})
}

// Ignore handles POST /recurring-rules/:id/ignore requests.
func (c *RecurringRuleController) Ignore(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	ruleID, ok := parseRuleID(ctx)
	if !ok {
		return
	}

	date, ok := bindOccurrenceDate(ctx)
	if !ok {
		return
	}

	output, err := c.ignoreUseCase.Execute(ctx.Request.Context(), recurring.IgnoreOccurrenceInput{
		RuleID: ruleID,
		UserID: userID,
		Date:   date,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.IgnoreOccurrenceResponse{
		RuleID: ruleID.String(),
		Date:   output.Instance.Date.Format("2006-01-02"),
		Status: string(output.Instance.Outcome),
	})
}

// UndoIgnore handles POST /recurring-rules/:id/undo-ignore requests.
func (c *RecurringRuleController) UndoIgnore(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	ruleID, ok := parseRuleID(ctx)
	if !ok {
		return
	}

	date, ok := bindOccurrenceDate(ctx)
	if !ok {
		return
	}

	_, err := c.undoIgnoreUseCase.Execute(ctx.Request.Context(), recurring.UndoIgnoreInput{
		RuleID: ruleID,
		UserID: userID,
		Date:   date,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Occurrence restored"})
}

func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

func parseRuleID(ctx *gin.Context) (uuid.UUID, bool) {
	ruleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid rule ID format",
		})
		return uuid.Nil, false
	}
	return ruleID, true
}

// parseMonthQuery reads the month=YYYY-MM query parameter, defaulting to the
// current month when absent. The anchor is the first day of that month.
func parseMonthQuery(ctx *gin.Context) (time.Time, bool) {
	monthStr := ctx.Query("month")
	if monthStr == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), true
	}
	anchor, err := time.Parse("2006-01", monthStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid month format, expected YYYY-MM",
		})
		return time.Time{}, false
	}
	return anchor, true
}

func bindOccurrenceDate(ctx *gin.Context) (time.Time, bool) {
	var req dto.OccurrenceDateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return time.Time{}, false
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format, expected YYYY-MM-DD",
		})
		return time.Time{}, false
	}
	return date, true
}

func toTemplateEntity(req dto.TransactionTemplateRequest) (entity.TransactionTemplate, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return entity.TransactionTemplate{}, errors.New("invalid template amount")
	}

	template := entity.TransactionTemplate{
		Type:     entity.TransactionType(req.Type),
		Amount:   amount,
		Currency: req.Currency,
		Note:     req.Note,
		Tags:     req.Tags,
	}

	template.CategoryID, err = parseOptionalUUID(req.CategoryID, "category_id")
	if err != nil {
		return entity.TransactionTemplate{}, err
	}
	template.AccountID, err = parseOptionalUUID(req.AccountID, "account_id")
	if err != nil {
		return entity.TransactionTemplate{}, err
	}
	template.ToAccountID, err = parseOptionalUUID(req.ToAccountID, "to_account_id")
	if err != nil {
		return entity.TransactionTemplate{}, err
	}
	return template, nil
}

func toTemplatePatch(req dto.TransactionTemplatePatchRequest) (*recurring.TemplatePatch, error) {
	patch := &recurring.TemplatePatch{
		Currency: req.Currency,
		Note:     req.Note,
		Tags:     req.Tags,
	}

	if req.Type != nil {
		txnType := entity.TransactionType(*req.Type)
		patch.Type = &txnType
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return nil, errors.New("invalid template amount")
		}
		patch.Amount = &amount
	}

	var err error
	patch.CategoryID, err = parseOptionalUUID(req.CategoryID, "category_id")
	if err != nil {
		return nil, err
	}
	patch.AccountID, err = parseOptionalUUID(req.AccountID, "account_id")
	if err != nil {
		return nil, err
	}
	patch.ToAccountID, err = parseOptionalUUID(req.ToAccountID, "to_account_id")
	if err != nil {
		return nil, err
	}
	return patch, nil
}

func parseOptionalUUID(value *string, field string) (*uuid.UUID, error) {
	if value == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		return nil, errors.New("invalid " + field + " format")
	}
	return &id, nil
}

// handleRecurringError maps recurring rule errors to HTTP responses.
func (c *RecurringRuleController) handleRecurringError(ctx *gin.Context, err error) {
	var recErr *domainerror.RecurringError
	if errors.As(err, &recErr) {
		statusCode := c.getStatusCodeForRecurringError(recErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: recErr.Message,
			Code:  string(recErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForRecurringError maps recurring error codes to HTTP status codes.
func (c *RecurringRuleController) getStatusCodeForRecurringError(code domainerror.RecurringErrorCode) int {
	switch code {
	case domainerror.ErrCodeRuleNotFound,
		domainerror.ErrCodeInstanceNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeAlreadyGenerated,
		domainerror.ErrCodeNotIgnored:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidFrequency,
		domainerror.ErrCodeInvalidInterval,
		domainerror.ErrCodeInvalidDateRange,
		domainerror.ErrCodeInvalidTemplate,
		domainerror.ErrCodeInvalidPreviewPeriod,
		domainerror.ErrCodeInvalidSplitDate,
		domainerror.ErrCodeMissingRuleFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
