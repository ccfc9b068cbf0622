// Package error defines domain-specific errors for the FinLedger application.
package error

import "errors"

// Recurring rule domain errors.
var (
	// ErrRecurringRuleNotFound is returned when a rule is absent or owned by a different user.
	ErrRecurringRuleNotFound = errors.New("recurring rule not found")

	// ErrGeneratedInstanceNotFound is returned when no instance exists for a (rule, date) pair.
	ErrGeneratedInstanceNotFound = errors.New("generated instance not found")

	// ErrOccurrenceAlreadyGenerated is returned when a (rule, date) pair was already resolved.
	ErrOccurrenceAlreadyGenerated = errors.New("occurrence already generated")

	// ErrOccurrenceNotIgnored is returned when undoing an ignore on an occurrence
	// whose outcome is not ignored. Materialized occurrences are permanent.
	ErrOccurrenceNotIgnored = errors.New("occurrence is not ignored")

	// ErrInvalidFrequency is returned when the frequency is not weekly, monthly or yearly.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrInvalidInterval is returned when the interval is not a positive integer.
	ErrInvalidInterval = errors.New("interval must be a positive integer")

	// ErrInvalidDateRange is returned when the end date precedes the start date.
	ErrInvalidDateRange = errors.New("end date must not precede start date")

	// ErrInvalidSplitDate is returned when the split date is not after the rule's start date.
	ErrInvalidSplitDate = errors.New("split date must be after the rule start date")

	// ErrInvalidPreviewPeriod is returned when the preview period is unsupported.
	ErrInvalidPreviewPeriod = errors.New("unsupported preview period")

	// ErrInvalidTemplate is returned when the transaction template is malformed.
	ErrInvalidTemplate = errors.New("invalid transaction template")

	// ErrDuplicateKey is returned by stores when a write collides with a
	// uniqueness constraint. Batch operations recover from it by re-querying;
	// single-occurrence operations surface it as AlreadyGenerated.
	ErrDuplicateKey = errors.New("duplicate key")
)

// RecurringErrorCode defines error codes for recurring rule errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidFrequency     RecurringErrorCode = "REC-010001"
	ErrCodeInvalidInterval      RecurringErrorCode = "REC-010002"
	ErrCodeInvalidDateRange     RecurringErrorCode = "REC-010003"
	ErrCodeInvalidTemplate      RecurringErrorCode = "REC-010004"
	ErrCodeInvalidPreviewPeriod RecurringErrorCode = "REC-010005"
	ErrCodeInvalidSplitDate     RecurringErrorCode = "REC-010006"
	ErrCodeMissingRuleFields    RecurringErrorCode = "REC-010007"

	// Lookup errors (02XXXX)
	ErrCodeRuleNotFound     RecurringErrorCode = "REC-020001"
	ErrCodeInstanceNotFound RecurringErrorCode = "REC-020002"

	// Conflict errors (03XXXX)
	ErrCodeAlreadyGenerated RecurringErrorCode = "REC-030001"
	ErrCodeNotIgnored       RecurringErrorCode = "REC-030002"
)

// RecurringError represents a recurring rule error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
