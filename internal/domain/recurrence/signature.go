package recurrence

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/backend/internal/domain/entity"
)

// absent is the sentinel for optional template fields that are not set, so a
// nil category and a never-provided category fingerprint identically.
const absent = "-"

// RuleSignature produces a stable fingerprint for a rule's defining fields.
// Two rules with identical signatures describe the same recurring obligation
// regardless of creation order; the service uses this for duplicate
// suppression. The template must be normalized before calling.
func RuleSignature(
	userID uuid.UUID,
	frequency entity.Frequency,
	interval int,
	startDate time.Time,
	template entity.TransactionTemplate,
) string {
	parts := []string{
		userID.String(),
		string(frequency),
		strconv.Itoa(interval),
		entity.DateOnly(startDate).Format("2006-01-02"),
		string(template.Type),
		template.Amount.String(),
		orAbsent(template.Currency),
		uuidOrAbsent(template.CategoryID),
		uuidOrAbsent(template.AccountID),
		uuidOrAbsent(template.ToAccountID),
		orAbsent(template.Note),
		tagsOrAbsent(template.Tags),
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

func orAbsent(s string) string {
	if s == "" {
		return absent
	}
	return s
}

func uuidOrAbsent(id *uuid.UUID) string {
	if id == nil {
		return absent
	}
	return id.String()
}

func tagsOrAbsent(tags []string) string {
	if len(tags) == 0 {
		return absent
	}
	return strings.Join(tags, ",")
}
