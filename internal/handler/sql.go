package handler

import (
	"strings"

	"github.com/farmasys/orcamento-api/internal/apperr"
)

// ValidateSQL gates raw SQL from the request: it must be non-blank, start
// with the SELECT keyword (case-insensitive, after trimming) and contain no
// stacked statements. The check is lexical only; the executor's
// single-statement protocol is the backstop.
func ValidateSQL(sqlText string) error {
	trimmed := strings.TrimSpace(sqlText)
	if trimmed == "" {
		return apperr.New(apperr.Validation, "SQL query is required")
	}
	if !strings.HasPrefix(strings.ToLower(trimmed), "select") {
		return apperr.New(apperr.Validation, "Only SELECT queries are allowed")
	}
	if strings.Contains(strings.TrimSuffix(trimmed, ";"), ";") {
		return apperr.New(apperr.Validation, "Multiple SQL statements are not allowed")
	}
	return nil
}
