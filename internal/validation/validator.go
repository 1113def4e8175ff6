// =============================================================================
// XML to CSV Converter - Table Validation
// =============================================================================
//
// This module checks a projected Table before it is written:
//   - Header names are non-empty and unique
//   - Every row has exactly as many cells as the header
//
// Violations indicate a bug in the projection stage, not bad input, so they
// are reported as VALIDATION errors and nothing is written.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/errors"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/types"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single broken invariant.
type ValidationError struct {
	// Row is the 1-based data row, 0 for header problems.
	Row int

	// Column is the header name involved, if any.
	Column string

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch {
	case e.Row > 0:
		return fmt.Sprintf("row %d: %s", e.Row, e.Message)
	case e.Column != "":
		return fmt.Sprintf("column %q: %s", e.Column, e.Message)
	}
	return e.Message
}

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// Check returns every invariant violation found in the table.
func Check(table *types.Table) []*ValidationError {
	var problems []*ValidationError

	seen := make(map[string]bool, len(table.Header))
	for _, name := range table.Header {
		if name == "" {
			problems = append(problems, &ValidationError{Message: "empty header name"})
			continue
		}
		if seen[name] {
			problems = append(problems, &ValidationError{Column: name, Message: "duplicate header name"})
		}
		seen[name] = true
	}

	for i, row := range table.Rows {
		if len(row) != len(table.Header) {
			problems = append(problems, &ValidationError{
				Row:     i + 1,
				Message: fmt.Sprintf("has %d cells, header has %d", len(row), len(table.Header)),
			})
		}
	}

	return problems
}

// Validate checks the table and folds any violations into one error.
func Validate(table *types.Table) error {
	problems := Check(table)
	if len(problems) == 0 {
		return nil
	}
	return errors.NewValidationError(FormatErrors(problems))
}

// FormatErrors formats validation errors for display.
func FormatErrors(problems []*ValidationError) string {
	lines := make([]string, 0, len(problems))
	for _, p := range problems {
		lines = append(lines, p.Error())
	}
	return fmt.Sprintf("%d table invariant violation(s): %s", len(problems), strings.Join(lines, "; "))
}
