package dataclient

import (
	"errors"
	"fmt"
)

const (
	// CodeNoRows is reported when a single-row call matched zero rows.
	CodeNoRows = "PGRST116"
	// CodeUniqueViolation is the SQLSTATE for a unique constraint violation.
	CodeUniqueViolation = "23505"
	// CodeInvalidText is the SQLSTATE for malformed input such as a bad uuid.
	CodeInvalidText = "22P02"
)

// Error mirrors the error body of the hosted REST interface.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func errNoRows(table string) error {
	return &Error{
		Status:  406,
		Code:    CodeNoRows,
		Message: "JSON object requested, multiple (or no) rows returned",
		Details: "The result contains 0 rows from " + table,
	}
}

func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func IsNoRows(err error) bool {
	return Code(err) == CodeNoRows
}

func IsConflict(err error) bool {
	return Code(err) == CodeUniqueViolation
}

func IsInvalidText(err error) bool {
	return Code(err) == CodeInvalidText
}
