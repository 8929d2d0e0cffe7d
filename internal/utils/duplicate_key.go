package utils

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/jackc/pgconn"
)

const pgUniqueViolation = "23505"

// detailRegex pulls the column and attempted value out of a Postgres
// unique-violation detail line: Key (email)=(a@b.com) already exists.
var detailRegex = regexp.MustCompile(`Key \((.+?)\)=\((.*?)\) already exists`)

// columnPaths maps conflicting column names onto the JSON field paths
// clients know them by.
var columnPaths = map[string]string{
	"phone_number":  "phoneNumber",
	"property_name": "propertyName",
}

type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ConflictError is the user-facing translation of a storage-layer
// uniqueness violation.
type ConflictError struct {
	StatusCode    int          `json:"statusCode"`
	Message       string       `json:"message"`
	ErrorMessages []FieldError `json:"errorMessages"`
}

func (e *ConflictError) Error() string { return e.Message }

// TranslateDuplicateKey maps a raw storage-layer conflict signal onto a
// ConflictError with a field-specific message. Signals that are not
// recognized duplicate-key violations translate to a plain 500.
func TranslateDuplicateKey(err error) *ConflictError {
	field, value, ok := duplicateKeyField(err)
	if !ok {
		return &ConflictError{
			StatusCode:    http.StatusInternalServerError,
			Message:       "Internal Server Error",
			ErrorMessages: []FieldError{},
		}
	}

	if mapped, found := columnPaths[field]; found {
		field = mapped
	}
	return ConflictForField(field, value)
}

// ConflictForField builds the client-facing 409 for a duplicate value
// in the given field.
func ConflictForField(field, value string) *ConflictError {
	var message, detail string
	switch field {
	case "name":
		message = "Property Name Already Exists"
		detail = fmt.Sprintf("A property with the name '%s' already exists.", value)
	case "propertyName":
		message = "Property Name Already Exists"
		detail = "A property with this name already exists."
	case "email":
		message = "Email Already Exists"
		detail = fmt.Sprintf("A user with the email '%s' already exists. Please use a different email address.", value)
	case "phoneNumber":
		message = "Phone Number Already Exists"
		detail = fmt.Sprintf("A user with the phone number '%s' already exists. Please use a different phone number.", value)
	default:
		message = fmt.Sprintf("Duplicate key error: '%s' with value '%s'", field, value)
		detail = message
	}

	return &ConflictError{
		StatusCode:    http.StatusConflict,
		Message:       message,
		ErrorMessages: []FieldError{{Path: field, Message: detail}},
	}
}

// IsDuplicateKey reports whether err is a Postgres unique violation.
func IsDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func duplicateKeyField(err error) (field, value string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return "", "", false
	}
	if m := detailRegex.FindStringSubmatch(pgErr.Detail); m != nil {
		return m[1], m[2], true
	}
	// Older servers can omit the detail line; fall back to the
	// constraint name with no value.
	return pgErr.ConstraintName, "", true
}
