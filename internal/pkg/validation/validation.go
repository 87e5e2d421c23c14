package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const MaxNameLength = 255

// FieldError names the offending field; its message goes to the client as is.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func fieldErr(field, format string, args ...interface{}) error {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Required fails when a create request omits a field.
func Required(field string, present bool) error {
	if !present {
		return fieldErr(field, "Missing required field: %s", field)
	}
	return nil
}

// Name requires a non-blank name of at most MaxNameLength characters.
func Name(field, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fieldErr(field, "%s must not be blank", field)
	}
	if len([]rune(name)) > MaxNameLength {
		return fieldErr(field, "%s must be at most %d characters", field, MaxNameLength)
	}
	return nil
}

// PositiveAmount requires a monetary amount > 0 with at most two decimals.
func PositiveAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fieldErr(field, "%s must be a positive number", field)
	}
	if !amount.Equal(amount.Truncate(2)) {
		return fieldErr(field, "%s must have at most 2 decimal places", field)
	}
	return nil
}

// Date requires a set time.
func Date(field string, t time.Time) error {
	if t.IsZero() {
		return fieldErr(field, "%s must be a valid date", field)
	}
	return nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
