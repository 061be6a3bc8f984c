package transaction

import "errors"

var (
	ErrNotFound        = errors.New("transaction not found")
	ErrInvalidAmount   = errors.New("amount must be a finite number greater than zero")
	ErrInvalidType     = errors.New("type must be INCOME or EXPENSE")
	ErrInvalidCurrency = errors.New("unsupported currency")
	ErrInvalidCategory = errors.New("category does not belong to transaction type")
)

// IsValidation reports whether err was caused by a rejected candidate.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrInvalidCurrency) ||
		errors.Is(err, ErrInvalidCategory)
}
