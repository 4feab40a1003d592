package payments

import (
	"errors"
	"fmt"
)

var (
	// ErrAccountUnknown marks a request for a payment account that is not
	// configured.
	ErrAccountUnknown = errors.New("payments: unknown account")

	// ErrKeyMissing marks a selected account with no secret key configured.
	ErrKeyMissing = errors.New("payments: secret key not configured")
)

// DiscountNotFoundError reports a promotion code or coupon reference that
// could not be resolved against the payment provider.
type DiscountNotFoundError struct {
	Code string
}

func (e *DiscountNotFoundError) Error() string {
	return fmt.Sprintf("payments: no active discount matches %q", e.Code)
}

// NewDiscountNotFoundError builds a DiscountNotFoundError for a human code.
func NewDiscountNotFoundError(code string) *DiscountNotFoundError {
	return &DiscountNotFoundError{Code: code}
}
