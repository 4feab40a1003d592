package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrDisabled marks checkout operations on a site with no payment
	// provider configured.
	ErrDisabled = errors.New("checkout: not configured")

	// ErrSessionURLMissing marks a provider session created without a hosted
	// checkout URL.
	ErrSessionURLMissing = errors.New("checkout: provider returned no session url")
)

// ProductNotFoundError reports a catalog lookup miss.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("checkout: product %q not in catalog", e.ProductID)
}

// NewProductNotFoundError builds a ProductNotFoundError.
func NewProductNotFoundError(productID string) *ProductNotFoundError {
	return &ProductNotFoundError{ProductID: productID}
}
