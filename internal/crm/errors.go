package crm

import (
	"errors"
	"fmt"
)

// ErrDisabled marks CRM operations on a site with no CRM configured.
var ErrDisabled = errors.New("crm: not configured")

// APIError is a non-success response from the CRM.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("crm: api returned %d: %s", e.StatusCode, e.Body)
}

// DuplicateContactError is the CRM rejecting a create because the contact
// already exists. It carries the existing contact id so the caller can
// recover with an update.
type DuplicateContactError struct {
	ContactID string
}

func (e *DuplicateContactError) Error() string {
	return fmt.Sprintf("crm: contact already exists as %s", e.ContactID)
}
