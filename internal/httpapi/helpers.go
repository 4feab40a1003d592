package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stripe/stripe-go/v81"

	"github.com/devinschumacher/devinschumacher.com/internal/checkout"
	"github.com/devinschumacher/devinschumacher.com/internal/content"
	"github.com/devinschumacher/devinschumacher.com/internal/crm"
	"github.com/devinschumacher/devinschumacher.com/internal/generator"
	"github.com/devinschumacher/devinschumacher.com/internal/payments"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for name, fieldErr := range fieldErrs {
			fields[name] = fieldErr.Error()
		}
		return http.StatusBadRequest, errorResponse{
			Error:   "validation_failed",
			Message: "request validation failed",
			Fields:  fields,
		}
	}

	var contentNotFound *content.NotFoundError
	if errors.As(err, &contentNotFound) {
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: contentNotFound.Error()}
	}

	var productNotFound *checkout.ProductNotFoundError
	if errors.As(err, &productNotFound) {
		return http.StatusNotFound, errorResponse{Error: "product_not_found", Message: productNotFound.Error()}
	}

	var discountNotFound *payments.DiscountNotFoundError
	if errors.As(err, &discountNotFound) {
		return http.StatusBadRequest, errorResponse{Error: "discount_not_found", Message: discountNotFound.Error()}
	}

	switch {
	case errors.Is(err, payments.ErrAccountUnknown):
		return http.StatusBadRequest, errorResponse{Error: "account_unknown", Message: err.Error()}
	case errors.Is(err, payments.ErrKeyMissing):
		return http.StatusInternalServerError, errorResponse{Error: "provider_unconfigured", Message: err.Error()}
	case errors.Is(err, checkout.ErrDisabled),
		errors.Is(err, crm.ErrDisabled),
		errors.Is(err, generator.ErrDisabled):
		return http.StatusServiceUnavailable, errorResponse{Error: "feature_disabled", Message: err.Error()}
	}

	var crmErr *crm.APIError
	if errors.As(err, &crmErr) {
		return http.StatusBadGateway, errorResponse{Error: "crm_error", Message: crmErr.Error()}
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		status := http.StatusBadGateway
		if stripeErr.HTTPStatusCode >= 400 && stripeErr.HTTPStatusCode < 500 {
			status = http.StatusBadRequest
		}
		return status, errorResponse{Error: "provider_error", Message: stripeErr.Msg}
	}

	if goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return http.StatusBadRequest, errorResponse{Error: "validation_failed", Message: err.Error()}
	}
	if goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()}
}
