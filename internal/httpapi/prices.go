package httpapi

import (
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v81"

	"github.com/devinschumacher/devinschumacher.com/internal/payments"
)

type createPricePayload struct {
	ProductID     string `json:"productId"`
	Type          string `json:"type,omitempty"`
	UnitAmount    int64  `json:"unitAmount"`
	Currency      string `json:"currency,omitempty"`
	Interval      string `json:"interval,omitempty"`
	IntervalCount int64  `json:"intervalCount,omitempty"`
	Nickname      string `json:"nickname,omitempty"`
	Account       string `json:"account,omitempty"`
}

type priceResponse struct {
	Success bool          `json:"success"`
	Price   *stripe.Price `json:"price"`
}

// handleCreatePrice registers a one-time or recurring price on an existing
// provider product.
func (api *API) handleCreatePrice(w http.ResponseWriter, r *http.Request) {
	client, _, ok := api.paymentsClient(w, r.URL.Query().Get("acct"))
	if !ok {
		return
	}

	var payload createPricePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_json", Message: err.Error()})
		return
	}
	if strings.TrimSpace(payload.ProductID) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation_failed", Message: "productId is required"})
		return
	}
	if payload.UnitAmount <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation_failed", Message: "unitAmount must be a positive number of cents"})
		return
	}

	currency := payload.Currency
	if currency == "" {
		currency = "usd"
	}
	params := &stripe.PriceParams{
		Product:    stripe.String(payload.ProductID),
		Currency:   stripe.String(currency),
		UnitAmount: stripe.Int64(payload.UnitAmount),
		Active:     stripe.Bool(true),
	}
	if payload.Nickname != "" {
		params.Nickname = stripe.String(payload.Nickname)
	}
	if payload.Type == "recurring" {
		if payload.Interval == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation_failed", Message: "interval is required for recurring prices"})
			return
		}
		recurring := &stripe.PriceRecurringParams{
			Interval: stripe.String(payload.Interval),
		}
		if payload.IntervalCount > 0 {
			recurring.IntervalCount = stripe.Int64(payload.IntervalCount)
		}
		params.Recurring = recurring
	}

	price, err := client.CreatePrice(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, priceResponse{Success: true, Price: price})
}

// handleGetPrice retrieves a price by id.
func (api *API) handleGetPrice(w http.ResponseWriter, r *http.Request) {
	client, _, ok := api.paymentsClient(w, r.URL.Query().Get("acct"))
	if !ok {
		return
	}

	priceID := r.URL.Query().Get("priceId")
	if priceID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation_failed", Message: "priceId is required"})
		return
	}

	price, err := client.GetPrice(r.Context(), priceID, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, priceResponse{Success: true, Price: price})
}

type whoAmIResponse struct {
	Success   bool   `json:"success"`
	AccountID string `json:"accountId"`
	Email     string `json:"email,omitempty"`
	KeyMode   string `json:"keyMode"`
}

// handleWhoAmI reports which provider account the selected key belongs to and
// whether the key is live or test.
func (api *API) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	client, selected, ok := api.paymentsClient(w, r.URL.Query().Get("acct"))
	if !ok {
		return
	}

	account, err := client.GetAccount(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, whoAmIResponse{
		Success:   true,
		AccountID: account.ID,
		Email:     account.Email,
		KeyMode:   string(api.payments.KeyMode(selected)),
	})
}

// paymentsClient resolves the provider client for a request-level account
// selector, writing the error response on failure.
func (api *API) paymentsClient(w http.ResponseWriter, selector string) (payments.Client, payments.Account, bool) {
	if api.payments == nil {
		writeError(w, payments.ErrKeyMissing)
		return nil, "", false
	}
	account, err := payments.ParseAccount(selector)
	if err != nil {
		writeError(w, err)
		return nil, "", false
	}
	client, err := api.payments.Client(account)
	if err != nil {
		writeError(w, err)
		return nil, "", false
	}
	return client, account, true
}
