package httpapi

import (
	"net/http"
	"strconv"

	"github.com/devinschumacher/devinschumacher.com/internal/checkout"
)

type checkoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// handleCheckout creates a session from a catalog product id.
func (api *API) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if api.checkout == nil {
		writeError(w, checkout.ErrDisabled)
		return
	}

	var req checkout.SessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_json", Message: err.Error()})
		return
	}
	// This endpoint sells catalog products only; a raw price id goes through
	// /api/checkout-by-price.
	req.PriceID = ""

	result, err := api.checkout.CreateSession(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{SessionID: result.SessionID, URL: result.URL})
}

// handleCheckoutByPrice creates a session from an existing provider price id.
func (api *API) handleCheckoutByPrice(w http.ResponseWriter, r *http.Request) {
	if api.checkout == nil {
		writeError(w, checkout.ErrDisabled)
		return
	}

	var req checkout.SessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_json", Message: err.Error()})
		return
	}
	req.ProductID = ""

	result, err := api.checkout.CreateSession(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{SessionID: result.SessionID, URL: result.URL})
}

// handleBuyRedirect builds a session from query parameters and redirects the
// browser straight to the provider-hosted page.
func (api *API) handleBuyRedirect(w http.ResponseWriter, r *http.Request) {
	if api.checkout == nil {
		writeError(w, checkout.ErrDisabled)
		return
	}

	query := r.URL.Query()
	req := checkout.SessionRequest{
		PriceID:             r.PathValue("priceID"),
		Mode:                query.Get("mode"),
		PromotionCodeID:     query.Get("promo"),
		CouponID:            query.Get("coupon"),
		Code:                query.Get("code"),
		AllowPromotionCodes: query.Get("allowPromo") == "1",
		SuccessPath:         query.Get("successPath"),
		CancelPath:          query.Get("cancelPath"),
		Account:             query.Get("acct"),
	}
	if quantity, err := strconv.Atoi(query.Get("quantity")); err == nil {
		req.Quantity = quantity
	}
	if tag := query.Get("ghlTag"); tag != "" {
		req.Metadata = map[string]string{"ghlTag": tag}
	}

	result, err := api.checkout.CreateSession(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	http.Redirect(w, r, result.URL, http.StatusSeeOther)
}
