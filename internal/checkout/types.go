package checkout

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Session modes accepted by the provider.
const (
	ModePayment      = "payment"
	ModeSubscription = "subscription"
)

// SessionRequest describes one checkout session to create. Exactly one of
// ProductID (catalog lookup) or PriceID (direct provider price) is required.
type SessionRequest struct {
	ProductID string `json:"productId,omitempty"`
	PriceID   string `json:"priceId,omitempty"`

	Quantity int    `json:"quantity,omitempty"`
	Mode     string `json:"mode,omitempty"`

	// Discount selectors, in resolution priority order. PromotionCodeID and
	// CouponID are provider ids; Code is the human-readable value customers
	// type.
	PromotionCodeID string `json:"promo,omitempty"`
	CouponID        string `json:"coupon,omitempty"`
	Code            string `json:"code,omitempty"`

	// AllowPromotionCodes lets the customer enter any code on the hosted
	// page. Ignored when a discount selector resolves.
	AllowPromotionCodes bool `json:"allowPromotionCodes,omitempty"`

	SuccessPath string            `json:"successPath,omitempty"`
	CancelPath  string            `json:"cancelPath,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`

	// Account selects the payment account ("" or "primary", "alt").
	Account string `json:"account,omitempty"`

	// TestMode swaps the catalog price for a fixed 50-cent inline price so a
	// live product can be exercised end to end without charging full price.
	TestMode bool `json:"testMode,omitempty"`
}

// Validate reports field-level problems before any provider call is made.
func (r SessionRequest) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(r.ProductID) == "" && strings.TrimSpace(r.PriceID) == "" {
		errs["priceId"] = validation.NewError("site.checkout.target_required", "priceId or productId is required")
	}
	if r.Quantity < 0 {
		errs["quantity"] = validation.NewError("site.checkout.quantity_invalid", "quantity must be at least 1")
	}
	if r.Mode != "" && r.Mode != ModePayment && r.Mode != ModeSubscription {
		errs["mode"] = validation.NewError("site.checkout.mode_invalid", "mode must be payment or subscription")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SessionResult is the outcome of a successful session creation.
type SessionResult struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}
