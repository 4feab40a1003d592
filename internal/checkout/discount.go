package checkout

import (
	"context"
	"strings"

	"github.com/stripe/stripe-go/v81"

	"github.com/devinschumacher/devinschumacher.com/internal/payments"
)

// promotionCodeScanLimit bounds the case-insensitive fallback scan over
// active codes.
const promotionCodeScanLimit = 100

// resolveDiscount turns the request's discount selectors into session-create
// discount params. Priority: explicit promotion-code id, then coupon id, then
// human-readable code resolved against the provider. A nil result with nil
// error means no discount was requested.
func resolveDiscount(ctx context.Context, client payments.Client, req SessionRequest) ([]*stripe.CheckoutSessionDiscountParams, error) {
	if req.PromotionCodeID != "" {
		return []*stripe.CheckoutSessionDiscountParams{
			{PromotionCode: stripe.String(req.PromotionCodeID)},
		}, nil
	}
	if req.CouponID != "" {
		return []*stripe.CheckoutSessionDiscountParams{
			{Coupon: stripe.String(req.CouponID)},
		}, nil
	}
	if req.Code == "" {
		return nil, nil
	}

	id, err := resolvePromotionCode(ctx, client, req.Code)
	if err != nil {
		return nil, err
	}
	return []*stripe.CheckoutSessionDiscountParams{
		{PromotionCode: stripe.String(id)},
	}, nil
}

// resolvePromotionCode maps a human-readable code onto a promotion-code id.
// Exact filter lookup first; if the provider returns nothing, scan a page of
// active codes case-insensitively, since the filter is case-sensitive.
func resolvePromotionCode(ctx context.Context, client payments.Client, code string) (string, error) {
	exact := &stripe.PromotionCodeListParams{
		Code:   stripe.String(code),
		Active: stripe.Bool(true),
	}
	exact.Limit = stripe.Int64(1)
	codes, err := client.ListPromotionCodes(ctx, exact)
	if err != nil {
		return "", err
	}
	if len(codes) > 0 {
		return codes[0].ID, nil
	}

	scan := &stripe.PromotionCodeListParams{
		Active: stripe.Bool(true),
	}
	scan.Limit = stripe.Int64(promotionCodeScanLimit)
	codes, err = client.ListPromotionCodes(ctx, scan)
	if err != nil {
		return "", err
	}
	for _, pc := range codes {
		if strings.EqualFold(pc.Code, code) {
			return pc.ID, nil
		}
	}
	return "", payments.NewDiscountNotFoundError(code)
}
