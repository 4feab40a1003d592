package crm

import (
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v81"
)

// CustomFieldIDs maps purchase facts onto account-specific CRM field ids.
// Empty ids drop the corresponding field from the payload.
type CustomFieldIDs struct {
	CustomerID     string
	SessionID      string
	PurchaseAmount string
	PurchaseDate   string
	Products       string
	PaymentMethods string
	Currency       string
	ItemCount      string
}

// legacyProductTag keeps the first product's automation trigger working for
// sessions created before the ghlTag metadata key existed.
const (
	legacyProductID  = "skool-video-downloader"
	legacyProductTag = "purchase-skool-video-downloader-stripe"
)

// ContactFromSession maps a completed checkout session onto the CRM contact
// payload. The session must have been retrieved with customer and line_items
// expanded.
func ContactFromSession(session *stripe.CheckoutSession, fieldIDs CustomFieldIDs, now time.Time) Contact {
	email, name, phone := customerDetails(session)
	firstName, lastName := splitName(name)

	amount := fmt.Sprintf("%.2f", float64(session.AmountTotal)/100)
	productNames, itemCount := lineItemSummary(session)

	contact := Contact{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Phone:        phone,
		Tags:         purchaseTags(session, amount, itemCount, now),
		Source:       sourceLabel(session.Livemode),
		CustomFields: purchaseFields(session, fieldIDs, amount, productNames, itemCount, now),
	}

	if session.CustomerDetails != nil && session.CustomerDetails.Address != nil {
		addr := session.CustomerDetails.Address
		contact.Address1 = addr.Line1
		contact.City = addr.City
		contact.State = addr.State
		contact.PostalCode = addr.PostalCode
		contact.Country = strings.ToUpper(addr.Country)
	}
	return contact
}

func customerDetails(session *stripe.CheckoutSession) (email, name, phone string) {
	if session.CustomerDetails == nil {
		return "", "", ""
	}
	return session.CustomerDetails.Email, session.CustomerDetails.Name, session.CustomerDetails.Phone
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func lineItemSummary(session *stripe.CheckoutSession) (string, int64) {
	if session.LineItems == nil {
		return "", 0
	}
	var names []string
	var count int64
	for _, item := range session.LineItems.Data {
		name := item.Description
		if name == "" {
			name = "Product"
		}
		names = append(names, name)
		count += item.Quantity
	}
	return strings.Join(names, ", "), count
}

// purchaseTags assembles the segmentation tags for one purchase: amount,
// currency, mode, payment status, live/test, item count, purchase date, and
// any automation tag the session carries in metadata.
func purchaseTags(session *stripe.CheckoutSession, amount string, itemCount int64, now time.Time) []string {
	tags := []string{
		"stripe-purchase",
		"amount-" + amount,
		"currency-" + string(session.Currency),
	}
	if session.Mode == stripe.CheckoutSessionModeSubscription {
		tags = append(tags, "subscription")
	} else {
		tags = append(tags, "one-time-purchase")
	}
	if session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
		tags = append(tags, "payment-complete")
	} else {
		tags = append(tags, "payment-"+string(session.PaymentStatus))
	}
	if session.Livemode {
		tags = append(tags, "live-purchase")
	} else {
		tags = append(tags, "test-purchase")
	}
	tags = append(tags,
		fmt.Sprintf("items-%d", itemCount),
		now.UTC().Format("2006-01-02"),
	)
	if tag := session.Metadata["ghlTag"]; tag != "" {
		tags = append(tags, tag)
	}
	if session.Metadata["product"] == legacyProductID {
		tags = append(tags, legacyProductTag)
	}
	return tags
}

func purchaseFields(session *stripe.CheckoutSession, ids CustomFieldIDs, amount, productNames string, itemCount int64, now time.Time) []CustomField {
	fields := []CustomField{}
	push := func(id, value string) {
		if id != "" && value != "" {
			fields = append(fields, CustomField{ID: id, Value: value})
		}
	}

	if session.Customer != nil {
		push(ids.CustomerID, session.Customer.ID)
	}
	push(ids.SessionID, session.ID)
	push(ids.PurchaseAmount, amount)
	push(ids.PurchaseDate, now.UTC().Format(time.RFC3339))
	push(ids.Products, productNames)
	push(ids.PaymentMethods, strings.Join(session.PaymentMethodTypes, ", "))
	push(ids.Currency, string(session.Currency))
	push(ids.ItemCount, fmt.Sprintf("%d", itemCount))
	return fields
}

func sourceLabel(livemode bool) string {
	if livemode {
		return "Stripe Live"
	}
	return "Stripe Test"
}
