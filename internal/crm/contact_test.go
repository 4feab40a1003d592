package crm

import (
	"testing"
	"time"

	"github.com/stripe/stripe-go/v81"
)

func paidSession() *stripe.CheckoutSession {
	return &stripe.CheckoutSession{
		ID:            "cs_live_1",
		AmountTotal:   4999,
		Currency:      stripe.CurrencyUSD,
		Mode:          stripe.CheckoutSessionModePayment,
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		Livemode:      true,
		Customer:      &stripe.Customer{ID: "cus_1"},
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{
			Email: "jane@example.com",
			Name:  "Jane Q Doe",
			Phone: "+15551234567",
			Address: &stripe.Address{
				Line1:      "1 Main St",
				City:       "Austin",
				State:      "TX",
				PostalCode: "78701",
				Country:    "us",
			},
		},
		LineItems: &stripe.LineItemList{
			Data: []*stripe.LineItem{
				{Description: "Downloader", Quantity: 1},
				{Description: "", Quantity: 2},
			},
		},
		PaymentMethodTypes: []string{"card"},
		Metadata: map[string]string{
			"ghlTag":  "purchase-downloader",
			"product": "skool-video-downloader",
		},
	}
}

func TestContactFromSession(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	fieldIDs := CustomFieldIDs{
		CustomerID:     "f_customer",
		SessionID:      "f_session",
		PurchaseAmount: "f_amount",
		Currency:       "f_currency",
	}

	contact := ContactFromSession(paidSession(), fieldIDs, now)

	if contact.FirstName != "Jane" || contact.LastName != "Q Doe" {
		t.Fatalf("name split = %q %q", contact.FirstName, contact.LastName)
	}
	if contact.Email != "jane@example.com" || contact.Phone != "+15551234567" {
		t.Fatalf("unexpected contact details: %#v", contact)
	}
	if contact.Source != "Stripe Live" {
		t.Fatalf("source = %q", contact.Source)
	}
	if contact.Country != "US" {
		t.Fatalf("country must be uppercased, got %q", contact.Country)
	}
	if contact.Address1 != "1 Main St" || contact.City != "Austin" {
		t.Fatalf("address missing: %#v", contact)
	}

	wantTags := []string{
		"stripe-purchase",
		"amount-49.99",
		"currency-usd",
		"one-time-purchase",
		"payment-complete",
		"live-purchase",
		"items-3",
		"2024-03-15",
		"purchase-downloader",
		"purchase-skool-video-downloader-stripe",
	}
	if len(contact.Tags) != len(wantTags) {
		t.Fatalf("tags = %v, want %v", contact.Tags, wantTags)
	}
	for i, tag := range wantTags {
		if contact.Tags[i] != tag {
			t.Fatalf("tag[%d] = %q, want %q", i, contact.Tags[i], tag)
		}
	}

	// Only configured field ids are sent.
	if len(contact.CustomFields) != 4 {
		t.Fatalf("custom fields = %#v", contact.CustomFields)
	}
	byID := map[string]string{}
	for _, field := range contact.CustomFields {
		byID[field.ID] = field.Value
	}
	if byID["f_customer"] != "cus_1" || byID["f_session"] != "cs_live_1" {
		t.Fatalf("unexpected custom fields: %v", byID)
	}
	if byID["f_amount"] != "49.99" || byID["f_currency"] != "usd" {
		t.Fatalf("unexpected custom fields: %v", byID)
	}
}

func TestContactFromSessionTestModeUnpaid(t *testing.T) {
	session := paidSession()
	session.Livemode = false
	session.Mode = stripe.CheckoutSessionModeSubscription
	session.PaymentStatus = stripe.CheckoutSessionPaymentStatusUnpaid
	session.Metadata = nil
	session.CustomerDetails.Address = nil

	contact := ContactFromSession(session, CustomFieldIDs{}, time.Now())

	if contact.Source != "Stripe Test" {
		t.Fatalf("source = %q", contact.Source)
	}
	if contact.Country != "" {
		t.Fatalf("no address expected: %#v", contact)
	}
	if len(contact.CustomFields) != 0 {
		t.Fatalf("no field ids configured, got %#v", contact.CustomFields)
	}
	if !hasTag(contact.Tags, "subscription") || !hasTag(contact.Tags, "payment-unpaid") || !hasTag(contact.Tags, "test-purchase") {
		t.Fatalf("tags = %v", contact.Tags)
	}
	if hasTag(contact.Tags, "one-time-purchase") || hasTag(contact.Tags, "payment-complete") {
		t.Fatalf("tags = %v", contact.Tags)
	}
}

func TestSplitName(t *testing.T) {
	cases := []struct {
		in, first, last string
	}{
		{"", "", ""},
		{"Cher", "Cher", ""},
		{"Jane Doe", "Jane", "Doe"},
		{"Jane van der Berg", "Jane", "van der Berg"},
	}
	for _, tc := range cases {
		first, last := splitName(tc.in)
		if first != tc.first || last != tc.last {
			t.Fatalf("splitName(%q) = %q %q, want %q %q", tc.in, first, last, tc.first, tc.last)
		}
	}
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}
