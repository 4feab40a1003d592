package crm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stripe/stripe-go/v81"

	"github.com/devinschumacher/devinschumacher.com/internal/payments"
)

type fakePayments struct {
	session *stripe.CheckoutSession
	err     error
	params  *stripe.CheckoutSessionParams
}

func (f *fakePayments) CreateCheckoutSession(context.Context, *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePayments) GetCheckoutSession(_ context.Context, _ string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.params = params
	return f.session, f.err
}

func (f *fakePayments) ListPromotionCodes(context.Context, *stripe.PromotionCodeListParams) ([]*stripe.PromotionCode, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePayments) CreatePrice(context.Context, *stripe.PriceParams) (*stripe.Price, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePayments) GetPrice(context.Context, string, *stripe.PriceParams) (*stripe.Price, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePayments) GetAccount(context.Context) (*stripe.Account, error) {
	return nil, errors.New("not implemented")
}

type memoryJournal struct {
	attempts []SyncAttempt
}

func (j *memoryJournal) Record(_ context.Context, attempt SyncAttempt) error {
	j.attempts = append(j.attempts, attempt)
	return nil
}

func TestSyncSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /contacts/lookup", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("POST /contacts/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"contact": map[string]string{"id": "contact_1"}})
	})

	crmClient, _ := newTestClient(t, mux)
	fake := &fakePayments{session: paidSession()}
	provider := payments.NewProviderWithClients(map[payments.Account]payments.Client{
		payments.AccountPrimary: fake,
	})
	journal := &memoryJournal{}
	syncer := NewSyncer(provider, crmClient, CustomFieldIDs{}, journal, nil)

	result, err := syncer.SyncSession(context.Background(), "cs_live_1", payments.AccountPrimary)
	if err != nil {
		t.Fatalf("SyncSession: %v", err)
	}
	if result.ContactID != "contact_1" || !result.Created {
		t.Fatalf("unexpected result: %#v", result)
	}
	if result.Email != "jane@example.com" {
		t.Fatalf("email = %q", result.Email)
	}
	if !hasTag(result.Tags, "stripe-purchase") {
		t.Fatalf("tags = %v", result.Tags)
	}

	expands := fake.params.Expand
	if len(expands) != 2 || *expands[0] != "customer" || *expands[1] != "line_items" {
		t.Fatalf("session retrieval must expand customer and line_items: %v", expands)
	}

	if len(journal.attempts) != 1 {
		t.Fatalf("attempts = %#v", journal.attempts)
	}
	attempt := journal.attempts[0]
	if !attempt.Succeeded || attempt.ContactID != "contact_1" || attempt.SessionID != "cs_live_1" {
		t.Fatalf("unexpected attempt: %#v", attempt)
	}
}

func TestSyncSessionJournalsFailures(t *testing.T) {
	fake := &fakePayments{err: errors.New("no such session")}
	provider := payments.NewProviderWithClients(map[payments.Account]payments.Client{
		payments.AccountPrimary: fake,
	})
	journal := &memoryJournal{}
	crmClient := NewClient(Config{BaseURL: "http://unused.invalid"}, nil, nil)
	syncer := NewSyncer(provider, crmClient, CustomFieldIDs{}, journal, nil)

	_, err := syncer.SyncSession(context.Background(), "cs_missing", payments.AccountPrimary)
	if err == nil {
		t.Fatalf("expected retrieval error")
	}
	if len(journal.attempts) != 1 {
		t.Fatalf("attempts = %#v", journal.attempts)
	}
	attempt := journal.attempts[0]
	if attempt.Succeeded || attempt.Error == "" || attempt.SessionID != "cs_missing" {
		t.Fatalf("unexpected attempt: %#v", attempt)
	}
}

func TestSyncSessionDisabled(t *testing.T) {
	syncer := NewSyncer(nil, nil, CustomFieldIDs{}, nil, nil)
	_, err := syncer.SyncSession(context.Background(), "cs_1", payments.AccountPrimary)
	if !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
