package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stripe/stripe-go/v81"

	"github.com/devinschumacher/devinschumacher.com/internal/checkout"
	"github.com/devinschumacher/devinschumacher.com/internal/crm"
	"github.com/devinschumacher/devinschumacher.com/internal/payments"
	"github.com/devinschumacher/devinschumacher.com/internal/syncjournal"
)

type fakeStripe struct {
	sessionParams *stripe.CheckoutSessionParams
}

func (f *fakeStripe) CreateCheckoutSession(_ context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.sessionParams = params
	return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://pay.example.com/cs_test_1"}, nil
}

func (f *fakeStripe) GetCheckoutSession(context.Context, string, *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStripe) ListPromotionCodes(context.Context, *stripe.PromotionCodeListParams) ([]*stripe.PromotionCode, error) {
	return nil, nil
}

func (f *fakeStripe) CreatePrice(context.Context, *stripe.PriceParams) (*stripe.Price, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStripe) GetPrice(context.Context, string, *stripe.PriceParams) (*stripe.Price, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStripe) GetAccount(context.Context) (*stripe.Account, error) {
	return &stripe.Account{ID: "acct_1", Email: "owner@example.com"}, nil
}

func newTestMux(t *testing.T, opts Options) (*http.ServeMux, *fakeStripe) {
	t.Helper()
	fake := &fakeStripe{}
	if opts.Checkout == nil {
		provider := payments.NewProviderWithClients(map[payments.Account]payments.Client{
			payments.AccountPrimary: fake,
		})
		catalog := checkout.NewCatalog([]checkout.CatalogEntry{
			{ProductID: "downloader", StripeProductID: "prod_1", StripePriceID: "price_1", CRMTag: "purchase-downloader"},
		})
		opts.Checkout = checkout.NewService(provider, catalog, checkout.Config{BaseURL: "https://example.com"}, nil)
		opts.Payments = provider
	}
	mux := http.NewServeMux()
	New(opts).Register(mux)
	return mux, fake
}

func TestCheckoutByPrice(t *testing.T) {
	mux, fake := newTestMux(t, Options{})

	body := strings.NewReader(`{"priceId":"price_direct","quantity":2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/checkout-by-price", body)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp checkoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SessionID != "cs_test_1" || resp.URL == "" {
		t.Fatalf("unexpected response: %#v", resp)
	}
	if *fake.sessionParams.LineItems[0].Price != "price_direct" {
		t.Fatalf("unexpected line item: %#v", fake.sessionParams.LineItems[0])
	}
}

func TestCheckoutValidationError(t *testing.T) {
	mux, _ := newTestMux(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/checkout-by-price", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "validation_failed" {
		t.Fatalf("error = %q", resp.Error)
	}
	if _, ok := resp.Fields["priceId"]; !ok {
		t.Fatalf("expected priceId field error: %#v", resp.Fields)
	}
}

func TestCheckoutUnknownProduct(t *testing.T) {
	mux, _ := newTestMux(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(`{"productId":"nope"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "product_not_found" {
		t.Fatalf("error = %q", resp.Error)
	}
}

func TestCheckoutIgnoresPriceID(t *testing.T) {
	mux, fake := newTestMux(t, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/checkout",
		strings.NewReader(`{"productId":"downloader","priceId":"price_sneaky"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if *fake.sessionParams.LineItems[0].Price != "price_1" {
		t.Fatalf("catalog endpoint must use the catalog price, got %#v", fake.sessionParams.LineItems[0])
	}
}

func TestBuyRedirect(t *testing.T) {
	mux, fake := newTestMux(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/buy/price_direct?quantity=2&allowPromo=1&ghlTag=vip", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "https://pay.example.com/cs_test_1" {
		t.Fatalf("location = %q", loc)
	}
	params := fake.sessionParams
	if *params.LineItems[0].Price != "price_direct" || *params.LineItems[0].Quantity != 2 {
		t.Fatalf("unexpected line item: %#v", params.LineItems[0])
	}
	if params.AllowPromotionCodes == nil || !*params.AllowPromotionCodes {
		t.Fatalf("allowPromo=1 must open promotion codes")
	}
	if params.Metadata["ghlTag"] != "vip" {
		t.Fatalf("metadata = %#v", params.Metadata)
	}
}

func TestCheckoutDisabled(t *testing.T) {
	mux := http.NewServeMux()
	New(Options{}).Register(mux)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(`{"productId":"x"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestWhoAmI(t *testing.T) {
	mux, _ := newTestMux(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/stripe/whoami", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp whoAmIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.AccountID != "acct_1" || resp.Email != "owner@example.com" {
		t.Fatalf("unexpected response: %#v", resp)
	}
	if resp.KeyMode != "test" {
		t.Fatalf("keyMode = %q, want test", resp.KeyMode)
	}
}

func TestCRMJournalEndpoint(t *testing.T) {
	ctx := context.Background()
	store, err := syncjournal.Open(ctx, "file:httpapi_journal?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.Record(ctx, crm.SyncAttempt{SessionID: "cs_1", Succeeded: true, ContactID: "contact_1"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	mux, _ := newTestMux(t, Options{Journal: store})

	req := httptest.NewRequest(http.MethodGet, "/api/crm/journal?sessionId=cs_1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp crmJournalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Entries) != 1 || resp.Entries[0].ContactID != "contact_1" {
		t.Fatalf("unexpected entries: %#v", resp.Entries)
	}
}

func TestCRMSyncRequiresSessionID(t *testing.T) {
	syncer := crm.NewSyncer(nil, crm.NewClient(crm.Config{BaseURL: "http://unused.invalid"}, nil, nil), crm.CustomFieldIDs{}, nil, nil)
	mux, _ := newTestMux(t, Options{Syncer: syncer})

	req := httptest.NewRequest(http.MethodPost, "/api/crm/sync", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestCMSProxyInjectsKey(t *testing.T) {
	var gotKey, gotPath, gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(upstream.Close)

	proxy, err := NewCMSProxy(upstream.URL, "secret-key", nil)
	if err != nil {
		t.Fatalf("NewCMSProxy: %v", err)
	}
	mux, _ := newTestMux(t, Options{Proxy: proxy})

	req := httptest.NewRequest(http.MethodGet, "/api/cms/content/posts?limit=5", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if gotKey != "secret-key" {
		t.Fatalf("upstream key = %q", gotKey)
	}
	if gotPath != "/content/posts" || gotQuery != "limit=5" {
		t.Fatalf("upstream path = %q query = %q", gotPath, gotQuery)
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
