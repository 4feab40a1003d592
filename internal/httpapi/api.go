package httpapi

import (
	"net/http"

	"github.com/devinschumacher/devinschumacher.com/internal/checkout"
	"github.com/devinschumacher/devinschumacher.com/internal/crm"
	"github.com/devinschumacher/devinschumacher.com/internal/logging"
	"github.com/devinschumacher/devinschumacher.com/internal/payments"
	"github.com/devinschumacher/devinschumacher.com/internal/syncjournal"
)

// API exposes the site's JSON endpoints over a standard ServeMux.
type API struct {
	checkout *checkout.Service
	payments *payments.Provider
	syncer   *crm.Syncer
	journal  *syncjournal.Store
	proxy    *CMSProxy
	logger   logging.Logger
}

// Options wires an API. Nil services disable their endpoints with a 503.
type Options struct {
	Checkout *checkout.Service
	Payments *payments.Provider
	Syncer   *crm.Syncer
	Journal  *syncjournal.Store
	Proxy    *CMSProxy
	Logger   logging.Logger
}

// New builds the API facade.
func New(opts Options) *API {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &API{
		checkout: opts.Checkout,
		payments: opts.Payments,
		syncer:   opts.Syncer,
		journal:  opts.Journal,
		proxy:    opts.Proxy,
		logger:   logger,
	}
}

// Register mounts every endpoint on the mux.
func (api *API) Register(mux *http.ServeMux) {
	if mux == nil {
		return
	}
	mux.HandleFunc("POST /api/checkout", api.handleCheckout)
	mux.HandleFunc("POST /api/checkout-by-price", api.handleCheckoutByPrice)
	mux.HandleFunc("GET /buy/{priceID}", api.handleBuyRedirect)

	mux.HandleFunc("POST /api/stripe/create-price", api.handleCreatePrice)
	mux.HandleFunc("GET /api/stripe/get-price", api.handleGetPrice)
	mux.HandleFunc("GET /api/stripe/whoami", api.handleWhoAmI)

	mux.HandleFunc("POST /api/crm/sync", api.handleCRMSync)
	mux.HandleFunc("GET /api/crm/journal", api.handleCRMJournal)

	if api.proxy != nil {
		mux.Handle("GET /api/cms/{path...}", api.proxy)
		mux.Handle("POST /api/cms/{path...}", api.proxy)
	}
}
