package checkout

import (
	"context"
	"strings"

	"github.com/stripe/stripe-go/v81"

	"github.com/devinschumacher/devinschumacher.com/internal/logging"
	"github.com/devinschumacher/devinschumacher.com/internal/payments"
)

const (
	defaultSuccessPath = "/success?session_id={CHECKOUT_SESSION_ID}"
	defaultCancelPath  = "/"

	sessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

	// testModeUnitAmount is the inline 50-cent price used when a request
	// asks to exercise a catalog product without charging its real price.
	testModeUnitAmount = 50
)

// Config holds the site-level settings session creation needs.
type Config struct {
	BaseURL     string
	SuccessPath string
	CancelPath  string
}

// Service creates provider-hosted checkout sessions.
type Service struct {
	provider *payments.Provider
	catalog  *Catalog
	config   Config
	logger   logging.Logger
}

// NewService wires a checkout service. A nil catalog means product-id
// requests always miss.
func NewService(provider *payments.Provider, catalog *Catalog, config Config, logger logging.Logger) *Service {
	if catalog == nil {
		catalog = NewCatalog(nil)
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	if config.SuccessPath == "" {
		config.SuccessPath = defaultSuccessPath
	}
	if config.CancelPath == "" {
		config.CancelPath = defaultCancelPath
	}
	return &Service{provider: provider, catalog: catalog, config: config, logger: logger}
}

// Catalog exposes the product table for handlers that list it.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// CreateSession validates a request, resolves its price and discount, and
// creates the hosted session. The returned URL is where the caller redirects
// the customer.
func (s *Service) CreateSession(ctx context.Context, req SessionRequest) (*SessionResult, error) {
	if s.provider == nil {
		return nil, ErrDisabled
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	account, err := payments.ParseAccount(req.Account)
	if err != nil {
		return nil, err
	}
	client, err := s.provider.Client(account)
	if err != nil {
		return nil, err
	}

	lineItem, metadata, err := s.resolveLineItem(req)
	if err != nil {
		return nil, err
	}

	discounts, err := resolveDiscount(ctx, client, req)
	if err != nil {
		return nil, err
	}

	mode := req.Mode
	if mode == "" {
		mode = ModePayment
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(mode),
		LineItems:          []*stripe.CheckoutSessionLineItemParams{lineItem},
		SuccessURL:         stripe.String(s.successURL(req.SuccessPath)),
		CancelURL:          stripe.String(s.cancelURL(req.CancelPath)),
	}
	// The provider rejects requests carrying both a concrete discount and
	// the open promotion-code field.
	if len(discounts) > 0 {
		params.Discounts = discounts
	} else if req.AllowPromotionCodes {
		params.AllowPromotionCodes = stripe.Bool(true)
	}
	for key, value := range metadata {
		params.AddMetadata(key, value)
	}

	session, err := client.CreateCheckoutSession(ctx, params)
	if err != nil {
		return nil, err
	}
	if session.URL == "" {
		return nil, ErrSessionURLMissing
	}

	s.logger.Info("checkout session created",
		"session_id", session.ID,
		"mode", mode,
		"account", string(account),
		"discounted", len(discounts) > 0,
	)
	return &SessionResult{SessionID: session.ID, URL: session.URL}, nil
}

func (s *Service) resolveLineItem(req SessionRequest) (*stripe.CheckoutSessionLineItemParams, map[string]string, error) {
	quantity := int64(req.Quantity)
	if quantity < 1 {
		quantity = 1
	}

	metadata := make(map[string]string, len(req.Metadata)+2)
	for key, value := range req.Metadata {
		metadata[key] = value
	}

	if req.PriceID != "" {
		return &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(req.PriceID),
			Quantity: stripe.Int64(quantity),
		}, metadata, nil
	}

	entry, ok := s.catalog.Lookup(req.ProductID)
	if !ok {
		return nil, nil, NewProductNotFoundError(req.ProductID)
	}
	if _, exists := metadata["product"]; !exists {
		metadata["product"] = entry.ProductID
	}
	if _, exists := metadata["ghlTag"]; !exists && entry.CRMTag != "" {
		metadata["ghlTag"] = entry.CRMTag
	}

	if req.TestMode {
		return &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("usd"),
				Product:    stripe.String(entry.StripeProductID),
				UnitAmount: stripe.Int64(testModeUnitAmount),
			},
			Quantity: stripe.Int64(quantity),
		}, metadata, nil
	}
	return &stripe.CheckoutSessionLineItemParams{
		Price:    stripe.String(entry.StripePriceID),
		Quantity: stripe.Int64(quantity),
	}, metadata, nil
}

// successURL joins the base url and success path, guaranteeing the session id
// placeholder the success page needs to look the session up.
func (s *Service) successURL(path string) string {
	if path == "" {
		path = s.config.SuccessPath
	}
	if strings.Contains(path, sessionIDPlaceholder) {
		return s.config.BaseURL + path
	}
	return s.config.BaseURL + path + "?session_id=" + sessionIDPlaceholder
}

func (s *Service) cancelURL(path string) string {
	if path == "" {
		path = s.config.CancelPath
	}
	return s.config.BaseURL + path
}
