package payments

import (
	"context"
	"strings"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"github.com/devinschumacher/devinschumacher.com/internal/logging"
)

// Account selects which configured payment account a request runs against.
type Account string

const (
	// AccountPrimary is the default account.
	AccountPrimary Account = "primary"
	// AccountAlt is the secondary account, used when a request asks for it
	// explicitly.
	AccountAlt Account = "alt"
)

// ParseAccount maps the request-level account selector onto an Account. An
// empty selector means primary.
func ParseAccount(raw string) (Account, error) {
	switch raw {
	case "", string(AccountPrimary):
		return AccountPrimary, nil
	case string(AccountAlt):
		return AccountAlt, nil
	default:
		return "", ErrAccountUnknown
	}
}

// KeyMode says whether an account's secret key is a live or a test key.
type KeyMode string

const (
	KeyModeLive KeyMode = "live"
	KeyModeTest KeyMode = "test"
)

func keyModeFor(key string) KeyMode {
	if strings.HasPrefix(key, "sk_live_") {
		return KeyModeLive
	}
	return KeyModeTest
}

// Client is the payment provider surface the checkout and sync layers use.
type Client interface {
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	ListPromotionCodes(ctx context.Context, params *stripe.PromotionCodeListParams) ([]*stripe.PromotionCode, error)
	CreatePrice(ctx context.Context, params *stripe.PriceParams) (*stripe.Price, error)
	GetPrice(ctx context.Context, id string, params *stripe.PriceParams) (*stripe.Price, error)
	GetAccount(ctx context.Context) (*stripe.Account, error)
}

// Provider hands out clients per account. Keys are fixed at construction.
type Provider struct {
	clients map[Account]Client
	modes   map[Account]KeyMode
}

// NewProvider builds a provider from the configured secret keys. An empty alt
// key leaves the alt account unconfigured.
func NewProvider(primaryKey, altKey string, logger logging.Logger) (*Provider, error) {
	if primaryKey == "" {
		return nil, ErrKeyMissing
	}
	if logger == nil {
		logger = logging.NoOp()
	}

	clients := map[Account]Client{
		AccountPrimary: newStripeClient(primaryKey),
	}
	modes := map[Account]KeyMode{
		AccountPrimary: keyModeFor(primaryKey),
	}
	if altKey != "" {
		clients[AccountAlt] = newStripeClient(altKey)
		modes[AccountAlt] = keyModeFor(altKey)
	}
	logger.Debug("payment provider configured", "accounts", len(clients))

	return &Provider{clients: clients, modes: modes}, nil
}

// NewProviderWithClients builds a provider from pre-built clients. Used by
// tests and hosts that bring their own transport.
func NewProviderWithClients(clients map[Account]Client) *Provider {
	copied := make(map[Account]Client, len(clients))
	modes := make(map[Account]KeyMode, len(clients))
	for account, c := range clients {
		copied[account] = c
		modes[account] = KeyModeTest
	}
	return &Provider{clients: copied, modes: modes}
}

// Client returns the client for an account.
func (p *Provider) Client(account Account) (Client, error) {
	c, ok := p.clients[account]
	if !ok {
		if account == AccountAlt || account == AccountPrimary {
			return nil, ErrKeyMissing
		}
		return nil, ErrAccountUnknown
	}
	return c, nil
}

// KeyMode reports whether the account was configured with a live or a test
// key. Unconfigured accounts read as test.
func (p *Provider) KeyMode(account Account) KeyMode {
	if mode, ok := p.modes[account]; ok {
		return mode
	}
	return KeyModeTest
}

type stripeClient struct {
	api *client.API
}

func newStripeClient(key string) *stripeClient {
	api := &client.API{}
	api.Init(key, nil)
	return &stripeClient{api: api}
}

func (c *stripeClient) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	params.Context = ctx
	return c.api.CheckoutSessions.New(params)
}

func (c *stripeClient) GetCheckoutSession(ctx context.Context, id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	if params == nil {
		params = &stripe.CheckoutSessionParams{}
	}
	params.Context = ctx
	return c.api.CheckoutSessions.Get(id, params)
}

func (c *stripeClient) ListPromotionCodes(ctx context.Context, params *stripe.PromotionCodeListParams) ([]*stripe.PromotionCode, error) {
	if params == nil {
		params = &stripe.PromotionCodeListParams{}
	}
	params.Context = ctx

	var codes []*stripe.PromotionCode
	iter := c.api.PromotionCodes.List(params)
	for iter.Next() {
		codes = append(codes, iter.PromotionCode())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return codes, nil
}

func (c *stripeClient) CreatePrice(ctx context.Context, params *stripe.PriceParams) (*stripe.Price, error) {
	params.Context = ctx
	return c.api.Prices.New(params)
}

func (c *stripeClient) GetPrice(ctx context.Context, id string, params *stripe.PriceParams) (*stripe.Price, error) {
	if params == nil {
		params = &stripe.PriceParams{}
	}
	params.Context = ctx
	return c.api.Prices.Get(id, params)
}

func (c *stripeClient) GetAccount(_ context.Context) (*stripe.Account, error) {
	return c.api.Accounts.Get()
}
