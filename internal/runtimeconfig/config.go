package runtimeconfig

import (
	"errors"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrBaseURLRequired indicates the public site URL is missing.
var ErrBaseURLRequired = errors.New("site config: base URL is required")

// ErrContentDirRequired indicates the content root directory is missing.
var ErrContentDirRequired = errors.New("site config: content directory is required")

// ErrGeneratorOutputDirRequired indicates the static build has nowhere to write.
var ErrGeneratorOutputDirRequired = errors.New("site config: generator output directory is required when generator is enabled")

// ErrCheckoutKeyRequired indicates checkout is enabled without a provider key.
var ErrCheckoutKeyRequired = errors.New("site config: payment provider secret key is required when checkout is enabled")

// ErrCRMConfigIncomplete indicates CRM sync is enabled without API coordinates.
var ErrCRMConfigIncomplete = errors.New("site config: CRM base URL, token, and location id are required when CRM sync is enabled")

var ErrLoggingLevelInvalid = errors.New("site config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("site config: logging format is invalid")

// Config aggregates runtime settings for the site module. Fields intentionally
// use simple types so host applications can extend them later.
type Config struct {
	Site      SiteConfig
	Content   ContentConfig
	Routes    RoutesConfig
	Generator GeneratorConfig
	Checkout  CheckoutConfig
	CRM       CRMConfig
	Proxy     ProxyConfig
	Journal   JournalConfig
	Logging   LoggingConfig
}

// SiteConfig captures site identity used for defaults and link generation.
type SiteConfig struct {
	Name          string
	BaseURL       string
	DefaultAuthor string
}

// ContentConfig points at the markdown content tree.
type ContentConfig struct {
	Dir string
	// MappingsFile holds the legacy URL-to-content table (YAML). Optional.
	MappingsFile string
}

// RoutesConfig wires go-urlkit route groups used for canonical links.
type RoutesConfig struct {
	RouteConfig *urlkit.Config
	// Group names the urlkit group used for public links.
	Group string
}

// GeneratorConfig captures static export behaviour.
type GeneratorConfig struct {
	Enabled    bool
	OutputDir  string
	CleanBuild bool
}

// CheckoutConfig carries payment provider credentials and return paths.
type CheckoutConfig struct {
	Enabled      bool
	SecretKey    string
	AltSecretKey string
	SuccessPath  string
	CancelPath   string
}

// CRMConfig carries the CRM API coordinates and optional custom-field ids.
// A custom field whose id is empty is silently omitted from contact payloads.
type CRMConfig struct {
	Enabled    bool
	BaseURL    string
	Token      string
	LocationID string
	APIVersion string

	CustomFieldIDs CustomFieldIDs
}

// CustomFieldIDs maps purchase attributes to provider-side field ids.
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

// ProxyConfig configures the hosted CMS content API pass-through.
type ProxyConfig struct {
	Enabled  bool
	Upstream string
	Token    string
}

// JournalConfig configures the CRM sync journal store.
type JournalConfig struct {
	Enabled bool
	DSN     string
}

// LoggingConfig selects logger behaviour for the module.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns a configuration with conservative defaults: content
// loading enabled, everything that needs credentials disabled.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			BaseURL:       "http://localhost:3000",
			DefaultAuthor: "Admin",
		},
		Content: ContentConfig{
			Dir: "./content",
		},
		Routes: RoutesConfig{
			Group: "public",
		},
		Generator: GeneratorConfig{
			OutputDir: "./out",
		},
		Checkout: CheckoutConfig{
			SuccessPath: "/success?session_id={CHECKOUT_SESSION_ID}",
			CancelPath:  "/",
		},
		CRM: CRMConfig{
			APIVersion: "2021-07-28",
		},
		Journal: JournalConfig{
			DSN: "file:sync_journal.db?cache=shared",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate reports the first configuration inconsistency found.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Site.BaseURL) == "" {
		return ErrBaseURLRequired
	}
	if strings.TrimSpace(c.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if c.Generator.Enabled && strings.TrimSpace(c.Generator.OutputDir) == "" {
		return ErrGeneratorOutputDirRequired
	}
	if c.Checkout.Enabled && strings.TrimSpace(c.Checkout.SecretKey) == "" {
		return ErrCheckoutKeyRequired
	}
	if c.CRM.Enabled {
		if strings.TrimSpace(c.CRM.BaseURL) == "" ||
			strings.TrimSpace(c.CRM.Token) == "" ||
			strings.TrimSpace(c.CRM.LocationID) == "" {
			return ErrCRMConfigIncomplete
		}
	}
	if err := validateLogging(c.Logging); err != nil {
		return err
	}
	return nil
}

func validateLogging(cfg LoggingConfig) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json", "console", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}
	return nil
}
