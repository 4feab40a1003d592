package runtimeconfig

import (
	"os"
	"strings"
)

// FromEnv overlays environment variables onto a configuration. Unset variables
// leave the corresponding field untouched so defaults survive.
func FromEnv(cfg Config) Config {
	setString(&cfg.Site.Name, "SITE_NAME")
	setString(&cfg.Site.BaseURL, "SITE_BASE_URL")
	setString(&cfg.Site.DefaultAuthor, "SITE_DEFAULT_AUTHOR")

	setString(&cfg.Content.Dir, "CONTENT_DIR")
	setString(&cfg.Content.MappingsFile, "URL_MAPPINGS_FILE")

	setString(&cfg.Generator.OutputDir, "STATIC_OUTPUT_DIR")

	setString(&cfg.Checkout.SecretKey, "STRIPE_SECRET_KEY")
	setString(&cfg.Checkout.AltSecretKey, "STRIPE_SECRET_KEY_ALT")
	cfg.Checkout.Enabled = cfg.Checkout.SecretKey != ""

	setString(&cfg.CRM.BaseURL, "GHL_API_BASE_URL")
	setString(&cfg.CRM.Token, "GHL_PAT_LOCATION")
	setString(&cfg.CRM.LocationID, "GHL_LOCATION_ID")
	cfg.CRM.Enabled = cfg.CRM.BaseURL != "" && cfg.CRM.Token != "" && cfg.CRM.LocationID != ""

	setString(&cfg.CRM.CustomFieldIDs.CustomerID, "GHL_CF_STRIPE_CUSTOMER_ID")
	setString(&cfg.CRM.CustomFieldIDs.SessionID, "GHL_CF_STRIPE_SESSION_ID")
	setString(&cfg.CRM.CustomFieldIDs.PurchaseAmount, "GHL_CF_LAST_PURCHASE_AMOUNT")
	setString(&cfg.CRM.CustomFieldIDs.PurchaseDate, "GHL_CF_LAST_PURCHASE_DATE")
	setString(&cfg.CRM.CustomFieldIDs.Products, "GHL_CF_PRODUCTS_PURCHASED")
	setString(&cfg.CRM.CustomFieldIDs.PaymentMethods, "GHL_CF_PAYMENT_METHOD_TYPES")
	setString(&cfg.CRM.CustomFieldIDs.Currency, "GHL_CF_CURRENCY")
	setString(&cfg.CRM.CustomFieldIDs.ItemCount, "GHL_CF_ITEM_COUNT")

	setString(&cfg.Proxy.Upstream, "CMS_PROXY_UPSTREAM")
	setString(&cfg.Proxy.Token, "CMS_PROXY_TOKEN")
	cfg.Proxy.Enabled = cfg.Proxy.Upstream != "" && cfg.Proxy.Token != ""

	setString(&cfg.Journal.DSN, "SYNC_JOURNAL_DSN")

	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")

	return cfg
}

func setString(target *string, key string) {
	if value, ok := os.LookupEnv(key); ok {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			*target = trimmed
		}
	}
}
