package site

import (
	"github.com/devinschumacher/devinschumacher.com/internal/runtimeconfig"
)

// Config aggregates every runtime setting for the site module.
type Config = runtimeconfig.Config

// Re-exported config sections so hosts configure the module without
// importing internal packages.
type (
	SiteConfig      = runtimeconfig.SiteConfig
	ContentConfig   = runtimeconfig.ContentConfig
	RoutesConfig    = runtimeconfig.RoutesConfig
	GeneratorConfig = runtimeconfig.GeneratorConfig
	CheckoutConfig  = runtimeconfig.CheckoutConfig
	CRMConfig       = runtimeconfig.CRMConfig
	CustomFieldIDs  = runtimeconfig.CustomFieldIDs
	ProxyConfig     = runtimeconfig.ProxyConfig
	JournalConfig   = runtimeconfig.JournalConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the conservative defaults: content loading on,
// everything needing credentials off.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ConfigFromEnv overlays environment variables on the defaults.
func ConfigFromEnv() Config {
	return runtimeconfig.FromEnv(runtimeconfig.DefaultConfig())
}
