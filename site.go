// Package site assembles the marketing site's content pipeline, static
// export, and commerce endpoints into a single module a host binary can run.
package site

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/goliatone/go-urlkit"

	"github.com/devinschumacher/devinschumacher.com/internal/checkout"
	"github.com/devinschumacher/devinschumacher.com/internal/content"
	"github.com/devinschumacher/devinschumacher.com/internal/crm"
	"github.com/devinschumacher/devinschumacher.com/internal/generator"
	"github.com/devinschumacher/devinschumacher.com/internal/httpapi"
	"github.com/devinschumacher/devinschumacher.com/internal/logging"
	"github.com/devinschumacher/devinschumacher.com/internal/logging/gologger"
	"github.com/devinschumacher/devinschumacher.com/internal/payments"
	"github.com/devinschumacher/devinschumacher.com/internal/routes"
	"github.com/devinschumacher/devinschumacher.com/internal/syncjournal"
)

// Service surface re-exports so hosts can hold module services without
// importing internal packages.
type (
	ContentLoader    = content.Loader
	ContentSnapshot  = content.Snapshot
	GeneratorService = generator.Service
	CheckoutService  = checkout.Service
	CheckoutCatalog  = checkout.Catalog
	CatalogEntry     = checkout.CatalogEntry
	CRMSyncer        = crm.Syncer
	JournalStore     = syncjournal.Store
	Logger           = logging.Logger
)

// Options carry pieces the config file cannot: the product catalog and an
// optional pre-built logger provider.
type Options struct {
	Catalog        []checkout.CatalogEntry
	LoggerProvider logging.LoggerProvider
}

// Module owns every wired service for one site instance.
type Module struct {
	config   Config
	provider logging.LoggerProvider
	logger   logging.Logger

	loader   *content.Loader
	mappings *routes.Mappings
	links    *routes.LinkBuilder

	generator *generator.Service
	payments  *payments.Provider
	checkout  *checkout.Service
	syncer    *crm.Syncer
	journal   *syncjournal.Store
	api       *httpapi.API
}

// New validates the configuration and wires the module. Disabled features
// leave their service nil; the HTTP layer answers for them with 503s.
func New(ctx context.Context, cfg Config, opts Options) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider := opts.LoggerProvider
	if provider == nil {
		built, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		provider = built
	}

	m := &Module{
		config:   cfg,
		provider: provider,
		logger:   logging.ModuleLogger(provider, logging.ModuleRoot),
	}
	if err := m.wireContent(); err != nil {
		return nil, err
	}
	if err := m.wireRoutes(); err != nil {
		return nil, err
	}
	if err := m.wireGenerator(); err != nil {
		return nil, err
	}
	if err := m.wireCommerce(ctx, opts.Catalog); err != nil {
		return nil, err
	}
	m.wireAPI()

	return m, nil
}

func (m *Module) wireContent() error {
	root := os.DirFS(m.config.Content.Dir)
	m.loader = content.NewLoader(root, content.Defaults{
		Author: m.config.Site.DefaultAuthor,
	})

	mappings, err := routes.LoadMappings(root, m.config.Content.MappingsFile)
	if err != nil {
		return err
	}
	m.mappings = mappings
	return nil
}

func (m *Module) wireRoutes() error {
	routeConfig := m.config.Routes.RouteConfig
	if routeConfig == nil {
		routeConfig = routes.DefaultRouteConfig(m.config.Site.BaseURL)
	}
	group := m.config.Routes.Group
	if group == "" {
		group = routes.PublicGroup
	}
	manager := urlkit.NewRouteManager(routeConfig)
	m.links = routes.NewLinkBuilder(manager, group)
	return nil
}

func (m *Module) wireGenerator() error {
	if !m.config.Generator.Enabled {
		return nil
	}
	service, err := generator.NewService(generator.Config{
		OutputDir:  m.config.Generator.OutputDir,
		CleanBuild: m.config.Generator.CleanBuild,
	}, generator.Dependencies{
		Snapshots: m.loader,
		Mappings:  m.mappings,
		Logger:    logging.GeneratorLogger(m.provider),
	})
	if err != nil {
		return err
	}
	m.generator = service
	return nil
}

func (m *Module) wireCommerce(ctx context.Context, catalog []checkout.CatalogEntry) error {
	if m.config.Checkout.Enabled {
		provider, err := payments.NewProvider(
			m.config.Checkout.SecretKey,
			m.config.Checkout.AltSecretKey,
			logging.CheckoutLogger(m.provider),
		)
		if err != nil {
			return err
		}
		m.payments = provider
		m.checkout = checkout.NewService(provider, checkout.NewCatalog(catalog), checkout.Config{
			BaseURL:     m.config.Site.BaseURL,
			SuccessPath: m.config.Checkout.SuccessPath,
			CancelPath:  m.config.Checkout.CancelPath,
		}, logging.CheckoutLogger(m.provider))
	}

	if m.config.Journal.Enabled {
		store, err := syncjournal.Open(ctx, m.config.Journal.DSN)
		if err != nil {
			return err
		}
		m.journal = store
	}

	if m.config.CRM.Enabled {
		if m.payments == nil {
			return fmt.Errorf("site: CRM sync requires checkout credentials")
		}
		client := crm.NewClient(crm.Config{
			BaseURL:    m.config.CRM.BaseURL,
			Token:      m.config.CRM.Token,
			LocationID: m.config.CRM.LocationID,
			APIVersion: m.config.CRM.APIVersion,
		}, nil, logging.CRMLogger(m.provider))

		var journal crm.Journal
		if m.journal != nil {
			journal = m.journal
		}
		m.syncer = crm.NewSyncer(m.payments, client, crm.CustomFieldIDs(m.config.CRM.CustomFieldIDs), journal, logging.CRMLogger(m.provider))
	}
	return nil
}

func (m *Module) wireAPI() {
	var proxy *httpapi.CMSProxy
	if m.config.Proxy.Enabled {
		built, err := httpapi.NewCMSProxy(m.config.Proxy.Upstream, m.config.Proxy.Token, logging.HTTPLogger(m.provider))
		if err != nil {
			m.logger.Warn("cms proxy disabled", "upstream", m.config.Proxy.Upstream, "error", err)
		} else {
			proxy = built
		}
	}
	m.api = httpapi.New(httpapi.Options{
		Checkout: m.checkout,
		Payments: m.payments,
		Syncer:   m.syncer,
		Journal:  m.journal,
		Proxy:    proxy,
		Logger:   logging.HTTPLogger(m.provider),
	})
}

// Content returns the markdown loader.
func (m *Module) Content() *content.Loader { return m.loader }

// Mappings returns the legacy URL table.
func (m *Module) Mappings() *routes.Mappings { return m.mappings }

// Links returns the canonical link builder.
func (m *Module) Links() *routes.LinkBuilder { return m.links }

// Generator returns the static export service, nil when disabled.
func (m *Module) Generator() *generator.Service { return m.generator }

// Checkout returns the session builder, nil when disabled.
func (m *Module) Checkout() *checkout.Service { return m.checkout }

// Syncer returns the CRM syncer, nil when disabled.
func (m *Module) Syncer() *crm.Syncer { return m.syncer }

// Journal returns the sync journal store, nil when disabled.
func (m *Module) Journal() *syncjournal.Store { return m.journal }

// Logger returns the module root logger.
func (m *Module) Logger() logging.Logger { return m.logger }

// RegisterRoutes mounts the JSON API on the mux.
func (m *Module) RegisterRoutes(mux *http.ServeMux) {
	m.api.Register(mux)
}

// Close releases module resources.
func (m *Module) Close() error {
	if m.journal != nil {
		return m.journal.Close()
	}
	return nil
}
