package logging

import (
	"context"
	"maps"
	"strings"
)

// Logger defines the leveled logging contract used across the site runtime.
// It mirrors the interface exposed by github.com/goliatone/go-logger so the
// provider can be swapped without adapters at the call sites.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider exposes named loggers. Implementations can return the same
// instance for every name or scope loggers per module.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for attaching persistent structured
// fields to a logger.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

// ModuleRoot is the name of the top-level module logger.
const ModuleRoot = "site"

const (
	rootModule      = ModuleRoot
	contentModule   = "site.content"
	routesModule    = "site.routes"
	generatorModule = "site.generator"
	checkoutModule  = "site.checkout"
	crmModule       = "site.crm"
	httpModule      = "site.http"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as structured context so entries can be filtered predictably.
func ModuleLogger(provider LoggerProvider, module string) Logger {
	module = strings.TrimSpace(module)
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ContentLogger returns the logger namespace reserved for content loading.
func ContentLogger(provider LoggerProvider) Logger {
	return ModuleLogger(provider, contentModule)
}

// RoutesLogger returns the logger namespace reserved for URL resolution.
func RoutesLogger(provider LoggerProvider) Logger {
	return ModuleLogger(provider, routesModule)
}

// GeneratorLogger returns the logger namespace reserved for static builds.
func GeneratorLogger(provider LoggerProvider) Logger {
	return ModuleLogger(provider, generatorModule)
}

// CheckoutLogger returns the logger namespace reserved for checkout flows.
func CheckoutLogger(provider LoggerProvider) Logger {
	return ModuleLogger(provider, checkoutModule)
}

// CRMLogger returns the logger namespace reserved for CRM sync.
func CRMLogger(provider LoggerProvider) Logger {
	return ModuleLogger(provider, crmModule)
}

// HTTPLogger returns the logger namespace reserved for the HTTP API.
func HTTPLogger(provider LoggerProvider) Logger {
	return ModuleLogger(provider, httpModule)
}

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Callers can pass nil or an
// empty map to skip allocation safely.
func WithFields(logger Logger, fields map[string]any) Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// NoOp returns a logger that discards every entry.
func NoOp() Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) Logger {
	return n
}
