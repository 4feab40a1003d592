package commands

import (
	"strings"

	"github.com/devinschumacher/devinschumacher.com/internal/logging"
)

const commandModuleRoot = "site.commands"

// CommandLogger returns a module-scoped logger for command handlers with
// consistent structured fields.
func CommandLogger(provider logging.LoggerProvider, module string) logging.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
