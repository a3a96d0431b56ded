package app

import (
	"go.trai.ch/mason/internal/adapters/logger"
	"go.trai.ch/mason/internal/core/ports"
)

// Components contains all the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
}

// PrettyLogger returns the concrete logger adapter when the components
// were wired with it, for surfaces (like the CLI) that need to switch the
// output format. It returns nil when a different Logger was injected.
func (c *Components) PrettyLogger() *logger.Logger {
	l, _ := c.Logger.(*logger.Logger)
	return l
}
