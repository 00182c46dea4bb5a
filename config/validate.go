package config

import (
	"strings"

	"github.com/texquill/texquill/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Server port: 0 is invalid (omit for default), negative is invalid
	if c.Server.Port != nil && *c.Server.Port == 0 {
		return errors.Newf("server.port cannot be 0 (omit for default port %d)", DefaultServerPort)
	}
	if c.Server.Port != nil && *c.Server.Port < 0 {
		return errors.Newf("server.port must be positive, got %d", *c.Server.Port)
	}

	// Log theme must be one of the known palettes when set
	switch c.Server.LogTheme {
	case "", "gruvbox", "everforest":
	default:
		return errors.Newf("server.log_theme must be gruvbox or everforest, got %q", c.Server.LogTheme)
	}

	// Project roots: empty strings are always a configuration mistake
	for i, root := range c.Paths.ProjectRoots {
		if strings.TrimSpace(root) == "" {
			return errors.Newf("paths.project_roots[%d] is empty", i)
		}
	}

	// Extra commands are bare command names, no backslash or braces
	for i, name := range c.Complete.ExtraCommands {
		if name == "" {
			return errors.Newf("complete.extra_commands[%d] is empty", i)
		}
		if strings.ContainsAny(name, "\\{}") {
			return errors.Newf("complete.extra_commands[%d] must be a bare command name, got %q", i, name)
		}
	}

	return nil
}
