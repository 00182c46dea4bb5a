package config

import "fmt"

// Config represents the core TexQuill configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Paths    PathsConfig    `mapstructure:"paths"`
	Complete CompleteConfig `mapstructure:"complete"`
}

// ServerConfig configures the TexQuill language server
type ServerConfig struct {
	Port           *int     `mapstructure:"port"`            // WebSocket server port: nil = default 7421, 0 is invalid (omit for default)
	AllowedOrigins []string `mapstructure:"allowed_origins"` // Origins allowed to open WebSocket connections
	LogTheme       string   `mapstructure:"log_theme"`       // Color theme: gruvbox, everforest
}

// Server port constants
const (
	DefaultServerPort  = 7421  // Development port (above privileged range)
	FallbackServerPort = 57421 // Fallback when the default is taken
)

// PathsConfig configures where completions look beyond the document's own directory
type PathsConfig struct {
	ProjectRoots []string `mapstructure:"project_roots"` // Extra roots searched for every completion (absolute or workspace-relative)
}

// CompleteConfig configures the completion engine
type CompleteConfig struct {
	ExtraCommands []string `mapstructure:"extra_commands"` // Additional LaTeX commands treated as file-reference commands
	Advisories    *bool    `mapstructure:"advisories"`     // Rotating usage hints in results: nil = enabled
}

// GetServerPort returns the configured port, falling back to the default
func (c *Config) GetServerPort() int {
	if c.Server.Port == nil {
		return DefaultServerPort
	}
	return *c.Server.Port
}

// GetServerAllowedOrigins returns the allowed WebSocket origins
func (c *Config) GetServerAllowedOrigins() []string {
	if len(c.Server.AllowedOrigins) == 0 {
		return []string{
			"http://localhost",
			"https://localhost",
			"http://127.0.0.1",
			"https://127.0.0.1",
			"vscode-webview://", // Allow VS Code webview clients
		}
	}
	return c.Server.AllowedOrigins
}

// GetServerLogTheme returns the log theme (default: everforest)
func (c *Config) GetServerLogTheme() string {
	if c.Server.LogTheme == "" {
		return "everforest"
	}
	return c.Server.LogTheme
}

// AdvisoriesEnabled reports whether completion results should carry usage hints
func (c *Config) AdvisoriesEnabled() bool {
	if c.Complete.Advisories == nil {
		return true
	}
	return *c.Complete.Advisories
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Server: {Port: %d, LogTheme: %s}, Paths: {ProjectRoots: %d}}",
		c.GetServerPort(), c.GetServerLogTheme(), len(c.Paths.ProjectRoots))
}
