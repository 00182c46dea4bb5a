package config

import "github.com/spf13/viper"

// Default file permissions for created directories
const DefaultDirPermissions = 0750

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost",
		"https://localhost",
		"http://127.0.0.1",
		"https://127.0.0.1",
		"vscode-webview://", // Allow VS Code webview clients
	})
	v.SetDefault("server.log_theme", "everforest")

	// Path defaults
	v.SetDefault("paths.project_roots", []string{})

	// Completion defaults
	v.SetDefault("complete.extra_commands", []string{})
	v.SetDefault("complete.advisories", true)
}

// BindEnvVars explicitly binds frequently overridden settings to environment variables
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("server.port", "TEXQUILL_SERVER_PORT")
	v.BindEnv("server.log_theme", "TEXQUILL_LOG_THEME")
	v.BindEnv("paths.project_roots", "TEXQUILL_PROJECT_ROOTS")
}
