// Package utils exposes reusable helpers consumed by the CLI commands.
//
// It houses the ConfigurationLoader (Viper with embedded defaults, environment
// overrides and GitHub Actions input aliases), the zap LoggerFactory, and the
// CommandContextAccessor that carries root-level values into subcommands.
package utils
