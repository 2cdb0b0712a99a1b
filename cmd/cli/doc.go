// Package cli constructs the assets-check command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives. Configuration comes from the embedded defaults, an optional
// configuration file, ASSETSCHECK_ prefixed environment variables, and the
// GitHub Actions INPUT_ variables, in increasing order of precedence.
package cli
