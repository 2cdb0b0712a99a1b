package cli

import (
	"bytes"
	_ "embed"
)

//go:embed default_config.yaml
var defaultAssetsCheckConfiguration []byte

// EmbeddedDefaultConfiguration returns a private copy of the built-in
// assets-check defaults together with their viper configuration type.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return bytes.Clone(defaultAssetsCheckConfiguration), configurationTypeConstant
}
