package gate

import (
	"strings"

	"github.com/temirov/assetscheck/internal/assets"
)

// Scanner kinds accepted by the check command.
const (
	ScannerWalk = "walk"
	ScannerFind = "find"
)

// Dry run output formats accepted by the check command.
const (
	OutputFormatMarkdown = "markdown"
	OutputFormatTable    = "table"
	OutputFormatJSON     = "json"
	OutputFormatYAML     = "yaml"
)

const (
	defaultTargetFolderConstant  = "."
	defaultThresholdSizeConstant = "100"
	// DefaultBotLogin is the author of comments posted with the workflow token.
	DefaultBotLogin = "github-actions[bot]"
)

// ScannerChoices lists the accepted scanner kinds.
var ScannerChoices = []string{ScannerWalk, ScannerFind}

// OutputFormatChoices lists the accepted dry run output formats.
var OutputFormatChoices = []string{OutputFormatMarkdown, OutputFormatTable, OutputFormatJSON, OutputFormatYAML}

// Configuration stores the check command settings.
type Configuration struct {
	Token         string   `mapstructure:"token"`
	TargetFolder  string   `mapstructure:"target_folder"`
	ThresholdSize string   `mapstructure:"threshold_size"`
	IgnoreFile    string   `mapstructure:"ignore_file"`
	Extensions    []string `mapstructure:"extensions"`
	Scanner       string   `mapstructure:"scanner"`
	BotLogin      string   `mapstructure:"bot_login"`
	Note          string   `mapstructure:"note"`
	DryRun        bool     `mapstructure:"dry_run"`
	OutputFormat  string   `mapstructure:"output_format"`
}

// DefaultConfiguration supplies baseline values for the check command.
func DefaultConfiguration() Configuration {
	return Configuration{
		TargetFolder:  defaultTargetFolderConstant,
		ThresholdSize: defaultThresholdSizeConstant,
		IgnoreFile:    assets.DefaultIgnoreFileName,
		Extensions:    append([]string(nil), assets.DefaultExtensions...),
		Scanner:       ScannerWalk,
		BotLogin:      DefaultBotLogin,
		OutputFormat:  OutputFormatMarkdown,
	}
}

// Sanitize trims configured values and fills blanks with defaults.
// The token and target folder are left empty when unset so they can be
// reported as missing inputs.
func (configuration Configuration) Sanitize() Configuration {
	defaults := DefaultConfiguration()
	sanitized := configuration

	sanitized.Token = strings.TrimSpace(configuration.Token)
	sanitized.TargetFolder = strings.TrimSpace(configuration.TargetFolder)
	sanitized.ThresholdSize = strings.TrimSpace(configuration.ThresholdSize)
	sanitized.IgnoreFile = fallbackString(configuration.IgnoreFile, defaults.IgnoreFile)
	sanitized.Scanner = strings.ToLower(fallbackString(configuration.Scanner, defaults.Scanner))
	sanitized.BotLogin = fallbackString(configuration.BotLogin, defaults.BotLogin)
	sanitized.Note = strings.TrimSpace(configuration.Note)
	sanitized.OutputFormat = strings.ToLower(fallbackString(configuration.OutputFormat, defaults.OutputFormat))

	sanitized.Extensions = sanitizeExtensions(configuration.Extensions)
	if len(sanitized.Extensions) == 0 {
		sanitized.Extensions = defaults.Extensions
	}

	return sanitized
}

func fallbackString(value string, fallback string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return fallback
	}
	return trimmedValue
}

func sanitizeExtensions(candidateExtensions []string) []string {
	sanitizedExtensions := make([]string, 0, len(candidateExtensions))
	for _, candidateExtension := range candidateExtensions {
		trimmedExtension := strings.TrimSpace(candidateExtension)
		if len(trimmedExtension) == 0 {
			continue
		}
		sanitizedExtensions = append(sanitizedExtensions, trimmedExtension)
	}
	if len(sanitizedExtensions) == 0 {
		return nil
	}
	return sanitizedExtensions
}
