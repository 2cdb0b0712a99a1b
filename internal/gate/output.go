package gate

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/assetscheck/internal/assets"
	"github.com/temirov/assetscheck/internal/ui"
)

const (
	placeholderFileSizeConstant             = "-"
	jsonIndentConstant                      = "  "
	yamlIndentWidthConstant                 = 2
	unsupportedOutputFormatTemplateConstant = "unsupported output format %q"
	reportTerminatorConstant                = "\n"
)

// Summary is the machine-readable dry run result.
type Summary struct {
	Passed             bool           `json:"passed" yaml:"passed"`
	OversizedCount     int            `json:"oversized_count" yaml:"oversized_count"`
	ThresholdKilobytes string         `json:"threshold_kb" yaml:"threshold_kb"`
	OversizedAssets    []SummaryAsset `json:"oversized_assets" yaml:"oversized_assets"`
	IgnoredAssets      []SummaryAsset `json:"ignored_assets" yaml:"ignored_assets"`
}

// SummaryAsset is one file listed in the dry run result.
type SummaryAsset struct {
	FileName string `json:"file_name" yaml:"file_name"`
	FileSize string `json:"file_size" yaml:"file_size"`
	Found    bool   `json:"found" yaml:"found"`
}

func buildSummary(classification assets.Classification, thresholdKilobytes string, filteredEntries []assets.CandidateEntry, ignoredFiles []assets.IgnoredFile) Summary {
	summary := Summary{
		Passed:             classification.Passed,
		OversizedCount:     classification.OversizedCount,
		ThresholdKilobytes: thresholdKilobytes,
		OversizedAssets:    make([]SummaryAsset, 0, len(filteredEntries)),
		IgnoredAssets:      make([]SummaryAsset, 0, len(ignoredFiles)),
	}

	for _, entry := range filteredEntries {
		summary.OversizedAssets = append(summary.OversizedAssets, SummaryAsset{
			FileName: entry.DisplayName(),
			FileSize: fallbackString(entry.SizeField, placeholderFileSizeConstant),
			Found:    entry.HasFilePath(),
		})
	}

	for _, ignoredFile := range ignoredFiles {
		summary.IgnoredAssets = append(summary.IgnoredAssets, SummaryAsset{
			FileName: ignoredFile.Path,
			FileSize: fallbackString(ignoredFile.Size, placeholderFileSizeConstant),
			Found:    ignoredFile.Found,
		})
	}

	return summary
}

// writeDryRunOutput prints the check result in the requested format.
func writeDryRunOutput(writer io.Writer, outputFormat string, report string, summary Summary) error {
	switch outputFormat {
	case OutputFormatMarkdown, "":
		_, writeError := io.WriteString(writer, ensureTrailingNewline(report))
		return writeError
	case OutputFormatTable:
		return ui.RenderAssetTable(writer, buildAssetTable(summary))
	case OutputFormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", jsonIndentConstant)
		encoder.SetEscapeHTML(false)
		return encoder.Encode(summary)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(yamlIndentWidthConstant)
		if encodeError := encoder.Encode(summary); encodeError != nil {
			return encodeError
		}
		return encoder.Close()
	default:
		return fmt.Errorf(unsupportedOutputFormatTemplateConstant, outputFormat)
	}
}

func buildAssetTable(summary Summary) ui.AssetTable {
	assetTable := ui.AssetTable{
		OversizedCount:     summary.OversizedCount,
		Passed:             summary.Passed,
		ThresholdKilobytes: summary.ThresholdKilobytes,
	}
	for _, oversizedAsset := range summary.OversizedAssets {
		assetTable.OversizedRows = append(assetTable.OversizedRows, ui.AssetTableRow{FileName: oversizedAsset.FileName, FileSize: oversizedAsset.FileSize})
	}
	for _, ignoredAsset := range summary.IgnoredAssets {
		assetTable.IgnoredRows = append(assetTable.IgnoredRows, ui.AssetTableRow{FileName: ignoredAsset.FileName, FileSize: ignoredAsset.FileSize})
	}
	return assetTable
}

func ensureTrailingNewline(text string) string {
	if strings.HasSuffix(text, reportTerminatorConstant) {
		return text
	}
	return text + reportTerminatorConstant
}
