package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const (
	fileNameHeaderConstant      = "File Name"
	fileSizeHeaderConstant      = "File Size"
	statusHeaderConstant        = "Status"
	oversizedStatusConstant     = "oversized"
	ignoredStatusConstant       = "ignored"
	passedVerdictLabelConstant  = "PASSED"
	failedVerdictLabelConstant  = "FAILED"
	verdictLineTemplateConstant = "%s: %d oversized asset(s) above %sKb\n"
	emptyTableMessageConstant   = "No oversized assets found."
)

// AssetTableRow is a single file line in the console asset table.
type AssetTableRow struct {
	FileName string
	FileSize string
}

// AssetTable holds the data rendered by RenderAssetTable.
type AssetTable struct {
	OversizedRows      []AssetTableRow
	IgnoredRows        []AssetTableRow
	OversizedCount     int
	Passed             bool
	ThresholdKilobytes string
}

// RenderAssetTable writes the oversized and ignored assets as a console table
// followed by a coloured verdict line.
func RenderAssetTable(writer io.Writer, assetTable AssetTable) error {
	if len(assetTable.OversizedRows) == 0 && len(assetTable.IgnoredRows) == 0 {
		if _, writeError := fmt.Fprintln(writer, emptyTableMessageConstant); writeError != nil {
			return writeError
		}
	} else {
		table := tablewriter.NewWriter(writer)
		table.Header([]string{fileNameHeaderConstant, fileSizeHeaderConstant, statusHeaderConstant})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, row := range assetTable.OversizedRows {
			data = append(data, []string{row.FileName, row.FileSize, oversizedStatusConstant})
		}
		for _, row := range assetTable.IgnoredRows {
			data = append(data, []string{row.FileName, row.FileSize, ignoredStatusConstant})
		}

		if bulkError := table.Bulk(data); bulkError != nil {
			return bulkError
		}
		if renderError := table.Render(); renderError != nil {
			return renderError
		}
	}

	verdictLabel := color.New(color.FgGreen, color.Bold).Sprint(passedVerdictLabelConstant)
	if !assetTable.Passed {
		verdictLabel = color.New(color.FgRed, color.Bold).Sprint(failedVerdictLabelConstant)
	}
	_, writeError := fmt.Fprintf(writer, verdictLineTemplateConstant, verdictLabel, assetTable.OversizedCount, assetTable.ThresholdKilobytes)
	return writeError
}
