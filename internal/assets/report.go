package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	// ReportHeaderToken identifies report comments; prior reports are located by this token.
	ReportHeaderToken = "AssetsCheckBot"

	passEmojiConstant                 = ":mountain:"
	failEmojiConstant                 = ":warning:"
	headerTemplateConstant            = "# %s %s\n"
	successBodyTemplateConstant       = ":green_circle: **Awesome**, all of your image assets are less than `%sKb`."
	failureSummaryTemplateConstant    = ":warning: **Oh Snap!**, You have `%d` image asset(s) with a file-size of more than `%sKb`.\n"
	failureGuidanceTemplateConstant   = "If it's not possible to optimize the below assets, you can add them into a `%s` file in the root of your repository.\n"
	oversizedTableTitleConstant       = "**Oversized Assets**\n"
	ignoredTableTitleTemplateConstant = "**All listed `%s` Files**\n"
	tableHeaderConstant               = "|File Name|File Size|\n|-----|:-----:|\n"
	tableRowTemplateConstant          = "|%s|%s|\n"
	placeholderCellConstant           = "-"
	paragraphSeparatorConstant        = "\n"
)

// FileStatter retrieves file metadata.
type FileStatter interface {
	Stat(path string) (fs.FileInfo, error)
}

type osFileStatter struct{}

func (osFileStatter) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReportOptions configures the text of the rendered report.
type ReportOptions struct {
	ThresholdKilobytes string
	IgnoreFileName     string
	Note               string
	BaseDirectory      string
}

// ReportRenderer turns a classification into the markdown report document.
type ReportRenderer struct {
	statter FileStatter
	options ReportOptions
}

// NewReportRenderer constructs a renderer; a nil statter falls back to os.Stat.
func NewReportRenderer(statter FileStatter, options ReportOptions) *ReportRenderer {
	resolvedStatter := statter
	if resolvedStatter == nil {
		resolvedStatter = osFileStatter{}
	}
	if len(strings.TrimSpace(options.IgnoreFileName)) == 0 {
		options.IgnoreFileName = DefaultIgnoreFileName
	}
	return &ReportRenderer{statter: resolvedStatter, options: options}
}

// Render produces the report. Output is byte-identical for identical inputs and file sizes.
func (renderer *ReportRenderer) Render(classification Classification, filteredEntries []CandidateEntry, ignoreSet IgnoreSet) string {
	var builder strings.Builder

	headerEmoji := passEmojiConstant
	if !classification.Passed {
		headerEmoji = failEmojiConstant
	}
	builder.WriteString(fmt.Sprintf(headerTemplateConstant, headerEmoji, ReportHeaderToken))

	if classification.Passed {
		builder.WriteString(fmt.Sprintf(successBodyTemplateConstant, renderer.options.ThresholdKilobytes))
	} else {
		builder.WriteString(fmt.Sprintf(failureSummaryTemplateConstant, classification.OversizedCount, renderer.options.ThresholdKilobytes))
		builder.WriteString(fmt.Sprintf(failureGuidanceTemplateConstant, renderer.options.IgnoreFileName))

		trimmedNote := strings.TrimSpace(renderer.options.Note)
		if len(trimmedNote) > 0 {
			builder.WriteString(paragraphSeparatorConstant)
			builder.WriteString(trimmedNote)
			builder.WriteString(paragraphSeparatorConstant)
		}

		builder.WriteString(paragraphSeparatorConstant)
		builder.WriteString(renderOversizedTable(filteredEntries))
	}

	if len(ignoreSet) > 0 {
		if classification.Passed {
			builder.WriteString(paragraphSeparatorConstant)
		}
		builder.WriteString(paragraphSeparatorConstant)
		builder.WriteString(renderer.renderIgnoredTable(ignoreSet))
	}

	return builder.String()
}

func renderOversizedTable(filteredEntries []CandidateEntry) string {
	var builder strings.Builder
	builder.WriteString(oversizedTableTitleConstant)
	builder.WriteString(tableHeaderConstant)
	for _, entry := range filteredEntries {
		sizeCell := entry.SizeField
		if len(sizeCell) == 0 {
			sizeCell = placeholderCellConstant
		}
		builder.WriteString(fmt.Sprintf(tableRowTemplateConstant, entry.DisplayName(), sizeCell))
	}
	return builder.String()
}

// IgnoredFile is the on-disk state of one Ignore Set path.
type IgnoredFile struct {
	Path  string
	Size  string
	Found bool
}

// InspectIgnored stats every ignored path concurrently and returns the results
// in Ignore Set order once all lookups have finished.
func (renderer *ReportRenderer) InspectIgnored(ignoreSet IgnoreSet) []IgnoredFile {
	ignoredFiles := make([]IgnoredFile, len(ignoreSet))

	var waitGroup sync.WaitGroup
	for index, ignoredPath := range ignoreSet {
		waitGroup.Go(func() {
			ignoredFiles[index] = renderer.inspectIgnoredPath(ignoredPath)
		})
	}
	waitGroup.Wait()

	return ignoredFiles
}

func (renderer *ReportRenderer) inspectIgnoredPath(ignoredPath string) IgnoredFile {
	fileInfo, statError := renderer.statter.Stat(renderer.resolvePath(ignoredPath))
	if statError != nil {
		return IgnoredFile{Path: ignoredPath}
	}
	return IgnoredFile{Path: ignoredPath, Size: FormatBytes(fileInfo.Size()), Found: true}
}

func (renderer *ReportRenderer) renderIgnoredTable(ignoreSet IgnoreSet) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(ignoredTableTitleTemplateConstant, renderer.options.IgnoreFileName))
	builder.WriteString(tableHeaderConstant)
	for _, ignoredFile := range renderer.InspectIgnored(ignoreSet) {
		if !ignoredFile.Found {
			builder.WriteString(fmt.Sprintf(tableRowTemplateConstant, placeholderCellConstant, placeholderCellConstant))
			continue
		}
		builder.WriteString(fmt.Sprintf(tableRowTemplateConstant, ignoredFile.Path, ignoredFile.Size))
	}
	return builder.String()
}

func (renderer *ReportRenderer) resolvePath(ignoredPath string) string {
	if len(renderer.options.BaseDirectory) == 0 || filepath.IsAbs(ignoredPath) {
		return ignoredPath
	}
	return filepath.Join(renderer.options.BaseDirectory, ignoredPath)
}
