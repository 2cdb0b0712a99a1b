package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/temirov/assetscheck/internal/execshell"
)

const (
	kilobyteSizeConstant                     = 1024
	findTypeFlagConstant                     = "-type"
	findRegularFileValueConstant             = "f"
	findGroupOpenConstant                    = "("
	findGroupCloseConstant                   = ")"
	findCaseInsensitiveNameFlagConstant      = "-iname"
	findOrOperatorConstant                   = "-o"
	findSizeFlagConstant                     = "-size"
	findSizeValueTemplateConstant            = "+%dk"
	findExecFlagConstant                     = "-exec"
	findListCommandConstant                  = "ls"
	findListLongHumanFlagConstant            = "-lh"
	findExecPlaceholderConstant              = "{}"
	findExecTerminatorConstant               = ";"
	extensionPatternTemplateConstant         = "*.%s"
	extensionSeparatorConstant               = "."
	pathSeparatorConstant                    = "/"
	targetFolderFieldNameConstant            = "target_folder"
	thresholdFieldNameConstant               = "threshold_size"
	extensionsFieldNameConstant              = "extensions"
	requiredValueMessageConstant             = "value required"
	positiveValueMessageConstant             = "must be a positive number of kilobytes"
	invalidScanRequestTemplateConstant       = "invalid scan request %s: %s"
	targetFolderAccessTemplateConstant       = "unable to access target folder %s: %w"
	targetFolderNotDirectoryTemplateConstant = "target folder %s is not a directory"
	findExecutionErrorTemplateConstant       = "find scan of %s failed: %w"
	findExecutorNotConfiguredMessageConstant = "find executor not configured"
)

// DefaultExtensions lists the image asset extensions scanned by default.
var DefaultExtensions = []string{"jpeg", "png", "svg", "gif", "jpg", "riv", "webp"}

// ErrFindExecutorNotConfigured indicates a FindScanner was built without an executor.
var ErrFindExecutorNotConfigured = errors.New(findExecutorNotConfiguredMessageConstant)

// ScanRequest describes which files to collect.
//
// TargetFolder is kept as given so reported paths match ignore list entries
// verbatim; relative folders are resolved against WorkingDirectory.
type ScanRequest struct {
	TargetFolder       string
	WorkingDirectory   string
	ThresholdKilobytes int64
	Extensions         []string
}

// Scanner collects candidate entries for files exceeding the threshold.
type Scanner interface {
	Scan(scanContext context.Context, request ScanRequest) ([]CandidateEntry, error)
}

// InvalidScanRequestError reports an unusable scan request field.
type InvalidScanRequestError struct {
	FieldName string
	Message   string
}

// Error describes the invalid field.
func (requestError InvalidScanRequestError) Error() string {
	return fmt.Sprintf(invalidScanRequestTemplateConstant, requestError.FieldName, requestError.Message)
}

func (request ScanRequest) validate() error {
	if len(strings.TrimSpace(request.TargetFolder)) == 0 {
		return InvalidScanRequestError{FieldName: targetFolderFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if request.ThresholdKilobytes <= 0 {
		return InvalidScanRequestError{FieldName: thresholdFieldNameConstant, Message: positiveValueMessageConstant}
	}
	if len(normalizeExtensions(request.Extensions)) == 0 {
		return InvalidScanRequestError{FieldName: extensionsFieldNameConstant, Message: requiredValueMessageConstant}
	}
	return nil
}

func (request ScanRequest) walkRoot() string {
	if len(request.WorkingDirectory) == 0 || filepath.IsAbs(request.TargetFolder) {
		return request.TargetFolder
	}
	return filepath.Join(request.WorkingDirectory, request.TargetFolder)
}

// displayPath renders a walked file the way find prints it: the target folder
// as given, a slash, then the path below it.
func (request ScanRequest) displayPath(walkRoot string, walkedPath string) string {
	relativePath, relativeError := filepath.Rel(walkRoot, walkedPath)
	if relativeError != nil {
		return walkedPath
	}
	prefix := strings.TrimRight(request.TargetFolder, pathSeparatorConstant)
	if len(prefix) == 0 {
		prefix = strings.TrimSpace(request.TargetFolder)
	}
	if strings.HasSuffix(prefix, pathSeparatorConstant) {
		return prefix + filepath.ToSlash(relativePath)
	}
	return prefix + pathSeparatorConstant + filepath.ToSlash(relativePath)
}

// ExceedsThreshold applies find's -size +Nk rule: the size rounded up to whole kilobytes must exceed N.
func ExceedsThreshold(sizeInBytes int64, thresholdKilobytes int64) bool {
	roundedKilobytes := (sizeInBytes + kilobyteSizeConstant - 1) / kilobyteSizeConstant
	return roundedKilobytes > thresholdKilobytes
}

// WalkScanner scans the target folder in-process.
type WalkScanner struct{}

// NewWalkScanner constructs a scanner backed by filepath.WalkDir.
func NewWalkScanner() *WalkScanner {
	return &WalkScanner{}
}

// Scan walks the target folder and returns matching files sorted by path.
// Paths are reported as find would print them and the size field is
// rendered with IEC units.
func (scanner *WalkScanner) Scan(scanContext context.Context, request ScanRequest) ([]CandidateEntry, error) {
	if validationError := request.validate(); validationError != nil {
		return nil, validationError
	}

	walkRoot := request.walkRoot()
	folderInfo, statError := os.Stat(walkRoot)
	if statError != nil {
		return nil, fmt.Errorf(targetFolderAccessTemplateConstant, request.TargetFolder, statError)
	}
	if !folderInfo.IsDir() {
		return nil, fmt.Errorf(targetFolderNotDirectoryTemplateConstant, request.TargetFolder)
	}

	extensionLookup := make(map[string]struct{})
	for _, extension := range normalizeExtensions(request.Extensions) {
		extensionLookup[extension] = struct{}{}
	}

	var entries []CandidateEntry
	walkError := filepath.WalkDir(walkRoot, func(path string, directoryEntry fs.DirEntry, walkError error) error {
		if contextError := scanContext.Err(); contextError != nil {
			return contextError
		}
		if walkError != nil {
			return nil
		}
		if !directoryEntry.Type().IsRegular() {
			return nil
		}

		extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(directoryEntry.Name()), extensionSeparatorConstant))
		if _, matches := extensionLookup[extension]; !matches {
			return nil
		}

		fileInfo, infoError := directoryEntry.Info()
		if infoError != nil {
			return nil
		}
		if !ExceedsThreshold(fileInfo.Size(), request.ThresholdKilobytes) {
			return nil
		}

		displayPath := request.displayPath(walkRoot, path)
		entries = append(entries, CandidateEntry{
			RawLine:   displayPath,
			FilePath:  displayPath,
			SizeField: humanize.IBytes(uint64(fileInfo.Size())),
		})
		return nil
	})
	if walkError != nil {
		return nil, walkError
	}

	sort.Slice(entries, func(leftIndex int, rightIndex int) bool {
		return entries[leftIndex].FilePath < entries[rightIndex].FilePath
	})

	return entries, nil
}

// FindExecutor is the minimal interface required from execshell.ShellExecutor.
type FindExecutor interface {
	ExecuteFind(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// FindScanner delegates discovery to find(1) and parses its `ls -lh` listing.
type FindScanner struct {
	executor FindExecutor
}

// NewFindScanner constructs a scanner that runs find through the provided executor.
func NewFindScanner(executor FindExecutor) (*FindScanner, error) {
	if executor == nil {
		return nil, ErrFindExecutorNotConfigured
	}
	return &FindScanner{executor: executor}, nil
}

// Scan runs find and parses each listing line into a CandidateEntry.
func (scanner *FindScanner) Scan(scanContext context.Context, request ScanRequest) ([]CandidateEntry, error) {
	if validationError := request.validate(); validationError != nil {
		return nil, validationError
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        BuildFindArguments(request),
		WorkingDirectory: request.WorkingDirectory,
	}
	executionResult, executionError := scanner.executor.ExecuteFind(scanContext, commandDetails)
	if executionError != nil {
		return nil, fmt.Errorf(findExecutionErrorTemplateConstant, request.TargetFolder, executionError)
	}

	return ParseListing(executionResult.StandardOutput), nil
}

// BuildFindArguments assembles the find invocation for a scan request.
func BuildFindArguments(request ScanRequest) []string {
	arguments := []string{
		request.TargetFolder,
		findTypeFlagConstant,
		findRegularFileValueConstant,
		findGroupOpenConstant,
	}

	for extensionIndex, extension := range normalizeExtensions(request.Extensions) {
		if extensionIndex > 0 {
			arguments = append(arguments, findOrOperatorConstant)
		}
		arguments = append(arguments, findCaseInsensitiveNameFlagConstant, fmt.Sprintf(extensionPatternTemplateConstant, extension))
	}

	arguments = append(arguments,
		findGroupCloseConstant,
		findSizeFlagConstant,
		fmt.Sprintf(findSizeValueTemplateConstant, request.ThresholdKilobytes),
		findExecFlagConstant,
		findListCommandConstant,
		findListLongHumanFlagConstant,
		findExecPlaceholderConstant,
		findExecTerminatorConstant,
	)

	return arguments
}

// ParseThresholdKilobytes converts the textual threshold input into kilobytes.
func ParseThresholdKilobytes(thresholdValue string) (int64, error) {
	trimmedValue := strings.TrimSpace(thresholdValue)
	if len(trimmedValue) == 0 {
		return 0, InvalidScanRequestError{FieldName: thresholdFieldNameConstant, Message: requiredValueMessageConstant}
	}
	parsedValue, parseError := strconv.ParseInt(trimmedValue, 10, 64)
	if parseError != nil || parsedValue <= 0 {
		return 0, InvalidScanRequestError{FieldName: thresholdFieldNameConstant, Message: positiveValueMessageConstant}
	}
	return parsedValue, nil
}

func normalizeExtensions(rawExtensions []string) []string {
	normalized := make([]string, 0, len(rawExtensions))
	seen := make(map[string]struct{}, len(rawExtensions))
	for _, rawExtension := range rawExtensions {
		extension := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(rawExtension), extensionSeparatorConstant))
		if len(extension) == 0 {
			continue
		}
		if _, duplicate := seen[extension]; duplicate {
			continue
		}
		seen[extension] = struct{}{}
		normalized = append(normalized, extension)
	}
	return normalized
}
