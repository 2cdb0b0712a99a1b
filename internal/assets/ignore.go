package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const (
	// DefaultIgnoreFileName is the ignore list location relative to the repository root.
	DefaultIgnoreFileName = ".assets-ignore"

	ignoreFileReadErrorTemplateConstant = "unable to read ignore list %s: %w"
)

// FileReader reads the contents of a file path.
type FileReader func(path string) ([]byte, error)

// IgnoreListLoader produces the Ignore Set from a newline separated file.
type IgnoreListLoader struct {
	fileReader FileReader
}

// NewIgnoreListLoader constructs a loader; a nil reader falls back to os.ReadFile.
func NewIgnoreListLoader(fileReader FileReader) *IgnoreListLoader {
	resolvedFileReader := fileReader
	if resolvedFileReader == nil {
		resolvedFileReader = os.ReadFile
	}
	return &IgnoreListLoader{fileReader: resolvedFileReader}
}

// Load reads the ignore list at ignoreFilePath. A missing file yields an empty set.
func (loader *IgnoreListLoader) Load(ignoreFilePath string) (IgnoreSet, error) {
	contents, readError := loader.fileReader(ignoreFilePath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return IgnoreSet{}, nil
		}
		return nil, fmt.Errorf(ignoreFileReadErrorTemplateConstant, ignoreFilePath, readError)
	}
	return ParseIgnoreList(string(contents)), nil
}

// ParseIgnoreList splits ignore list contents into paths, preserving order and duplicates.
// Blank lines and trailing carriage returns are dropped.
func ParseIgnoreList(contents string) IgnoreSet {
	lines := strings.Split(contents, listingLineSeparatorConstant)
	ignoreSet := make(IgnoreSet, 0, len(lines))
	for _, line := range lines {
		trimmedLine := strings.TrimSuffix(line, carriageReturnConstant)
		if len(strings.TrimSpace(trimmedLine)) == 0 {
			continue
		}
		ignoreSet = append(ignoreSet, trimmedLine)
	}
	return ignoreSet
}
