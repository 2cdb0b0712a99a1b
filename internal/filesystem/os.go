package filesystem

import (
	"io/fs"
	"os"
)

const appendFileFlagsConstant = os.O_APPEND | os.O_CREATE | os.O_WRONLY

// FileSystem is the set of file operations the assets gate performs.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	AppendFile(path string, data []byte, permissions fs.FileMode) error
}

// OSFileSystem implements FileSystem using the operating system primitives.
type OSFileSystem struct{}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads file contents.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// AppendFile appends data to path, creating the file with permissions when absent.
func (OSFileSystem) AppendFile(path string, data []byte, permissions fs.FileMode) (appendError error) {
	file, openError := os.OpenFile(path, appendFileFlagsConstant, permissions)
	if openError != nil {
		return openError
	}
	defer func() {
		if closeError := file.Close(); closeError != nil && appendError == nil {
			appendError = closeError
		}
	}()

	_, appendError = file.Write(data)
	return appendError
}
