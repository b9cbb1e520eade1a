package headless

import (
	"fmt"

	"github.com/woxQAQ/lsp-bridge/pkg/protocol"
)

// FileNotFoundError occurs when a file to open is missing or not a regular file.
type FileNotFoundError struct {
	File protocol.FileKey
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file '%s' not found", e.File)
}

// FileReadError occurs when a file exists but cannot be read.
type FileReadError struct {
	File protocol.FileKey
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read '%s': %v", e.File, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// AlreadyOpenError occurs when registering a second document for the same file.
type AlreadyOpenError struct {
	File protocol.FileKey
}

func (e *AlreadyOpenError) Error() string {
	return fmt.Sprintf("document for '%s' is already open", e.File)
}
