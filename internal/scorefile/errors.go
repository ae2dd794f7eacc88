package scorefile

import "fmt"

// FileReadError represents an I/O failure while opening or reading a scorefile.
// Malformed content is never reported through this type.
type FileReadError struct {
	Path  string
	Cause error
}

func (e *FileReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scorefile read error: %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("scorefile read error: %s", e.Path)
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}
