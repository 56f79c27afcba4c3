package media

import "errors"

var (
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrInvalidMimeType = errors.New("file type is not allowed")
	ErrEmptyFile       = errors.New("file is empty")
)

// IsRejected reports whether err means the file itself was refused, as
// opposed to a storage failure.
func IsRejected(err error) bool {
	return errors.Is(err, ErrFileTooLarge) || errors.Is(err, ErrInvalidMimeType) || errors.Is(err, ErrEmptyFile)
}
