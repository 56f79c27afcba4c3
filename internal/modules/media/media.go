package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxFileSize = 10 * 1024 * 1024 // 10 MB

// AllowedMimeTypes lists the image types accepted for avatars and cover images.
var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Asset is a stored file reachable at URL.
type Asset struct {
	Key      string
	URL      string
	MimeType string
	Size     int64
}

// Uploader stores an uploaded file and returns its durable URL.
type Uploader interface {
	Upload(ctx context.Context, fileHeader *multipart.FileHeader) (*Asset, error)
}

// opened is a validated upload ready to be copied to storage.
type opened struct {
	file     multipart.File
	key      string
	mimeType string
	size     int64
}

// open checks size and sniffed content type and builds a dated object key.
func open(fileHeader *multipart.FileHeader, now time.Time) (*opened, error) {
	if fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	// Detect MIME type from first 512 bytes
	buf := make([]byte, 512)
	n, _ := io.ReadFull(file, buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	if !AllowedMimeTypes[mimeType] {
		file.Close()
		return nil, ErrInvalidMimeType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to rewind file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == "" {
		ext = mimeToExt(mimeType)
	}
	key := fmt.Sprintf("%d/%02d/%02d/%s_%s%s",
		now.Year(), now.Month(), now.Day(), uuid.NewString(), sanitizeName(fileHeader.Filename), ext)

	return &opened{file: file, key: key, mimeType: mimeType, size: fileHeader.Size}, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func sanitizeName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = unsafeChars.ReplaceAllString(base, "_")
	if len(base) > 40 {
		base = base[:40]
	}
	if base == "" || base == "_" {
		return "file"
	}
	return base
}

func mimeToExt(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ""
}
