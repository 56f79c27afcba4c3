package media

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// LocalStorage writes uploads below baseDir and serves them from staticBase.
type LocalStorage struct {
	baseDir    string
	staticBase string
	now        func() time.Time
}

func NewLocalStorage(baseDir, staticBase string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir, staticBase: staticBase, now: time.Now}
}

func (s *LocalStorage) Upload(ctx context.Context, fileHeader *multipart.FileHeader) (*Asset, error) {
	f, err := open(fileHeader, s.now())
	if err != nil {
		return nil, err
	}
	defer f.file.Close()

	absPath := filepath.Join(s.baseDir, filepath.FromSlash(f.key))
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, f.file); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	log.Printf("media_upload backend=local key=%s size=%d mime=%s", f.key, f.size, f.mimeType)

	return &Asset{
		Key:      f.key,
		URL:      s.staticBase + "/" + f.key,
		MimeType: f.mimeType,
		Size:     f.size,
	}, nil
}
