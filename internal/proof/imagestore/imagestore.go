// Package imagestore persists uploaded proof photos and hands back the URL
// stored on the proof. Files are content-addressed by fingerprint, so storing
// the same image twice is a no-op.
package imagestore

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	dErrors "greentax/pkg/domain-errors"
)

// MaxImageBytes bounds a single upload.
const MaxImageBytes = 5 << 20

var allowedExtensions = map[string]string{
	".jpeg": ".jpeg",
	".jpg":  ".jpg",
	".png":  ".png",
	".gif":  ".gif",
	".webp": ".webp",
}

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Extension resolves the stored file extension from the client file name,
// falling back to content sniffing. Unsupported types are validation errors.
func Extension(fileName string, content []byte) (string, error) {
	if len(content) > MaxImageBytes {
		return "", dErrors.New(dErrors.CodeValidation, "image exceeds the 5 MiB limit")
	}
	if ext, ok := allowedExtensions[strings.ToLower(filepath.Ext(fileName))]; ok {
		return ext, nil
	}
	if ext, ok := allowedContentTypes[http.DetectContentType(content)]; ok {
		return ext, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "only image files (jpeg, jpg, png, gif, webp) are allowed")
}

// FileSystem writes images under a directory and serves them from baseURL.
type FileSystem struct {
	dir     string
	baseURL string
}

// NewFileSystem creates dir if needed.
func NewFileSystem(dir, baseURL string) (*FileSystem, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &FileSystem{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir is the directory images are written to.
func (fs *FileSystem) Dir() string {
	return fs.dir
}

func (fs *FileSystem) Save(ctx context.Context, fingerprint, fileName string, content []byte) (string, error) {
	ext, err := Extension(fileName, content)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := fingerprint + ext
	path := filepath.Join(fs.dir, name)
	if _, err := os.Stat(path); err == nil {
		return fs.baseURL + "/" + name, nil
	}

	tmp, err := os.CreateTemp(fs.dir, name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp image: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close image: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename image: %w", err)
	}
	return fs.baseURL + "/" + name, nil
}

// InMemory keeps images in a map.
type InMemory struct {
	mu      sync.RWMutex
	baseURL string
	images  map[string][]byte
}

func NewInMemory(baseURL string) *InMemory {
	return &InMemory{baseURL: strings.TrimRight(baseURL, "/"), images: make(map[string][]byte)}
}

func (m *InMemory) Save(_ context.Context, fingerprint, fileName string, content []byte) (string, error) {
	ext, err := Extension(fileName, content)
	if err != nil {
		return "", err
	}
	name := fingerprint + ext
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.images[name]; !ok {
		m.images[name] = append([]byte(nil), content...)
	}
	return m.baseURL + "/" + name, nil
}

// Len reports how many distinct images are stored.
func (m *InMemory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.images)
}
