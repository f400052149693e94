package imagestore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "greentax/pkg/domain-errors"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d}

func TestExtension(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  []byte
		want     string
		wantErr  bool
	}{
		{name: "by file name", fileName: "photo.JPG", content: []byte("x"), want: ".jpg"},
		{name: "webp by name", fileName: "a.webp", content: []byte("x"), want: ".webp"},
		{name: "sniffed when name has no extension", fileName: "blob", content: pngHeader, want: ".png"},
		{name: "text rejected", fileName: "notes.txt", content: []byte("hello"), wantErr: true},
		{name: "too large", fileName: "big.jpg", content: bytes.Repeat([]byte{1}, MaxImageBytes+1), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extension(tt.fileName, tt.content)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileSystemSave(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileSystem(dir, "/uploads/")
	require.NoError(t, err)

	url, err := fs.Save(context.Background(), "abc123", "photo.png", pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/abc123.png", url)

	written, err := os.ReadFile(filepath.Join(dir, "abc123.png"))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, written)

	again, err := fs.Save(context.Background(), "abc123", "photo.png", pngHeader)
	require.NoError(t, err)
	assert.Equal(t, url, again)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestInMemorySave(t *testing.T) {
	m := NewInMemory("/uploads")
	url, err := m.Save(context.Background(), "fp", "a.gif", []byte("GIF89a"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/fp.gif", url)

	_, err = m.Save(context.Background(), "fp", "a.gif", []byte("GIF89a"))
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())

	_, err = m.Save(context.Background(), "fp2", "a.exe", []byte("MZ"))
	assert.Error(t, err)
}
