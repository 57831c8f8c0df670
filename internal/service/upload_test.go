package service

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store := NewFileStore(dir)
	store.now = func() time.Time { return time.UnixMilli(1700000000000) }

	content := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")
	f, err := store.Save(bytes.NewReader(content), "thesis.pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(f.ID, "1700000000000-"))
	assert.Equal(t, ".pdf", filepath.Ext(f.ID))
	assert.Equal(t, "thesis.pdf", f.OriginalName)
	assert.Equal(t, "application/pdf", f.MIMEType)
	assert.Equal(t, int64(len(content)), f.Size)

	stored, err := os.ReadFile(filepath.Join(dir, f.ID))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestFileStore_SaveExtensionFromContent(t *testing.T) {
	store := NewFileStore(t.TempDir())

	f, err := store.Save(bytes.NewReader([]byte("%PDF-1.7\n%%EOF\n")), "scan")
	require.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(f.ID))
}

func TestFileStore_SaveLargeFile(t *testing.T) {
	store := NewFileStore(t.TempDir())
	content := bytes.Repeat([]byte("lorem ipsum "), 2000)

	f, err := store.Save(bytes.NewReader(content), "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), f.Size)
	assert.True(t, strings.HasPrefix(f.MIMEType, "text/plain"))

	stored, err := os.ReadFile(filepath.Join(store.Dir(), f.ID))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestFileStore_SaveDistinctNames(t *testing.T) {
	store := NewFileStore(t.TempDir())

	seen := make(map[string]struct{})
	for range 20 {
		f, err := store.Save(strings.NewReader("same content"), "doc.txt")
		require.NoError(t, err)
		_, dup := seen[f.ID]
		require.False(t, dup, "duplicate file id %s", f.ID)
		seen[f.ID] = struct{}{}
	}
}
