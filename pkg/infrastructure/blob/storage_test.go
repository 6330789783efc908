package blob

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadAndResolve(t *testing.T) {
	dir := t.TempDir()
	storage := NewFileStorage(dir, "https://cdn.example/")

	key := "products/1714560000000_preto.jpg"
	require.NoError(t, storage.Upload(key, bytes.NewBufferString("image-bytes")))

	written, err := os.ReadFile(filepath.Join(dir, "products", "1714560000000_preto.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(written))

	url, err := storage.PublicURL(key)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/products/1714560000000_preto.jpg", url)
}
