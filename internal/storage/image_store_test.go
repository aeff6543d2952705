package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageStore_Save(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	fileName, publicPath, err := store.Save(strings.NewReader("image-bytes"), "photo.JPG")

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(fileName, ".jpg"), "extension should be kept, lowercased: %s", fileName)
	assert.Equal(t, PublicPrefix+"/"+fileName, publicPath)

	data, err := os.ReadFile(filepath.Join(store.Root(), fileName))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestImageStore_Save_UniqueNames(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	first, _, err := store.Save(strings.NewReader("a"), "a.png")
	require.NoError(t, err)
	second, _, err := store.Save(strings.NewReader("b"), "a.png")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestImageStore_Delete(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	fileName, _, err := store.Save(strings.NewReader("image-bytes"), "photo.png")
	require.NoError(t, err)

	require.NoError(t, store.Delete(fileName))
	_, err = os.Stat(filepath.Join(store.Root(), fileName))
	assert.True(t, os.IsNotExist(err))

	// Deleting again is not an error
	assert.NoError(t, store.Delete(fileName))
}

func TestImageStore_Delete_MissingFile(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete("never-existed.png"))
}

func TestNewImageStore_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "img")

	_, err := NewImageStore(root)

	require.NoError(t, err)
	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
