package rembg

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedFormat(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"photo.png", true},
		{"photo.webp", true},
		{"photo.bmp", true},
		{"photo.tiff", true},
		{"photo.tif", true},
		{"document.pdf", false},
		{"movie.gif", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, SupportedFormat(tt.path))
		})
	}
}

func statOnly(existing ...string) func(string) (os.FileInfo, error) {
	set := map[string]bool{}
	for _, p := range existing {
		set[p] = true
	}
	return func(path string) (os.FileInfo, error) {
		if set[path] {
			return nil, nil
		}
		return nil, os.ErrNotExist
	}
}

func noLookPath(string) (string, error) { return "", errors.New("not found") }

func homeDir() func() (string, error) {
	return func() (string, error) { return "/home/u", nil }
}

func TestResolveConfiguredPathWins(t *testing.T) {
	path, err := resolve("/opt/rembg", noLookPath, statOnly("/opt/rembg"), homeDir())

	require.NoError(t, err)
	assert.Equal(t, "/opt/rembg", path)
}

func TestResolveConfiguredPathMissingFallsThrough(t *testing.T) {
	lookPath := func(string) (string, error) { return "/usr/bin/rembg", nil }

	path, err := resolve("/opt/rembg", lookPath, statOnly(), homeDir())

	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/rembg", path)
}

func TestResolvePrefersPathSearch(t *testing.T) {
	lookPath := func(name string) (string, error) {
		require.Equal(t, "rembg", name)
		return "/somewhere/rembg", nil
	}

	path, err := resolve("", lookPath, statOnly(), homeDir())

	require.NoError(t, err)
	assert.Equal(t, "/somewhere/rembg", path)
}

func TestResolveChecksCommonLocations(t *testing.T) {
	path, err := resolve("", noLookPath, statOnly("/home/u/.local/bin/rembg"), homeDir())

	require.NoError(t, err)
	assert.Equal(t, "/home/u/.local/bin/rembg", path)

	path, err = resolve("", noLookPath, statOnly("/usr/local/bin/rembg"), homeDir())

	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/rembg", path)
}

func TestResolveNotFound(t *testing.T) {
	_, err := resolve("", noLookPath, statOnly(), homeDir())

	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "pip install")
}
