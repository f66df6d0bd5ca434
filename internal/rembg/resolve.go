package rembg

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no rembg binary can be located.
var ErrNotFound = errors.New(`rembg not found; install it with: pip install "rembg[cli]"`)

// Image formats rembg accepts as input.
var supportedFormats = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// SupportedFormat reports whether the file extension is one rembg can read.
func SupportedFormat(path string) bool {
	return supportedFormats[strings.ToLower(filepath.Ext(path))]
}

// Resolve locates the rembg binary. An explicitly configured path wins if
// it exists; otherwise PATH is searched, then the usual install locations.
func Resolve(configured string) (string, error) {
	return resolve(configured, exec.LookPath, os.Stat, os.UserHomeDir)
}

func resolve(
	configured string,
	lookPath func(string) (string, error),
	stat func(string) (os.FileInfo, error),
	userHomeDir func() (string, error),
) (string, error) {
	if configured != "" {
		if _, err := stat(configured); err == nil {
			return configured, nil
		}
	}

	if path, err := lookPath("rembg"); err == nil {
		return path, nil
	}

	candidates := []string{
		"/usr/local/bin/rembg",
		"/usr/bin/rembg",
	}
	if home, err := userHomeDir(); err == nil {
		candidates = append([]string{filepath.Join(home, ".local", "bin", "rembg")}, candidates...)
	}
	for _, candidate := range candidates {
		if _, err := stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", ErrNotFound
}
