// Package naming computes output file paths for each processing mode.
// Outputs always land next to the input and are always .png, since rembg
// output needs transparency.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/quickrmbg/quick-rmbg/internal/models"
)

// Stem returns the input file name without its extension.
func Stem(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SinglePass returns {stem}{suffix}.png in the input's directory.
func SinglePass(inputPath, suffix string) string {
	return filepath.Join(filepath.Dir(inputPath), Stem(inputPath)+suffix+".png")
}

// TwoPass returns the output path for pass 1 or 2 of two-pass mode.
func TwoPass(inputPath, suffix string, pass int) string {
	label := "first"
	if pass == 2 {
		label = "second"
	}
	return filepath.Join(filepath.Dir(inputPath), fmt.Sprintf("%s%s-%s-pass.png", Stem(inputPath), suffix, label))
}

// InfiniteHop returns {stem}{suffix}-pass-{N}.png for pass N >= 1.
func InfiniteHop(inputPath, suffix string, pass int) string {
	return filepath.Join(filepath.Dir(inputPath), fmt.Sprintf("%s%s-pass-%d.png", Stem(inputPath), suffix, pass))
}

// ForPass maps (mode, pass index) to the pass's output path. The original
// input path is used for naming in every pass, regardless of which file
// the pass actually consumes.
func ForPass(inputPath, suffix string, mode models.Mode, pass int) string {
	switch mode {
	case models.ModeTwoPass:
		return TwoPass(inputPath, suffix, pass)
	case models.ModeInfiniteHop:
		return InfiniteHop(inputPath, suffix, pass)
	default:
		return SinglePass(inputPath, suffix)
	}
}
