package naming

import (
	"testing"

	"github.com/quickrmbg/quick-rmbg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinglePass(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		suffix string
		want   string
	}{
		{"jpg input", "/pics/photo.jpg", "_noBG", "/pics/photo_noBG.png"},
		{"png input", "/pics/cat.png", "_noBG", "/pics/cat_noBG.png"},
		{"custom suffix", "/pics/photo.jpg", "-clean", "/pics/photo-clean.png"},
		{"dotted stem", "/pics/my.photo.webp", "_noBG", "/pics/my.photo_noBG.png"},
		{"relative path", "photo.jpg", "_noBG", "photo_noBG.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SinglePass(tt.input, tt.suffix))
		})
	}
}

func TestTwoPass(t *testing.T) {
	assert.Equal(t, "/pics/cat_noBG-first-pass.png", TwoPass("/pics/cat.png", "_noBG", 1))
	assert.Equal(t, "/pics/cat_noBG-second-pass.png", TwoPass("/pics/cat.png", "_noBG", 2))
}

func TestInfiniteHop(t *testing.T) {
	assert.Equal(t, "/pics/cat_noBG-pass-1.png", InfiniteHop("/pics/cat.png", "_noBG", 1))
	assert.Equal(t, "/pics/cat_noBG-pass-7.png", InfiniteHop("/pics/cat.png", "_noBG", 7))
	assert.Equal(t, "/pics/cat_noBG-pass-12.png", InfiniteHop("/pics/cat.png", "_noBG", 12))
}

// Distinct (mode, pass) pairs for the same input must never share a path,
// and no output may collide with the input itself.
func TestForPassInjective(t *testing.T) {
	input := "/pics/cat.png"
	seen := map[string]string{}

	add := func(label, path string) {
		prev, dup := seen[path]
		require.False(t, dup, "%s and %s produce the same path %s", prev, label, path)
		seen[path] = label
		require.NotEqual(t, input, path)
	}

	add("single", ForPass(input, "_noBG", models.ModeSingle, 1))
	add("two-pass-1", ForPass(input, "_noBG", models.ModeTwoPass, 1))
	add("two-pass-2", ForPass(input, "_noBG", models.ModeTwoPass, 2))
	for n := 1; n <= 20; n++ {
		add("hop", ForPass(input, "_noBG", models.ModeInfiniteHop, n))
	}
}

func TestForPassDeterministic(t *testing.T) {
	a := ForPass("/pics/cat.png", "_noBG", models.ModeInfiniteHop, 3)
	b := ForPass("/pics/cat.png", "_noBG", models.ModeInfiniteHop, 3)
	assert.Equal(t, a, b)
}

func TestStem(t *testing.T) {
	assert.Equal(t, "photo", Stem("/pics/photo.jpg"))
	assert.Equal(t, "archive.tar", Stem("/tmp/archive.tar.png"))
	assert.Equal(t, "noext", Stem("noext"))
}
