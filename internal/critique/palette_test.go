package critique

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func twoTone(w, h, split int, left, right color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < split {
				img.Set(x, y, left)
			} else {
				img.Set(x, y, right)
			}
		}
	}
	return img
}

func TestPaletteDominantColorsFirst(t *testing.T) {
	img := twoTone(40, 20, 30, color.RGBA{R: 255, A: 255}, color.RGBA{B: 255, A: 255})
	require.Equal(t, []string{"#ff0000", "#0000ff"}, Palette(img, PaletteSize))
}

func TestPaletteCapsAtK(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 8))
	for x := 0; x < 64; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(255 - x*4), B: uint8(y * 30), A: 255})
		}
	}
	got := Palette(img, 5)
	require.NotEmpty(t, got)
	require.LessOrEqual(t, len(got), 5)
	for _, hex := range got {
		require.Regexp(t, `^#[0-9a-f]{6}$`, hex)
	}
}

func TestPaletteSkipsTransparentPixels(t *testing.T) {
	img := twoTone(10, 10, 5, color.RGBA{}, color.RGBA{G: 255, A: 255})
	require.Equal(t, []string{"#00ff00"}, Palette(img, 5))

	empty := image.NewRGBA(image.Rect(0, 0, 4, 4))
	require.Empty(t, Palette(empty, 5))
}

func TestDownscaleKeepsAspect(t *testing.T) {
	small := downscale(image.NewRGBA(image.Rect(0, 0, 400, 200)), 100)
	require.Equal(t, 100, small.Bounds().Dx())
	require.Equal(t, 50, small.Bounds().Dy())

	same := image.NewRGBA(image.Rect(0, 0, 20, 10))
	require.Same(t, same, downscale(same, 100))
}
