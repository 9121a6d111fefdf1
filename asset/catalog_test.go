package asset

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int, fill func(x, y int) color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, fill(x, y))
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func solid(c color.Color) func(x, y int) color.Color {
	return func(int, int) color.Color { return c }
}

func TestLoad_ScalesAndOrders(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "us.png"), 64, 32, solid(color.RGBA{R: 255, A: 255}))
	writePNG(t, filepath.Join(dir, "DE.png"), 20, 40, solid(color.RGBA{B: 255, A: 255}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	cat, err := Load(dir, 32)
	require.NoError(t, err)
	require.Len(t, cat.Flags, 2)

	de, us := cat.Flags[0], cat.Flags[1]
	assert.Equal(t, "DE", de.Code)
	assert.Equal(t, "US", us.Code)

	assert.Equal(t, 32, us.Image.Bounds().Dx())
	assert.Equal(t, 16, us.Image.Bounds().Dy())
	assert.Equal(t, 16.0, us.Radius)

	assert.Equal(t, 16, de.Image.Bounds().Dx())
	assert.Equal(t, 32, de.Image.Bounds().Dy())
	assert.Equal(t, 16.0, de.Radius)

	assert.InDelta(t, 255, int(us.Color.R), 2)
	assert.InDelta(t, 0, int(us.Color.B), 2)
	assert.InDelta(t, 255, int(de.Color.B), 2)
}

func TestLoad_Empty(t *testing.T) {
	_, err := Load(t.TempDir(), 32)
	assert.ErrorIs(t, err, ErrNoFlags)
}

func TestLoad_MissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"), 32)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoFlags)
}

func TestLoad_CorruptImage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "xx.png"), []byte("not a png"), 0o644))

	_, err := Load(dir, 32)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xx.png")
}

func TestMeanColor(t *testing.T) {
	half := image.NewRGBA(image.Rect(0, 0, 2, 1))
	half.Set(0, 0, color.RGBA{R: 255, A: 255})
	half.Set(1, 0, color.RGBA{})
	assert.Equal(t, color.RGBA{R: 255, A: 255}, MeanColor(half), "transparent pixels carry no weight")

	empty := image.NewRGBA(image.Rect(0, 0, 3, 3))
	assert.Equal(t, color.RGBA{R: 128, G: 128, B: 128, A: 255}, MeanColor(empty))
}

func TestFlag_Sample(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{G: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})
	// (1,1) stays transparent
	f := Flag{Image: img, Color: color.RGBA{R: 9, G: 9, B: 9, A: 255}}

	assert.Equal(t, color.RGBA{R: 255, A: 255}, f.Sample(0.1, 0.1))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, f.Sample(0.9, 0.1))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, f.Sample(0.1, 0.9))
	assert.Equal(t, f.Color, f.Sample(0.9, 0.9))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, f.Sample(1.5, -1), "out of range clamps")
}

func TestCatalog_Templates(t *testing.T) {
	cat := &Catalog{Flags: []Flag{{Code: "FR", Radius: 16}, {Code: "IT", Radius: 12}}}

	tpl := cat.Templates(func(code string) string { return "name-" + code })
	require.Len(t, tpl, 2)
	assert.Equal(t, "FR", tpl[0].Code)
	assert.Equal(t, "name-IT", tpl[1].Label)
	assert.Equal(t, 12.0, tpl[1].Radius)
	assert.Equal(t, 1, tpl[1].Handle)

	assert.Equal(t, "IT", cat.Flag(1).Code)
	assert.Nil(t, cat.Flag(2))
	assert.Nil(t, cat.Flag(-1))
}
