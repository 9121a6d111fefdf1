package asset

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/lixenwraith/flag-arena/engine"
)

// ErrNoFlags is returned when the flag directory holds no usable images
var ErrNoFlags = errors.New("no flag images found")

// Flag is one scaled flag image; its code is the upper-cased file stem
type Flag struct {
	Code   string
	Image  *image.RGBA
	Radius float64    // half the larger scaled side
	Color  color.RGBA // alpha-weighted mean, used where the image cannot be shown
}

// Catalog holds every flag found in a directory, ordered by file name
type Catalog struct {
	Flags []Flag
}

// Load decodes every .png in dir and scales it so its larger side equals targetSize
func Load(dir string, targetSize float64) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading flags directory: %w", err)
	}

	cat := &Catalog{}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		f, err := loadFlag(filepath.Join(dir, e.Name()), targetSize)
		if err != nil {
			return nil, err
		}
		cat.Flags = append(cat.Flags, f)
	}

	if len(cat.Flags) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFlags, dir)
	}
	return cat, nil
}

func loadFlag(path string, targetSize float64) (Flag, error) {
	file, err := os.Open(path)
	if err != nil {
		return Flag{}, err
	}
	defer file.Close()

	src, err := png.Decode(file)
	if err != nil {
		return Flag{}, fmt.Errorf("decoding flag %s: %w", filepath.Base(path), err)
	}

	img := Scale(src, targetSize)
	b := img.Bounds()
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Flag{
		Code:   strings.ToUpper(stem),
		Image:  img,
		Radius: float64(max(b.Dx(), b.Dy())) / 2,
		Color:  MeanColor(img),
	}, nil
}

// Scale resizes src preserving aspect ratio so the larger side is targetSize
func Scale(src image.Image, targetSize float64) *image.RGBA {
	sb := src.Bounds()
	w, h := sb.Dx(), sb.Dy()
	scale := targetSize / float64(max(w, h, 1))
	nw := max(int(float64(w)*scale), 1)
	nh := max(int(float64(h)*scale), 1)

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Over, nil)
	return dst
}

// MeanColor averages visible pixels weighted by alpha; fully transparent images give mid gray
func MeanColor(img image.Image) color.RGBA {
	var r, g, b, a uint64
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// premultiplied, 16-bit
			pr, pg, pb, pa := img.At(x, y).RGBA()
			r += uint64(pr)
			g += uint64(pg)
			b += uint64(pb)
			a += uint64(pa)
		}
	}
	if a == 0 {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	return color.RGBA{
		R: uint8(r * 255 / a),
		G: uint8(g * 255 / a),
		B: uint8(b * 255 / a),
		A: 255,
	}
}

// Sample returns the flag pixel at normalized coordinates u, v in [0,1)
// Transparent pixels fall back to the mean color
func (f *Flag) Sample(u, v float64) color.RGBA {
	b := f.Image.Bounds()
	x := b.Min.X + clampIndex(int(u*float64(b.Dx())), b.Dx())
	y := b.Min.Y + clampIndex(int(v*float64(b.Dy())), b.Dy())
	c := f.Image.RGBAAt(x, y)
	if c.A < 128 {
		return f.Color
	}
	return c
}

func clampIndex(i, n int) int {
	return min(max(i, 0), n-1)
}

// Templates builds one spawn template per flag; label resolves a code to a display name
// Handle is the flag's index in the catalog
func (c *Catalog) Templates(label func(code string) string) []engine.Template {
	out := make([]engine.Template, len(c.Flags))
	for i, f := range c.Flags {
		out[i] = engine.Template{
			Code:   f.Code,
			Label:  label(f.Code),
			Radius: f.Radius,
			Handle: i,
		}
	}
	return out
}

// Flag returns the flag for a body handle, nil when out of range
func (c *Catalog) Flag(handle int) *Flag {
	if handle < 0 || handle >= len(c.Flags) {
		return nil
	}
	return &c.Flags[handle]
}
