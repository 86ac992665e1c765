package scene

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
)

// Texture holds CPU-side pixel data in R8G8B8A8 format, row-major,
// top-to-bottom.
type Texture struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewTexture creates an empty RGBA8 texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:    width,
		Height:   height,
		Channels: 4,
		Pix:      make([]uint8, width*height*4),
	}
}

// NewSolidTexture creates a 1x1 texture with the given RGBA values (0-255).
func NewSolidTexture(r, g, b, a uint8) *Texture {
	return &Texture{
		Width:    1,
		Height:   1,
		Channels: 4,
		Pix:      []uint8{r, g, b, a},
	}
}

// NewCheckerTexture creates a procedural checkerboard texture alternating
// between two RGBA colors in squares of checkSize pixels.
func NewCheckerTexture(width, height, checkSize int, c1, c2 [4]uint8) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			c := c1
			if ((x/checkSize)+(y/checkSize))%2 != 0 {
				c = c2
			}
			i := (y*width + x) * 4
			copy(tex.Pix[i:i+4], c[:])
		}
	}
	return tex
}

// TextureFromImage converts any image.Image into an RGBA8 texture.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := NewTexture(bounds.Dx(), bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			// RGBA returns 16-bit values, scale to 8-bit
			tex.Pix[i+0] = uint8(r >> 8)
			tex.Pix[i+1] = uint8(g >> 8)
			tex.Pix[i+2] = uint8(b >> 8)
			tex.Pix[i+3] = uint8(a >> 8)
			i += 4
		}
	}
	return tex
}

// LoadTexture reads a PNG or JPEG file from disk into an RGBA8 texture.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	return TextureFromImage(img), nil
}
