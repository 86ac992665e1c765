package display

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/chewxy/math32"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/render"
)

// ColorImage converts the color plane to a standard Go image.
func ColorImage(fb *render.Framebuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := fb.ColorAt(x, y)
			i := img.PixOffset(x, y)
			img.Pix[i+0] = toByte(r)
			img.Pix[i+1] = toByte(g)
			img.Pix[i+2] = toByte(b)
			img.Pix[i+3] = 255
		}
	}
	return img
}

// DepthImage converts the depth plane to a grayscale image for diagnostics.
// Encoded depths are mapped back to linear view-space depth and normalized
// by the far plane; untouched sentinel pixels come out white.
func DepthImage(fb *render.Framebuffer, zNear, zFar float32) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			d := fb.DepthAt(x, y)
			var v float32 = 1
			if d < render.DepthInfinity {
				linear := math3d.ExponentialInvertedToLinearZ(d, zNear, zFar)
				v = math32.Min(math32.Max(linear/zFar, 0), 1)
			}
			img.SetGray(x, y, color.Gray{Y: toByte(v)})
		}
	}
	return img
}

// SavePNG writes an image to a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
