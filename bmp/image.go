package bmp

import (
	"fmt"
	"image"
	"image/color"
)

// Image converts the pixel buffer to a top-down NRGBA image, swapping the
// file's BGR(A) channel order to RGBA and flipping the bottom-up rows.
// Only 24- and 32-bit files convert; other depths need palette handling
// this package does not do.
func (b *Bitmap) Image() (*image.NRGBA, error) {
	width, bytesPerPixel, height, err := b.geometry()
	if err != nil {
		return nil, err
	}
	if bytesPerPixel != 3 && bytesPerPixel != 4 {
		return nil, fmt.Errorf("%w: %d bits per pixel has no direct RGBA form",
			ErrUnsupportedColorDepth, bytesPerPixel*8)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		srcRow := y * width * bytesPerPixel
		dstRow := (height - 1 - y) * img.Stride
		for x := 0; x < width; x++ {
			src := srcRow + x*bytesPerPixel
			dst := dstRow + x*4
			img.Pix[dst+0] = b.pix[src+2]
			img.Pix[dst+1] = b.pix[src+1]
			img.Pix[dst+2] = b.pix[src+0]
			if bytesPerPixel == 4 {
				img.Pix[dst+3] = b.pix[src+3]
			} else {
				img.Pix[dst+3] = 0xFF
			}
		}
	}
	return img, nil
}

// SetImage overwrites the pixel buffer from a top-down image, converting
// back to the file's channel order and row direction. The image dimensions
// must match the bitmap's exactly; headers are left untouched.
func (b *Bitmap) SetImage(img image.Image) error {
	width, bytesPerPixel, height, err := b.geometry()
	if err != nil {
		return err
	}
	if bytesPerPixel != 3 && bytesPerPixel != 4 {
		return fmt.Errorf("%w: %d bits per pixel has no direct RGBA form",
			ErrUnsupportedColorDepth, bytesPerPixel*8)
	}
	bounds := img.Bounds()
	if bounds.Dx() != width || bounds.Dy() != height {
		return fmt.Errorf("%w: image is %dx%d, bitmap is %dx%d",
			ErrPixelOutOfRange, bounds.Dx(), bounds.Dy(), width, height)
	}

	channels := make([]byte, bytesPerPixel)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			channels[0] = c.B
			channels[1] = c.G
			channels[2] = c.R
			if bytesPerPixel == 4 {
				channels[3] = c.A
			}
			if err := b.SetPixel(x, height-1-y, channels); err != nil {
				return err
			}
		}
	}
	return nil
}
