package stage

import (
	"fmt"

	"github.com/seanjohnno/bitmapy/bmp"
)

// colorChannels returns the bitmap's bytes per pixel, rejecting depths whose
// channels the pixel-loop stages cannot interpret. Only 24- and 32-bit
// images carry the blue, green, red layout the stages assume.
func colorChannels(b *bmp.Bitmap) (int, error) {
	bytesPerPixel, err := b.BytesPerPixel()
	if err != nil {
		return 0, err
	}
	if bytesPerPixel != 3 && bytesPerPixel != 4 {
		return 0, fmt.Errorf("%w: %d bits per pixel has no color channels to process",
			bmp.ErrUnsupportedColorDepth, bytesPerPixel*8)
	}
	return bytesPerPixel, nil
}
