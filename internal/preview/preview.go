// Package preview renders bitmaps into viewer-friendly PNG and APNG form.
package preview

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"github.com/kettek/apng"
	"github.com/seanjohnno/bitmapy/bmp"
)

// PNG encodes the bitmap as a PNG.
func PNG(w io.Writer, b *bmp.Bitmap) error {
	img, err := b.Image()
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// maxFrameDelay is the longest per-frame delay encodable with a
// millisecond denominator: the numerator is a uint16.
const maxFrameDelay = 65.535

// APNG builds an animated PNG from the given BMP files, one frame per file
// in the order supplied, each shown for frameDelay seconds.
func APNG(files []string, frameDelay float64) ([]byte, error) {
	if frameDelay <= 0 || frameDelay > maxFrameDelay {
		return nil, fmt.Errorf("frame delay must be between 0 and %v seconds, got %v",
			maxFrameDelay, frameDelay)
	}

	a := apng.APNG{
		Frames:    make([]apng.Frame, len(files)),
		LoopCount: 0,
	}

	for i, fname := range files {
		b, err := bmp.Open(fname)
		if err != nil {
			return nil, err
		}

		img, err := b.Image()
		if err != nil {
			return nil, err
		}

		a.Frames[i] = apng.Frame{
			Image:            img,
			DelayNumerator:   uint16(frameDelay * 1000),
			DelayDenominator: 1000,
		}
	}

	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
