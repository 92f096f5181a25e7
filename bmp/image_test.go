package bmp

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitmap_Image(t *testing.T) {
	t.Run("flips rows and swaps channels", func(t *testing.T) {
		b := mustBitmap(t, build2x2())
		img, err := b.Image()
		assert.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())

		// Red and white occupy the second stored row, so they come out on
		// top once the bottom-up rows are flipped.
		assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(0, 0))
		assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, img.NRGBAAt(1, 0))
		assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(0, 1))
		assert.Equal(t, color.NRGBA{G: 255, A: 255}, img.NRGBAAt(1, 1))
	})

	t.Run("carries alpha for 32-bit images", func(t *testing.T) {
		b := mustBitmap(t, buildBMP(1, 1, 32, nil, []byte{10, 20, 30, 128}))
		img, err := b.Image()
		assert.NoError(t, err)
		assert.Equal(t, color.NRGBA{R: 30, G: 20, B: 10, A: 128}, img.NRGBAAt(0, 0))
	})

	t.Run("rejects palette depths", func(t *testing.T) {
		b := mustBitmap(t, buildBMP(1, 1, 8, nil, []byte{5}))
		_, err := b.Image()
		assert.ErrorIs(t, err, ErrUnsupportedColorDepth)
	})
}

func TestBitmap_SetImage(t *testing.T) {
	t.Run("converts back to file channel and row order", func(t *testing.T) {
		b := mustBitmap(t, buildBMP(1, 2, 24, nil, make([]byte, 6)))

		img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
		img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255}) // top row
		img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255}) // bottom row
		assert.NoError(t, b.SetImage(img))

		// The image's top row lands in the last stored row.
		top, err := b.GetPixel(0, 1)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 255}, top.Data())

		bottom, err := b.GetPixel(0, 0)
		assert.NoError(t, err)
		assert.Equal(t, []byte{255, 0, 0}, bottom.Data())
	})

	t.Run("round trips through NRGBA unchanged", func(t *testing.T) {
		raw := build2x2()
		b := mustBitmap(t, raw)

		img, err := b.Image()
		assert.NoError(t, err)
		assert.NoError(t, b.SetImage(img))

		var buf bytes.Buffer
		_, err = b.WriteTo(&buf)
		assert.NoError(t, err)
		assert.Equal(t, raw, buf.Bytes())
	})

	t.Run("rejects mismatched dimensions", func(t *testing.T) {
		b := mustBitmap(t, build2x2())
		err := b.SetImage(image.NewNRGBA(image.Rect(0, 0, 1, 1)))
		assert.ErrorIs(t, err, ErrPixelOutOfRange)
	})
}
