package bmp

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpen(t *testing.T) {
	t.Run("reads a file from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corners.bmp")
		assert.NoError(t, os.WriteFile(path, build2x2(), 0o644))

		b, err := Open(path)
		assert.NoError(t, err)

		width, err := b.Width()
		assert.NoError(t, err)
		assert.Equal(t, 2, width)

		height, err := b.Height()
		assert.NoError(t, err)
		assert.Equal(t, 2, height)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "nope.bmp"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open bitmap")
	})
}

func TestBitmap_WriteTo(t *testing.T) {
	t.Run("replays the stream byte for byte", func(t *testing.T) {
		raw := build2x2()
		b := mustBitmap(t, raw)

		var buf bytes.Buffer
		n, err := b.WriteTo(&buf)
		assert.NoError(t, err)
		assert.Equal(t, int64(len(raw)), n)
		assert.Equal(t, raw, buf.Bytes())
	})

	t.Run("preserves trailing header bytes", func(t *testing.T) {
		raw := buildBMP(1, 2, 24, []byte{0xCA, 0xFE}, []byte{1, 2, 3, 4, 5, 6})
		b := mustBitmap(t, raw)

		var buf bytes.Buffer
		_, err := b.WriteTo(&buf)
		assert.NoError(t, err)
		assert.Equal(t, raw, buf.Bytes())
	})
}

func TestBitmap_GetPixel(t *testing.T) {
	b := mustBitmap(t, build2x2())

	t.Run("returns stored channel values", func(t *testing.T) {
		for _, tc := range []struct {
			x, y int
			want []byte
		}{
			{0, 0, pixBlue},
			{1, 0, pixGreen},
			{0, 1, pixRed},
			{1, 1, pixWhite},
		} {
			p, err := b.GetPixel(tc.x, tc.y)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, p.Data())

			x, y := p.Position()
			assert.Equal(t, tc.x, x)
			assert.Equal(t, tc.y, y)
		}
	})

	t.Run("coordinates outside the image", func(t *testing.T) {
		for _, tc := range []struct{ x, y int }{
			{2, 0}, {0, 2}, {-1, 0}, {0, -1},
		} {
			_, err := b.GetPixel(tc.x, tc.y)
			assert.ErrorIs(t, err, ErrPixelOutOfRange)
		}
	})

	t.Run("snapshot is unaffected by later writes", func(t *testing.T) {
		b := mustBitmap(t, build2x2())
		before, err := b.GetPixel(0, 0)
		assert.NoError(t, err)

		assert.NoError(t, b.SetPixel(0, 0, []byte{7, 8, 9}))
		assert.Equal(t, pixBlue, before.Data())

		after, err := b.GetPixel(0, 0)
		assert.NoError(t, err)
		assert.Equal(t, []byte{7, 8, 9}, after.Data())
	})
}

func TestBitmap_SetPixel(t *testing.T) {
	t.Run("overwrites channel values", func(t *testing.T) {
		b := mustBitmap(t, build2x2())
		assert.NoError(t, b.SetPixel(1, 1, []byte{10, 20, 30}))

		p, err := b.GetPixel(1, 1)
		assert.NoError(t, err)
		assert.Equal(t, []byte{10, 20, 30}, p.Data())
	})

	t.Run("wrong channel count leaves the buffer untouched", func(t *testing.T) {
		raw := build2x2()
		b := mustBitmap(t, raw)

		err := b.SetPixel(0, 0, []byte{1, 2, 3, 4})
		assert.ErrorIs(t, err, ErrInvalidPixelFormat)

		err = b.SetPixel(0, 0, []byte{1})
		assert.ErrorIs(t, err, ErrInvalidPixelFormat)

		var buf bytes.Buffer
		_, err = b.WriteTo(&buf)
		assert.NoError(t, err)
		assert.Equal(t, raw, buf.Bytes())
	})

	t.Run("coordinates outside the image leave the buffer untouched", func(t *testing.T) {
		raw := build2x2()
		b := mustBitmap(t, raw)

		err := b.SetPixel(2, 0, []byte{1, 2, 3})
		assert.ErrorIs(t, err, ErrPixelOutOfRange)

		var buf bytes.Buffer
		_, err = b.WriteTo(&buf)
		assert.NoError(t, err)
		assert.Equal(t, raw, buf.Bytes())
	})

	t.Run("writing a pixel's own data back changes nothing", func(t *testing.T) {
		raw := build2x2()
		b := mustBitmap(t, raw)

		pixels, err := b.Pixels()
		assert.NoError(t, err)
		for p := range pixels {
			assert.NoError(t, p.Update(p.Data()))
		}

		var buf bytes.Buffer
		_, err = b.WriteTo(&buf)
		assert.NoError(t, err)
		assert.Equal(t, raw, buf.Bytes())
	})
}

func TestBitmap_Pixels(t *testing.T) {
	t.Run("visits every pixel in buffer order", func(t *testing.T) {
		b := mustBitmap(t, build2x2())
		pixels, err := b.Pixels()
		assert.NoError(t, err)

		var positions [][2]int
		var data [][]byte
		for p := range pixels {
			x, y := p.Position()
			positions = append(positions, [2]int{x, y})
			data = append(data, p.Data())
		}

		assert.Equal(t, [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, positions)
		assert.Equal(t, [][]byte{pixBlue, pixGreen, pixRed, pixWhite}, data)
	})

	t.Run("sequence can be ranged over again", func(t *testing.T) {
		b := mustBitmap(t, build2x2())
		pixels, err := b.Pixels()
		assert.NoError(t, err)

		first, second := 0, 0
		for range pixels {
			first++
		}
		for range pixels {
			second++
		}
		assert.Equal(t, 4, first)
		assert.Equal(t, 4, second)
	})

	t.Run("stops early when the caller breaks", func(t *testing.T) {
		b := mustBitmap(t, build2x2())
		pixels, err := b.Pixels()
		assert.NoError(t, err)

		count := 0
		for range pixels {
			count++
			if count == 2 {
				break
			}
		}
		assert.Equal(t, 2, count)
	})

	t.Run("inconsistent buffer fails up front", func(t *testing.T) {
		raw := buildBMP(2, 2, 24, nil, make([]byte, 13))
		b := mustBitmap(t, raw)

		_, err := b.Pixels()
		assert.ErrorIs(t, err, ErrInconsistentBufferSize)
	})
}

func TestBitmap_Height(t *testing.T) {
	t.Run("derived from the pixel buffer, not the header", func(t *testing.T) {
		// Header claims 2 rows but the buffer holds 3.
		raw := buildBMP(2, 2, 24, nil, make([]byte, 18))
		b := mustBitmap(t, raw)

		height, err := b.Height()
		assert.NoError(t, err)
		assert.Equal(t, 3, height)
	})

	t.Run("buffer with a partial pixel", func(t *testing.T) {
		b := mustBitmap(t, buildBMP(2, 2, 24, nil, make([]byte, 13)))
		_, err := b.Height()
		assert.ErrorIs(t, err, ErrInconsistentBufferSize)
	})

	t.Run("buffer with a partial row", func(t *testing.T) {
		b := mustBitmap(t, buildBMP(2, 2, 24, nil, make([]byte, 9)))
		_, err := b.Height()
		assert.ErrorIs(t, err, ErrInconsistentBufferSize)
	})

	t.Run("zero header width", func(t *testing.T) {
		b := mustBitmap(t, buildBMP(0, 0, 24, nil, nil))
		_, err := b.Height()
		assert.ErrorIs(t, err, ErrInconsistentBufferSize)
	})
}

func TestBitmap_SaveAs(t *testing.T) {
	raw := build2x2()
	b := mustBitmap(t, raw)

	path := filepath.Join(t.TempDir(), "out.bmp")
	assert.NoError(t, b.SaveAs(path))

	written, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, raw, written)

	reopened, err := Open(path)
	assert.NoError(t, err)

	p, err := reopened.GetPixel(1, 0)
	assert.NoError(t, err)
	assert.Equal(t, pixGreen, p.Data())
}

func TestBitmap_String(t *testing.T) {
	b := mustBitmap(t, build2x2())
	assert.Equal(t, "Size in bytes: 66, width: 2, height: 2, bits per pixel: 24", b.String())
}
