// Package bmp reads, edits and writes Windows bitmap (.bmp) files.
//
// The decoder keeps every header byte it reads, decoding only the fields it
// understands, so files survive a load/save round trip unchanged even when
// they carry color tables or header fields this package never interprets.
// Pixels are exposed in the file's native layout: channels in BGR(A) order,
// rows bottom-up. Row padding is not handled, so widths whose rows are not
// 4-byte aligned at the file's color depth will fail buffer validation.
package bmp

import (
	"fmt"
	"io"
	"iter"
	"os"
)

// Bitmap is an in-memory BMP file: the parsed header block plus the raw
// pixel array. Mutations touch the pixel array only; headers are replayed
// verbatim on save.
type Bitmap struct {
	info *HeaderInfo
	pix  []byte
}

// Open reads the BMP file at path.
func Open(path string) (*Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bitmap: %w", err)
	}
	defer f.Close()
	return NewFromReader(f)
}

// NewFromReader reads a complete BMP stream: headers first, then everything
// up to EOF as the pixel array.
func NewFromReader(r io.Reader) (*Bitmap, error) {
	info, err := ReadHeaderInfo(r)
	if err != nil {
		return nil, err
	}
	pix, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read pixel array: %w", err)
	}
	return &Bitmap{info: info, pix: pix}, nil
}

// Info returns the parsed header block.
func (b *Bitmap) Info() *HeaderInfo { return b.info }

// Width returns the image width in pixels from the header.
func (b *Bitmap) Width() (int, error) { return b.info.Width() }

// BitsPerPixel returns the color depth in bits from the header.
func (b *Bitmap) BitsPerPixel() (int, error) { return b.info.BitsPerPixel() }

// BytesPerPixel returns the number of bytes each pixel occupies.
func (b *Bitmap) BytesPerPixel() (int, error) { return b.info.BytesPerPixel() }

// RawImageSize returns the pixel array size recorded in the header.
func (b *Bitmap) RawImageSize() (int, error) { return b.info.RawImageSize() }

// Height returns the row count derived from the actual pixel buffer length,
// not the header's height field. The two agree for well-formed files; for
// damaged ones the buffer is the ground truth for what is addressable.
func (b *Bitmap) Height() (int, error) {
	_, _, height, err := b.geometry()
	return height, err
}

// geometry derives the addressable dimensions from the header and the pixel
// buffer, rejecting any combination that does not divide evenly.
func (b *Bitmap) geometry() (width, bytesPerPixel, height int, err error) {
	width, err = b.info.Width()
	if err != nil {
		return 0, 0, 0, err
	}
	bytesPerPixel, err = b.info.BytesPerPixel()
	if err != nil {
		return 0, 0, 0, err
	}
	if width <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: header width %d", ErrInconsistentBufferSize, width)
	}
	if len(b.pix)%bytesPerPixel != 0 {
		return 0, 0, 0, fmt.Errorf("%w: %d bytes is not a whole number of %d-byte pixels",
			ErrInconsistentBufferSize, len(b.pix), bytesPerPixel)
	}
	pixelCount := len(b.pix) / bytesPerPixel
	if pixelCount%width != 0 {
		return 0, 0, 0, fmt.Errorf("%w: %d pixels do not fill whole rows of width %d",
			ErrInconsistentBufferSize, pixelCount, width)
	}
	return width, bytesPerPixel, pixelCount / width, nil
}

// pixelOffset maps (x, y) to a byte offset in the pixel array. Coordinates
// are raster positions within the buffer's own row order, so y 0 is the
// first stored row (the bottom of the image for bottom-up files).
func (b *Bitmap) pixelOffset(x, y int) (offset, bytesPerPixel int, err error) {
	width, bytesPerPixel, height, err := b.geometry()
	if err != nil {
		return 0, 0, err
	}
	if x < 0 || y < 0 || x >= width || y >= height {
		return 0, 0, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrPixelOutOfRange, x, y, width, height)
	}
	offset = (y*width + x) * bytesPerPixel
	if offset+bytesPerPixel > len(b.pix) {
		return 0, 0, fmt.Errorf("%w: (%d, %d) beyond pixel buffer", ErrPixelOutOfRange, x, y)
	}
	return offset, bytesPerPixel, nil
}

// GetPixel returns a snapshot of the pixel at (x, y). The snapshot's channel
// data is a copy taken now; later SetPixel calls do not alter it.
func (b *Bitmap) GetPixel(x, y int) (Pixel, error) {
	offset, bytesPerPixel, err := b.pixelOffset(x, y)
	if err != nil {
		return Pixel{}, err
	}
	data := make([]byte, bytesPerPixel)
	copy(data, b.pix[offset:offset+bytesPerPixel])
	return Pixel{owner: b, x: x, y: y, data: data}, nil
}

// SetPixel overwrites the channel values at (x, y). The value count must
// match the color depth exactly; on any error the buffer is untouched.
func (b *Bitmap) SetPixel(x, y int, channels []byte) error {
	width, bytesPerPixel, height, err := b.geometry()
	if err != nil {
		return err
	}
	if len(channels) != bytesPerPixel {
		return fmt.Errorf("%w: got %d channel values, want %d",
			ErrInvalidPixelFormat, len(channels), bytesPerPixel)
	}
	if x < 0 || y < 0 || x >= width || y >= height {
		return fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrPixelOutOfRange, x, y, width, height)
	}
	copy(b.pix[(y*width+x)*bytesPerPixel:], channels)
	return nil
}

// Pixels returns an iterator over every pixel in buffer order: x fastest,
// then y, so a bottom-up file yields its bottom row first. Geometry is
// validated up front; the returned sequence itself cannot fail and may be
// ranged over more than once. Each yielded Pixel carries its own snapshot.
func (b *Bitmap) Pixels() (iter.Seq[Pixel], error) {
	width, bytesPerPixel, height, err := b.geometry()
	if err != nil {
		return nil, err
	}
	total := width * height
	return func(yield func(Pixel) bool) {
		for i := 0; i < total; i++ {
			offset := i * bytesPerPixel
			data := make([]byte, bytesPerPixel)
			copy(data, b.pix[offset:offset+bytesPerPixel])
			if !yield(Pixel{owner: b, x: i % width, y: i / width, data: data}) {
				return
			}
		}
	}, nil
}

// PixelArray exposes the raw pixel bytes. The slice aliases the bitmap's
// buffer, so writes through it are writes to the image.
func (b *Bitmap) PixelArray() []byte { return b.pix }

// WriteTo serializes the bitmap: the captured header block verbatim, then
// the pixel array.
func (b *Bitmap) WriteTo(w io.Writer) (int64, error) {
	total, err := b.info.WriteTo(w)
	if err != nil {
		return total, err
	}
	n, err := w.Write(b.pix)
	return total + int64(n), err
}

// SaveAs writes the bitmap to a new file at path.
func (b *Bitmap) SaveAs(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if _, err := b.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write bitmap: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// String summarizes the bitmap's header fields.
func (b *Bitmap) String() string { return b.info.String() }
