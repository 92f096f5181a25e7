package bmp

import (
	"bytes"
	"encoding/binary"
	"slices"
	"testing"
)

// buildBMP assembles a complete BMP byte stream with a 40-byte
// informational header. Pixel bytes are taken verbatim, so callers supply
// them in file order: BGR(A) channels, bottom row first.
func buildBMP(width, height, bitsPerPixel int, trailing, pixels []byte) []byte {
	offset := fileHeaderLen + infoHeaderTag + len(trailing)

	file := make([]byte, fileHeaderLen)
	copy(file, "BM")
	binary.LittleEndian.PutUint32(file[2:], uint32(offset+len(pixels)))
	binary.LittleEndian.PutUint32(file[10:], uint32(offset))

	dib := make([]byte, infoHeaderTag)
	binary.LittleEndian.PutUint32(dib[0:], infoHeaderTag)
	binary.LittleEndian.PutUint32(dib[4:], uint32(width))
	binary.LittleEndian.PutUint32(dib[8:], uint32(height))
	binary.LittleEndian.PutUint16(dib[12:], 1)
	binary.LittleEndian.PutUint16(dib[14:], uint16(bitsPerPixel))
	binary.LittleEndian.PutUint32(dib[20:], uint32(len(pixels)))
	binary.LittleEndian.PutUint32(dib[24:], 2835)
	binary.LittleEndian.PutUint32(dib[28:], 2835)

	raw := make([]byte, 0, offset+len(pixels))
	raw = append(raw, file...)
	raw = append(raw, dib...)
	raw = append(raw, trailing...)
	raw = append(raw, pixels...)
	return raw
}

// Corner colors for the 2x2 fixture, in file channel order (BGR).
var (
	pixBlue  = []byte{255, 0, 0}
	pixGreen = []byte{0, 255, 0}
	pixRed   = []byte{0, 0, 255}
	pixWhite = []byte{255, 255, 255}
)

// build2x2 returns a 2x2 24-bit image with one color per corner. Rows are
// stored bottom-up: blue and green sit in the first stored row (the bottom
// of the image), red and white in the second (the top).
func build2x2() []byte {
	return buildBMP(2, 2, 24, nil, slices.Concat(pixBlue, pixGreen, pixRed, pixWhite))
}

func mustBitmap(t *testing.T, raw []byte) *Bitmap {
	t.Helper()
	b, err := NewFromReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("failed to parse fixture bitmap: %v", err)
	}
	return b
}
