package bmp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"slices"
	"strconv"
)

/*
BMP header layout (all integers little-endian):

	Offset  Size  Description
	0       14    File header: 2-byte magic, then opaque/reserved bytes
	  2     4     Total file size in bytes
	  10    4     Offset from file start to the pixel array
	14      4     DIB header length; its value doubles as the variant tag
	18      n-4   DIB header body (field layout depends on the tag)
	14+n    var   Opaque trailing bytes (color tables etc.) up to the
	              pixel array offset
*/
const (
	fileHeaderLen = 14

	intSize   = 4
	shortSize = 2
)

// FieldKey names a field in a DIB header variant's layout table.
type FieldKey string

// Fields defined by the 40-byte informational header (BITMAPINFOHEADER).
const (
	FieldWidth                FieldKey = "width"
	FieldHeight               FieldKey = "height"
	FieldColorPlaneCount      FieldKey = "colorPlaneCount"
	FieldBitsPerPixel         FieldKey = "bitsPerPixel"
	FieldCompressionMethod    FieldKey = "compressionMethod"
	FieldRawImageSize         FieldKey = "rawImageSize"
	FieldHorizontalResolution FieldKey = "horizontalResolution"
	FieldVerticalResolution   FieldKey = "verticalResolution"
	FieldColorPaletteCount    FieldKey = "colorPaletteCount"
	FieldImportantColorCount  FieldKey = "importantColorCount"
)

// fieldSlot locates one field inside a DIB header body.
type fieldSlot struct {
	offset int
	size   int
}

// dibVariant describes one DIB header type: its display name and where each
// decodable field sits within the header body.
type dibVariant struct {
	name   string
	fields map[FieldKey]fieldSlot
}

// infoHeaderTag is the DIB length of the informational header, the only
// variant currently registered.
const infoHeaderTag = 40

// headerVariants maps the DIB length tag to its field layout. The tag is
// the variant identifier on disk, so supporting BITMAPV4HEADER (108) or
// BITMAPV5HEADER (124) later is a data addition, not a structural change.
var headerVariants = map[uint32]*dibVariant{
	infoHeaderTag: {
		name: "BITMAPINFOHEADER",
		fields: map[FieldKey]fieldSlot{
			FieldWidth:                {0, intSize},
			FieldHeight:               {4, intSize},
			FieldColorPlaneCount:      {8, shortSize},
			FieldBitsPerPixel:         {10, shortSize},
			FieldCompressionMethod:    {12, intSize},
			FieldRawImageSize:         {16, intSize},
			FieldHorizontalResolution: {20, intSize},
			FieldVerticalResolution:   {24, intSize},
			FieldColorPaletteCount:    {28, intSize},
			FieldImportantColorCount:  {32, intSize},
		},
	},
}

// HeaderInfo holds everything read from a BMP stream ahead of the pixel
// array. Every byte is retained so the header can be replayed verbatim on
// save; only a handful of fields are actually decoded.
type HeaderInfo struct {
	fileHeader       []byte // fixed 14-byte block
	bmpSize          uint32 // decoded from fileHeader[2:6]
	pixelArrayOffset uint32 // decoded from fileHeader[10:14]

	dibLengthBytes []byte // raw 4-byte DIB length field
	headerType     uint32 // decoded DIB length, doubling as the variant tag
	dibBody        []byte // headerType-4 bytes following the length field
	trailing       []byte // opaque bytes up to the pixel array offset

	variant *dibVariant
}

// ReadHeaderInfo parses the file header and DIB header block from r,
// leaving the reader positioned at the start of the pixel array.
func ReadHeaderInfo(r io.Reader) (*HeaderInfo, error) {
	h := &HeaderInfo{fileHeader: make([]byte, fileHeaderLen)}
	if _, err := io.ReadFull(r, h.fileHeader); err != nil {
		return nil, fmt.Errorf("%w: file header: %v", ErrTruncatedHeader, err)
	}
	h.bmpSize = binary.LittleEndian.Uint32(h.fileHeader[2:6])
	h.pixelArrayOffset = binary.LittleEndian.Uint32(h.fileHeader[10:14])

	h.dibLengthBytes = make([]byte, intSize)
	if _, err := io.ReadFull(r, h.dibLengthBytes); err != nil {
		return nil, fmt.Errorf("%w: DIB header length: %v", ErrTruncatedHeader, err)
	}
	h.headerType = binary.LittleEndian.Uint32(h.dibLengthBytes)

	variant, ok := headerVariants[h.headerType]
	if !ok {
		return nil, fmt.Errorf("%w: length tag %d", ErrUnsupportedHeaderType, h.headerType)
	}
	h.variant = variant

	h.dibBody = make([]byte, h.headerType-intSize)
	if _, err := io.ReadFull(r, h.dibBody); err != nil {
		return nil, fmt.Errorf("%w: %s body: %v", ErrTruncatedHeader, variant.name, err)
	}

	// Anything between the DIB header and the pixel array (a color table,
	// typically) is captured opaquely and replayed on save. The length comes
	// straight from the file, so read incrementally rather than sizing an
	// allocation from it; a hostile offset then fails on the short read.
	trailing := int64(h.pixelArrayOffset) - int64(fileHeaderLen+h.headerType)
	switch {
	case trailing < 0:
		return nil, fmt.Errorf("%w: pixel array offset %d overlaps the %d-byte header block",
			ErrCorruptHeader, h.pixelArrayOffset, fileHeaderLen+h.headerType)
	case trailing > 0:
		var buf bytes.Buffer
		if _, err := io.CopyN(&buf, r, trailing); err != nil {
			return nil, fmt.Errorf("%w: trailing header bytes: %v", ErrTruncatedHeader, err)
		}
		h.trailing = buf.Bytes()
	}
	return h, nil
}

// BMPSize returns the total file size recorded in the file header. The
// value is replayed as parsed, never re-derived.
func (h *HeaderInfo) BMPSize() uint32 { return h.bmpSize }

// PixelArrayOffset returns the byte offset from file start at which the
// pixel array begins.
func (h *HeaderInfo) PixelArrayOffset() uint32 { return h.pixelArrayOffset }

// HeaderType returns the DIB length tag identifying the header variant.
func (h *HeaderInfo) HeaderType() uint32 { return h.headerType }

// VariantName returns the Windows name of the DIB header variant, e.g.
// "BITMAPINFOHEADER".
func (h *HeaderInfo) VariantName() string { return h.variant.name }

// Field decodes the named field from the DIB header body using the active
// variant's layout table. Keys the variant does not define fail with
// ErrUnsupportedField rather than returning a default.
func (h *HeaderInfo) Field(key FieldKey) (uint32, error) {
	slot, ok := h.variant.fields[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s has no %q field", ErrUnsupportedField, h.variant.name, key)
	}
	return decodeUint(h.dibBody[slot.offset : slot.offset+slot.size]), nil
}

// FieldKeys returns the fields the active variant defines, in header
// layout order.
func (h *HeaderInfo) FieldKeys() []FieldKey {
	keys := make([]FieldKey, 0, len(h.variant.fields))
	for key := range h.variant.fields {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b FieldKey) int {
		return h.variant.fields[a].offset - h.variant.fields[b].offset
	})
	return keys
}

// Width returns the image width in pixels as recorded in the DIB header.
func (h *HeaderInfo) Width() (int, error) { return h.intField(FieldWidth) }

// Height returns the image height as recorded in the DIB header. Note that
// Bitmap derives its height from the pixel buffer length instead.
func (h *HeaderInfo) Height() (int, error) { return h.intField(FieldHeight) }

// ColorPlaneCount returns the number of color planes (1 in practice).
func (h *HeaderInfo) ColorPlaneCount() (int, error) { return h.intField(FieldColorPlaneCount) }

// BitsPerPixel returns the color depth in bits.
func (h *HeaderInfo) BitsPerPixel() (int, error) { return h.intField(FieldBitsPerPixel) }

// CompressionMethod returns the compression identifier (0 = BI_RGB).
func (h *HeaderInfo) CompressionMethod() (uint32, error) {
	return h.Field(FieldCompressionMethod)
}

// RawImageSize returns the pixel array size recorded in the header, which
// may legitimately be zero for BI_RGB files.
func (h *HeaderInfo) RawImageSize() (int, error) { return h.intField(FieldRawImageSize) }

// HorizontalResolution returns the horizontal print resolution in pixels
// per meter.
func (h *HeaderInfo) HorizontalResolution() (int, error) {
	return h.intField(FieldHorizontalResolution)
}

// VerticalResolution returns the vertical print resolution in pixels per
// meter.
func (h *HeaderInfo) VerticalResolution() (int, error) {
	return h.intField(FieldVerticalResolution)
}

// ColorPaletteCount returns the number of palette entries.
func (h *HeaderInfo) ColorPaletteCount() (int, error) { return h.intField(FieldColorPaletteCount) }

// ImportantColorCount returns the number of "important" palette entries.
func (h *HeaderInfo) ImportantColorCount() (int, error) {
	return h.intField(FieldImportantColorCount)
}

// BytesPerPixel returns bits-per-pixel divided by 8. Depths that are not a
// positive multiple of 8 bits have no whole-byte pixel representation and
// fail with ErrUnsupportedColorDepth.
func (h *HeaderInfo) BytesPerPixel() (int, error) {
	bits, err := h.BitsPerPixel()
	if err != nil {
		return 0, err
	}
	if bits == 0 || bits%8 != 0 {
		return 0, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedColorDepth, bits)
	}
	return bits / 8, nil
}

func (h *HeaderInfo) intField(key FieldKey) (int, error) {
	v, err := h.Field(key)
	return int(v), err
}

// WriteTo replays the captured header bytes verbatim: file header, raw DIB
// length field, DIB body, then the trailing blob. Nothing is re-encoded, so
// a parse/serialize round trip is byte-identical.
func (h *HeaderInfo) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, block := range [][]byte{h.fileHeader, h.dibLengthBytes, h.dibBody, h.trailing} {
		n, err := w.Write(block)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String summarizes the decoded header fields. Fields the active variant
// does not define render as zero.
func (h *HeaderInfo) String() string {
	width, _ := h.Width()
	height, _ := h.Height()
	bits, _ := h.BitsPerPixel()
	return fmt.Sprintf("Size in bytes: %d, width: %d, height: %d, bits per pixel: %d",
		h.bmpSize, width, height, bits)
}

// decodeUint decodes a little-endian unsigned integer of 2 or 4 bytes.
func decodeUint(b []byte) uint32 {
	if len(b) == shortSize {
		return uint32(binary.LittleEndian.Uint16(b))
	}
	return binary.LittleEndian.Uint32(b)
}

// compressionNames maps BITMAPINFOHEADER compression identifiers to their
// Windows names.
var compressionNames = map[uint32]string{
	0: "BI_RGB",
	1: "BI_RLE8",
	2: "BI_RLE4",
	3: "BI_BITFIELDS",
	4: "BI_JPEG",
	5: "BI_PNG",
}

// CompressionMethodName renders a compression identifier using its Windows
// name, falling back to the numeric value for unknown methods.
func CompressionMethodName(method uint32) string {
	if name, ok := compressionNames[method]; ok {
		return name
	}
	return strconv.FormatUint(uint64(method), 10)
}
