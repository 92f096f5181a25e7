// Package bmpinfo holds the wire-format inspection report shared by the
// info command and the API server.
package bmpinfo

import (
	"github.com/seanjohnno/bitmapy/bmp"
)

type Report struct {
	FileName             string `json:"fileName"`
	FileSize             uint32 `json:"fileSize"`
	PixelArrayOffset     uint32 `json:"pixelArrayOffset"`
	DibHeaderType        uint32 `json:"dibHeaderType"`
	DibHeaderName        string `json:"dibHeaderName"`
	Width                int    `json:"width"`
	Height               int    `json:"height"`
	DerivedHeight        int    `json:"derivedHeight"`
	ColorPlaneCount      int    `json:"colorPlaneCount"`
	BitsPerPixel         int    `json:"bitsPerPixel"`
	BytesPerPixel        int    `json:"bytesPerPixel"`
	CompressionMethod    uint32 `json:"compressionMethod"`
	CompressionName      string `json:"compressionName"`
	RawImageSize         int    `json:"rawImageSize"`
	HorizontalResolution int    `json:"horizontalResolution"`
	VerticalResolution   int    `json:"verticalResolution"`
	ColorPaletteCount    int    `json:"colorPaletteCount"`
	ImportantColorCount  int    `json:"importantColorCount"`
	PixelCount           int    `json:"pixelCount"`
}

// FromBitmap assembles a report from a loaded bitmap. Height comes from the
// header; DerivedHeight and PixelCount come from the actual buffer length.
func FromBitmap(fileName string, b *bmp.Bitmap) (*Report, error) {
	info := b.Info()

	width, err := info.Width()
	if err != nil {
		return nil, err
	}
	height, err := info.Height()
	if err != nil {
		return nil, err
	}
	planes, err := info.ColorPlaneCount()
	if err != nil {
		return nil, err
	}
	bits, err := info.BitsPerPixel()
	if err != nil {
		return nil, err
	}
	bytesPerPixel, err := info.BytesPerPixel()
	if err != nil {
		return nil, err
	}
	compression, err := info.CompressionMethod()
	if err != nil {
		return nil, err
	}
	rawSize, err := info.RawImageSize()
	if err != nil {
		return nil, err
	}
	hres, err := info.HorizontalResolution()
	if err != nil {
		return nil, err
	}
	vres, err := info.VerticalResolution()
	if err != nil {
		return nil, err
	}
	palette, err := info.ColorPaletteCount()
	if err != nil {
		return nil, err
	}
	important, err := info.ImportantColorCount()
	if err != nil {
		return nil, err
	}
	derivedHeight, err := b.Height()
	if err != nil {
		return nil, err
	}

	return &Report{
		FileName:             fileName,
		FileSize:             info.BMPSize(),
		PixelArrayOffset:     info.PixelArrayOffset(),
		DibHeaderType:        info.HeaderType(),
		DibHeaderName:        info.VariantName(),
		Width:                width,
		Height:               height,
		DerivedHeight:        derivedHeight,
		ColorPlaneCount:      planes,
		BitsPerPixel:         bits,
		BytesPerPixel:        bytesPerPixel,
		CompressionMethod:    compression,
		CompressionName:      bmp.CompressionMethodName(compression),
		RawImageSize:         rawSize,
		HorizontalResolution: hres,
		VerticalResolution:   vres,
		ColorPaletteCount:    palette,
		ImportantColorCount:  important,
		PixelCount:           width * derivedHeight,
	}, nil
}
