package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/seanjohnno/bitmapy/bmp"
	"github.com/seanjohnno/bitmapy/models/bmpinfo"
)

// Info prints header information for one bitmap: the one-line summary by
// default, every decodable DIB field with --fields, or the full report as
// JSON with --json.
func Info(path string, asJSON, showFields bool) error {
	b, err := bmp.Open(path)
	if err != nil {
		return err
	}

	if asJSON {
		report, err := bmpinfo.FromBitmap(path, b)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println(b)

	if showFields {
		info := b.Info()
		fmt.Printf("DIB header: %s (%d bytes)\n", info.VariantName(), info.HeaderType())
		fmt.Printf("Pixel array offset: %d\n", info.PixelArrayOffset())
		for _, key := range info.FieldKeys() {
			value, err := info.Field(key)
			if err != nil {
				return err
			}
			if key == bmp.FieldCompressionMethod {
				fmt.Printf("  %-22s %d (%s)\n", key, value, bmp.CompressionMethodName(value))
			} else {
				fmt.Printf("  %-22s %d\n", key, value)
			}
		}
	}
	return nil
}
