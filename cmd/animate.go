package cmd

import (
	"errors"
	"log"
	"os"

	"github.com/seanjohnno/bitmapy/internal/batch"
	"github.com/seanjohnno/bitmapy/internal/preview"
)

// Animate builds an animated PNG from every bitmap under dir, one frame per
// file in lexical order.
func Animate(dir, outPath string, frameDelay float64) error {
	files, err := batch.FindBitmaps(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no .bmp files found to animate")
	}

	apngBytes, err := preview.APNG(files, frameDelay)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, apngBytes, 0644); err != nil {
		return err
	}
	log.Printf("Wrote %d-frame animation to %s", len(files), outPath)
	return nil
}
