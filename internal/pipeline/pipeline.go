// Package pipeline applies ordered image-processing stages to a bitmap.
package pipeline

import (
	"github.com/seanjohnno/bitmapy/bmp"
)

// Stage transforms a bitmap's pixel buffer in place. Stages must leave the
// header block alone so the output stays a byte-compatible BMP.
type Stage interface {
	Process(b *bmp.Bitmap) error
}

// Run applies the stages in order, stopping at the first failure.
func Run(b *bmp.Bitmap, stages ...Stage) error {
	for _, stage := range stages {
		if err := stage.Process(b); err != nil {
			return err
		}
	}
	return nil
}
