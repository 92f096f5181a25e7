package stage

import (
	"github.com/anthonynsimon/bild/adjust"
	"github.com/seanjohnno/bitmapy/bmp"
)

type BrightnessStage struct {
	Change float64
}

// Process adjusts brightness by the specified change, where -1.0 is fully
// dark and 1.0 is fully bright
func (s *BrightnessStage) Process(b *bmp.Bitmap) error {
	img, err := b.Image()
	if err != nil {
		return err
	}
	return b.SetImage(adjust.Brightness(img, s.Change))
}
