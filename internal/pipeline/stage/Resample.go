package stage

import (
	"image"

	"github.com/seanjohnno/bitmapy/bmp"
	"golang.org/x/image/draw"
)

type ResampleStage struct{}

// Process applies a Catmull-Rom resampling to smooth the image
// This can help reduce artifacts introduced by other processing stages
// such as color replacement and blurring
func (s *ResampleStage) Process(b *bmp.Bitmap) error {
	img, err := b.Image()
	if err != nil {
		return err
	}
	smoothed := image.NewNRGBA(img.Bounds())
	draw.CatmullRom.Scale(smoothed, img.Bounds(), img, img.Bounds(), draw.Over, nil)
	return b.SetImage(smoothed)
}
