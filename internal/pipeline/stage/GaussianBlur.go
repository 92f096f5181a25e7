package stage

import (
	"github.com/anthonynsimon/bild/blur"
	"github.com/seanjohnno/bitmapy/bmp"
)

type GaussianBlurStage struct {
	Sigma float64
}

// Process applies a Gaussian blur to the image using the specified Sigma value
// Higher Sigma values result in a more pronounced blur effect
func (s *GaussianBlurStage) Process(b *bmp.Bitmap) error {
	img, err := b.Image()
	if err != nil {
		return err
	}
	return b.SetImage(blur.Gaussian(img, s.Sigma))
}
