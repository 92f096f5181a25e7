package stage

import (
	"github.com/seanjohnno/bitmapy/bmp"
)

type GreyscaleStage struct{}

// Process converts the image to greyscale using luminance calculation
// Reference: https://en.wikipedia.org/wiki/Grayscale#Luma_coding_in_video_systems
// The alpha channel of 32-bit images is left untouched
func (s *GreyscaleStage) Process(b *bmp.Bitmap) error {
	if _, err := colorChannels(b); err != nil {
		return err
	}
	pixels, err := b.Pixels()
	if err != nil {
		return err
	}
	for px := range pixels {
		data := px.Data()
		// Channels are stored blue, green, red
		lum := byte(0.299*float64(data[2]) + 0.587*float64(data[1]) + 0.114*float64(data[0]))
		data[0], data[1], data[2] = lum, lum, lum
		if err := px.Update(data); err != nil {
			return err
		}
	}
	return nil
}
