package stage

import (
	"github.com/seanjohnno/bitmapy/bmp"
)

type InvertStage struct{}

// Process inverts each color channel
// The alpha channel of 32-bit images is left untouched
func (s *InvertStage) Process(b *bmp.Bitmap) error {
	if _, err := colorChannels(b); err != nil {
		return err
	}
	pixels, err := b.Pixels()
	if err != nil {
		return err
	}
	for px := range pixels {
		data := px.Data()
		for i := 0; i < 3; i++ {
			data[i] = 255 - data[i]
		}
		if err := px.Update(data); err != nil {
			return err
		}
	}
	return nil
}
