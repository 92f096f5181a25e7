package stage

import (
	"math"

	"github.com/seanjohnno/bitmapy/bmp"
)

type ReplaceColorStage struct {
	Tolerance float64
	From      [3]byte // RGB
	To        [3]byte // RGB
}

// Process replaces pixels close to the From color with the To color
// Tolerance defines how close (Euclidean RGB distance) a pixel must be
// to the target color to be affected
func (s *ReplaceColorStage) Process(b *bmp.Bitmap) error {
	if _, err := colorChannels(b); err != nil {
		return err
	}
	pixels, err := b.Pixels()
	if err != nil {
		return err
	}
	fR, fG, fB := float64(s.From[0]), float64(s.From[1]), float64(s.From[2])
	for px := range pixels {
		data := px.Data()
		// Channels are stored blue, green, red
		R, G, B := float64(data[2]), float64(data[1]), float64(data[0])
		dist := math.Sqrt((fR-R)*(fR-R) + (fG-G)*(fG-G) + (fB-B)*(fB-B))
		if dist < s.Tolerance {
			data[0], data[1], data[2] = s.To[2], s.To[1], s.To[0]
			if err := px.Update(data); err != nil {
				return err
			}
		}
	}
	return nil
}
