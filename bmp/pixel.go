package bmp

import "fmt"

// Pixel is a point-in-time snapshot of one pixel, holding its position, a
// copy of its channel data, and a reference back to the bitmap it came
// from. Channel order follows the file: blue, green, red, then alpha when
// the depth carries one.
type Pixel struct {
	owner *Bitmap
	x, y  int
	data  []byte
}

// Position returns the pixel's coordinates within the pixel buffer.
func (p Pixel) Position() (x, y int) { return p.x, p.y }

// Data returns a copy of the snapshot's channel values. Mutating the copy
// affects neither the snapshot nor the bitmap.
func (p Pixel) Data() []byte {
	data := make([]byte, len(p.data))
	copy(data, p.data)
	return data
}

// Update writes new channel values through to the owning bitmap at this
// pixel's position. The snapshot itself keeps its original values; take a
// fresh GetPixel to observe the write.
func (p Pixel) Update(channels []byte) error {
	return p.owner.SetPixel(p.x, p.y, channels)
}

// String renders the pixel as its position and raw channel values.
func (p Pixel) String() string {
	return fmt.Sprintf("x[%d] y[%d]: %v", p.x, p.y, p.data)
}
