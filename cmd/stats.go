package cmd

import (
	"fmt"

	"github.com/seanjohnno/bitmapy/bmp"
	"github.com/seanjohnno/bitmapy/internal/pixelexpr"
)

// channelNames maps a channel index to its meaning for the common depths.
var channelNames = map[int][]string{
	3: {"blue", "green", "red"},
	4: {"blue", "green", "red", "alpha"},
}

// Stats prints per-channel minimum, maximum and mean over the image's
// pixels, optionally restricted to those matching the where expression.
func Stats(path, where string) error {
	b, err := bmp.Open(path)
	if err != nil {
		return err
	}

	var filter *pixelexpr.Filter
	if where != "" {
		filter, err = pixelexpr.Compile(where)
		if err != nil {
			return err
		}
	}

	bytesPerPixel, err := b.Info().BytesPerPixel()
	if err != nil {
		return err
	}

	mins := make([]int, bytesPerPixel)
	maxs := make([]int, bytesPerPixel)
	sums := make([]int64, bytesPerPixel)
	for i := range mins {
		mins[i] = 256
		maxs[i] = -1
	}

	pixels, err := b.Pixels()
	if err != nil {
		return err
	}

	total, matched := 0, 0
	var matchErr error
	for px := range pixels {
		total++
		if filter != nil {
			ok, err := filter.Match(px)
			if err != nil {
				matchErr = err
				break
			}
			if !ok {
				continue
			}
		}
		matched++
		for i, v := range px.Data() {
			value := int(v)
			if value < mins[i] {
				mins[i] = value
			}
			if value > maxs[i] {
				maxs[i] = value
			}
			sums[i] += int64(value)
		}
	}
	if matchErr != nil {
		return matchErr
	}

	fmt.Println(b)
	if filter != nil {
		fmt.Printf("Matched %d of %d pixels (%s)\n", matched, total, where)
	} else {
		fmt.Printf("Pixels: %d\n", total)
	}
	if matched == 0 {
		return nil
	}

	names := channelNames[bytesPerPixel]
	for i := 0; i < bytesPerPixel; i++ {
		label := fmt.Sprintf("c%d", i)
		if names != nil {
			label = fmt.Sprintf("c%d (%s)", i, names[i])
		}
		mean := float64(sums[i]) / float64(matched)
		fmt.Printf("  %-12s min=%d max=%d mean=%.2f\n", label, mins[i], maxs[i], mean)
	}
	return nil
}
