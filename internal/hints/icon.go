package hints

import (
	"image"
	"image/color"

	"github.com/BurntSushi/xgb/xproto"
)

// Icon is one frame of a window's _NET_WM_ICON property: a width/height
// header followed by ARGB pixels in rows, high byte alpha.
type Icon struct {
	Width  int
	Height int
	Pixels []uint32
}

// WindowIcons reads and splits the icon frames a window publishes. Frames
// are returned in property order; a truncated trailing frame is dropped.
func (c *Client) WindowIcons(win xproto.Window) ([]Icon, error) {
	v, err := c.a.Read(win, "_NET_WM_ICON")
	if err != nil {
		return nil, err
	}
	vals := v.(CardinalList)

	var icons []Icon
	for i := 0; i+1 < len(vals); {
		w, h := int(vals[i]), int(vals[i+1])
		n := w * h
		i += 2
		if w <= 0 || h <= 0 || i+n > len(vals) {
			break
		}
		icons = append(icons, Icon{Width: w, Height: h, Pixels: vals[i : i+n]})
		i += n
	}
	return icons, nil
}

// Largest returns the icon with the most pixels, or false when the slice is
// empty.
func Largest(icons []Icon) (Icon, bool) {
	best := -1
	var out Icon
	for _, ic := range icons {
		if n := ic.Width * ic.Height; n > best {
			best = n
			out = ic
		}
	}
	return out, best >= 0
}

// Image converts the icon to an NRGBA image.
func (ic Icon) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, ic.Width, ic.Height))
	for y := 0; y < ic.Height; y++ {
		for x := 0; x < ic.Width; x++ {
			p := ic.Pixels[y*ic.Width+x]
			img.SetNRGBA(x, y, color.NRGBA{
				A: uint8(p >> 24),
				R: uint8(p >> 16),
				G: uint8(p >> 8),
				B: uint8(p),
			})
		}
	}
	return img
}
