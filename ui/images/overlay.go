package images

import (
	"image"

	"github.com/fogleman/gg"
)

// StampOverlay returns a copy of frame with text drawn on a translucent badge in the
// bottom-left corner. Empty text returns frame unchanged.
func StampOverlay(frame image.Image, text string) image.Image {
	if frame == nil || text == "" {
		return frame
	}
	dc := gg.NewContextForImage(frame)
	tw, th := dc.MeasureString(text)
	const pad = 4.0
	x := pad
	y := float64(dc.Height()) - th - 3*pad
	if y < 0 {
		y = 0
	}
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRoundedRectangle(x, y, tw+2*pad, th+2*pad, 3)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(text, x+pad, y+pad, 0, 1)
	return dc.Image()
}
