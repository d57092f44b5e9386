// Package assets renders the application's static images.
package assets

import (
	"bytes"
	"image/png"
	"math"
	"sync"

	"github.com/fogleman/gg"
)

// IconSize is the edge length of the window icon in pixels.
const IconSize = 64

var (
	iconOnce sync.Once
	iconPNG  []byte
)

// IconPNG returns the window icon (a clock face over a film strip) as PNG bytes.
func IconPNG() []byte {
	iconOnce.Do(func() {
		var buf bytes.Buffer
		if err := png.Encode(&buf, drawIcon(IconSize).Image()); err == nil {
			iconPNG = buf.Bytes()
		}
	})
	return iconPNG
}

func drawIcon(size int) *gg.Context {
	s := float64(size)
	dc := gg.NewContext(size, size)

	// film strip
	dc.SetHexColor("#1e293b")
	dc.DrawRoundedRectangle(0, s*0.15, s, s*0.7, s*0.08)
	dc.Fill()
	dc.SetHexColor("#f7f9fb")
	hole := s * 0.08
	for x := s * 0.06; x < s-hole; x += s * 0.16 {
		dc.DrawRectangle(x, s*0.19, hole, hole)
		dc.DrawRectangle(x, s*0.73, hole, hole)
	}
	dc.Fill()

	// clock
	cx, cy, r := s/2, s/2, s*0.22
	dc.SetHexColor("#2563eb")
	dc.DrawCircle(cx, cy, r)
	dc.Fill()
	dc.SetHexColor("#ffffff")
	dc.SetLineWidth(math.Max(1, s/32))
	dc.DrawLine(cx, cy, cx, cy-r*0.75)
	dc.DrawLine(cx, cy, cx+r*0.55, cy)
	dc.Stroke()
	return dc
}
