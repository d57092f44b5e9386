package video

import "image"

// frameBuffers alternates between two RGBA buffers of one fixed size. ffmpeg
// writes every frame at the display size, so a source needs no more than the
// frame being filled and the one the view may still be drawing from.
type frameBuffers struct {
	rect image.Rectangle
	bufs [2]*image.RGBA
	next int
}

func newFrameBuffers(size image.Point) *frameBuffers {
	return &frameBuffers{rect: image.Rectangle{Max: size}}
}

// frameBytes is the length of one packed RGBA frame.
func (b *frameBuffers) frameBytes() int {
	w, h := b.rect.Dx(), b.rect.Dy()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h * 4
}

// fill returns the buffer to decode into. It is the one handed out two calls
// ago, so the previous frame stays intact until the following fill.
func (b *frameBuffers) fill() *image.RGBA {
	img := b.bufs[b.next]
	if img == nil {
		img = &image.RGBA{Pix: make([]byte, b.frameBytes()), Stride: b.rect.Dx() * 4, Rect: b.rect}
		b.bufs[b.next] = img
	}
	b.next ^= 1
	return img
}

// release drops both buffers.
func (b *frameBuffers) release() {
	b.bufs = [2]*image.RGBA{}
	b.next = 0
}
