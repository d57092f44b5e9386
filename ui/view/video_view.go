package view

import (
	"image"

	"github.com/soocke/timestamp-extractor-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// VideoView shows decoded frames in a single label.
type VideoView interface {
	Show(img image.Image)
	Reset()
}

type videoView struct {
	label  *LabelWidget
	w, h   int
	photo  *Img // current photo, deleted when replaced
	frames int
}

// NewVideoView creates the frame label at row, spanning the given columns.
// Frames are scaled to fit w x h.
func NewVideoView(row, span, w, h int) VideoView {
	if w < 50 {
		w = 50
	}
	if h < 50 {
		h = 50
	}
	v := &videoView{w: w, h: h}
	v.photo = NewPhoto(Data(images.EncodePNG(images.Placeholder(w, h))))
	v.label = Label(Image(v.photo), Borderwidth(1), Relief("sunken"))
	Grid(v.label, Row(row), Column(0), Columnspan(span), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	return v
}

func (v *videoView) Show(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	v.replace(images.EncodePNG(images.ScaleToFit(img, v.w, v.h)))
	v.frames++
}

func (v *videoView) Reset() {
	if v == nil || v.label == nil {
		return
	}
	v.replace(images.EncodePNG(images.Placeholder(v.w, v.h)))
}

func (v *videoView) replace(png []byte) {
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(png))
	v.label.Configure(Image(v.photo))
}
