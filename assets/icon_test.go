package assets

import (
	"bytes"
	"image/png"
	"testing"
)

func TestIconPNG_Decodes(t *testing.T) {
	data := IconPNG()
	if len(data) == 0 {
		t.Fatalf("icon is empty")
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != IconSize || b.Dy() != IconSize {
		t.Fatalf("unexpected icon size %v", b)
	}
	// centre pixel is the clock face, not transparent
	if _, _, _, a := img.At(IconSize/2+IconSize/8, IconSize/2+IconSize/8).RGBA(); a == 0 {
		t.Fatalf("expected opaque clock face")
	}
}
