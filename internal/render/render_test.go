package render

import (
	"image"
	"testing"
)

func TestClipPixelsRoundsOutward(t *testing.T) {
	c := Clip{X0: 10.2, Y0: 0, X1: 100.7, Y1: 50}
	got := c.pixels(72)
	want := image.Rect(10, 0, 101, 50)
	if got != want {
		t.Errorf("pixels(72) = %v, want %v", got, want)
	}
}

func TestClipPixelsScalesWithDPI(t *testing.T) {
	c := Clip{X0: 0, Y0: 396, X1: 612, Y1: 792}
	got := c.pixels(300)
	want := image.Rect(0, 1650, 2550, 3300)
	if got != want {
		t.Errorf("pixels(300) = %v, want %v", got, want)
	}
}
