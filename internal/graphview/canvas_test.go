package graphview

import (
	"image/color"
	"testing"
)

func TestCanvasFillAndSetPixel(t *testing.T) {
	c := NewCanvas(10, 10)
	black := color.RGBA{0, 0, 0, 255}
	c.Fill(black)

	// Opaque write replaces the pixel outright.
	red := color.RGBA{255, 0, 0, 255}
	c.SetPixel(3, 4, red)
	if got := c.Image().RGBAAt(3, 4); got != red {
		t.Errorf("Expected %v at (3,4), got %v", red, got)
	}

	// Translucent write blends over the existing content.
	c.SetPixel(5, 5, color.RGBA{255, 0, 0, 128})
	got := c.Image().RGBAAt(5, 5)
	if got.R < 120 || got.R > 135 || got.G != 0 || got.B != 0 || got.A != 255 {
		t.Errorf("Expected half-blended red at (5,5), got %v", got)
	}

	// Out-of-bounds writes must be dropped, not panic.
	c.SetPixel(-1, 0, red)
	c.SetPixel(0, -1, red)
	c.SetPixel(10, 0, red)
	c.SetPixel(0, 10, red)
}

func TestCanvasLineEndpoints(t *testing.T) {
	testCases := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"horizontal", 1, 5, 8, 5},
		{"vertical", 5, 1, 5, 8},
		{"diagonal", 1, 1, 8, 8},
		{"steep", 2, 1, 4, 8},
		{"degenerate point", 4, 4, 4, 4},
	}

	white := color.RGBA{255, 255, 255, 255}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCanvas(10, 10)
			c.Fill(color.RGBA{0, 0, 0, 255})
			c.Line(tc.x1, tc.y1, tc.x2, tc.y2, 1, white)

			if got := c.Image().RGBAAt(tc.x1, tc.y1); got != white {
				t.Errorf("Start point (%d,%d) not drawn: %v", tc.x1, tc.y1, got)
			}
			if got := c.Image().RGBAAt(tc.x2, tc.y2); got != white {
				t.Errorf("End point (%d,%d) not drawn: %v", tc.x2, tc.y2, got)
			}
		})
	}
}

func TestCanvasThickTranslucentLineBlendsOnce(t *testing.T) {
	// A translucent thick stroke must blend each covered pixel exactly
	// once, otherwise overlapping discs along the sweep darken unevenly.
	c := NewCanvas(20, 20)
	c.Fill(color.RGBA{0, 0, 0, 255})
	c.Line(2, 10, 17, 10, 3, color.RGBA{255, 255, 255, 128})

	mid := c.Image().RGBAAt(10, 10)
	next := c.Image().RGBAAt(11, 10)
	if mid != next {
		t.Errorf("Adjacent pixels on the stroke differ: %v vs %v", mid, next)
	}
}

func TestCanvasFillRectClipping(t *testing.T) {
	c := NewCanvas(8, 8)
	c.Fill(color.RGBA{0, 0, 0, 255})
	green := color.RGBA{0, 255, 0, 255}

	// Rectangle partially out of bounds clips instead of panicking.
	c.FillRect(6, 6, 5, 5, green)
	if got := c.Image().RGBAAt(7, 7); got != green {
		t.Errorf("Expected green at (7,7), got %v", got)
	}
}

func TestCanvasCircles(t *testing.T) {
	c := NewCanvas(30, 30)
	c.Fill(color.RGBA{0, 0, 0, 255})
	fill := color.RGBA{0, 0, 255, 255}
	ring := color.RGBA{255, 255, 0, 255}

	c.FilledCircle(15, 15, 8, fill)
	c.CircleOutline(15, 15, 8, 2, ring)

	if got := c.Image().RGBAAt(15, 15); got != fill {
		t.Errorf("Center should be fill color, got %v", got)
	}
	if got := c.Image().RGBAAt(15+8, 15); got != ring {
		t.Errorf("Rim should be ring color, got %v", got)
	}
	if got := c.Image().RGBAAt(15, 15-4); got != fill {
		t.Errorf("Inside the ring should remain fill color, got %v", got)
	}
}

func TestMeasureString(t *testing.T) {
	if w := MeasureString(""); w != 0 {
		t.Errorf("Empty string should measure 0, got %d", w)
	}
	short := MeasureString("AB")
	long := MeasureString("ABCD")
	if short <= 0 || long <= short {
		t.Errorf("Widths should grow with text length: %d vs %d", short, long)
	}
}
