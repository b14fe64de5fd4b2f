package graphview

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Canvas is a fixed-size RGBA pixel surface the renderer paints on. It is
// owned by a single Renderer and only ever written from the event thread.
type Canvas struct {
	img    *image.RGBA
	width  int
	height int
}

// NewCanvas creates a canvas with the given intrinsic pixel dimensions.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
	}
}

// Image returns the backing image for encoding or scaling.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Size returns the intrinsic pixel dimensions.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Fill paints the whole surface with a solid color.
func (c *Canvas) Fill(col color.RGBA) {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
}

// SetPixel blends a pixel over the existing content using the color's alpha
// channel (src-over). Out-of-bounds writes are dropped.
func (c *Canvas) SetPixel(x, y int, col color.RGBA) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	if col.A == 255 {
		c.img.SetRGBA(x, y, col)
		return
	}
	dst := c.img.RGBAAt(x, y)
	a := uint32(col.A)
	inv := 255 - a
	c.img.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(col.R)*a + uint32(dst.R)*inv) / 255),
		G: uint8((uint32(col.G)*a + uint32(dst.G)*inv) / 255),
		B: uint8((uint32(col.B)*a + uint32(dst.B)*inv) / 255),
		A: 255,
	})
}

// Line draws a straight line between two points using Bresenham's
// algorithm. For thickness > 1 a disc is swept along the line; the covered
// pixel set is deduplicated first so translucent strokes blend exactly once
// per pixel.
func (c *Canvas) Line(x1, y1, x2, y2, thickness int, col color.RGBA) {
	if thickness <= 1 && col.A == 255 {
		c.tracePath(x1, y1, x2, y2, func(x, y int) {
			c.SetPixel(x, y, col)
		})
		return
	}

	covered := make(map[image.Point]bool)
	r := thickness / 2
	c.tracePath(x1, y1, x2, y2, func(x, y int) {
		if r == 0 {
			covered[image.Point{X: x, Y: y}] = true
			return
		}
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy <= r*r {
					covered[image.Point{X: x + dx, Y: y + dy}] = true
				}
			}
		}
	})
	for p := range covered {
		c.SetPixel(p.X, p.Y, col)
	}
}

// tracePath walks the Bresenham line from (x1,y1) to (x2,y2).
func (c *Canvas) tracePath(x1, y1, x2, y2 int, plot func(x, y int)) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	x, y := x1, y1

	for {
		plot(x, y)

		if x == x2 && y == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// FilledCircle draws a solid disc centered at (cx,cy).
func (c *Canvas) FilledCircle(cx, cy, radius int, col color.RGBA) {
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= radius*radius {
				c.SetPixel(cx+x, cy+y, col)
			}
		}
	}
}

// CircleOutline draws a ring of the given stroke width centered at (cx,cy).
func (c *Canvas) CircleOutline(cx, cy, radius, stroke int, col color.RGBA) {
	outer := radius * radius
	innerR := radius - stroke
	if innerR < 0 {
		innerR = 0
	}
	inner := innerR * innerR
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			d := x*x + y*y
			if d <= outer && d > inner {
				c.SetPixel(cx+x, cy+y, col)
			}
		}
	}
}

// FillRect draws a solid axis-aligned rectangle.
func (c *Canvas) FillRect(x, y, width, height int, col color.RGBA) {
	for py := y; py < y+height; py++ {
		for px := x; px < x+width; px++ {
			c.SetPixel(px, py, col)
		}
	}
}

// textFace is the bitmap face used for all canvas text.
var textFace = basicfont.Face7x13

// DrawString renders text with its top-left corner at (x,y).
func (c *Canvas) DrawString(x, y int, s string, col color.RGBA) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: textFace,
		Dot:  fixed.P(x, y+textFace.Ascent),
	}
	d.DrawString(s)
}

// MeasureString returns the rendered pixel width of text.
func MeasureString(s string) int {
	return font.MeasureString(textFace, s).Ceil()
}

// TextHeight returns the pixel height of one line of canvas text.
func TextHeight() int {
	return textFace.Height
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
