package components

import (
	"bytes"
	"image"
	"os"

	"github.com/BourgeoisBear/rasterm"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-sixel"
)

// Assumed pixel dimensions of one terminal cell. Terminals do not report
// their font metrics over the tview API, so the canvas is sized with the
// common 8x16 glyph box and the sixel output lands close enough to the
// allotted cell region.
const (
	cellPixelWidth  = 8
	cellPixelHeight = 16
)

// encodeSixel converts an RGBA frame to a sixel escape sequence. Dithering
// is off: the frames use flat fills and anti-aliasing noise would shimmer
// between repaints.
func encodeSixel(img image.Image) (string, error) {
	var buf bytes.Buffer
	encoder := sixel.NewEncoder(&buf)
	encoder.Dither = false

	if err := encoder.Encode(img); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SixelSupported reports whether the attached terminal can display sixel
// graphics. Without a TTY the query is skipped entirely.
func SixelSupported() bool {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return false
	}
	capable, err := rasterm.IsSixelCapable()
	return err == nil && capable
}
