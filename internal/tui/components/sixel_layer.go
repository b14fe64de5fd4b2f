package components

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// SixelRegion represents a screen region that contains sixel graphics
type SixelRegion struct {
	X, Y                int    // Screen coordinates in terminal cells
	Width, Height       int    // Current region dimensions in cells
	MaxWidth, MaxHeight int    // Largest dimensions ever used, for clearing
	SixelData           string // The encoded sixel sequence
	Visible             bool
}

// SixelLayer manages direct terminal sixel rendering outside of tview. tview
// owns the cell grid; pixel graphics are positioned with raw cursor moves on
// the TTY after each draw cycle.
type SixelLayer struct {
	regions map[string]*SixelRegion
	mutex   sync.RWMutex
	tty     *os.File
}

// NewSixelLayer creates a new sixel rendering layer
func NewSixelLayer() *SixelLayer {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		tty = nil // Fallback to stdout
	}

	return &SixelLayer{
		regions: make(map[string]*SixelRegion),
		tty:     tty,
	}
}

// SetRegion adds or replaces a sixel region. A replaced region is cleared
// first so a smaller frame never leaves remnants of a larger one.
func (sl *SixelLayer) SetRegion(id string, region *SixelRegion) {
	sl.mutex.Lock()
	defer sl.mutex.Unlock()

	if existing, exists := sl.regions[id]; exists {
		sl.clearRegionArea(existing)
		region.MaxWidth = max(region.Width, existing.MaxWidth)
		region.MaxHeight = max(region.Height, existing.MaxHeight)
	} else {
		region.MaxWidth = region.Width
		region.MaxHeight = region.Height
	}
	sl.regions[id] = region
}

// SetRegionVisible sets the visibility of a region
func (sl *SixelLayer) SetRegionVisible(id string, visible bool) {
	sl.mutex.Lock()
	defer sl.mutex.Unlock()
	if region, exists := sl.regions[id]; exists {
		if !visible && region.Visible {
			sl.clearRegionArea(region)
		}
		region.Visible = visible
	}
}

// ClearRegion explicitly clears a region's display area
func (sl *SixelLayer) ClearRegion(id string) {
	sl.mutex.Lock()
	defer sl.mutex.Unlock()
	if region, exists := sl.regions[id]; exists {
		sl.clearRegionArea(region)
	}
}

// Render writes all visible sixel regions to the terminal
func (sl *SixelLayer) Render() {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()

	output := sl.output()
	for _, region := range sl.regions {
		if region.Visible && region.SixelData != "" {
			// Position cursor and output sixel
			fmt.Fprintf(output, "\x1b[%d;%dH%s", region.Y+1, region.X+1, region.SixelData)
		}
	}
}

// Clear drops all regions
func (sl *SixelLayer) Clear() {
	sl.mutex.Lock()
	defer sl.mutex.Unlock()
	sl.regions = make(map[string]*SixelRegion)
}

// Close closes the TTY handle
func (sl *SixelLayer) Close() {
	if sl.tty != nil {
		sl.tty.Close()
	}
}

func (sl *SixelLayer) output() *os.File {
	if sl.tty != nil {
		return sl.tty
	}
	return os.Stdout
}

// clearRegionArea overwrites the region with spaces. Max dimensions plus one
// cell of padding are used because sixel output can bleed past the cell grid.
func (sl *SixelLayer) clearRegionArea(region *SixelRegion) {
	output := sl.output()

	clearWidth := max(region.MaxWidth, region.Width) + 2
	clearHeight := max(region.MaxHeight, region.Height) + 2
	startX := max(region.X-1, 0)
	startY := max(region.Y-1, 0)

	blank := strings.Repeat(" ", clearWidth)
	for row := 0; row < clearHeight; row++ {
		fmt.Fprintf(output, "\x1b[%d;%dH%s", startY+row+1, startX+1, blank)
	}
}
