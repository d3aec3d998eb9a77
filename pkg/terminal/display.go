package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/funnsam/termray/pkg/renderer"
)

// upperHalfBlock paints the top half of a cell in the foreground colour
// and the bottom half in the background colour
const upperHalfBlock = '▀'

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkGray)

// Display draws frames onto a terminal screen, two pixels per cell
type Display struct {
	screen  tcell.Screen
	maxSize int
}

// NewDisplay creates a display; maxSize caps the image edge, 0 means no cap
func NewDisplay(screen tcell.Screen, maxSize int) *Display {
	return &Display{screen: screen, maxSize: maxSize}
}

// Size returns the largest square image edge that fits above the status
// line, or 0 when the screen is too small
func (d *Display) Size() int {
	cols, rows := d.screen.Size()
	size := min(cols, (rows-1)*2)
	if d.maxSize > 0 {
		size = min(size, d.maxSize)
	}
	return max(size, 0)
}

// Draw paints frame from the top-left corner with status on the line below
func (d *Display) Draw(frame renderer.Frame, status string) {
	for cy := 0; cy*2 < frame.Height(); cy++ {
		top := frame[cy*2]
		var bottom []renderer.RGB
		if cy*2+1 < frame.Height() {
			bottom = frame[cy*2+1]
		}

		for x, t := range top {
			var b renderer.RGB // An odd last row sits on black
			if bottom != nil {
				b = bottom[x]
			}
			style := tcell.StyleDefault.Foreground(rgbColor(t)).Background(rgbColor(b))
			d.screen.SetContent(x, cy, upperHalfBlock, nil, style)
		}
	}

	d.drawLine((frame.Height()+1)/2, status)
	d.screen.Show()
}

// Show writes msg over the top-left corner, used while the image is stale
func (d *Display) Show(msg string) {
	x := 0
	for _, r := range msg {
		d.screen.SetContent(x, 0, r, nil, statusStyle)
		x++
	}
	d.screen.Show()
}

// drawLine replaces screen row y with msg in the status style
func (d *Display) drawLine(y int, msg string) {
	cols, _ := d.screen.Size()
	x := 0
	for _, r := range msg {
		if x >= cols {
			break
		}
		d.screen.SetContent(x, y, r, nil, statusStyle)
		x++
	}
	for ; x < cols; x++ {
		d.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}

func rgbColor(p renderer.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(p.R), int32(p.G), int32(p.B))
}
