package terminal

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/funnsam/termray/pkg/renderer"
)

// StatusLine formats the line shown beneath the image
type StatusLine struct {
	printer *message.Printer
}

// NewStatusLine creates a status formatter for the given locale
func NewStatusLine(locale language.Tag) *StatusLine {
	return &StatusLine{printer: message.NewPrinter(locale)}
}

// Format reports frame timing, the accumulated frame count and the lens
func (s *StatusLine) Format(stats renderer.RenderStats, fps float64, state *renderer.State) string {
	return s.printer.Sprintf("%.1f ms | %.1f fps | frame %d | focus %.3f | aperture %.2f",
		float64(stats.Duration.Microseconds())/1000, fps, stats.Pass, state.Focus, state.Aperture)
}
