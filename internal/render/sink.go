package render

import (
	"fmt"
	"io"
)

// NewSink builds the sink for a format. colored and progress only apply to
// text output.
func NewSink(w io.Writer, format string, colored, progress bool) (Sink, error) {
	switch format {
	case FormatText, "":
		return NewTextSink(w, colored, progress), nil
	case FormatHTML:
		if w == nil {
			return nil, fmt.Errorf("html sink writer must not be nil")
		}
		return NewHTMLSink(w), nil
	case FormatJSON, FormatYAML:
		return NewStructuredSink(w, format)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// flush pushes buffered output (bufio.Writer and friends) after each frame so
// a redraw is visible before the next state arrives.
func flush(w io.Writer) error {
	if f, ok := w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}
