package render

import (
	"charview/internal/characters"
	"charview/internal/query"
)

// Title is the static heading of the view.
const Title = "My first Apollo app 🚀"

const LoadingText = "Loading..."

// ErrorText formats a failure the way the view shows it.
func ErrorText(message string) string {
	return "Error : " + message
}

// Frame is one complete redraw of the view.
type Frame struct {
	Title   string
	State   query.State
	Message string
	Records []DisplayRecord
}

// NewFrame composes the heading with a query result.
func NewFrame(res query.Result, fields characters.FieldSet) Frame {
	f := Frame{Title: Title, State: res.State}
	switch res.State {
	case query.Failed:
		f.Message = res.Message
	case query.Succeeded:
		f.Records = Project(res.Characters, fields)
	}
	return f
}

// Body is the single line shown under the heading for non-success frames.
func (f Frame) Body() string {
	switch f.State {
	case query.Pending:
		return LoadingText
	case query.Failed:
		return ErrorText(f.Message)
	default:
		return ""
	}
}
