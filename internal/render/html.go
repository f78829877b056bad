package render

import (
	"fmt"
	"html/template"
	"io"
	"sync"

	"charview/internal/query"
)

var htmlTemplate = template.Must(template.New("view").Parse(`<div>
  <h2 class="text-center">{{.Title}}</h2>
  <br/>
{{- if .Pending}}
  <p>{{.Body}}</p>
{{- else if .Failed}}
  <p>{{.Body}}</p>
{{- else}}
  <div class="contents">
{{- range .Records}}
    <div class="item">
      <p class="m-0 hx">{{.Label}}</p>
      <img{{with .Alt}} alt="{{.}}"{{end}} src="{{.Image}}" class="img-responsive"/>
    </div>
{{- end}}
  </div>
{{- end}}
</div>
`))

type htmlView struct {
	Frame
}

func (v htmlView) Pending() bool { return v.State == query.Pending }
func (v htmlView) Failed() bool  { return v.State == query.Failed }

// WriteHTML renders the frame as an HTML document fragment.
func WriteHTML(w io.Writer, f Frame) error {
	if err := htmlTemplate.Execute(w, htmlView{f}); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// HTMLSink keeps the latest frame and writes it on Close, so the output is
// one fragment reflecting the final state.
type HTMLSink struct {
	writer io.Writer
	mu     sync.Mutex
	last   *Frame
}

func NewHTMLSink(w io.Writer) *HTMLSink {
	return &HTMLSink{writer: w}
}

func (s *HTMLSink) Write(f Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &f
	return nil
}

func (s *HTMLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	if err := WriteHTML(s.writer, *s.last); err != nil {
		return err
	}
	return flush(s.writer)
}
