package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"charview/internal/characters"
	"charview/internal/query"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "out/page.html", want: FormatHTML},
		{path: "page.HTM", want: FormatHTML},
		{path: "chars.json", want: FormatJSON},
		{path: "chars.yml", want: FormatYAML},
		{path: "chars.yaml", want: FormatYAML},
		{path: "chars.txt", want: FormatText},
		{path: "chars", wantErr: true},
		{path: "chars.csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestFileSink_WritesHTMLAndCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "index.html")
	s, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}

	res := query.Result{State: query.Succeeded, Characters: []characters.Character{{ID: "1", Name: "Rick", Image: "http://x/1.png"}}}
	if err := s.Write(NewFrame(res, characters.FieldsBasic)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(b), `<img alt="Rick" src="http://x/1.png" class="img-responsive"/>`) {
		t.Fatalf("unexpected file content:\n%s", b)
	}
}

func TestFileSink_ExplicitFormatOverridesExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.data")
	s, err := NewFileSink(path, FormatJSON)
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	_ = s.Write(NewFrame(query.Result{State: query.Failed, Message: "boom"}, characters.FieldsBasic))
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), `"message": "boom"`) {
		t.Fatalf("expected JSON document, got:\n%s", b)
	}
}

func TestNewFileSink_Errors(t *testing.T) {
	if _, err := NewFileSink("", ""); err == nil {
		t.Fatalf("expected error for empty path")
	}
	path := filepath.Join(t.TempDir(), "out.csv")
	if _, err := NewFileSink(path, ""); err == nil {
		t.Fatalf("expected error for unknown extension")
	}
	bad := filepath.Join(t.TempDir(), "out.bin")
	if _, err := NewFileSink(bad, "toml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Fatalf("file must be removed after a format error")
	}
}
