package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"charview/internal/characters"
	"charview/internal/config"
	"charview/internal/flags"
	"charview/internal/query"
	"charview/internal/render"
	"charview/internal/view"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func executeRoot(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return out.String()
}

func TestQueryCmd_PrintsDocumentForVariant(t *testing.T) {
	t.Cleanup(func() {
		queryStatus = false
		_ = queryCmd.Flags().Set(flags.FlagStatus, "false")
	})

	got := executeRoot(t, "query")
	if got != characters.Query(characters.FieldsBasic) {
		t.Fatalf("query output = %q", got)
	}
	if strings.Contains(got, "status") {
		t.Fatalf("basic query should not select status: %q", got)
	}

	got = executeRoot(t, "query", "--"+flags.FlagStatus)
	if got != characters.Query(characters.FieldsWithStatus) {
		t.Fatalf("query --status output = %q", got)
	}
}

func TestVersionCmd_PrintsBuildInfo(t *testing.T) {
	SetBuildInfo("1.2.3", "abc123", "2026-01-01")
	t.Cleanup(func() { SetBuildInfo("dev", "unknown", "unknown") })

	got := executeRoot(t, "version")
	want := "charview 1.2.3\ncommit: abc123\nbuilt:  2026-01-01\n"
	if got != want {
		t.Fatalf("version output = %q, want %q", got, want)
	}
}

func TestRunShow_RendersCharacters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"characters":{"results":[
			{"id":"1","name":"Rick","image":"http://x/1.png","status":"Alive"},
			{"id":"2","name":"Morty","image":"http://x/2.png","status":"Alive"}
		]}}}`))
	}))
	defer srv.Close()

	c := config.New()
	c.Source.Endpoint = srv.URL
	c.Source.Status = true
	c.Output.Color = "never"

	var out bytes.Buffer
	code := runShow(context.Background(), c, &out, zap.NewNop())
	if code != view.ExitOK {
		t.Fatalf("exit code = %d, output:\n%s", code, out.String())
	}
	got := out.String()
	for _, want := range []string{"My first Apollo app 🚀", "Rick ------- Alive", "Morty ------- Alive"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "Rick") > strings.Index(got, "Morty") {
		t.Fatalf("server order not preserved:\n%s", got)
	}
}

func TestRunShow_ServerErrorExitsFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"Network error"}]}`))
	}))
	defer srv.Close()

	c := config.New()
	c.Source.Endpoint = srv.URL
	c.Output.Format = "html"

	var out bytes.Buffer
	code := runShow(context.Background(), c, &out, nil)
	if code != view.ExitFailed {
		t.Fatalf("exit code = %d, want %d", code, view.ExitFailed)
	}
	if !strings.Contains(out.String(), "<p>Error : Network error</p>") {
		t.Fatalf("missing error paragraph:\n%s", out.String())
	}
}

func TestRunShow_InvalidConfigIsFatal(t *testing.T) {
	c := config.New()
	c.Source.Endpoint = "ftp://example.com/graphql"

	var out bytes.Buffer
	if code := runShow(context.Background(), c, &out, nil); code != view.ExitFatal {
		t.Fatalf("exit code = %d, want %d", code, view.ExitFatal)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestShowCmd_RecordsExitCodeForExecute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors":[{"message":"Network error"}]}`))
	}))
	defer srv.Close()
	t.Cleanup(func() {
		*cfg = *config.New()
		exitCode = view.ExitOK
	})

	got := executeRoot(t, "show", "--"+flags.FlagEndpoint, srv.URL, "--"+flags.FlagFormat, "html")
	if exitCode != view.ExitFailed {
		t.Fatalf("exitCode = %d, want %d", exitCode, view.ExitFailed)
	}
	if !strings.Contains(got, "<p>Error : Network error</p>") {
		t.Fatalf("show should write to the command's output:\n%s", got)
	}
}

func TestRunWatch_ExitCodes(t *testing.T) {
	tests := []struct {
		name   string
		cancel bool
		frame  render.Frame
		err    error
		want   int
	}{
		{name: "quit_while_loading", frame: render.NewFrame(query.Result{State: query.Pending}, characters.FieldsBasic), want: view.ExitCanceled},
		{name: "quit_after_success", frame: render.Frame{State: query.Succeeded}, want: view.ExitOK},
		{name: "quit_after_failure", frame: render.Frame{State: query.Failed, Message: "Network error"}, want: view.ExitFailed},
		{name: "interrupted", cancel: true, err: errors.New("program was killed"), want: view.ExitCanceled},
		{name: "program_error", err: errors.New("no tty"), want: view.ExitFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tt.cancel {
				cancel()
			}

			program := func(ctx context.Context, runner *query.Runner, fields characters.FieldSet, opts ...tea.ProgramOption) (render.Frame, error) {
				runner.Close()
				return tt.frame, tt.err
			}
			if got := runWatch(ctx, config.New(), nil, program); got != tt.want {
				t.Fatalf("runWatch() = %d, want %d", got, tt.want)
			}
		})
	}
}
