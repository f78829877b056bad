package view

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"charview/internal/characters"
	"charview/internal/config"
	"charview/internal/graphql"
	"charview/internal/query"
	"charview/internal/render"

	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T, status int, body string) *graphql.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	c, err := graphql.NewClient(context.Background(), server.URL)
	require.NoError(t, err)
	t.Cleanup(func() {
		c.CloseIdleConnections()
		server.Close()
	})
	return c
}

func TestRun_HTMLToStdoutAndFile(t *testing.T) {
	c := newAPI(t, http.StatusOK, `{"data":{"characters":{"results":[{"id":"1","name":"Rick","image":"http://x/1.png"}]}}}`)

	cfg := config.New()
	cfg.Source.Endpoint = c.Endpoint.String()
	cfg.Output.Format = "html"
	cfg.Output.Out = filepath.Join(t.TempDir(), "chars.json")
	require.NoError(t, cfg.Validate())

	var stdout bytes.Buffer
	code := Run(context.Background(), cfg, c, &stdout, nil)
	require.Equal(t, ExitOK, code)
	require.Contains(t, stdout.String(), `<img alt="Rick" src="http://x/1.png" class="img-responsive"/>`)

	b, err := os.ReadFile(cfg.Output.Out)
	require.NoError(t, err)
	require.Contains(t, string(b), `"name": "Rick"`)
}

func TestRun_FailureExitCode(t *testing.T) {
	c := newAPI(t, http.StatusOK, `{"errors":[{"message":"Network error"}]}`)

	cfg := config.New()
	cfg.Source.Endpoint = c.Endpoint.String()
	cfg.Output.Color = "never"
	require.NoError(t, cfg.Validate())

	var stdout bytes.Buffer
	code := Run(context.Background(), cfg, c, &stdout, nil)
	require.Equal(t, ExitFailed, code)
	require.True(t, strings.HasSuffix(stdout.String(), "Error : Network error\n"), stdout.String())
}

func TestRun_StatusVariantText(t *testing.T) {
	c := newAPI(t, http.StatusOK, `{"data":{"characters":{"results":[{"id":"2","name":"Morty","image":"http://x/2.png","status":"Alive"}]}}}`)

	cfg := config.New()
	cfg.Source.Endpoint = c.Endpoint.String()
	cfg.Source.Status = true
	cfg.Output.Color = "never"
	cfg.Output.Progress = true
	require.NoError(t, cfg.Validate())

	var stdout bytes.Buffer
	require.Equal(t, ExitOK, Run(context.Background(), cfg, c, &stdout, nil))
	require.Equal(t,
		"My first Apollo app 🚀\n\nLoading...\nMy first Apollo app 🚀\n\nMorty ------- Alive  http://x/2.png\n",
		stdout.String())
}

func TestSetupSinks_BadOutPath(t *testing.T) {
	cfg := config.New()
	cfg.Output.Out = filepath.Join(t.TempDir(), "x.csv")
	cfg.Output.OutFormat = ""
	_, err := SetupSinks(cfg, &bytes.Buffer{})
	require.Error(t, err)
}

func TestColored(t *testing.T) {
	var buf bytes.Buffer
	require.True(t, Colored("always", &buf))
	require.False(t, Colored("never", os.Stdout))
	require.False(t, Colored("auto", &buf))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name  string
		final render.Frame
		err   error
		want  int
	}{
		{name: "succeeded", final: render.Frame{State: query.Succeeded}, want: ExitOK},
		{name: "failed", final: render.Frame{State: query.Failed, Message: "Network error"}, want: ExitFailed},
		{name: "closed_while_loading", final: render.NewFrame(query.Result{State: query.Pending}, characters.FieldsBasic), want: ExitCanceled},
		{name: "unmounted", err: fmt.Errorf("%w: %w", ErrUnmounted, context.Canceled), want: ExitCanceled},
		{name: "fatal", err: errors.New("stdout closed"), want: ExitFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.final, tt.err); got != tt.want {
				t.Fatalf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
