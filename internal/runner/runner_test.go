package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/avholst/htty/pkg/format"
	"github.com/avholst/htty/pkg/progress"
	"github.com/avholst/htty/pkg/request"
)

func testEnv(out *bytes.Buffer) *Env {
	return &Env{
		Ctx:      context.Background(),
		Client:   request.NewClient(),
		Printer:  format.NewPrinter(out, format.WithColor(false)),
		Reporter: progress.NewEmptyReporter(),
		Log:      zap.NewNop().Sugar(),
	}
}

func TestGetCmdPrintsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	var out bytes.Buffer
	cmd := &GetCmd{URL: srv.URL}
	if err := cmd.Run(testEnv(&out)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "200 OK") {
		t.Fatalf("missing status line in %q", got)
	}
	if !strings.Contains(got, `{"ok":true}`) {
		t.Fatalf("missing body in %q", got)
	}
}

func TestGetCmdRejectsInvalidURL(t *testing.T) {
	var out bytes.Buffer
	cmd := &GetCmd{URL: "not-a-url"}
	if err := cmd.Run(testEnv(&out)); !errors.Is(err, request.ErrInvalidURL) {
		t.Fatalf("err = %v, want ErrInvalidURL", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestPostCmdSendsBodyFields(t *testing.T) {
	var received map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var out bytes.Buffer
	cmd := &PostCmd{URL: srv.URL, Body: []string{"name=joe", "age=30", "age=31"}}
	if err := cmd.Run(testEnv(&out)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(received) != 2 || received["name"] != "joe" || received["age"] != "31" {
		t.Fatalf("server received %v, want later duplicate to win", received)
	}
}

func TestPostCmdRejectsMalformedField(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer srv.Close()

	var out bytes.Buffer
	cmd := &PostCmd{URL: srv.URL, Body: []string{"name=joe", "oops"}}
	if err := cmd.Run(testEnv(&out)); !errors.Is(err, request.ErrInvalidKVPair) {
		t.Fatalf("err = %v, want ErrInvalidKVPair", err)
	}
	if called {
		t.Fatalf("request should not have been sent")
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestGetCmdTransportFailureSkipsFormatting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	var out bytes.Buffer
	cmd := &GetCmd{URL: url}
	if err := cmd.Run(testEnv(&out)); err == nil {
		t.Fatalf("expected transport error")
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}
