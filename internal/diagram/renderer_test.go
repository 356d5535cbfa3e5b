package diagram

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRenderSuccess(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mermaid/png" {
			t.Errorf("path = %q, want /mermaid/png", r.URL.Path)
		}
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte("\x89PNG fake image bytes"))
	}))
	defer srv.Close()

	r := NewRenderer(srv.URL, DefaultTheme)
	res := r.Render(context.Background(), "graph TD\nA --> B")

	if res.Failed {
		t.Fatalf("Render failed, want success")
	}
	if len(res.Image) == 0 {
		t.Error("Image is empty")
	}
	if res.ID == "" {
		t.Error("ID is empty")
	}
	if !strings.HasPrefix(gotBody, "%%{init:") {
		t.Errorf("source missing init directive: %q", gotBody)
	}
	if !strings.Contains(gotBody, "graph TD") {
		t.Errorf("source missing diagram body: %q", gotBody)
	}
}

func TestRenderNormalizesEntities(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte("png"))
	}))
	defer srv.Close()

	r := NewRenderer(srv.URL, DefaultTheme)
	r.Render(context.Background(), "graph TD\nA --&gt; B\nB --&gt; C &amp; D")

	if !strings.Contains(gotBody, "A --> B") {
		t.Errorf("entities not normalized: %q", gotBody)
	}
	if !strings.Contains(gotBody, "C & D") {
		t.Errorf("ampersand not normalized: %q", gotBody)
	}
}

func TestRenderFailureYieldsPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("<html><head><title>Syntax error in graph</title></head><body>details</body></html>"))
	}))
	defer srv.Close()

	r := NewRenderer(srv.URL, DefaultTheme)
	res := r.Render(context.Background(), "graph TD\nA -->")

	if !res.Failed {
		t.Fatal("Render succeeded, want failure")
	}
	if res.Placeholder != Placeholder {
		t.Errorf("Placeholder = %q, want %q", res.Placeholder, Placeholder)
	}
	if res.ID == "" {
		t.Error("ID is empty even on failure")
	}
}

func TestRenderServiceUnreachable(t *testing.T) {
	r := NewRenderer("http://127.0.0.1:1", DefaultTheme)
	res := r.Render(context.Background(), "graph TD\nA --> B")

	if !res.Failed {
		t.Fatal("Render succeeded against unreachable service")
	}
	if res.Placeholder != Placeholder {
		t.Errorf("Placeholder = %q, want %q", res.Placeholder, Placeholder)
	}
}

func TestRenderEmptySource(t *testing.T) {
	r := NewRenderer("http://unused", DefaultTheme)
	res := r.Render(context.Background(), "   \n\t ")

	if !res.Failed {
		t.Fatal("empty source rendered, want failure")
	}
}

func TestRenderUniqueIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("png"))
	}))
	defer srv.Close()

	r := NewRenderer(srv.URL, DefaultTheme)
	a := r.Render(context.Background(), "graph TD\nA --> B")
	b := r.Render(context.Background(), "graph TD\nA --> B")

	if a.ID == b.ID {
		t.Errorf("render ids collide: %q", a.ID)
	}
}

func TestErrorReasonPlainText(t *testing.T) {
	resp := &http.Response{Header: http.Header{"Content-Type": []string{"text/plain"}}}
	got := errorReason(resp, []byte("  bad diagram  "))
	if got != "bad diagram" {
		t.Errorf("errorReason = %q, want %q", got, "bad diagram")
	}
}
