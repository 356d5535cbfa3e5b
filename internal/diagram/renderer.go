// Package diagram delegates graph-description fragments to an external
// Kroki-compatible rendering service. The engine is opaque: this package
// only normalizes the source, tags each invocation with a unique id and
// converts failures into a displayable placeholder state.
package diagram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/Rich-108/Academic-Engine/internal/config"
	"github.com/google/uuid"
)

// Placeholder shown in place of a diagram that could not be rendered.
const Placeholder = "Visual logic is too complex for diagramming."

// Result is the outcome of one render invocation. A failed render is a
// recoverable display state, never an error: the surrounding prose is
// unaffected.
type Result struct {
	ID          string
	Image       []byte // PNG bytes when Failed is false
	Failed      bool
	Placeholder string
}

type Renderer struct {
	baseURL    string
	httpClient *http.Client
	theme      Theme
}

// Theme carries the color variables handed to the rendering engine.
type Theme struct {
	Name         string
	PrimaryColor string
	LineColor    string
	FontFamily   string
}

// DefaultTheme matches the light presentation palette.
var DefaultTheme = Theme{
	Name:         "base",
	PrimaryColor: "#6366f1",
	LineColor:    "#64748b",
	FontFamily:   "Inter, sans-serif",
}

var DarkTheme = Theme{
	Name:         "dark",
	PrimaryColor: "#818cf8",
	LineColor:    "#94a3b8",
	FontFamily:   "Inter, sans-serif",
}

// ThemeFor maps a stored user preference to a palette.
func ThemeFor(name string) Theme {
	if name == "dark" {
		return DarkTheme
	}
	return DefaultTheme
}

func NewRenderer(baseURL string, theme Theme) *Renderer {
	return &Renderer{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: config.RenderTimeout},
		theme:      theme,
	}
}

// Render delegates source to the rendering service and returns either the
// rendered image or a placeholder result. It never returns an error.
func (r *Renderer) Render(ctx context.Context, source string) Result {
	return r.RenderThemed(ctx, source, r.theme)
}

// RenderThemed is Render with an explicit palette, for per-user theme
// preferences.
func (r *Renderer) RenderThemed(ctx context.Context, source string, theme Theme) Result {
	id := uuid.NewString()
	result := Result{ID: id}

	prepared := prepare(source, theme)
	if prepared == "" {
		result.Failed = true
		result.Placeholder = Placeholder
		return result
	}

	image, err := r.post(ctx, prepared)
	if err != nil {
		slog.Warn("diagram render failed", "render_id", id, "error", err)
		result.Failed = true
		result.Placeholder = Placeholder
		return result
	}

	result.Image = image
	return result
}

// prepare normalizes escaped angle-bracket entities back to literals and
// prepends the theme init directive.
func prepare(source string, theme Theme) string {
	clean := strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
	).Replace(strings.TrimSpace(source))
	if clean == "" {
		return ""
	}

	init := fmt.Sprintf(
		"%%%%{init: {'theme':'%s','themeVariables':{'primaryColor':'%s','lineColor':'%s','fontFamily':'%s'}}}%%%%\n",
		theme.Name, theme.PrimaryColor, theme.LineColor, theme.FontFamily,
	)
	return init + clean
}

func (r *Renderer) post(ctx context.Context, source string) ([]byte, error) {
	url := r.baseURL + "/mermaid/png"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader([]byte(source)))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read render response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("render status %d: %s", resp.StatusCode, errorReason(resp, body))
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty render response")
	}

	return body, nil
}

// errorReason extracts a concise failure reason from the response. Kroki
// and intermediate proxies return HTML error pages; those are parsed so
// logs carry the page's message instead of raw markup.
func errorReason(resp *http.Response, body []byte) string {
	if !strings.Contains(resp.Header.Get("Content-Type"), "html") {
		return truncate(strings.TrimSpace(string(body)), 200)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "unreadable html error page"
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return truncate(strings.TrimSpace(doc.Find("body").Text()), 200)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
