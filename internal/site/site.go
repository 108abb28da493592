// Package site renders the PoolPower deals page, both for the HTTP server and
// for the static export.
package site

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"poolpower/internal/domain/entity"
	"poolpower/internal/domain/value"
	"poolpower/pkg/contextx"
	"poolpower/pkg/logx"
	"poolpower/pkg/urix"
)

const (
	PlaceholderImageURL = "https://placehold.co/128x128/e5e7eb/1f2937?text=No+Image"

	IndexFile = "index.html"
	StyleFile = "style.css"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the assets served next to the page.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page is everything the deals page shows.
type Page struct {
	Brand            string
	ContactNumber    value.ContactNumber
	MessagingBaseURL string
	// ActionBaseURL prefixes form actions. Empty keeps them relative to the
	// serving host; the static export points them at the public server.
	ActionBaseURL string
	// StyleURL defaults to the path the server mounts the static assets on.
	StyleURL string
	Deals    []entity.Deal

	// Alert is shown above the deals, e.g. after a rejected quantity.
	Alert       string
	AlertDealID value.DealID
}

func (p Page) ContactURL() string {
	return strings.TrimRight(p.MessagingBaseURL, "/") + "/" + p.ContactNumber.String()
}

func (p Page) StyleHref() string {
	if p.StyleURL == "" {
		return "/static/" + StyleFile
	}
	return p.StyleURL
}

func (p Page) ActionURL(id value.DealID) string {
	return strings.TrimRight(p.ActionBaseURL, "/") + "/deals/" + urix.EscapeComponent(id.String()) + "/pool"
}

type Renderer struct {
	index *template.Template
}

func NewRenderer() (*Renderer, error) {
	index, err := template.New("index.html.tmpl").
		Funcs(template.FuncMap{
			"imageURL":  imageURL,
			"targetQty": targetQty,
		}).
		ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("template.ParseFS: %w", err)
	}

	return &Renderer{index: index}, nil
}

// Render writes the page to w. Nothing is written if the template fails.
func (r *Renderer) Render(w io.Writer, page Page) error {
	var buf bytes.Buffer
	if err := r.index.Execute(&buf, page); err != nil {
		return fmt.Errorf("index.Execute: %w", err)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("buf.WriteTo: %w", err)
	}

	return nil
}

// Generate writes index.html and style.css into dir, creating it if needed.
// A page without deals is still written; it shows the empty-state notice.
func Generate(ctx context.Context, dir string, page Page) error {
	r, err := NewRenderer()
	if err != nil {
		return err
	}

	if page.StyleURL == "" {
		page.StyleURL = StyleFile
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	var index bytes.Buffer
	if err := r.Render(&index, page); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, IndexFile), index.Bytes(), 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("os.WriteFile: %w", err)
	}

	style, err := fs.ReadFile(Static(), StyleFile)
	if err != nil {
		return fmt.Errorf("fs.ReadFile: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, StyleFile), style, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("os.WriteFile: %w", err)
	}

	if len(page.Deals) == 0 {
		logger(ctx).Warn("no active deals, generated empty page", slog.String("dir", dir))
	} else {
		logger(ctx).Info("static site generated",
			slog.String("dir", dir),
			slog.Int(logx.FieldCount, len(page.Deals)),
		)
	}

	return nil
}

func imageURL(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return PlaceholderImageURL
	}
	return raw
}

func targetQty(n int) string {
	if n <= 0 {
		return "N/A"
	}
	return strconv.Itoa(n)
}
