package site_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"poolpower/internal/domain/entity"
	"poolpower/internal/site"
)

func testPage() site.Page {
	return site.Page{
		Brand:            "PoolPower",
		ContactNumber:    "254745771747",
		MessagingBaseURL: "https://wa.me",
		Deals: []entity.Deal{
			{
				ID:               "DEAL-7",
				ItemName:         "Rice 5kg Bag",
				ShortDescription: "Pishori rice",
				TargetQty:        50,
				EstPricePerItem:  "1,150",
				ImageURL:         "https://example.com/rice.jpg",
				IsActive:         true,
			},
			{
				ID:               "DEAL-8",
				ItemName:         `Oil <b>"3L"</b>`,
				ShortDescription: "No description available.",
				EstPricePerItem:  "N/A",
				IsActive:         true,
			},
		},
	}
}

func render(t *testing.T, page site.Page) string {
	t.Helper()

	r, err := site.NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, page))

	return buf.String()
}

func TestRender(t *testing.T) {
	rq := require.New(t)

	html := render(t, testPage())

	rq.Contains(html, `href="https://wa.me/254745771747"`)
	rq.Contains(html, `href="/static/style.css"`)
	rq.Contains(html, `action="/deals/DEAL-7/pool"`)
	rq.Contains(html, `target="_blank"`)
	rq.Contains(html, `data-deal-id="DEAL-7"`)
	rq.Contains(html, `data-whatsapp-number="254745771747"`)
	rq.Contains(html, `name="quantity"`)
	rq.Contains(html, "<strong>Target Qty:</strong> 50")
	rq.Contains(html, "<strong>Est. Price:</strong> KSh 1,150")
	rq.Equal(2, strings.Count(html, `class="initiate-pool-form"`))
	rq.NotContains(html, "empty-state")
	rq.NotContains(html, "pool-alert")
}

func TestRenderDefaults(t *testing.T) {
	rq := require.New(t)

	html := render(t, testPage())

	rq.Contains(html, "placehold.co/128x128/e5e7eb/1f2937")
	rq.Contains(html, "<strong>Target Qty:</strong> N/A")
}

func TestRenderEscapesSheetText(t *testing.T) {
	rq := require.New(t)

	html := render(t, testPage())

	rq.NotContains(html, "<b>")
	rq.Contains(html, "Oil &lt;b&gt;&#34;3L&#34;&lt;/b&gt;")
}

func TestRenderAlertAndEmptyState(t *testing.T) {
	rq := require.New(t)

	page := testPage()
	page.Deals = nil
	page.Alert = "Please enter a valid quantity greater than zero."
	page.AlertDealID = "DEAL-7"

	html := render(t, page)

	rq.Contains(html, "empty-state")
	rq.Contains(html, "Please enter a valid quantity greater than zero.")
	rq.Contains(html, `role="alert" data-deal-id="DEAL-7"`)
}

func TestRenderActionBaseURL(t *testing.T) {
	rq := require.New(t)

	page := testPage()
	page.ActionBaseURL = "https://pools.example.com/"

	html := render(t, page)

	rq.Contains(html, `action="https://pools.example.com/deals/DEAL-7/pool"`)
}

func TestGenerate(t *testing.T) {
	rq := require.New(t)

	dir := filepath.Join(t.TempDir(), "docs")

	page := testPage()
	page.ActionBaseURL = "https://pools.example.com"

	rq.NoError(site.Generate(context.Background(), dir, page))

	index, err := os.ReadFile(filepath.Join(dir, site.IndexFile))
	rq.NoError(err)
	rq.Contains(string(index), `href="style.css"`)
	rq.Contains(string(index), `action="https://pools.example.com/deals/DEAL-8/pool"`)

	style, err := os.ReadFile(filepath.Join(dir, site.StyleFile))
	rq.NoError(err)
	rq.Contains(string(style), ".deal-item")
}

func TestGenerateEmpty(t *testing.T) {
	rq := require.New(t)

	dir := t.TempDir()

	page := testPage()
	page.Deals = nil

	rq.NoError(site.Generate(context.Background(), dir, page))

	index, err := os.ReadFile(filepath.Join(dir, site.IndexFile))
	rq.NoError(err)
	rq.Contains(string(index), "No active deals right now.")
}
