// Package sheet reads the Deals worksheet from its CSV export.
package sheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"poolpower/internal/domain"
	"poolpower/internal/domain/entity"
	"poolpower/internal/domain/value"
	"poolpower/pkg/errcodes"
)

// Worksheet column headers.
const (
	ColumnDealID           = "Deal ID"
	ColumnItemName         = "Item Name"
	ColumnShortDescription = "Short Description"
	ColumnTargetQty        = "Target Qty"
	ColumnEstPrice         = "Est Price Per Item"
	ColumnImageURL         = "Image URL"
	ColumnIsActive         = "Is Active"
)

const (
	defaultItemName    = "Unnamed Deal"
	defaultDescription = "No description available."
	defaultPrice       = "N/A"
)

type Source struct {
	url        string
	httpClient *http.Client
}

func NewSource(url string, httpClient *http.Client) *Source {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Source{
		url:        url,
		httpClient: httpClient,
	}
}

// Fetch downloads the worksheet and returns every row, active or not.
func (s *Source) Fetch(ctx context.Context) ([]entity.Deal, error) {
	if s.url == "" {
		return nil, domain.NewError(errcodes.CatalogUnavailable, "sheet url is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Accept", "text/csv")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.CatalogUnavailable, "failed to download sheet")
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewError(errcodes.CatalogUnavailable,
			fmt.Sprintf("sheet download returned %d", resp.StatusCode))
	}

	deals, err := Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sheet.Parse: %w", err)
	}

	return deals, nil
}

// Parse reads the CSV export. The first record is the header row; columns
// are matched by name, ignoring case and surrounding spaces, so their order
// in the sheet does not matter. Rows without a deal id are skipped, and for a
// repeated id only the first row counts.
func Parse(r io.Reader) ([]entity.Deal, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.NewError(errcodes.InvalidSheet, "sheet is empty")
	}

	if err != nil {
		return nil, domain.WrapError(err, errcodes.InvalidSheet, "failed to read header")
	}

	columns := indexColumns(header)

	for _, required := range []string{ColumnDealID, ColumnItemName, ColumnIsActive} {
		if _, ok := columns[normalize(required)]; !ok {
			return nil, domain.NewError(errcodes.InvalidSheet, fmt.Sprintf("missing column %q", required))
		}
	}

	var deals []entity.Deal

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, domain.WrapError(err, errcodes.InvalidSheet, fmt.Sprintf("failed to read line %d", line))
		}

		row := rowReader{columns: columns, record: record}

		id, err := value.ParseDealID(row.get(ColumnDealID))
		if err != nil {
			continue
		}

		deals = append(deals, entity.Deal{
			ID:               id,
			ItemName:         lo.CoalesceOrEmpty(row.get(ColumnItemName), defaultItemName),
			ShortDescription: lo.CoalesceOrEmpty(row.get(ColumnShortDescription), defaultDescription),
			TargetQty:        parseQty(row.get(ColumnTargetQty)),
			EstPricePerItem:  lo.CoalesceOrEmpty(row.get(ColumnEstPrice), defaultPrice),
			ImageURL:         row.get(ColumnImageURL),
			IsActive:         strings.EqualFold(row.get(ColumnIsActive), "yes"),
		})
	}

	return lo.UniqBy(deals, func(d entity.Deal) value.DealID { return d.ID }), nil
}

type rowReader struct {
	columns map[string]int
	record  []string
}

func (r rowReader) get(column string) string {
	i, ok := r.columns[normalize(column)]
	if !ok || i >= len(r.record) {
		return ""
	}

	return strings.TrimSpace(r.record[i])
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))

	for i, name := range header {
		key := normalize(strings.TrimPrefix(name, "\uFEFF"))
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}

	return columns
}

func normalize(column string) string {
	return strings.ToLower(strings.TrimSpace(column))
}

// parseQty accepts "50", "1,000" and "50 units"; anything else is 0.
func parseQty(s string) int {
	s = strings.ReplaceAll(s, ",", "")

	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end >= 0 {
		s = s[:end]
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}

	return n
}
