package catalog_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"poolpower/internal/domain"
	"poolpower/internal/domain/entity"
	"poolpower/internal/domain/service/catalog"
	"poolpower/internal/domain/service/pool"
	"poolpower/internal/domain/value"
	"poolpower/pkg/errcodes"
)

const contact = "254745771747"

type fakeSource struct {
	deals []entity.Deal
	err   error
}

func (f *fakeSource) Fetch(context.Context) ([]entity.Deal, error) {
	return f.deals, f.err
}

// fakeRepo stores rows like the real table: ReplaceAll keeps ids it has seen
// and deactivates the missing ones.
type fakeRepo struct {
	mu        sync.Mutex
	rows      []entity.Deal
	listCalls int
	err       error
}

func (f *fakeRepo) ReplaceAll(_ context.Context, deals []entity.Deal) (entity.ImportResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return entity.ImportResult{}, f.err
	}

	seen := make(map[string]bool, len(deals))
	for _, d := range deals {
		seen[d.ID.String()] = true
	}

	res := entity.ImportResult{Upserted: len(deals)}
	for _, old := range f.rows {
		if old.IsActive && !seen[old.ID.String()] {
			res.Deactivated++
		}
	}

	f.rows = append([]entity.Deal(nil), deals...)

	return res, nil
}

func (f *fakeRepo) ListActive(context.Context) ([]entity.Deal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++

	var active []entity.Deal
	for _, d := range f.rows {
		if d.IsActive {
			active = append(active, d)
		}
	}

	return active, nil
}

type fakeShared struct {
	deals       []entity.Deal
	has         bool
	invalidated int
}

func (f *fakeShared) GetActive(context.Context) ([]entity.Deal, error) {
	if !f.has {
		return nil, errors.New("miss")
	}
	return f.deals, nil
}

func (f *fakeShared) SetActive(_ context.Context, deals []entity.Deal) error {
	f.deals, f.has = deals, true
	return nil
}

func (f *fakeShared) Invalidate(context.Context) error {
	f.deals, f.has = nil, false
	f.invalidated++
	return nil
}

func sheetRows() []entity.Deal {
	return []entity.Deal{
		{ID: "DEAL-7", ItemName: "Rice 5kg Bag", IsActive: true},
		{ID: "DEAL-8", ItemName: "Cooking Oil 3L", IsActive: true},
		{ID: "DEAL-9", ItemName: "Sugar 2kg", IsActive: false},
	}
}

func TestServiceSync(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	source := &fakeSource{deals: sheetRows()}
	repo := &fakeRepo{}
	shared := &fakeShared{}
	handler := pool.NewHandler()
	reports := make(chan catalog.SyncReport, 1)

	svc := catalog.NewService(source, repo, handler, contact).
		WithSharedCache(shared).
		WithReports(reports)

	report, err := svc.Sync(ctx)
	rq.NoError(err)
	rq.Equal(3, report.Fetched)
	rq.Equal(3, report.Upserted)
	rq.Equal(2, report.Active)
	rq.False(report.Failed())

	rq.Equal(report, <-reports)

	items := handler.Items()
	rq.Len(items, 2)
	rq.Equal(entity.ActionableItem{DealID: "DEAL-7", ItemName: "Rice 5kg Bag", ContactNumber: contact}, items[0])

	// The sheet drops the oil deal.
	source.deals = sheetRows()[:1]

	report, err = svc.Sync(ctx)
	rq.NoError(err)
	rq.Equal(1, report.Deactivated)
	rq.Equal(1, report.Active)
	rq.Equal(2, shared.invalidated)

	_, ok := handler.Item("DEAL-8")
	rq.False(ok)
}

func TestServiceSyncFailure(t *testing.T) {
	testCases := []struct {
		name   string
		source *fakeSource
		repo   *fakeRepo
	}{
		{
			name:   "sheet unavailable",
			source: &fakeSource{err: domain.NewError(errcodes.CatalogUnavailable, "failed to download sheet")},
			repo:   &fakeRepo{},
		},
		{
			name:   "storage failure",
			source: &fakeSource{deals: sheetRows()},
			repo:   &fakeRepo{err: errors.New("disk full")},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)
			ctx := context.Background()

			handler := pool.NewHandler()
			handler.Initialize(ctx, []entity.ActionableItem{{DealID: "OLD", ItemName: "Old", ContactNumber: contact}})

			reports := make(chan catalog.SyncReport, 1)
			svc := catalog.NewService(tc.source, tc.repo, handler, contact).WithReports(reports)

			report, err := svc.Sync(ctx)
			rq.Error(err)
			rq.True(report.Failed())
			rq.True((<-reports).Failed())

			// Bindings survive a failed sync.
			_, ok := handler.Item("OLD")
			rq.True(ok)
		})
	}
}

func TestServiceActiveDealsCaching(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := &fakeRepo{rows: sheetRows()}
	shared := &fakeShared{}

	svc := catalog.NewService(&fakeSource{}, repo, pool.NewHandler(), contact).WithSharedCache(shared)

	deals, err := svc.ActiveDeals(ctx)
	rq.NoError(err)
	rq.Len(deals, 2)
	rq.True(shared.has)

	_, err = svc.ActiveDeals(ctx)
	rq.NoError(err)
	rq.Equal(1, repo.listCalls)

	// A second replica with a cold local cache reads the shared one.
	other := catalog.NewService(&fakeSource{}, repo, pool.NewHandler(), contact).WithSharedCache(shared)

	deals, err = other.ActiveDeals(ctx)
	rq.NoError(err)
	rq.Len(deals, 2)
	rq.Equal(1, repo.listCalls)
}

// A sync run by another process reaches this one through the shared
// repository. Once the page shows the new deal, the handler must open it.
func TestServiceActiveDealsRebindsAfterForeignSync(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := &fakeRepo{}
	handler := pool.NewHandler()

	server := catalog.NewService(&fakeSource{}, repo, handler, contact).WithLocalTTL(10 * time.Millisecond)

	bound, err := server.Bind(ctx)
	rq.NoError(err)
	rq.Zero(bound)

	cli := catalog.NewService(
		&fakeSource{deals: append(sheetRows(), entity.Deal{ID: "DEAL-NEW", ItemName: "Beans 1kg", IsActive: true})},
		repo,
		pool.NewHandler(),
		contact,
	)

	_, err = cli.Sync(ctx)
	rq.NoError(err)

	time.Sleep(20 * time.Millisecond)

	deals, err := server.ActiveDeals(ctx)
	rq.NoError(err)
	rq.Len(deals, 3)
	rq.Equal(value.DealID("DEAL-NEW"), deals[2].ID)

	var navigator pool.LinkCollector

	link, err := handler.Activate(ctx, "DEAL-NEW", pool.NewFixedAnswer("2", true), &navigator)
	rq.NoError(err)
	rq.Contains(link, "Beans%201kg")

	// Served from the local cache: the bindings stay as they are.
	_, err = server.ActiveDeals(ctx)
	rq.NoError(err)
	rq.Len(handler.Items(), 3)
}

func TestServiceDeal(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	svc := catalog.NewService(&fakeSource{}, &fakeRepo{rows: sheetRows()}, pool.NewHandler(), contact)

	deal, err := svc.Deal(ctx, "DEAL-8")
	rq.NoError(err)
	rq.Equal("Cooking Oil 3L", deal.ItemName)

	for _, id := range []string{"DEAL-9", "DEAL-404"} {
		_, err = svc.Deal(ctx, value.DealID(id))
		rq.ErrorIs(err, domain.NewError(errcodes.DealNotFound, ""))
	}
}

func TestServiceSyncDropsReportWithoutReader(t *testing.T) {
	rq := require.New(t)

	reports := make(chan catalog.SyncReport)
	svc := catalog.NewService(&fakeSource{deals: sheetRows()}, &fakeRepo{}, pool.NewHandler(), contact).
		WithReports(reports)

	_, err := svc.Sync(context.Background())
	rq.NoError(err)
}
