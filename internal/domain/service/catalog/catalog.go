// Package catalog keeps the deal catalog in sync with the Deals worksheet and
// serves it to the page, the API and the pool handler.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"poolpower/internal/domain"
	"poolpower/internal/domain/entity"
	"poolpower/internal/domain/service/pool"
	"poolpower/internal/domain/value"
	"poolpower/pkg/contextx"
	"poolpower/pkg/errcodes"
	"poolpower/pkg/logx"
)

const (
	defaultLocalTTL = 30 * time.Second
	activeKey       = "active"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type SheetSource interface {
	Fetch(ctx context.Context) ([]entity.Deal, error)
}

type DealRepository interface {
	ReplaceAll(ctx context.Context, deals []entity.Deal) (entity.ImportResult, error)
	ListActive(ctx context.Context) ([]entity.Deal, error)
}

// SharedCache is a cache visible to every replica. Misses and failures are
// both reported as errors; the service then falls back to the repository.
type SharedCache interface {
	GetActive(ctx context.Context) ([]entity.Deal, error)
	SetActive(ctx context.Context, deals []entity.Deal) error
	Invalidate(ctx context.Context) error
}

// SyncReport summarises one sync run for the ops channel.
type SyncReport struct {
	Fetched     int
	Active      int
	Upserted    int
	Deactivated int
	Duration    time.Duration
	Failure     string
}

func (r SyncReport) Failed() bool {
	return r.Failure != ""
}

type Service struct {
	source  SheetSource
	repo    DealRepository
	handler *pool.Handler
	contact value.ContactNumber

	shared  SharedCache
	local   *cache.Cache
	reports chan<- SyncReport

	syncMu sync.Mutex
	bindMu sync.Mutex
}

func NewService(
	source SheetSource,
	repo DealRepository,
	handler *pool.Handler,
	contact value.ContactNumber,
) *Service {
	return &Service{
		source:  source,
		repo:    repo,
		handler: handler,
		contact: contact,
		local:   cache.New(defaultLocalTTL, 2*defaultLocalTTL),
	}
}

func (s *Service) WithSharedCache(shared SharedCache) *Service {
	s.shared = shared
	return s
}

func (s *Service) WithLocalTTL(ttl time.Duration) *Service {
	if ttl > 0 {
		s.local = cache.New(ttl, 2*ttl)
	}
	return s
}

// WithReports makes Sync publish its report on ch. Sends never block: a
// report is dropped when nobody is reading.
func (s *Service) WithReports(ch chan<- SyncReport) *Service {
	s.reports = ch
	return s
}

// ActiveDeals returns the deals shown on the page, in sheet order. A list
// read past the local cache is bound to the pool handler before it is
// returned, so every deal a caller renders can be activated.
func (s *Service) ActiveDeals(ctx context.Context) ([]entity.Deal, error) {
	if cached, ok := s.local.Get(activeKey); ok {
		return cached.([]entity.Deal), nil //nolint:forcetypeassert
	}

	deals, _, err := s.refresh(ctx)

	return deals, err
}

// refresh loads the active deals from the shared cache or the repository,
// stores them locally and rebinds the pool handler to them. The local entry
// and the bindings change together under bindMu.
func (s *Service) refresh(ctx context.Context) ([]entity.Deal, int, error) {
	s.bindMu.Lock()
	defer s.bindMu.Unlock()

	deals, err := s.load(ctx)
	if err != nil {
		return nil, 0, err
	}

	s.local.SetDefault(activeKey, deals)

	return deals, s.handler.Replace(ctx, s.Items(deals)), nil
}

func (s *Service) load(ctx context.Context) ([]entity.Deal, error) {
	if s.shared != nil {
		deals, err := s.shared.GetActive(ctx)
		if err == nil {
			return deals, nil
		}

		logger(ctx).Debug("shared cache skipped", logx.Error(err))
	}

	deals, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ListActive: %w", err)
	}

	if s.shared != nil {
		if err := s.shared.SetActive(ctx, deals); err != nil {
			logger(ctx).Warn("shared cache not updated", logx.Error(err))
		}
	}

	return deals, nil
}

// Deal returns one active deal.
func (s *Service) Deal(ctx context.Context, id value.DealID) (entity.Deal, error) {
	deals, err := s.ActiveDeals(ctx)
	if err != nil {
		return entity.Deal{}, err
	}

	deal, ok := lo.Find(deals, func(d entity.Deal) bool { return d.ID == id })
	if !ok {
		return entity.Deal{}, domain.NewError(errcodes.DealNotFound, fmt.Sprintf("deal %s not found", id))
	}

	return deal, nil
}

// Items maps deals to what the pool handler binds. Every item is addressed
// to the configured team number.
func (s *Service) Items(deals []entity.Deal) []entity.ActionableItem {
	return lo.Map(deals, func(d entity.Deal, _ int) entity.ActionableItem {
		return entity.ActionableItem{
			DealID:        d.ID,
			ItemName:      d.ItemName,
			ContactNumber: s.contact,
		}
	})
}

// Bind reloads the active deals past the local cache and rebinds the pool
// handler to them.
func (s *Service) Bind(ctx context.Context) (int, error) {
	_, bound, err := s.refresh(ctx)

	return bound, err
}

// Sync imports the worksheet. Rows are upserted in one transaction, rows gone
// from the sheet are deactivated, caches are dropped and the pool handler is
// rebound to the new active set. Concurrent calls run one after another.
func (s *Service) Sync(ctx context.Context) (SyncReport, error) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	start := time.Now()

	report, err := s.sync(ctx)
	report.Duration = time.Since(start)

	if err != nil {
		report.Failure = domain.PublicMessage(err)
		if report.Failure == "" {
			report.Failure = err.Error()
		}

		logger(ctx).Error("catalog sync failed", logx.Error(err))
	} else {
		logger(ctx).Info("catalog synced",
			slog.Int("fetched", report.Fetched),
			slog.Int("active", report.Active),
			slog.Int("deactivated", report.Deactivated),
			slog.Duration("duration", report.Duration),
		)
	}

	s.publish(ctx, report)

	return report, err
}

func (s *Service) sync(ctx context.Context) (SyncReport, error) {
	var report SyncReport

	deals, err := s.source.Fetch(ctx)
	if err != nil {
		return report, fmt.Errorf("source.Fetch: %w", err)
	}

	report.Fetched = len(deals)

	res, err := s.repo.ReplaceAll(ctx, deals)
	if err != nil {
		return report, fmt.Errorf("repo.ReplaceAll: %w", err)
	}

	report.Upserted = res.Upserted
	report.Deactivated = res.Deactivated

	s.invalidate(ctx)

	bound, err := s.Bind(ctx)
	if err != nil {
		return report, fmt.Errorf("service.Bind: %w", err)
	}

	report.Active = bound

	return report, nil
}

func (s *Service) invalidate(ctx context.Context) {
	s.local.Delete(activeKey)

	if s.shared == nil {
		return
	}

	if err := s.shared.Invalidate(ctx); err != nil {
		logger(ctx).Warn("shared cache not invalidated", logx.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, report SyncReport) {
	if s.reports == nil {
		return
	}

	select {
	case s.reports <- report:
	default:
		logger(ctx).Warn("sync report dropped")
	}
}
