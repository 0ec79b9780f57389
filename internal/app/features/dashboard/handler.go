// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"time"

	errorsfeature "github.com/dalemusser/schooldesk/internal/app/features/errors"
	classstore "github.com/dalemusser/schooldesk/internal/app/store/classes"
	departmentstore "github.com/dalemusser/schooldesk/internal/app/store/departments"
	metricsstore "github.com/dalemusser/schooldesk/internal/app/store/metrics"
	subjectstore "github.com/dalemusser/schooldesk/internal/app/store/subjects"
	userstore "github.com/dalemusser/schooldesk/internal/app/store/users"
	"github.com/dalemusser/schooldesk/internal/app/system/memo"
	"github.com/dalemusser/schooldesk/internal/app/system/metrics"
	"github.com/dalemusser/schooldesk/internal/app/system/mockdata"
	"github.com/dalemusser/schooldesk/internal/app/system/provider"
	"github.com/dalemusser/schooldesk/internal/app/system/timeouts"
	"github.com/dalemusser/schooldesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultPageSize caps each list fetch.
const DefaultPageSize = 100

type Handler struct {
	DB *mongo.Database // optional; enables collection totals

	Users       provider.Lister[models.User]
	Departments provider.Lister[models.Department]
	Subjects    provider.Lister[models.Subject]
	Classes     provider.Lister[models.Class]

	Memo     *memo.Memo
	Trends   mockdata.TrendSource
	Activity mockdata.ActivitySource

	PageSize     int
	FetchTimeout time.Duration // zero uses timeouts.Fetch()

	ErrLog *errorsfeature.ErrorLogger
	Log    *zap.Logger
}

// NewHandler wires the dashboard to the Mongo stores. A nil m aggregates
// without caching.
func NewHandler(db *mongo.Database, m *memo.Memo, pageSize int, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	if m == nil {
		m = memo.New(nil, metrics.Aggregator{}, logger)
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Handler{
		DB:          db,
		Users:       userstore.New(db),
		Departments: departmentstore.New(db),
		Subjects:    subjectstore.New(db),
		Classes:     classstore.New(db),
		Memo:        m,
		Trends:      mockdata.Static{},
		Activity:    mockdata.Static{},
		PageSize:    pageSize,
		ErrLog:      errLog,
		Log:         logger,
	}
}

func (h *Handler) fetchTimeout() time.Duration {
	if h.FetchTimeout > 0 {
		return h.FetchTimeout
	}
	return timeouts.Fetch()
}

// snapshot fetches the four collections concurrently. Each fetch has its
// own timeout and writes only its own slot; a failed fetch leaves it nil.
func (h *Handler) snapshot(ctx context.Context) metrics.Snapshot {
	var (
		snap    metrics.Snapshot
		g       errgroup.Group
		size    = h.PageSize
		timeout = h.fetchTimeout()
	)

	g.Go(func() error {
		snap.Users = provider.Fetch(ctx, h.Users, "users", size, timeout, h.Log)
		return nil
	})
	g.Go(func() error {
		snap.Departments = provider.Fetch(ctx, h.Departments, "departments", size, timeout, h.Log)
		return nil
	})
	g.Go(func() error {
		snap.Subjects = provider.Fetch(ctx, h.Subjects, "subjects", size, timeout, h.Log)
		return nil
	})
	g.Go(func() error {
		snap.Classes = provider.Fetch(ctx, h.Classes, "classes", size, timeout, h.Log)
		return nil
	})
	_ = g.Wait()

	return snap
}

// report is everything the three renderings share.
type report struct {
	Summary  metrics.Summary
	Snapshot metrics.Snapshot
	Counts   *metricsstore.Counts
	Trends   []mockdata.TrendPoint
	Activity []mockdata.Activity
}

func (h *Handler) build(ctx context.Context) report {
	snap := h.snapshot(ctx)
	out := report{
		Snapshot: snap,
		Summary:  h.Memo.Summary(ctx, snap),
	}

	if h.Trends != nil {
		trends, err := h.Trends.EnrollmentTrends(ctx)
		if err != nil {
			h.Log.Warn("enrollment trends unavailable", zap.Error(err))
		}
		out.Trends = trends
	}
	if h.Activity != nil {
		activity, err := h.Activity.RecentActivity(ctx)
		if err != nil {
			h.Log.Warn("recent activity unavailable", zap.Error(err))
		}
		out.Activity = activity
	}

	if h.DB != nil {
		cctx, cancel := context.WithTimeout(ctx, h.fetchTimeout())
		counts := metricsstore.FetchCounts(cctx, h.DB)
		cancel()
		out.Counts = &counts
	}

	return out
}
