package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/loan-insights/internal/application"
	domain "github.com/bryanwahyu/loan-insights/internal/domain/analysis"
)

// Builder produces the reports a Cache stores. *Analyzer implements it.
type Builder interface {
	Producers() map[domain.Name]Producer
	FinalReport(ctx context.Context, base map[domain.Name]domain.Report) domain.Report
}

// Cache holds the reports computed once at startup.
// Reads never wait for the build; they see whatever has been stored so far.
type Cache struct {
	builder  Builder
	logger   *zap.Logger
	clock    application.Clock
	archive  domain.ChartArchive
	reports  domain.ReportRepository
	failures domain.FailureRepository

	mu         sync.RWMutex
	entries    map[domain.Name]domain.Report
	state      domain.State
	buildID    string
	err        error
	startedAt  time.Time
	finishedAt time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

type Option func(*Cache)

func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithClock(clock application.Clock) Option {
	return func(c *Cache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithArchive uploads every chart and records its URL on the report.
func WithArchive(a domain.ChartArchive) Option {
	return func(c *Cache) { c.archive = a }
}

// WithReportRepository audits every stored report.
func WithReportRepository(r domain.ReportRepository) Option {
	return func(c *Cache) { c.reports = r }
}

// WithFailureRepository audits the error that aborted a build.
func WithFailureRepository(r domain.FailureRepository) Option {
	return func(c *Cache) { c.failures = r }
}

func NewCache(builder Builder, opts ...Option) *Cache {
	c := &Cache{
		builder: builder,
		logger:  zap.NewNop(),
		clock:   application.SystemClock{},
		entries: make(map[domain.Name]domain.Report),
		state:   domain.StateEmpty,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Build runs the base producers in order and then the final report.
// The first producer error stops the build and is returned; reports stored
// before it stay available. Build may only be called once.
func (c *Cache) Build(ctx context.Context) error {
	c.mu.Lock()
	if c.state != domain.StateEmpty {
		c.mu.Unlock()
		return domain.ErrAlreadyBuilt
	}
	c.state = domain.StateBuilding
	c.buildID = uuid.NewString()
	c.startedAt = c.clock.Now()
	buildID := c.buildID
	c.mu.Unlock()

	log := c.logger.With(zap.String("build_id", buildID))
	log.Info("analysis cache build started")

	producers := c.builder.Producers()
	base := make(map[domain.Name]domain.Report, len(domain.BaseReports))
	for _, name := range domain.BaseReports {
		produce, ok := producers[name]
		if !ok {
			return c.fail(ctx, log, name, errors.New("no producer registered"))
		}
		if err := ctx.Err(); err != nil {
			return c.fail(ctx, log, name, err)
		}
		start := time.Now()
		rep, err := produce(ctx)
		if err != nil {
			return c.fail(ctx, log, name, err)
		}
		rep.Name = name
		base[name] = c.store(ctx, log, buildID, rep)
		log.Info("report cached", zap.String("report", string(name)), zap.Duration("took", time.Since(start)))
	}

	final := c.builder.FinalReport(ctx, base)
	final.Name = domain.ReportFinal
	c.store(ctx, log, buildID, final)
	if final.Error != "" {
		log.Warn("final report cached with error", zap.String("error", final.Error))
	}

	c.mu.Lock()
	c.state = domain.StateReady
	c.finishedAt = c.clock.Now()
	took := c.finishedAt.Sub(c.startedAt)
	c.mu.Unlock()
	log.Info("analysis cache ready", zap.Duration("took", took))
	return nil
}

// store archives the chart, inserts the report and audits it.
// Archive and audit failures are logged only.
func (c *Cache) store(ctx context.Context, log *zap.Logger, buildID string, rep domain.Report) domain.Report {
	if c.archive != nil && len(rep.Chart) > 0 {
		key := fmt.Sprintf("%s/%s.png", buildID, rep.Name)
		url, err := c.archive.UploadChart(ctx, key, rep.Chart)
		if err != nil {
			log.Warn("chart archive failed", zap.String("report", string(rep.Name)), zap.Error(err))
		} else {
			rep.ImageURL = url
		}
	}

	c.mu.Lock()
	c.entries[rep.Name] = rep.Clone()
	c.mu.Unlock()

	if c.reports != nil {
		rec := &domain.ReportRecord{
			ID:        uuid.NewString(),
			BuildID:   buildID,
			Name:      rep.Name,
			Summary:   rep.Summary,
			Error:     rep.Error,
			ImageURL:  rep.ImageURL,
			CreatedAt: c.clock.Now().UTC(),
		}
		if err := c.reports.Save(ctx, rec); err != nil {
			log.Warn("report audit failed", zap.String("report", string(rep.Name)), zap.Error(err))
		}
	}
	return rep
}

func (c *Cache) fail(ctx context.Context, log *zap.Logger, name domain.Name, cause error) error {
	err := fmt.Errorf("%s: %w", name, cause)

	c.mu.Lock()
	c.state = domain.StatePartiallyFailed
	c.err = err
	c.finishedAt = c.clock.Now()
	buildID := c.buildID
	c.mu.Unlock()

	log.Error("analysis cache build aborted", zap.String("report", string(name)), zap.Error(cause))

	if c.failures != nil {
		f := &domain.BuildFailure{
			BuildID:   buildID,
			Name:      name,
			Message:   cause.Error(),
			CreatedAt: c.clock.Now().UTC(),
		}
		// context may already be done when the build timed out
		if serr := c.failures.Save(context.WithoutCancel(ctx), f); serr != nil {
			log.Warn("failure audit failed", zap.Error(serr))
		}
	}
	return err
}

// Get returns a copy of the named report, or *NotReadyError.
func (c *Cache) Get(name domain.Name) (domain.Report, error) {
	c.mu.RLock()
	rep, ok := c.entries[name]
	c.mu.RUnlock()
	if !ok {
		c.misses.Add(1)
		return domain.Report{}, &domain.NotReadyError{Name: name}
	}
	c.hits.Add(1)
	return rep.Clone(), nil
}

func (c *Cache) State() domain.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Available lists the cached report names in build order.
func (c *Cache) Available() []domain.Name {
	c.mu.RLock()
	defer c.mu.RUnlock()
	order := make(map[domain.Name]int)
	for i, n := range domain.AllReports() {
		order[n] = i
	}
	out := make([]domain.Name, 0, len(c.entries))
	for n := range c.entries {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i]] < order[out[j]] })
	return out
}

func (c *Cache) BuildID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.buildID
}

// Err is the error that aborted the build, if any.
func (c *Cache) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Stats is a point-in-time view of the cache.
type Stats struct {
	State      domain.State  `json:"state"`
	BuildID    string        `json:"build_id,omitempty"`
	Available  []domain.Name `json:"available"`
	Error      string        `json:"error,omitempty"`
	StartedAt  *time.Time    `json:"started_at,omitempty"`
	FinishedAt *time.Time    `json:"finished_at,omitempty"`
	Hits       int64         `json:"hits"`
	Misses     int64         `json:"misses"`
}

func (c *Cache) Stats() Stats {
	s := Stats{
		Available: c.Available(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	s.State = c.state
	s.BuildID = c.buildID
	if c.err != nil {
		s.Error = c.err.Error()
	}
	if !c.startedAt.IsZero() {
		t := c.startedAt
		s.StartedAt = &t
	}
	if !c.finishedAt.IsZero() {
		t := c.finishedAt
		s.FinishedAt = &t
	}
	return s
}
