// Package weather owns the application's weather state. A Coordinator fans a
// location query out to the provider, normalizes the responses and commits
// them all-or-nothing, keeping the last good data when a fetch fails.
package weather

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lox/weatherlookup/internal/metrics"
	"github.com/lox/weatherlookup/internal/models"
	"github.com/lox/weatherlookup/internal/normalize"
	"github.com/lox/weatherlookup/internal/provider"
	"github.com/lox/weatherlookup/internal/store"
)

// DefaultLocation is fetched when nothing has been persisted yet and by
// RefreshWeather before any location has resolved.
const DefaultLocation = "New York"

// Fetcher is the provider call the coordinator fans out. *provider.Client
// implements it.
type Fetcher interface {
	FetchRaw(ctx context.Context, query string) (*provider.RawForecast, error)
}

// Preferences is durable string storage. *store.Store implements it.
type Preferences interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// RunLog records an audit row per fetch. *store.Store implements it.
type RunLog interface {
	StartFetchRun(fetchID, query string) (*store.FetchRun, error)
	CompleteFetchRun(run *store.FetchRun) error
}

type Option func(*Coordinator)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Coordinator) { c.logger = logger }
}

// WithClock replaces time.Now for commit timestamps, hourly windowing and
// FormattedLastUpdated.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

func WithDefaultLocation(location string) Option {
	return func(c *Coordinator) { c.defaultLocation = location }
}

func WithRunLog(runs RunLog) Option {
	return func(c *Coordinator) { c.runs = runs }
}

type Coordinator struct {
	client          Fetcher
	prefs           Preferences
	runs            RunLog
	logger          *zap.Logger
	now             func() time.Time
	defaultLocation string

	mu       sync.Mutex
	state    models.Snapshot
	inFlight int

	// commitGen counts successful commits; committedQuery is the query of
	// the latest one and is what persist writes.
	commitGen      uint64
	committedQuery string
}

// New creates a coordinator with an empty snapshot. prefs may be nil, in
// which case nothing is persisted or restored.
func New(client Fetcher, prefs Preferences, opts ...Option) *Coordinator {
	c := &Coordinator{
		client:          client,
		prefs:           prefs,
		logger:          zap.NewNop(),
		now:             time.Now,
		defaultLocation: DefaultLocation,
		state:           models.NewSnapshot(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("weather")
	return c
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() models.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// result is one fetch's normalized data, committed as a unit.
type result struct {
	current  *models.CurrentConditions
	location *models.LocationInfo
	hourly   []models.HourlyEntry
	daily    []models.DailyEntry
}

// FetchWeatherData fetches current conditions, hourly and daily forecasts for
// query concurrently. If every leg succeeds the new data replaces the old in
// one step and query is persisted; otherwise only the error message changes.
// Loading is cleared once the last in-flight fetch settles. The returned
// error has already been recorded in the snapshot.
func (c *Coordinator) FetchWeatherData(ctx context.Context, query string) error {
	fetchID := uuid.NewString()
	logger := c.logger.With(zap.String("fetch_id", fetchID), zap.String("query", query))

	c.begin()
	defer c.end()

	run := c.startRun(logger, fetchID, query)

	res, err := c.fetchAll(ctx, query)
	if err != nil {
		logger.Warn("weather fetch failed",
			zap.String("kind", string(provider.KindOf(err))),
			zap.Error(err))
		metrics.FetchesTotal.WithLabelValues("error").Inc()

		msg := UserMessage(err)
		c.mu.Lock()
		c.state.Error = &msg
		c.mu.Unlock()

		c.completeRun(logger, run, err, nil)
		return err
	}

	now := c.now()
	c.mu.Lock()
	c.state.Current = res.current
	c.state.Location = res.location
	c.state.Hourly = res.hourly
	c.state.Daily = res.daily
	c.state.LastUpdatedAt = &now
	c.commitGen++
	c.committedQuery = query
	c.mu.Unlock()

	metrics.FetchesTotal.WithLabelValues("ok").Inc()
	logger.Info("weather updated",
		zap.Int("hourly", len(res.hourly)),
		zap.Int("daily", len(res.daily)))

	c.persist(logger)
	c.completeRun(logger, run, nil, res.location)
	return nil
}

// fetchAll runs the three legs without cancellation: each runs to completion
// and the first error wins.
func (c *Coordinator) fetchAll(ctx context.Context, query string) (result, error) {
	var (
		g   errgroup.Group
		res result
	)

	g.Go(func() error {
		raw, err := c.client.FetchRaw(ctx, query)
		if err != nil {
			return err
		}
		res.current = normalize.CurrentConditions(raw)
		res.location = normalize.LocationInfo(raw)
		return nil
	})
	g.Go(func() error {
		raw, err := c.client.FetchRaw(ctx, query)
		if err != nil {
			return err
		}
		res.hourly = normalize.HourlyEntries(raw, c.now())
		return nil
	})
	g.Go(func() error {
		raw, err := c.client.FetchRaw(ctx, query)
		if err != nil {
			return err
		}
		res.daily = normalize.DailyEntries(raw)
		return nil
	})

	if err := g.Wait(); err != nil {
		return result{}, err
	}
	return res, nil
}

func (c *Coordinator) begin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight++
	c.state.IsLoading = true
	c.state.Error = nil
}

func (c *Coordinator) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--
	c.state.IsLoading = c.inFlight > 0
}

// RefreshWeather refetches the resolved city, or the default location when
// nothing has resolved yet.
func (c *Coordinator) RefreshWeather(ctx context.Context) error {
	c.mu.Lock()
	query := c.defaultLocation
	if c.state.Location != nil && c.state.Location.City != "" {
		query = c.state.Location.City
	}
	c.mu.Unlock()

	return c.FetchWeatherData(ctx, query)
}

// ClearError dismisses the current error message.
func (c *Coordinator) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Error = nil
}

// InitializeStore fetches the persisted location, or the default location
// when none is stored or storage cannot be read.
func (c *Coordinator) InitializeStore(ctx context.Context) error {
	query := c.defaultLocation
	if saved, ok := c.restore(); ok {
		query = saved
	}
	return c.FetchWeatherData(ctx, query)
}

func (c *Coordinator) restore() (string, bool) {
	if c.prefs == nil {
		return "", false
	}
	value, ok, err := c.prefs.Get(store.LastLocationKey)
	if err != nil {
		metrics.PreferenceErrorsTotal.WithLabelValues("read").Inc()
		c.logger.Warn("failed to read last location", zap.Error(err))
		return "", false
	}
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// persist writes the query of the latest commit. Writes from overlapping
// fetches may finish out of order, so it rewrites until the stored value
// matches the newest commit it has seen.
func (c *Coordinator) persist(logger *zap.Logger) {
	if c.prefs == nil {
		return
	}
	var written uint64
	for {
		c.mu.Lock()
		gen, query := c.commitGen, c.committedQuery
		c.mu.Unlock()
		if gen == written {
			return
		}
		if err := c.prefs.Set(store.LastLocationKey, query); err != nil {
			metrics.PreferenceErrorsTotal.WithLabelValues("write").Inc()
			logger.Warn("failed to persist last location", zap.Error(err))
			return
		}
		written = gen
	}
}

func (c *Coordinator) startRun(logger *zap.Logger, fetchID, query string) *store.FetchRun {
	if c.runs == nil {
		return nil
	}
	run, err := c.runs.StartFetchRun(fetchID, query)
	if err != nil {
		logger.Warn("failed to record fetch run", zap.Error(err))
		return nil
	}
	return run
}

func (c *Coordinator) completeRun(logger *zap.Logger, run *store.FetchRun, err error, loc *models.LocationInfo) {
	if run == nil {
		return
	}
	run.Success = err == nil
	if err != nil {
		run.ErrorKind = sql.NullString{String: string(provider.KindOf(err)), Valid: true}
		run.ErrorMessage = sql.NullString{String: err.Error(), Valid: true}
	}
	if loc != nil {
		run.ResolvedCity = sql.NullString{String: loc.City, Valid: true}
	}
	if err := c.runs.CompleteFetchRun(run); err != nil {
		logger.Warn("failed to complete fetch run", zap.Error(err))
	}
}
