package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lox/weatherlookup/internal/httputil"
	"github.com/lox/weatherlookup/internal/provider"
	"github.com/lox/weatherlookup/internal/store"
	"github.com/lox/weatherlookup/internal/weather"
)

// Globals are flags shared by every command.
type Globals struct {
	APIKey          string        `name:"api-key" env:"WEATHER_API_KEY" help:"WeatherAPI.com API key."`
	APIURL          string        `name:"api-url" env:"WEATHER_API_URL" default:"${default_api_url}" help:"Provider base URL (must be https)."`
	DB              string        `name:"db" env:"WEATHER_DB" default:"data/weatherlookup.db" help:"Path to SQLite database."`
	Retries         uint64        `env:"WEATHER_RETRIES" default:"2" help:"Extra attempts after a transient provider failure."`
	Timeout         time.Duration `env:"WEATHER_TIMEOUT" default:"30s" help:"HTTP timeout per provider request."`
	DefaultLocation string        `name:"default-location" env:"WEATHER_DEFAULT_LOCATION" default:"${default_location}" help:"Location used when nothing has been searched yet."`
	Debug           bool          `help:"Development logging."`
}

var cli struct {
	Globals

	Lookup   LookupCmd   `cmd:"" help:"Search for a location and print its weather."`
	Show     ShowCmd     `cmd:"" help:"Print weather for the last searched location."`
	Classify ClassifyCmd `cmd:"" help:"Show how a search string is sanitized and classified."`
	Watch    WatchCmd    `cmd:"" help:"Keep refreshing weather on a schedule."`
	History  HistoryCmd  `cmd:"" help:"List recent fetches."`
}

func main() {
	// Values already in the environment take precedence over .env.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kctx := kong.Parse(&cli,
		kong.Name("weatherlookup"),
		kong.Description("Look up current conditions and forecasts from WeatherAPI.com."),
		kong.UsageOnError(),
		kong.Vars{
			"default_api_url":  provider.DefaultBaseURL,
			"default_location": weather.DefaultLocation,
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	kctx.FatalIfErrorf(kctx.Run(&cli.Globals))
}

func (g *Globals) newLogger() (*zap.Logger, error) {
	if g.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// app is the wiring shared by commands that fetch weather.
type app struct {
	logger *zap.Logger
	store  *store.Store
	coord  *weather.Coordinator
}

func (g *Globals) open() (*app, error) {
	logger, err := g.newLogger()
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	if dir := filepath.Dir(g.DB); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	st, err := store.Open(g.DB)
	if err != nil {
		return nil, err
	}
	version, err := st.MigrationVersion()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("read schema version: %w", err)
	}
	logger.Debug("database ready", zap.String("path", g.DB), zap.Int("schema_version", version))

	hc := httputil.NewClient()
	hc.Timeout = g.Timeout

	client := provider.NewClient(provider.Config{
		APIKey:  g.APIKey,
		BaseURL: g.APIURL,
		Retries: g.Retries,
	}, hc, logger)

	coord := weather.New(client, st,
		weather.WithLogger(logger),
		weather.WithRunLog(st),
		weather.WithDefaultLocation(g.DefaultLocation),
	)
	return &app{logger: logger, store: st, coord: coord}, nil
}

func (a *app) Close() {
	a.logger.Sync()
	a.store.Close()
}
