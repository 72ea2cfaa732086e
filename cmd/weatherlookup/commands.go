package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/lox/weatherlookup/internal/models"
	"github.com/lox/weatherlookup/internal/search"
	"github.com/lox/weatherlookup/internal/weather"
)

type LookupCmd struct {
	Query []string `arg:"" help:"City, region or postal code."`
	JSON  bool     `help:"Print the snapshot as JSON."`
}

func (c *LookupCmd) Run(g *Globals, ctx context.Context) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	defer a.Close()

	q, err := a.coord.Search(ctx, strings.Join(c.Query, " "))
	if err != nil && q.Type == "" {
		// Rejected before fetching.
		return errors.New(weather.UserMessage(err))
	}
	a.logger.Debug("lookup", zap.String("type", string(q.Type)), zap.String("value", q.Value))
	return report(a.coord, c.JSON)
}

type ShowCmd struct {
	JSON bool `help:"Print the snapshot as JSON."`
}

func (c *ShowCmd) Run(g *Globals, ctx context.Context) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	defer a.Close()

	a.coord.InitializeStore(ctx)
	return report(a.coord, c.JSON)
}

// report prints the coordinator's snapshot and returns its error message, if
// any, so the process exits non-zero.
func report(coord *weather.Coordinator, asJSON bool) error {
	s := coord.Snapshot()
	var err error
	if asJSON {
		err = writeJSON(os.Stdout, s, coord.FormattedLastUpdated())
	} else {
		err = writeText(os.Stdout, s, coord.FormattedLastUpdated())
	}
	if err != nil {
		return err
	}
	if s.Error != nil {
		return errors.New(*s.Error)
	}
	return nil
}

type ClassifyCmd struct {
	Query []string `arg:"" optional:"" help:"Search text."`
}

func (c *ClassifyCmd) Run() error {
	raw := strings.Join(c.Query, " ")
	sanitized := search.Sanitize(raw)
	v := search.Validate(raw)
	res := search.Classify(sanitized)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "input\t%q\n", raw)
	fmt.Fprintf(w, "sanitized\t%q\n", sanitized)
	if v.Valid {
		fmt.Fprintf(w, "valid\tyes\n")
	} else {
		fmt.Fprintf(w, "valid\tno (%s)\n", v.Error)
	}
	fmt.Fprintf(w, "type\t%s\n", queryTypeLabel(res.Type))
	fmt.Fprintf(w, "value\t%q\n", res.Value)
	return w.Flush()
}

type WatchCmd struct {
	Location    string `help:"Location to watch instead of the last searched one."`
	Schedule    string `default:"@every 10m" help:"Cron schedule for refreshes."`
	MetricsAddr string `name:"metrics-addr" help:"Serve Prometheus metrics on this address, e.g. :9090."`
}

func (c *WatchCmd) Run(g *Globals, ctx context.Context) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	defer a.Close()

	if c.MetricsAddr != "" {
		srv := serveMetrics(a.logger, c.MetricsAddr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	if c.Location != "" {
		if q, err := a.coord.Search(ctx, c.Location); err != nil && q.Type == "" {
			return errors.New(weather.UserMessage(err))
		}
	} else {
		a.coord.InitializeStore(ctx)
	}
	printSummary(a.coord)

	sched := cron.New()
	if _, err := sched.AddFunc(c.Schedule, func() {
		a.coord.RefreshWeather(ctx)
		printSummary(a.coord)
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", c.Schedule, err)
	}
	sched.Start()
	a.logger.Info("watching", zap.String("schedule", c.Schedule))

	<-ctx.Done()
	<-sched.Stop().Done()
	a.logger.Info("stopped")
	return nil
}

func serveMetrics(logger *zap.Logger, addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("metrics listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	return srv
}

func printSummary(coord *weather.Coordinator) {
	s := coord.Snapshot()
	fmt.Println(summaryLine(s, time.Now()))
}

func summaryLine(s models.Snapshot, now time.Time) string {
	stamp := now.Format("15:04:05")
	if s.Error != nil {
		return fmt.Sprintf("%s  error: %s", stamp, *s.Error)
	}
	if s.Current == nil || s.Location == nil {
		return fmt.Sprintf("%s  no data", stamp)
	}
	return fmt.Sprintf("%s  %s: %.0f°F, %s", stamp, s.Location.City, s.Current.Temperature, s.Current.Condition)
}

type HistoryCmd struct {
	Limit int `default:"20" help:"Number of fetches to list."`
	Days  int `default:"7" help:"Days covered by the health summary."`
}

func (c *HistoryCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	defer a.Close()

	runs, err := a.store.RecentFetchRuns(c.Limit)
	if err != nil {
		return fmt.Errorf("recent fetches: %w", err)
	}
	health, err := a.store.GetFetchHealth(c.Days)
	if err != nil {
		return fmt.Errorf("fetch health: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tQUERY\tRESULT\tCITY\tDURATION")
	for _, r := range runs {
		result := "ok"
		if !r.Success {
			result = r.ErrorKind.String
			if result == "" {
				result = "failed"
			}
		}
		dur := "-"
		if r.FinishedAt.Valid {
			dur = r.FinishedAt.Time.Sub(r.StartedAt).Round(time.Millisecond).String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Query, result, r.ResolvedCity.String, dur)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tRUNS\tOK\tFAILED")
	for _, h := range health {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", h.Date, h.TotalRuns, h.SuccessRuns, h.FailedRuns)
	}
	return w.Flush()
}
