// Package provider fetches forecasts from WeatherAPI.com and maps every
// failure to an *Error with a Kind.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/lox/weatherlookup/internal/httputil"
	"github.com/lox/weatherlookup/internal/metrics"
)

const (
	DefaultBaseURL = "https://api.weatherapi.com/v1"

	// ForecastDays is how many days every request asks for.
	ForecastDays = 7

	forecastPath = "/forecast.json"

	// ConcurrentCallers is how many FetchRaw calls one coordinator fetch
	// makes at once. The breaker tolerates a whole fetch failing.
	ConcurrentCallers = 3
)

// placeholderKeys are values shipped in example configs that are never real
// credentials.
var placeholderKeys = map[string]bool{
	"your_api_key_here": true,
	"your-api-key":      true,
	"your_api_key":      true,
	"api_key":           true,
	"changeme":          true,
	"xxx":               true,
}

type Config struct {
	APIKey  string
	BaseURL string

	// Retries is the number of extra attempts after a transient failure
	// (transport error, 429 or 5xx). Zero disables retrying.
	Retries       uint64
	RetryInterval time.Duration

	// BreakerThreshold is how many consecutive provider failures (429 or
	// 5xx) open the circuit. Zero uses ConcurrentCallers*(Retries+1)+1.
	// Transport failures never count.
	BreakerThreshold uint32
}

func (c Config) breakerThreshold() uint32 {
	if c.BreakerThreshold > 0 {
		return c.BreakerThreshold
	}
	return uint32(ConcurrentCallers*(c.Retries+1)) + 1
}

// HasCredential reports whether APIKey is set to something other than a
// known placeholder.
func (c Config) HasCredential() bool {
	key := strings.TrimSpace(c.APIKey)
	return key != "" && !placeholderKeys[strings.ToLower(key)]
}

type Client struct {
	cfg      Config
	http     *resty.Client
	breaker  *gobreaker.CircuitBreaker
	validate *validator.Validate
	logger   *zap.Logger
}

// NewClient creates a provider client. A nil httpClient uses
// httputil.NewClient; a nil logger discards logs.
func NewClient(cfg Config, httpClient *http.Client, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 500 * time.Millisecond
	}
	if httpClient == nil {
		httpClient = httputil.NewClient()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("provider")

	rc := resty.NewWithClient(httpClient).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("User-Agent", httputil.UserAgent).
		SetHeader("Accept", "application/json").
		SetLogger(logger.Sugar())

	threshold := cfg.breakerThreshold()
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherapi",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Only the provider answering badly counts against it; a local
		// connectivity loss is reported as a network error and retried.
		IsSuccessful: func(err error) bool {
			var se *statusErr
			return !errors.As(err, &se)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
	})

	return &Client{
		cfg:      cfg,
		http:     rc,
		breaker:  breaker,
		validate: validator.New(),
		logger:   logger,
	}
}

// FetchRaw requests a 7-day forecast for query and returns the parsed body
// untouched. Every error is an *Error.
func (c *Client) FetchRaw(ctx context.Context, query string) (*RawForecast, error) {
	if !c.cfg.HasCredential() {
		return nil, c.fail(newError(KindConfig, MsgConfig, errors.New("api key missing or placeholder")), query)
	}
	if u, err := url.Parse(c.cfg.BaseURL); err != nil || u.Scheme != "https" {
		return nil, c.fail(newError(KindConfig, MsgConfig, fmt.Errorf("base url %q is not https", c.cfg.BaseURL)), query)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, c.fail(newError(KindValidation, MsgQueryRequired, errors.New("empty query")), query)
	}

	start := time.Now()
	body, err := c.get(ctx, query)
	metrics.ProviderLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, c.fail(err, query)
	}

	var raw RawForecast
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, c.fail(newError(KindValidation, MsgInvalidResponse, fmt.Errorf("decode response: %w", err)), query)
	}
	if err := c.validate.Struct(&raw); err != nil {
		return nil, c.fail(newError(KindValidation, MsgInvalidResponse, fmt.Errorf("incomplete response: %w", err)), query)
	}

	metrics.ProviderRequestsTotal.WithLabelValues("ok").Inc()
	return &raw, nil
}

func (c *Client) fail(err *Error, query string) *Error {
	metrics.ProviderRequestsTotal.WithLabelValues(string(err.Kind)).Inc()
	c.logger.Warn("forecast request failed",
		zap.String("query", query),
		zap.String("kind", string(err.Kind)),
		zap.Error(err.Err))
	return err
}

// get performs the GET with retries on transient failures and returns the
// body of a 2xx response.
func (c *Client) get(ctx context.Context, query string) ([]byte, *Error) {
	params := map[string]string{
		"key":  c.cfg.APIKey,
		"q":    query,
		"days": strconv.Itoa(ForecastDays),
		"aqi":  "no",
	}

	operation := func() (*resty.Response, error) {
		out, err := c.breaker.Execute(func() (interface{}, error) {
			resp, err := c.http.R().SetContext(ctx).SetQueryParams(params).Get(forecastPath)
			if err != nil {
				return nil, err
			}
			if transient(resp.StatusCode()) {
				return resp, &statusErr{status: resp.StatusCode()}
			}
			return resp, nil
		})

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, backoff.Permanent(newError(KindAPIError, MsgUnavailable, err))
		}
		resp, _ := out.(*resty.Response)
		if resp == nil {
			perr := newError(KindNetwork, MsgNetwork, redactKey(err))
			if ctx.Err() != nil {
				return nil, backoff.Permanent(perr)
			}
			return nil, perr
		}
		if transient(resp.StatusCode()) {
			return nil, statusError(resp.StatusCode())
		}
		return resp, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.RetryInterval
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = 0

	notify := func(err error, next time.Duration) {
		metrics.ProviderRetriesTotal.Inc()
		c.logger.Debug("retrying forecast request", zap.Duration("backoff", next), zap.Error(err))
	}

	resp, err := backoff.RetryNotifyWithData(operation,
		backoff.WithContext(backoff.WithMaxRetries(bo, c.cfg.Retries), ctx), notify)
	if err != nil {
		var perr *Error
		if errors.As(err, &perr) {
			return nil, perr
		}
		return nil, newError(KindNetwork, MsgNetwork, redactKey(err))
	}

	if perr := statusError(resp.StatusCode()); perr != nil {
		return nil, perr
	}
	return resp.Body(), nil
}

// redactKey hides the API key in the request URL that transport errors embed.
func redactKey(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	u, perr := url.Parse(uerr.URL)
	if perr != nil {
		return err
	}
	q := u.Query()
	if !q.Has("key") {
		return err
	}
	q.Set("key", "REDACTED")
	u.RawQuery = q.Encode()
	return &url.Error{Op: uerr.Op, URL: u.String(), Err: uerr.Err}
}

// statusErr marks a transient provider status inside the breaker.
type statusErr struct {
	status int
}

func (e *statusErr) Error() string {
	return fmt.Sprintf("transient status: %d", e.status)
}
