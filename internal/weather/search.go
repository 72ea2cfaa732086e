package weather

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/lox/weatherlookup/internal/provider"
	"github.com/lox/weatherlookup/internal/search"
)

// Search validates and classifies raw user input, then fetches it. Invalid
// input is rejected with a validation *provider.Error before any state
// changes or network calls.
func (c *Coordinator) Search(ctx context.Context, raw any) (search.Result, error) {
	if v := search.Validate(raw); !v.Valid {
		return search.Result{}, &provider.Error{
			Kind:    provider.KindValidation,
			Message: v.Error,
			Err:     errors.New("invalid search input"),
		}
	}

	q := search.Classify(search.Sanitize(raw))
	c.logger.Debug("search classified", zap.String("type", string(q.Type)), zap.String("value", q.Value))
	return q, c.FetchWeatherData(ctx, q.Value)
}
