package weather

import (
	"errors"

	"github.com/lox/weatherlookup/internal/provider"
)

// GenericErrorMessage is shown for failures that carry no user-safe message.
const GenericErrorMessage = "Failed to fetch weather data. Please try again."

// UserMessage returns the text recorded in the snapshot for err.
func UserMessage(err error) string {
	var perr *provider.Error
	if !errors.As(err, &perr) {
		return GenericErrorMessage
	}
	if perr.Message != "" {
		return perr.Message
	}

	switch perr.Kind {
	case provider.KindNetwork:
		return provider.MsgNetwork
	case provider.KindNotFound:
		return provider.MsgNotFound
	case provider.KindAPIError:
		return provider.MsgUnavailable
	case provider.KindValidation:
		return provider.MsgInvalidResponse
	case provider.KindConfig:
		return provider.MsgConfig
	default:
		return GenericErrorMessage
	}
}
