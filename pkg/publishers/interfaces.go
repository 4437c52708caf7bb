package publishers

import (
	"context"

	"github.com/samvad-hq/waha-client/pkg/waha"
)

// Publisher sends session lifecycle events to a downstream sink (HTTP, SQS, SNS, Pub/Sub).
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// Logger defines the logging surface publishers rely on.
type Logger = waha.Logger

func ensureLogger(log Logger) Logger {
	if log == nil {
		return waha.NopLogger{}
	}
	return log
}
