// Package safe wraps cleanup calls whose errors are worth a log line but
// never worth failing the request over.
package safe

import (
	"context"
	"io"

	"github.com/saathi-app/saathi/pkg/utils/logging"
)

// Close closes the closer and logs the error instead of returning it.
// A nil closer is a no-op.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("failed to close", "error", err)
	}
}
