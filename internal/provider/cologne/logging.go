package cologne

import (
	"io"

	"github.com/tonneli/tonneli/internal/logging"
	"github.com/tonneli/tonneli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Cologne:", PrefixColor: ui.FgCyan}

// SetLogger sets an optional destination for provider logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(cityID string, format string, args ...any) {
	logger.Logf(cityID, format, args...)
}
