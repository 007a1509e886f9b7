package plugin

import (
	"io"

	"github.com/tonneli/tonneli/internal/logging"
	"github.com/tonneli/tonneli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Registry:", PrefixColor: ui.FgYellow}

// SetLogger sets an optional destination for registry logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(cityID string, format string, args ...any) {
	logger.Logf(cityID, format, args...)
}
