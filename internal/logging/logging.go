package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tonneli/tonneli/internal/ui"
)

// Logger is a tiny opt-in logger used across internal packages.
// When Writer is nil, logging is disabled.
//
// Lines are rendered by zerolog's console writer:
//
//	<ColoredPrefix> <formattedMessage> city=<cityID>\n
//
// where <cityID> is trimmed and defaults to "(none)".
type Logger struct {
	Writer io.Writer

	PrefixText  string
	PrefixColor string

	// OmitCity controls whether the city field is written.
	// When false (default), output includes: "city=<id>".
	OmitCity bool
}

func (l *Logger) SetWriter(w io.Writer) { l.Writer = w }

func (l *Logger) Enabled() bool { return l != nil && l.Writer != nil }

func (l *Logger) Logf(cityID string, format string, args ...any) {
	if l == nil || l.Writer == nil {
		return
	}
	prefix := l.PrefixText
	if prefix == "" {
		prefix = "Log:"
	}
	if l.PrefixColor != "" {
		prefix = ui.Color(prefix, l.PrefixColor)
	}

	zl := zerolog.New(zerolog.ConsoleWriter{
		Out:        l.Writer,
		NoColor:    true,
		PartsOrder: []string{zerolog.MessageFieldName},
	})
	ev := zl.Log()
	if !l.OmitCity {
		c := strings.TrimSpace(cityID)
		if c == "" {
			c = "(none)"
		}
		ev = ev.Str("city", c)
	}
	ev.Msg(prefix + " " + fmt.Sprintf(format, args...))
}
