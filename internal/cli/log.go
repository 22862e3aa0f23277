// Package cli implements the perfectmaze command-line interface.
//
// The CLI is built with cobra. Every command shares one [CLI] value holding
// the charmbracelet logger and the loaded configuration file.
//
// # Commands
//
//   - generate: carve a maze and print or write it (text, hex, json, dot, svg, png, pdf)
//   - render: re-render a saved maze document
//   - verify: check that a saved maze is perfect
//   - view: interactive terminal viewer
//   - serve: HTTP API
//   - history: recently saved mazes
//   - cache, config, completion: housekeeping
//
// # Logging
//
// Logs go to stderr so rendered mazes on stdout can be piped. --verbose (-v)
// switches to debug level, which also prints the observability hook events.
// The logger travels through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps writing to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the elapsed time of an operation when it is done.
// It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Carved 20x10 maze (3ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
