// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"os"
)

// lazyLogger binds its context to whatever the root logger is at call time.
type lazyLogger struct {
	ctx []any
}

func (l *lazyLogger) resolve() Logger {
	return Root().With(l.ctx...)
}

func (l *lazyLogger) write(level slog.Level, msg string, ctx []any) {
	r := Root()
	if !r.Enabled(context.Background(), level) {
		return
	}
	r.With(l.ctx...).Write(level, msg, ctx...)
}

func (l *lazyLogger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	return &lazyLogger{ctx: append(merged, ctx...)}
}

func (l *lazyLogger) New(ctx ...any) Logger { return l.With(ctx...) }

func (l *lazyLogger) Log(level slog.Level, msg string, ctx ...any) { l.write(level, msg, ctx) }
func (l *lazyLogger) Trace(msg string, ctx ...any)                 { l.write(LevelTrace, msg, ctx) }
func (l *lazyLogger) Debug(msg string, ctx ...any)                 { l.write(LevelDebug, msg, ctx) }
func (l *lazyLogger) Info(msg string, ctx ...any)                  { l.write(LevelInfo, msg, ctx) }
func (l *lazyLogger) Warn(msg string, ctx ...any)                  { l.write(LevelWarn, msg, ctx) }
func (l *lazyLogger) Error(msg string, ctx ...any)                 { l.write(LevelError, msg, ctx) }

func (l *lazyLogger) Crit(msg string, ctx ...any) {
	l.write(LevelCrit, msg, ctx)
	os.Exit(1)
}

func (l *lazyLogger) Write(level slog.Level, msg string, attrs ...any) {
	l.write(level, msg, attrs)
}

func (l *lazyLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return Root().Enabled(ctx, level)
}

func (l *lazyLogger) Handler() slog.Handler {
	return l.resolve().Handler()
}
