package orm

import (
	"context"
	"log/slog"
)

// SlogLogger adapts a *slog.Logger to the Logger interface. Queries are
// emitted at debug level.
type SlogLogger struct {
	L *slog.Logger
}

func (sl SlogLogger) Log(ctx context.Context, query string, args ...any) {
	sl.L.DebugContext(ctx, "query", slog.String("sql", query), slog.Any("args", args))
}
