package logging

import (
	"context"
	"time"
	"unicode/utf8"
)

// Span emits a start line and returns a context carrying attrs plus a
// cleanup function that emits the end line with err and elapsed seconds.
//
//	ctx, cleanup := logging.Span(ctx, "AWS:NetworkList", "driver", "AWS.NetworkList")
//	defer func() { cleanup(err) }()
//
// Messages are "<name>:START", "<name>:END:OK" and "<name>:END:FAILED".
// Failures log at WARN; the caller decides whether the error is fatal.
func Span(ctx context.Context, name string, attrs ...any) (context.Context, func(err error)) {
	startAt := time.Now()
	logger := FromContext(ctx).With(attrs...)
	ctx = WithLogger(ctx, logger)
	logger.Info(ctx, name+":START")

	return ctx, func(err error) {
		elapsed := time.Since(startAt).Seconds()
		if err == nil {
			logger.Info(ctx, name+":END:OK", "elapsed", elapsed)
			return
		}
		logger.Warn(ctx, name+":END:FAILED", "err", Truncate(err.Error(), 32), "elapsed", elapsed)
	}
}

// Truncate shortens s to at most n bytes and appends "..." when it was cut.
// The cut never splits a UTF-8 sequence.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
