package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"jobtracker/internal/observability"
)

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := recorderFor(w)
		next.ServeHTTP(rec, r)

		attrs := []any{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.Status()),
			slog.Int("bytes", rec.bytes),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", observability.RequestIDFromContext(r.Context())),
		}
		if rec.err != nil {
			attrs = append(attrs, slog.String("error", rec.err.Error()))
		}
		switch {
		case rec.Status() >= http.StatusInternalServerError:
			slog.Error("request failed", attrs...)
		default:
			slog.Info("request", attrs...)
		}
	})
}
