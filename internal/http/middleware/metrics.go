package middleware

import (
	"net/http"

	"jobtracker/internal/http/metrics"
)

func Metrics(collector *metrics.Collector) Middleware {
	return func(next http.Handler) http.Handler {
		if collector == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := recorderFor(w)
			next.ServeHTTP(rec, r)
			collector.IncRequests()
			switch status := rec.Status(); {
			case status >= http.StatusInternalServerError:
				collector.IncErrors()
			case status == http.StatusUnprocessableEntity:
				collector.IncValidationFailures()
			}
		})
	}
}
