package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"jobtracker/internal/common"
	"jobtracker/internal/http/response"
	"jobtracker/internal/observability"
)

func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}
			slog.Error("panic recovered",
				slog.String("panic", fmt.Sprint(recovered)),
				slog.String("stack", string(debug.Stack())),
				slog.String("request_id", observability.RequestIDFromContext(r.Context())),
			)
			response.Error(w, common.NewError(common.CodeInternal, "internal error", fmt.Errorf("panic: %v", recovered)))
		}()
		next.ServeHTTP(w, r)
	})
}
