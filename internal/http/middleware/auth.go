package middleware

import (
	"context"
	"net/http"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/user"
	"jobtracker/internal/http/response"
)

const SessionCookieName = "session_token"

type contextKey string

const contextUserKey contextKey = "current_user"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

type AuthMiddleware struct {
	auth      Authenticator
	loginPath string
}

func NewAuthMiddleware(auth Authenticator, loginPath string) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, loginPath: loginPath}
}

// Authenticate resolves the session cookie. Page loads without a valid
// session are redirected to the login page; everything else gets a 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			token = cookie.Value
		}
		account, err := m.auth.Authenticate(r.Context(), token)
		if err != nil {
			if common.Is(err, common.CodeUnauthorized) && r.Method == http.MethodGet && !response.WantsJSON(r) && m.loginPath != "" {
				http.Redirect(w, r, m.loginPath, http.StatusSeeOther)
				return
			}
			response.Error(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), account)))
	})
}

func WithUser(ctx context.Context, account *user.User) context.Context {
	return context.WithValue(ctx, contextUserKey, account)
}

func CurrentUser(ctx context.Context) (*user.User, bool) {
	account, ok := ctx.Value(contextUserKey).(*user.User)
	return account, ok && account != nil
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	account, ok := CurrentUser(ctx)
	if !ok {
		return 0, false
	}
	return account.ID, true
}
