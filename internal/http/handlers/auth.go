package handlers

import (
	"net/http"
	"time"

	"jobtracker/internal/app"
	"jobtracker/internal/http/middleware"
	"jobtracker/internal/http/response"
)

type SessionHandler struct {
	auth         *app.AuthService
	secureCookie bool
}

func NewSessionHandler(auth *app.AuthService, secureCookie bool) *SessionHandler {
	return &SessionHandler{auth: auth, secureCookie: secureCookie}
}

type sessionRequest struct {
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

func (h *SessionHandler) New(w http.ResponseWriter, r *http.Request) {
	response.Render(w, r, "Sessions/New", map[string]any{})
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.auth.Login(r.Context(), req.EmailAddress, req.Password, middleware.ClientIP(r), r.UserAgent())
	if err != nil {
		response.Error(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	response.JSON(w, http.StatusCreated, map[string]any{"user": result.User})
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			response.Error(w, err)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	response.NoContent(w)
}
