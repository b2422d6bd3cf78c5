package app

import (
	"context"
	"time"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/user"
	"jobtracker/internal/security"
)

type AuthService struct {
	store      Store
	logger     Logger
	sessionTTL time.Duration
	now        func() time.Time
}

func NewAuthService(store Store, logger Logger, sessionTTL time.Duration) *AuthService {
	return &AuthService{store: store, logger: logger, sessionTTL: sessionTTL, now: time.Now}
}

// LoginResult carries the raw session token; only its hash is persisted.
type LoginResult struct {
	Token     string
	User      *user.User
	ExpiresAt time.Time
}

func (s *AuthService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (*LoginResult, error) {
	repos := s.store.Repositories()
	account, err := repos.Users.FindByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, errInvalidCredentials()
		}
		return nil, err
	}
	ok, err := security.CheckPassword(account.PasswordDigest, password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to check password", err)
	}
	if !ok {
		return nil, errInvalidCredentials()
	}
	token, err := security.NewSessionToken()
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to generate session token", err)
	}
	session, err := repos.Sessions.Create(ctx, user.Session{
		UserID:    account.ID,
		TokenHash: security.HashToken(token),
		IPAddress: ipAddress,
		UserAgent: truncate(userAgent, common.MaxStringLength),
	})
	if err != nil {
		return nil, err
	}
	s.logInfo("session started", "user_id", account.ID)
	return &LoginResult{Token: token, User: account, ExpiresAt: session.CreatedAt.Add(s.sessionTTL)}, nil
}

// Authenticate resolves a session token to its user. Expired sessions are removed.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, common.NewError(common.CodeUnauthorized, "authentication required", nil)
	}
	repos := s.store.Repositories()
	hash := security.HashToken(token)
	session, err := repos.Sessions.FindByTokenHash(ctx, hash)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "authentication required", nil)
		}
		return nil, err
	}
	if s.sessionTTL > 0 && s.now().After(session.CreatedAt.Add(s.sessionTTL)) {
		if err := repos.Sessions.DeleteByTokenHash(ctx, hash); err != nil {
			s.logError("failed to delete expired session", "error", err.Error())
		}
		return nil, common.NewError(common.CodeUnauthorized, "session expired", nil)
	}
	return repos.Users.GetByID(ctx, session.UserID)
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Repositories().Sessions.DeleteByTokenHash(ctx, security.HashToken(token))
}

// PurgeExpired drops sessions older than the TTL.
func (s *AuthService) PurgeExpired(ctx context.Context) error {
	if s.sessionTTL <= 0 {
		return nil
	}
	return s.store.Repositories().Sessions.DeleteCreatedBefore(ctx, s.now().Add(-s.sessionTTL))
}

func (s *AuthService) CreateUser(ctx context.Context, email, password string) (*user.User, error) {
	if len(password) < security.MinPasswordLength {
		return nil, common.NewValidationError("invalid password", map[string]string{"password": "is too short (minimum is 8 characters)"})
	}
	digest, err := security.HashPassword(password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	account := user.User{EmailAddress: user.NormalizeEmail(email), PasswordDigest: digest}
	if err := account.Validate(); err != nil {
		return nil, err
	}
	return s.store.Repositories().Users.Create(ctx, account)
}

func errInvalidCredentials() error {
	return common.NewError(common.CodeUnauthorized, "try another email address or password", nil)
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}

func (s *AuthService) logInfo(msg string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg, args...)
}

func (s *AuthService) logError(msg string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Error(msg, args...)
}
