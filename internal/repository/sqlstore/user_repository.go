package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/user"
)

type UserRepository struct {
	q querier
}

func (r *UserRepository) Create(ctx context.Context, account user.User) (*user.User, error) {
	const query = `
		INSERT INTO users (email_address, password_digest, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	ts := now()
	account.CreatedAt, account.UpdatedAt = ts, ts
	if err := r.q.queryRow(ctx, query, account.EmailAddress, account.PasswordDigest, account.CreatedAt, account.UpdatedAt).Scan(&account.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewValidationError("email already registered", map[string]string{"email_address": "has already been taken"})
		}
		return nil, common.NewError(common.CodeInternal, "failed to create user", err)
	}
	return &account, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.get(ctx, `SELECT id, email_address, password_digest, created_at, updated_at FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.get(ctx, `SELECT id, email_address, password_digest, created_at, updated_at FROM users WHERE email_address = $1`, email)
}

func (r *UserRepository) get(ctx context.Context, query string, arg any) (*user.User, error) {
	var account user.User
	if err := r.q.queryRow(ctx, query, arg).Scan(&account.ID, &account.EmailAddress, &account.PasswordDigest, &account.CreatedAt, &account.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	return &account, nil
}

type SessionRepository struct {
	q querier
}

func (r *SessionRepository) Create(ctx context.Context, session user.Session) (*user.Session, error) {
	const query = `
		INSERT INTO sessions (user_id, token_hash, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	session.CreatedAt = now()
	if err := r.q.queryRow(ctx, query, session.UserID, session.TokenHash, session.IPAddress, session.UserAgent, session.CreatedAt).Scan(&session.ID); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create session", err)
	}
	return &session, nil
}

func (r *SessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*user.Session, error) {
	const query = `SELECT id, user_id, token_hash, ip_address, user_agent, created_at FROM sessions WHERE token_hash = $1`
	var session user.Session
	if err := r.q.queryRow(ctx, query, tokenHash).Scan(&session.ID, &session.UserID, &session.TokenHash, &session.IPAddress, &session.UserAgent, &session.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "session not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load session", err)
	}
	return &session, nil
}

func (r *SessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	if _, err := r.q.exec(ctx, `DELETE FROM sessions WHERE token_hash = $1`, tokenHash); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete session", err)
	}
	return nil
}

func (r *SessionRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) error {
	if _, err := r.q.exec(ctx, `DELETE FROM sessions WHERE created_at < $1`, cutoff.UTC()); err != nil {
		return common.NewError(common.CodeInternal, "failed to delete expired sessions", err)
	}
	return nil
}
