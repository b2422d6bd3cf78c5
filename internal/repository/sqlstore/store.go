package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"jobtracker/internal/app"
	"jobtracker/internal/common"
	"jobtracker/internal/database"
)

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// querier rebinds placeholders for the active dialect.
type querier struct {
	conn    dbtx
	dialect database.Dialect
}

func (q querier) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return q.conn.ExecContext(ctx, q.dialect.Rebind(query), args...)
}

func (q querier) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return q.conn.QueryContext(ctx, q.dialect.Rebind(query), args...)
}

func (q querier) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.conn.QueryRowContext(ctx, q.dialect.Rebind(query), args...)
}

// Store owns the pool and hands out repositories.
type Store struct {
	db      *sql.DB
	dialect database.Dialect
}

func New(db *sql.DB, dialect database.Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

// Repositories are bound to the pool; use Do for multi-statement writes.
func (s *Store) Repositories() app.Repositories {
	return repositories(querier{conn: s.db, dialect: s.dialect})
}

func (s *Store) Do(ctx context.Context, fn func(repos app.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(repositories(querier{conn: tx, dialect: s.dialect})); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return common.NewError(common.CodeInternal, "failed to commit transaction", err)
	}
	committed = true
	return nil
}

func repositories(q querier) app.Repositories {
	contacts := &ContactRepository{q: q}
	return app.Repositories{
		Companies:  &CompanyRepository{q: q},
		Contacts:   contacts,
		Jobs:       &JobRepository{q: q},
		Processes:  &ApplicationRepository{q: q},
		Interviews: &InterviewRepository{q: q},
		Messages:   &MessageRepository{q: q},
		Tasks:      &TaskRepository{q: q},
		Users:      &UserRepository{q: q},
		Sessions:   &SessionRepository{q: q},
		Calendar:   &CalendarRepository{q: q, contacts: contacts},
	}
}

func now() time.Time {
	return time.Now().UTC()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(code == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE"))
	}
	return false
}

func requireAffected(result sql.Result, notFound string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to read affected rows", err)
	}
	if affected == 0 {
		return common.NewError(common.CodeNotFound, notFound, nil)
	}
	return nil
}

// placeholders renders "$start, $start+1, ..." for n values.
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "$" + strconv.Itoa(start+i)
	}
	return strings.Join(parts, ", ")
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func nullInt(value *int) any {
	if value == nil {
		return nil
	}
	return int64(*value)
}

func nullInt64(value *int64) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullDate(value *common.Date) any {
	if value == nil {
		return nil
	}
	return value.String()
}

func intPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	v := int(value.Int64)
	return &v
}

func int64Ptr(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	v := value.Int64
	return &v
}
