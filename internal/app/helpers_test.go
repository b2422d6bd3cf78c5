package app_test

import (
	"context"
	"testing"
	"time"

	"jobtracker/internal/app"
	"jobtracker/internal/common"
	"jobtracker/internal/domain/user"
	"jobtracker/internal/repository/sqlstore"
	"jobtracker/internal/repository/sqlstore/sqlstoretest"
)

var testNow = time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)

func fixedClock() app.Clock {
	return app.Clock{Now: func() time.Time { return testNow }, Location: time.UTC}
}

func today() common.Date {
	return common.DateOf(testNow)
}

func newStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	return sqlstoretest.New(t)
}

func createUser(t *testing.T, store app.Store, email string) *user.User {
	t.Helper()
	account, err := app.NewAuthService(store, nil, time.Hour).CreateUser(context.Background(), email, "correct horse")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return account
}

func expectCode(t *testing.T, err error, code common.Code) *common.Error {
	t.Helper()
	appErr, ok := common.As(err)
	if !ok {
		t.Fatalf("expected %s error, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected %s error, got %s: %v", code, appErr.Code, err)
	}
	return appErr
}
