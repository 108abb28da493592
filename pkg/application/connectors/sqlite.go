package connectors

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // embedded sqlite driver

	"poolpower/pkg/logx"
)

const sqliteDriverName = "sqlite"

func init() { //nolint:gochecknoinits
	// sqlx does not know the modernc driver name; without this Rebind and
	// named queries would leave '?' and ':name' placeholders untouched.
	sqlx.BindDriver(sqliteDriverName, sqlx.QUESTION)
}

// SQLite is an embedded database used when no Postgres DSN is configured and
// in tests. Path ":memory:" gives a private in-memory database.
type SQLite struct {
	value *sqlx.DB
	err   error
	Path  string
	init  sync.Once
}

func (s *SQLite) Client(ctx context.Context) (*sqlx.DB, error) {
	s.init.Do(func() {
		db, err := sqlx.ConnectContext(ctx, sqliteDriverName, s.dsn())
		if err != nil {
			s.err = fmt.Errorf("sqlx.ConnectContext(%s): %w", s.Path, err)
			return
		}

		// One connection: an in-memory database lives and dies with it, and
		// sqlite serializes writers anyway.
		db.SetMaxOpenConns(1)

		s.value = db

		logger(ctx).Info("sqlite opened", slog.String("path", s.Path))
	})

	return s.value, s.err
}

func (s *SQLite) Close(ctx context.Context) {
	if s.value == nil {
		return
	}

	if err := s.value.Close(); err != nil {
		logger(ctx).Error("sqliteClient.Close", logx.Error(err))
	}

	logger(ctx).Info("sqlite closed", slog.String("path", s.Path))
}

func (s *SQLite) dsn() string {
	if s.Path == ":memory:" {
		return s.Path
	}

	return "file:" + s.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}
