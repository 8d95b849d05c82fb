package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/sessionstore"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Store is the SQLite-backed session store.
type Store struct {
	db  *sql.DB
	log *logger.Logger
}

// Open opens (or creates) the session database and applies migrations.
func Open(path string) (*Store, error) {
	log := logger.Default().WithPrefix("sessionstore")

	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL", path)
	log.Info("opening session database: %s", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Error("failed to open session database: %v", err)
		return nil, err
	}
	db.SetMaxOpenConns(1) // single writer

	s := &Store{db: db, log: log}

	if err := s.applyMigrations(context.Background()); err != nil {
		log.Error("failed to apply migrations: %v", err)
		db.Close()
		return nil, err
	}

	log.Info("session database ready")
	return s, nil
}

func (s *Store) applyMigrations(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at DATETIME DEFAULT CURRENT_TIMESTAMP)`); err != nil {
		return err
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		version := entry.Name()
		var n int
		err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version).Scan(&n)
		if err != nil {
			return err
		}
		if n > 0 {
			s.log.Debug("migration %s already applied, skipping", version)
			continue
		}
		sqlBytes, err := migrationsFS.ReadFile("migrations/" + version)
		if err != nil {
			return err
		}
		if _, err := s.db.ExecContext(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("migration %s: %w", version, err)
		}
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return err
		}
		s.log.Info("applied migration %s", version)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Create(ctx context.Context, session sessionstore.Session) error {
	log := logger.FromContext(ctx).WithPrefix("sessionstore")
	log.Debug("creating session: user_id=%d", session.UserID)

	query, args, err := sqlBuilder.
		Insert("sessions").
		Columns("id", "user_id", "email", "bearer_token", "created_at", "expires_at").
		Values(session.ID, session.UserID, session.Email, session.BearerToken, session.CreatedAt, session.ExpiresAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to create session: %v", err)
		return err
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*sessionstore.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("sessionstore")

	query, args, err := sqlBuilder.
		Select("id", "user_id", "email", "bearer_token", "created_at", "expires_at").
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var sess sessionstore.Session
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&sess.ID, &sess.UserID, &sess.Email, &sess.BearerToken, &sess.CreatedAt, &sess.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("session not found")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	return &sess, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("sessionstore")
	log.Debug("deleting session")

	query, args, err := sqlBuilder.Delete("sessions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to delete session: %v", err)
		return err
	}
	return nil
}

func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("sessionstore")

	query, args, err := sqlBuilder.Delete("sessions").Where(squirrel.LtOrEq{"expires_at": now}).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete expired sessions: %v", err)
		return 0, err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		log.Info("deleted %d expired sessions", n)
	}
	return n, nil
}
