package session

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/memomap/internal/client/migrations"
	"github.com/dmitrijs2005/memomap/internal/client/models"
	"github.com/dmitrijs2005/memomap/internal/dbx"
	"github.com/dmitrijs2005/memomap/internal/filex"

	_ "modernc.org/sqlite"
)

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// gooseUpContext is a seam for testing migration failures.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations brings the session schema up to date.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate session db: %w", err)
	}
	return nil
}

// SQLiteStore keeps the session in a SQLite file.
type SQLiteStore struct {
	db      *sql.DB
	writeMu sync.Mutex
	hub     *hub
}

// Open opens (creating if needed) the session database at path and loads
// the persisted state.
func Open(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if _, err := filex.EnsureParentDir(path); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	// a single connection keeps ":memory:" databases alive and serialises writers
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	initial, err := load(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, hub: newHub(initial)}, nil
}

func (s *SQLiteStore) Current(ctx context.Context) (models.SessionState, error) {
	return load(ctx, s.db)
}

func (s *SQLiteStore) Watch(ctx context.Context) <-chan models.SessionState {
	return s.hub.watch(ctx)
}

// Save writes every given key in one transaction and publishes the merged
// state only after the commit.
func (s *SQLiteStore) Save(ctx context.Context, u models.SessionUpdate) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.hub.current().Apply(u)

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if u.Token != nil {
			if err := set(ctx, tx, KeyToken, *u.Token); err != nil {
				return err
			}
		}
		if u.Username != nil {
			if err := set(ctx, tx, KeyUsername, *u.Username); err != nil {
				return err
			}
		}
		if u.UserID != nil {
			if err := set(ctx, tx, KeyUserID, strconv.Itoa(*u.UserID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.hub.publish(next)
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.Save(ctx, models.FullUpdate(models.DefaultSession()))
}

func (s *SQLiteStore) Close() error {
	s.hub.close()
	return s.db.Close()
}

func set(ctx context.Context, db dbx.DBTX, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

// load reads the persisted keys over the defaults. A malformed id reads as
// the default id.
func load(ctx context.Context, db dbx.DBTX) (models.SessionState, error) {
	state := models.DefaultSession()

	rows, err := db.QueryContext(ctx, `SELECT key, value FROM session`)
	if err != nil {
		return state, fmt.Errorf("failed to read session: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return state, fmt.Errorf("failed to scan session row: %w", err)
		}
		switch key {
		case KeyToken:
			state.Token = value
		case KeyUsername:
			state.Username = value
		case KeyUserID:
			if id, err := strconv.Atoi(value); err == nil {
				state.UserID = id
			}
		}
	}
	if err := rows.Err(); err != nil {
		return state, fmt.Errorf("failed to iterate session rows: %w", err)
	}

	return state, nil
}
