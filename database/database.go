// Package database is the server-side session store. The upstream bearer
// token never reaches the browser: the cookie only names a session row kept
// here.
package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/abellini/survey-front/config"
)

var ErrNoSession = errors.New("no such session")

type Session struct {
	ID     string
	UserID string
	Email  string
	Name   string
	Token  string
	Expiry time.Time
}

func (s Session) Expired() bool {
	return time.Now().After(s.Expiry)
}

type Store struct {
	db *sql.DB
}

func Open(cfg config.Config) (*Store, error) {
	db, err := sql.Open("sqlite3", cfg.DBUrl)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		db.Close()
		return nil, err
	}

	// db tuning options
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	err = migrateDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) CreateSession(ctx context.Context, sess Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (id, user_id, email, name, token, expiry)
		VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.UserID,
		sess.Email,
		sess.Name,
		sess.Token,
		sess.Expiry,
	)
	return errors.Wrap(err, "insert session")
}

func (s *Store) GetSession(ctx context.Context, id string) (sess Session, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT id, user_id, email, name, token, expiry
		FROM session
		WHERE id = ?`,
		id,
	).Scan(&sess.ID, &sess.UserID, &sess.Email, &sess.Name, &sess.Token, &sess.Expiry)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNoSession
	}
	return sess, errors.Wrap(err, "select session")
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE id = ?", id)
	return errors.Wrap(err, "delete session")
}

// DeleteExpired sweeps sessions past their expiry; run periodically.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE expiry < ?", time.Now())
	if err != nil {
		return 0, errors.Wrap(err, "delete expired sessions")
	}
	return res.RowsAffected()
}
