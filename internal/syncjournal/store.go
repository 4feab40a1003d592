package syncjournal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"

	"github.com/devinschumacher/devinschumacher.com/internal/crm"
)

const defaultListLimit = 50

// Store persists sync attempts in SQLite. It satisfies crm.Journal.
type Store struct {
	db   *bun.DB
	repo repository.Repository[*Entry]
	now  func() time.Time
}

// Open connects to the journal database at dsn and ensures the schema
// exists. Use "file::memory:?cache=shared" for an in-memory journal.
func Open(ctx context.Context, dsn string) (*Store, error) {
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("syncjournal: open %s: %w", dsn, err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	store, err := New(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an existing bun handle and ensures the schema exists.
func New(ctx context.Context, db *bun.DB) (*Store, error) {
	if _, err := db.NewCreateTable().Model((*Entry)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, fmt.Errorf("syncjournal: create schema: %w", err)
	}
	return &Store{
		db:   db,
		repo: newEntryRepository(db),
		now:  time.Now,
	}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one sync attempt.
func (s *Store) Record(ctx context.Context, attempt crm.SyncAttempt) error {
	entry := &Entry{
		ID:        uuid.New(),
		SessionID: attempt.SessionID,
		Email:     attempt.Email,
		ContactID: attempt.ContactID,
		Created:   attempt.Created,
		Succeeded: attempt.Succeeded,
		Error:     attempt.Error,
		CreatedAt: s.now().UTC(),
	}
	if _, err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("syncjournal: record attempt for %s: %w", attempt.SessionID, err)
	}
	return nil
}

// Recent lists the newest attempts, newest first. limit <= 0 uses the
// default page size.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	entries, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at DESC")
		}),
		repository.SelectPaginate(limit, 0),
	)
	if err != nil {
		return nil, fmt.Errorf("syncjournal: list attempts: %w", err)
	}
	return entries, nil
}

// BySession lists every attempt for one session, oldest first.
func (s *Store) BySession(ctx context.Context, sessionID string) ([]*Entry, error) {
	entries, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.session_id = ?", sessionID).
				OrderExpr("?TableAlias.created_at ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("syncjournal: list attempts for %s: %w", sessionID, err)
	}
	return entries, nil
}
