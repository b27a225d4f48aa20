// Package sqlite provides a SQLite-backed engine store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/radicex/event"
	"github.com/louisbranch/radicex/event/filter"
	"github.com/louisbranch/radicex/internal/sqlitemigrate"
	"github.com/louisbranch/radicex/ledger"
	"github.com/louisbranch/radicex/storage"
	"github.com/louisbranch/radicex/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists engine state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Apply atomically applies one operation's mutation in a single transaction.
func (s *Store) Apply(ctx context.Context, m storage.Mutation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin apply: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if m.VaultDelta != 0 {
		res, err := tx.ExecContext(
			ctx,
			`UPDATE vault SET balance = balance + ?
			 WHERE id = 1 AND balance + ? >= 0`,
			int64(m.VaultDelta),
			int64(m.VaultDelta),
		)
		if err != nil {
			return fmt.Errorf("update vault balance: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update vault balance: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("vault balance cannot absorb delta %s", m.VaultDelta)
		}
	}

	if m.NextTicketID != 0 {
		if _, err := tx.ExecContext(
			ctx,
			`UPDATE counters SET value = ? WHERE name = 'next_ticket_id'`,
			int64(m.NextTicketID),
		); err != nil {
			return fmt.Errorf("update ticket counter: %w", err)
		}
	}

	if len(m.GrantKey) > 0 {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO admin_keys (id, verification_key) VALUES (1, ?)
			 ON CONFLICT(id) DO UPDATE SET verification_key = excluded.verification_key`,
			m.GrantKey,
		); err != nil {
			return fmt.Errorf("record grant key: %w", err)
		}
	}

	for _, record := range m.Put {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO tickets (id, level, last_throw) VALUES (?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   level = excluded.level,
			   last_throw = excluded.last_throw`,
			int64(record.ID),
			record.Level,
			record.LastThrow,
		); err != nil {
			return fmt.Errorf("put ticket %d: %w", record.ID, err)
		}
	}

	for _, id := range m.Delete {
		if _, err := tx.ExecContext(
			ctx,
			`DELETE FROM tickets WHERE id = ?`,
			int64(id),
		); err != nil {
			return fmt.Errorf("delete ticket %d: %w", id, err)
		}
	}

	for _, e := range m.Events {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO events (event_type, ticket_id, level, amount, description, timestamp)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			string(e.Type),
			int64(e.TicketID),
			e.Level,
			int64(e.Amount),
			e.Description,
			toMillis(e.Timestamp),
		); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply: %w", err)
	}
	return nil
}

// Snapshot returns the persisted engine state with tickets ordered by id.
func (s *Store) Snapshot(ctx context.Context) (storage.State, error) {
	if err := ctx.Err(); err != nil {
		return storage.State{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.State{}, fmt.Errorf("storage is not configured")
	}

	var state storage.State

	var balance int64
	row := s.sqlDB.QueryRowContext(ctx, `SELECT balance FROM vault WHERE id = 1`)
	if err := row.Scan(&balance); err != nil {
		return storage.State{}, fmt.Errorf("read vault balance: %w", err)
	}
	state.VaultBalance = ledger.Amount(balance)

	var next int64
	row = s.sqlDB.QueryRowContext(ctx, `SELECT value FROM counters WHERE name = 'next_ticket_id'`)
	if err := row.Scan(&next); err != nil {
		return storage.State{}, fmt.Errorf("read ticket counter: %w", err)
	}
	state.NextTicketID = uint64(next)

	var key []byte
	row = s.sqlDB.QueryRowContext(ctx, `SELECT verification_key FROM admin_keys WHERE id = 1`)
	if err := row.Scan(&key); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return storage.State{}, fmt.Errorf("read grant key: %w", err)
		}
	} else {
		state.GrantKey = key
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, level, last_throw FROM tickets ORDER BY id ASC`,
	)
	if err != nil {
		return storage.State{}, fmt.Errorf("read tickets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			record storage.TicketRecord
			id     int64
		)
		if err := rows.Scan(&id, &record.Level, &record.LastThrow); err != nil {
			return storage.State{}, fmt.Errorf("scan ticket: %w", err)
		}
		record.ID = uint64(id)
		state.Tickets = append(state.Tickets, record)
	}
	if err := rows.Err(); err != nil {
		return storage.State{}, fmt.Errorf("read tickets: %w", err)
	}

	return state, nil
}

// ListEvents returns journal entries matching an AIP-160 filter expression.
func (s *Store) ListEvents(ctx context.Context, filterStr string) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	cond, err := filter.ParseEventFilter(filterStr)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, event_type, ticket_id, level, amount, description, timestamp FROM events`
	if cond.Clause != "" {
		query += " WHERE " + cond.Clause
	}
	query += " ORDER BY id ASC"

	rows, err := s.sqlDB.QueryContext(ctx, query, cond.Params...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []event.Event
	for rows.Next() {
		var (
			e         event.Event
			id        int64
			eventType string
			ticketID  int64
			amount    int64
			ts        int64
		)
		if err := rows.Scan(&id, &eventType, &ticketID, &e.Level, &amount, &e.Description, &ts); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.ID = uint64(id)
		e.Type = event.Type(eventType)
		e.TicketID = uint64(ticketID)
		e.Amount = ledger.Amount(amount)
		e.Timestamp = fromMillis(ts)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return out, nil
}

var _ storage.Store = (*Store)(nil)
