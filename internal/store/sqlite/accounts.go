package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/lu-zhengda/termlanes/internal/store"
)

// SaveAccount inserts the account or replaces its descriptor.
func (s *DB) SaveAccount(ctx context.Context, rec *store.AccountRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, screen_name, social_net_type, descriptor)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			screen_name     = excluded.screen_name,
			social_net_type = excluded.social_net_type,
			descriptor      = excluded.descriptor,
			updated_at      = CURRENT_TIMESTAMP`,
		rec.ID, rec.ScreenName, string(rec.Network), string(rec.Descriptor),
	)
	if err != nil {
		return fmt.Errorf("failed to save account %d: %w", rec.ID, err)
	}
	return nil
}

func (s *DB) GetAccount(ctx context.Context, id int64) (*store.AccountRecord, error) {
	var (
		r          store.AccountRecord
		descriptor string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, screen_name, social_net_type, descriptor, created_at, updated_at
		 FROM accounts WHERE id = ?`, id,
	).Scan(&r.ID, &r.ScreenName, &r.Network, &descriptor, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", id, err)
	}
	r.Descriptor = []byte(descriptor)
	return &r, nil
}

func (s *DB) ListAccounts(ctx context.Context) ([]store.AccountRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, screen_name, social_net_type, descriptor, created_at, updated_at
		 FROM accounts ORDER BY created_at, seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []store.AccountRecord
	for rows.Next() {
		var (
			r          store.AccountRecord
			descriptor string
		)
		if err := rows.Scan(&r.ID, &r.ScreenName, &r.Network, &descriptor, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		r.Descriptor = []byte(descriptor)
		accounts = append(accounts, r)
	}
	return accounts, rows.Err()
}

// DeleteAccount removes the account and clears it as the active account.
func (s *DB) DeleteAccount(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("account %d: %w", id, store.ErrNotFound)
	}
	_, err = s.db.ExecContext(ctx,
		`DELETE FROM app_state WHERE key = ? AND value = ?`, keyActiveAccount, strconv.FormatInt(id, 10))
	if err != nil {
		return fmt.Errorf("failed to clear active account: %w", err)
	}
	return nil
}
