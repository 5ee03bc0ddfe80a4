package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/lu-zhengda/termlanes/internal/store"
)

const keyActiveAccount = "active_account"

// GetActiveAccount returns the ID of the account the client last used.
func (s *DB) GetActiveAccount(ctx context.Context) (int64, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, keyActiveAccount,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("active account: %w", store.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get active account: %w", err)
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse active account %q: %w", value, err)
	}
	return id, nil
}

// SetActiveAccount records the account the client should open on.
func (s *DB) SetActiveAccount(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_state (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		keyActiveAccount, strconv.FormatInt(id, 10),
	)
	if err != nil {
		return fmt.Errorf("failed to set active account %d: %w", id, err)
	}
	return nil
}
