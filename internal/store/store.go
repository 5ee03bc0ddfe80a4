package store

import (
	"context"
	"errors"
	"time"

	"github.com/lu-zhengda/termlanes/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for the application.
type Store interface {
	// Accounts
	SaveAccount(ctx context.Context, rec *AccountRecord) error
	GetAccount(ctx context.Context, id int64) (*AccountRecord, error)
	ListAccounts(ctx context.Context) ([]AccountRecord, error)
	DeleteAccount(ctx context.Context, id int64) error

	// Active account selection
	GetActiveAccount(ctx context.Context) (int64, error)
	SetActiveAccount(ctx context.Context, id int64) error

	// Lifecycle
	Close() error
}

// AccountRecord is a persisted account. Descriptor holds the account's JSON
// encoding; the other fields are copies kept for listing and lookups.
type AccountRecord struct {
	ID         int64
	ScreenName string
	Network    domain.SocialNetType
	Descriptor []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Credentials is an account's OAuth token pair. Secret is empty for OAuth2
// networks.
type Credentials struct {
	Token  string `json:"token"`
	Secret string `json:"secret,omitempty"`
}

// CredentialStore keeps OAuth credentials outside the database.
type CredentialStore interface {
	SaveCredentials(accountID int64, creds Credentials) error
	LoadCredentials(accountID int64) (Credentials, error)
	DeleteCredentials(accountID int64) error
}
