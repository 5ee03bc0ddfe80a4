package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/zalando/go-keyring"
)

const serviceName = "termlanes"

// KeyringCredentialStore persists OAuth credentials in the OS keyring
// (macOS Keychain, Windows Credential Manager, or Linux Secret Service).
type KeyringCredentialStore struct{}

// NewKeyringCredentialStore returns a new KeyringCredentialStore.
func NewKeyringCredentialStore() *KeyringCredentialStore {
	return &KeyringCredentialStore{}
}

// SaveCredentials stores creds in the OS keyring under the account ID.
func (k *KeyringCredentialStore) SaveCredentials(accountID int64, creds Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	if err := keyring.Set(serviceName, keyringUser(accountID), string(data)); err != nil {
		return fmt.Errorf("failed to save credentials to keyring: %w", err)
	}
	return nil
}

// LoadCredentials retrieves the credentials for the given account ID from the OS keyring.
func (k *KeyringCredentialStore) LoadCredentials(accountID int64) (Credentials, error) {
	var creds Credentials
	data, err := keyring.Get(serviceName, keyringUser(accountID))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return creds, fmt.Errorf("credentials for account %d: %w", accountID, ErrNotFound)
		}
		return creds, fmt.Errorf("failed to load credentials from keyring: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &creds); err != nil {
		return creds, fmt.Errorf("failed to unmarshal credentials: %w", err)
	}
	return creds, nil
}

// DeleteCredentials removes the credentials for the given account ID from the OS keyring.
func (k *KeyringCredentialStore) DeleteCredentials(accountID int64) error {
	if err := keyring.Delete(serviceName, keyringUser(accountID)); err != nil {
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

func keyringUser(accountID int64) string {
	return strconv.FormatInt(accountID, 10)
}
