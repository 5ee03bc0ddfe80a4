package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lu-zhengda/termlanes/internal/account"
	"github.com/lu-zhengda/termlanes/internal/domain"
	"github.com/lu-zhengda/termlanes/internal/provider"
	"github.com/lu-zhengda/termlanes/internal/store"
)

// ErrNoAccounts is returned when no account has been added yet.
var ErrNoAccounts = errors.New("no accounts configured; run 'termlanes account add' first")

// ProviderFactory creates a SocialProvider for an account's network.
type ProviderFactory func(network domain.SocialNetType, creds store.Credentials) (provider.SocialProvider, error)

// AccountService loads, persists and refreshes accounts.
//
// When a CredentialStore is configured, OAuth credentials live there and the
// descriptor written to the Store carries an empty token.
type AccountService struct {
	store store.Store
	creds store.CredentialStore
	opts  []account.Option
}

// NewAccountService creates an AccountService. creds may be nil to keep
// credentials inside the stored descriptor.
func NewAccountService(s store.Store, creds store.CredentialStore, opts ...account.Option) *AccountService {
	return &AccountService{store: s, creds: creds, opts: opts}
}

func logFor(acct *account.Account) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"account": acct.ScreenName(),
		"network": acct.SocialNetType(),
	})
}

// CredentialsOf returns the account's OAuth credentials.
func CredentialsOf(acct *account.Account) store.Credentials {
	return store.Credentials{Token: acct.OAuthToken(), Secret: acct.OAuthSecret()}
}

// Add verifies creds against p, stores the resulting account and makes it
// the active account.
func (s *AccountService) Add(ctx context.Context, p provider.SocialProvider, creds store.Credentials) (*account.Account, error) {
	user, err := p.VerifyCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to verify credentials: %w", err)
	}
	acct := account.New(*user, creds.Token, creds.Secret, p.Network(), s.opts...)
	if err := s.Save(ctx, acct); err != nil {
		return nil, err
	}
	if err := s.store.SetActiveAccount(ctx, acct.ID()); err != nil {
		return nil, fmt.Errorf("failed to activate account: %w", err)
	}
	logFor(acct).Info("account added")
	return acct, nil
}

// Save persists acct.
func (s *AccountService) Save(ctx context.Context, acct *account.Account) error {
	data, err := acct.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode account %d: %w", acct.ID(), err)
	}
	if s.creds != nil {
		if err := s.creds.SaveCredentials(acct.ID(), CredentialsOf(acct)); err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}
		if data, err = stripCredentials(data); err != nil {
			return fmt.Errorf("failed to encode account %d: %w", acct.ID(), err)
		}
	}
	rec := &store.AccountRecord{
		ID:         acct.ID(),
		ScreenName: acct.ScreenName(),
		Network:    acct.SocialNetType(),
		Descriptor: data,
	}
	if err := s.store.SaveAccount(ctx, rec); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	logFor(acct).Debug("account saved")
	return nil
}

// stripCredentials blanks the token and drops the secret from an encoded
// account. The token key stays because decoding requires it.
func stripCredentials(data []byte) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	fields["oAuthToken"] = json.RawMessage(`""`)
	delete(fields, "oAuthSecret")
	return json.Marshal(fields)
}

// Load reads the account with the given id.
func (s *AccountService) Load(ctx context.Context, id int64) (*account.Account, error) {
	rec, err := s.store.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.decode(rec)
}

func (s *AccountService) decode(rec *store.AccountRecord) (*account.Account, error) {
	acct, err := account.Parse(rec.Descriptor, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("account %d: %w", rec.ID, err)
	}
	if s.creds == nil {
		return acct, nil
	}
	creds, err := s.creds.LoadCredentials(rec.ID)
	switch {
	case err == nil:
		acct.SetCredentials(creds.Token, creds.Secret)
	case errors.Is(err, store.ErrNotFound) && acct.OAuthToken() != "":
		// Written before credentials moved to the keyring.
		logFor(acct).Warn("credentials missing from keyring, using stored descriptor")
	default:
		return nil, fmt.Errorf("account %d: %w", rec.ID, err)
	}
	return acct, nil
}

// LoadAll reads every stored account in the order they were added.
func (s *AccountService) LoadAll(ctx context.Context) ([]*account.Account, error) {
	recs, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	accounts := make([]*account.Account, 0, len(recs))
	for i := range recs {
		acct, err := s.decode(&recs[i])
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// Active returns the active account, falling back to the first stored one.
func (s *AccountService) Active(ctx context.Context) (*account.Account, error) {
	id, err := s.store.GetActiveAccount(ctx)
	if err == nil {
		acct, err := s.Load(ctx, id)
		if err == nil {
			return acct, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	recs, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if len(recs) == 0 {
		return nil, ErrNoAccounts
	}
	return s.decode(&recs[0])
}

// Activate makes id the account the client opens on.
func (s *AccountService) Activate(ctx context.Context, id int64) error {
	if _, err := s.store.GetAccount(ctx, id); err != nil {
		return err
	}
	return s.store.SetActiveAccount(ctx, id)
}

// Find looks an account up by numeric id or screen name.
func (s *AccountService) Find(ctx context.Context, ref string) (*account.Account, error) {
	accounts, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, acct := range accounts {
		if acct.ScreenName() == ref || fmt.Sprint(acct.ID()) == ref {
			return acct, nil
		}
	}
	return nil, fmt.Errorf("account %s: %w", ref, store.ErrNotFound)
}

// Remove deletes the account and its stored credentials.
func (s *AccountService) Remove(ctx context.Context, acct *account.Account) error {
	if err := s.store.DeleteAccount(ctx, acct.ID()); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if s.creds != nil {
		if err := s.creds.DeleteCredentials(acct.ID()); err != nil {
			// Non-fatal: credentials may already be gone.
			logFor(acct).WithError(err).Warn("could not remove credentials")
		}
	}
	logFor(acct).Info("account removed")
	return nil
}

// RefreshLists fetches the account's lists from p when the account asks for
// it (or force is set) and persists the account if its lanes changed.
func (s *AccountService) RefreshLists(ctx context.Context, acct *account.Account, p provider.SocialProvider, force bool) (bool, error) {
	if !force && !acct.ShouldRefreshLists() {
		return false, nil
	}
	lists, err := p.ListLists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to fetch lists: %w", err)
	}
	return s.ApplyLists(ctx, acct, lists)
}

// ApplyLists updates the account's list memberships and persists the account
// if its lanes changed.
func (s *AccountService) ApplyLists(ctx context.Context, acct *account.Account, lists []domain.SocialList) (bool, error) {
	changed := acct.UpdateLists(lists)
	logFor(acct).WithField("lists", len(lists)).Infof("lists refreshed (changed=%t)", changed)
	if !changed {
		return false, nil
	}
	if err := s.Save(ctx, acct); err != nil {
		return true, err
	}
	return true, nil
}

// SetCurrentLane records the displayed lane index the user is on.
func (s *AccountService) SetCurrentLane(ctx context.Context, acct *account.Account, index int) error {
	if index < 0 || index >= acct.DisplayedLaneCount() {
		return fmt.Errorf("lane index %d out of range [0, %d)", index, acct.DisplayedLaneCount())
	}
	acct.SetCurrentLaneIndex(index)
	return s.Save(ctx, acct)
}

// SetLaneDisplayed shows or hides a lane and persists the change.
func (s *AccountService) SetLaneDisplayed(ctx context.Context, acct *account.Account, title string, display bool) error {
	if err := acct.SetLaneDisplayed(title, display); err != nil {
		return fmt.Errorf("lane %q: %w", title, err)
	}
	return s.Save(ctx, acct)
}

// SetListLaneDisplayed shows or hides the lane of list listID and persists
// the change.
func (s *AccountService) SetListLaneDisplayed(ctx context.Context, acct *account.Account, listID int64, display bool) error {
	if err := acct.SetListLaneDisplayed(listID, display); err != nil {
		return fmt.Errorf("list %d: %w", listID, err)
	}
	return s.Save(ctx, acct)
}

// LoadProfileImage fetches the account's profile image in the background.
// done, if non-nil, is called once the fetch finishes.
func (s *AccountService) LoadProfileImage(ctx context.Context, acct *account.Account, p provider.SocialProvider, f account.ImageFetcher, done func(error)) {
	url := p.ProfileImageURL(acct.ScreenName())
	acct.LoadProfileImage(ctx, f, url, func(err error) {
		if err != nil && !errors.Is(err, account.ErrProfileImagesDisabled) {
			logFor(acct).WithError(err).Warn("failed to fetch profile image")
		}
		if done != nil {
			done(err)
		}
	})
}
