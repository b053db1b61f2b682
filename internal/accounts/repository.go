package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gamingtechpro/storefront-backend/pkg/errors"
	"github.com/gamingtechpro/storefront-backend/pkg/kvstore"
)

// activityLogLimit caps the per-account activity log; older entries are
// dropped from the front.
const activityLogLimit = 50

const recordsVersion = 1

// records is the persisted shape of the whole account list. The list
// lives under a single key and is rewritten on every change, the same
// way the carts persist their snapshots.
type records struct {
	Version  int       `json:"version"`
	Accounts []Account `json:"accounts"`
}

// Repository stores accounts as a single serialized list.
type Repository struct {
	mu sync.Mutex
	kv kvstore.Store
}

func NewRepository(kv kvstore.Store) (*Repository, error) {
	if kv == nil {
		return nil, fmt.Errorf("accounts: kv store is required")
	}
	return &Repository{kv: kv}, nil
}

// FindByEmail scans the stored list for a case-insensitive email match.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(email))
	for _, account := range list {
		if strings.ToLower(account.Email) == needle {
			found := account
			return &found, nil
		}
	}
	return nil, errors.New(errors.CodeNotFound, "account not found")
}

// FindByID scans the stored list for an exact id match.
func (r *Repository) FindByID(ctx context.Context, accountID string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, account := range list {
		if account.ID == accountID {
			found := account
			return &found, nil
		}
	}
	return nil, errors.New(errors.CodeNotFound, "account not found")
}

// Append adds the account and rewrites the whole list.
func (r *Repository) Append(ctx context.Context, account Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.store(ctx, append(list, account))
}

// RecordLastLogin stamps the account's most recent successful login.
func (r *Repository) RecordLastLogin(ctx context.Context, accountID string, at time.Time) error {
	encoded, err := json.Marshal(at)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "failed to encode login timestamp")
	}
	if err := r.kv.Set(ctx, kvstore.LastLoginKey(accountID), string(encoded)); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "failed to persist last login")
	}
	return nil
}

// AppendActivity pushes an entry onto the account's activity log,
// trimming it to the newest activityLogLimit entries.
func (r *Repository) AppendActivity(ctx context.Context, accountID string, entry ActivityEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log, err := r.loadActivity(ctx, accountID)
	if err != nil {
		return err
	}
	log = append(log, entry)
	if len(log) > activityLogLimit {
		log = log[len(log)-activityLogLimit:]
	}
	encoded, err := json.Marshal(log)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "failed to encode activity log")
	}
	if err := r.kv.Set(ctx, kvstore.ActivityKey(accountID), string(encoded)); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "failed to persist activity log")
	}
	return nil
}

// Activity returns the stored activity log, oldest first.
func (r *Repository) Activity(ctx context.Context, accountID string) ([]ActivityEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadActivity(ctx, accountID)
}

func (r *Repository) loadActivity(ctx context.Context, accountID string) ([]ActivityEntry, error) {
	raw, err := r.kv.Get(ctx, kvstore.ActivityKey(accountID))
	if kvstore.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "failed to load activity log")
	}
	var log []ActivityEntry
	if err := json.Unmarshal([]byte(raw), &log); err != nil {
		return nil, errors.Wrap(errors.CodeValidation, err, "malformed activity log")
	}
	return log, nil
}

func (r *Repository) load(ctx context.Context) ([]Account, error) {
	raw, err := r.kv.Get(ctx, kvstore.AccountsKey())
	if kvstore.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "failed to load accounts")
	}
	var stored records
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, errors.Wrap(errors.CodeValidation, err, "malformed account records")
	}
	if stored.Version != recordsVersion {
		return nil, errors.New(errors.CodeValidation, fmt.Sprintf("unsupported account records version %d", stored.Version))
	}
	return stored.Accounts, nil
}

func (r *Repository) store(ctx context.Context, list []Account) error {
	encoded, err := json.Marshal(records{Version: recordsVersion, Accounts: list})
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "failed to encode accounts")
	}
	if err := r.kv.Set(ctx, kvstore.AccountsKey(), string(encoded)); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "failed to persist accounts")
	}
	return nil
}
