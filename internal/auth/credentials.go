package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/studymate/internal/common"
	"github.com/dmitrijs2005/studymate/internal/models"
	"github.com/dmitrijs2005/studymate/internal/storage"
)

// CredentialStore persists accounts.
//
// Contract:
//   - Find returns common.ErrNotFound for an unknown email.
//   - Create returns common.ErrDuplicateEmail when the email is taken.
//   - Update applies fn to the stored account and returns common.ErrNotFound
//     for an unknown email.
type CredentialStore interface {
	Find(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, acc models.Account) error
	Update(ctx context.Context, email string, fn func(*models.Account)) error
}

// KVCredentialStore keeps every account as one JSON list under
// common.AccountsKey.
type KVCredentialStore struct {
	kv storage.Store
	mu sync.Mutex
}

func NewKVCredentialStore(kv storage.Store) *KVCredentialStore {
	return &KVCredentialStore{kv: kv}
}

func (s *KVCredentialStore) load(ctx context.Context) ([]models.Account, error) {
	raw, err := s.kv.Get(ctx, common.AccountsKey)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []models.Account{}, nil
	}
	var accounts []models.Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	return accounts, nil
}

func (s *KVCredentialStore) save(ctx context.Context, accounts []models.Account) error {
	b, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	return s.kv.Set(ctx, common.AccountsKey, b)
}

func indexOf(accounts []models.Account, email string) int {
	for i := range accounts {
		if accounts[i].Email == email {
			return i
		}
	}
	return -1
}

func (s *KVCredentialStore) Find(ctx context.Context, email string) (*models.Account, error) {
	accounts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(accounts, email)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	return &accounts[i], nil
}

func (s *KVCredentialStore) Create(ctx context.Context, acc models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load(ctx)
	if err != nil {
		return err
	}
	if indexOf(accounts, acc.Email) >= 0 {
		return common.ErrDuplicateEmail
	}
	return s.save(ctx, append(accounts, acc))
}

func (s *KVCredentialStore) Update(ctx context.Context, email string, fn func(*models.Account)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(accounts, email)
	if i < 0 {
		return common.ErrNotFound
	}
	fn(&accounts[i])
	return s.save(ctx, accounts)
}
