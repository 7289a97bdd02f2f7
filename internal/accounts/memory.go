package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps accounts for the lifetime of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]Account
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]Account), now: time.Now}
}

func (s *MemoryStore) Exists(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[NormalizeEmail(email)]
	return ok, nil
}

func (s *MemoryStore) Create(_ context.Context, name, email string) (Account, error) {
	name, email, err := normalize(name, email)
	if err != nil {
		return Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[email]; ok {
		return Account{}, ErrAccountExists
	}
	acc := Account{ID: uuid.NewString(), Name: name, Email: email, CreatedAt: s.now().UTC()}
	s.accounts[email] = acc
	return acc, nil
}

func (s *MemoryStore) DisplayName(_ context.Context, email string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[NormalizeEmail(email)]
	return acc.Name, ok, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
