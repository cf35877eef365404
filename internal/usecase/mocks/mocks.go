package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/otsbank/bankcore/internal/domain"
	"github.com/otsbank/bankcore/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	GetByIDFunc          func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Add seeds an account into the in-memory store.
func (m *MockAccountRepository) Add(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// MockCountryRepository is a mock implementation of CountryRepository.
type MockCountryRepository struct {
	mu        sync.RWMutex
	countries map[string]*domain.Country

	GetByIDFunc          func(ctx context.Context, id string) (*domain.Country, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Country, error)
	ListActiveFunc       func(ctx context.Context) ([]*domain.Country, error)

	ListActiveCalls int
}

func NewMockCountryRepository() *MockCountryRepository {
	return &MockCountryRepository{
		countries: make(map[string]*domain.Country),
	}
}

// Add seeds a country into the in-memory store.
func (m *MockCountryRepository) Add(country *domain.Country) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.countries[country.ID] = country
}

func (m *MockCountryRepository) GetByID(ctx context.Context, id string) (*domain.Country, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.countries[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCountryNotFound
}

func (m *MockCountryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Country, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockCountryRepository) ListActive(ctx context.Context) ([]*domain.Country, error) {
	m.mu.Lock()
	m.ListActiveCalls++
	m.mu.Unlock()

	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var countries []*domain.Country
	for _, c := range m.countries {
		if c.IsActive {
			countries = append(countries, c)
		}
	}
	return countries, nil
}

// MockEntityStore records applied mutations.
type MockEntityStore struct {
	mu      sync.Mutex
	Applied []*domain.Mutation

	ApplyFunc func(ctx context.Context, tx usecase.Transaction, m *domain.Mutation) error
}

func NewMockEntityStore() *MockEntityStore {
	return &MockEntityStore{}
}

func (s *MockEntityStore) Apply(ctx context.Context, tx usecase.Transaction, m *domain.Mutation) error {
	if s.ApplyFunc != nil {
		return s.ApplyFunc(ctx, tx, m)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Applied = append(s.Applied, m)
	return nil
}

// MockTransaction is a mock database transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	t.RolledBack = true
	return nil
}

// MockTransactionManager hands out MockTransactions and remembers the last
// one it opened.
type MockTransactionManager struct {
	mu     sync.Mutex
	LastTx *MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastTx = &MockTransaction{}
	return m.LastTx, nil
}

// StaticIdentity returns a fixed user name.
type StaticIdentity struct {
	Name string
}

func (s StaticIdentity) UserName(ctx context.Context) string {
	return s.Name
}

// MockIDGenerator generates deterministic sequential IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (g *MockIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%d", g.next)
}

// PassthroughRetrier runs the operation exactly once.
type PassthroughRetrier struct{}

func (PassthroughRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

// MockLocalCountryCache is an in-memory LocalCountryCache.
type MockLocalCountryCache struct {
	mu        sync.RWMutex
	countries []*domain.Country
	has       bool

	SetCalls    int
	RemoveCalls int
}

func NewMockLocalCountryCache() *MockLocalCountryCache {
	return &MockLocalCountryCache{}
}

func (c *MockLocalCountryCache) Get() ([]*domain.Country, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.countries, c.has
}

func (c *MockLocalCountryCache) Set(countries []*domain.Country) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.countries = countries
	c.has = true
	c.SetCalls++
}

func (c *MockLocalCountryCache) Remove() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.countries = nil
	c.has = false
	c.RemoveCalls++
}

// MockSharedCountryCache is an in-memory SharedCountryCache with injectable
// failures.
type MockSharedCountryCache struct {
	mu        sync.RWMutex
	countries []*domain.Country
	has       bool

	GetErr    error
	SetErr    error
	RemoveErr error

	SetCalls    int
	RemoveCalls int
}

func NewMockSharedCountryCache() *MockSharedCountryCache {
	return &MockSharedCountryCache{}
}

func (c *MockSharedCountryCache) Get(ctx context.Context) ([]*domain.Country, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.GetErr != nil {
		return nil, false, c.GetErr
	}
	return c.countries, c.has, nil
}

func (c *MockSharedCountryCache) Set(ctx context.Context, countries []*domain.Country) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SetCalls++
	if c.SetErr != nil {
		return c.SetErr
	}
	c.countries = countries
	c.has = true
	return nil
}

func (c *MockSharedCountryCache) Remove(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.RemoveCalls++
	if c.RemoveErr != nil {
		return c.RemoveErr
	}
	c.countries = nil
	c.has = false
	return nil
}
