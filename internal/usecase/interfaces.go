package usecase

import (
	"context"

	"github.com/otsbank/bankcore/internal/domain"
)

// AccountRepository defines read access for accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// TransactionRepository defines read access for ledger entries.
type TransactionRepository interface {
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.AccountTransaction, error)
}

// CountryRepository defines read access for countries.
type CountryRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Country, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Country, error)
	ListActive(ctx context.Context) ([]*domain.Country, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// EntityStore applies one staged mutation inside an open transaction.
type EntityStore interface {
	Apply(ctx context.Context, tx Transaction, m *domain.Mutation) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IdentityProvider supplies the acting user for audit stamping. An empty
// name means no authenticated session.
type IdentityProvider interface {
	UserName(ctx context.Context) string
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// LocalCountryCache is the in-process cache tier for the country collection.
type LocalCountryCache interface {
	Get() ([]*domain.Country, bool)
	Set(countries []*domain.Country)
	Remove()
}

// SharedCountryCache is the distributed cache tier for the country collection.
type SharedCountryCache interface {
	Get(ctx context.Context) ([]*domain.Country, bool, error)
	Set(ctx context.Context, countries []*domain.Country) error
	Remove(ctx context.Context) error
}
