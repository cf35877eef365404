package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/otsbank/bankcore/internal/domain"
	"github.com/otsbank/bankcore/internal/usecase"
)

// EntityStore implements usecase.EntityStore, dispatching staged mutations to
// the table each entity type lives in.
type EntityStore struct {
	accounts  *AccountRepository
	txns      *TransactionRepository
	countries *CountryRepository
}

// NewEntityStore creates a new EntityStore.
func NewEntityStore(pool *pgxpool.Pool) *EntityStore {
	return &EntityStore{
		accounts:  NewAccountRepository(pool),
		txns:      NewTransactionRepository(pool),
		countries: NewCountryRepository(pool),
	}
}

// Apply executes one staged mutation inside the open transaction.
// Deactivations reach the store already converted to updates by the unit of
// work, so only insert and update paths exist here.
func (s *EntityStore) Apply(ctx context.Context, tx usecase.Transaction, m *domain.Mutation) error {
	q := tx.(*Tx).PgxTx()

	switch e := m.Entity.(type) {
	case *domain.Account:
		if m.Kind == domain.MutationInsert {
			return s.accounts.insertTx(ctx, q, e)
		}

		return s.accounts.updateTx(ctx, q, e)

	case *domain.AccountTransaction:
		if m.Kind != domain.MutationInsert {
			return fmt.Errorf("ledger entry %s is immutable", e.ID)
		}

		return s.txns.insertTx(ctx, q, e)

	case *domain.Country:
		if m.Kind == domain.MutationInsert {
			return s.countries.insertTx(ctx, q, e)
		}

		return s.countries.updateTx(ctx, q, e)

	default:
		return fmt.Errorf("unsupported entity type %T", m.Entity)
	}
}
