package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/otsbank/bankcore/internal/domain"
	"github.com/otsbank/bankcore/internal/infrastructure/metrics"
)

// AccountUseCase handles account lifecycle operations.
type AccountUseCase struct {
	uowFactory  *UnitOfWorkFactory
	accountRepo AccountRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. The metrics argument may be
// nil.
func NewAccountUseCase(uowFactory *UnitOfWorkFactory, accountRepo AccountRepository, idGen IDGenerator, m *metrics.Metrics) *AccountUseCase {
	return &AccountUseCase{
		uowFactory:  uowFactory,
		accountRepo: accountRepo,
		idGen:       idGen,
		metrics:     m,
	}
}

// CreateAccountInput represents input for opening an account.
type CreateAccountInput struct {
	AccountNumber string
	Name          string
	Currency      string
}

// CreateAccount opens a new account with a zero balance. Creation goes
// through the unit of work so it is audited like every other mutation.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	account := &domain.Account{
		Audited:       domain.Audited{ID: uc.idGen.Generate()},
		AccountNumber: input.AccountNumber,
		Name:          input.Name,
		Currency:      input.Currency,
		Balance:       decimal.Zero,
	}

	insert, err := domain.NewInsert(account)
	if err != nil {
		return nil, err
	}

	uow, err := uc.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	uow.Stage(insert)

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	if input.Limit <= 0 {
		input.Limit = DefaultPageSize
	}

	if input.Limit > MaxPageSize {
		input.Limit = MaxPageSize
	}

	return uc.accountRepo.List(ctx, input.Limit, input.Offset)
}
