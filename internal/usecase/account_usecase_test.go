package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/otsbank/bankcore/internal/domain"
	"github.com/otsbank/bankcore/internal/usecase"
	"github.com/otsbank/bankcore/internal/usecase/mocks"
)

func newAccountUseCase(t *testing.T, accountRepo *mocks.MockAccountRepository, store *mocks.MockEntityStore) *usecase.AccountUseCase {
	t.Helper()

	ctrl := gomock.NewController(t)
	auditRepo := mocks.NewMockAuditRepository(ctrl)
	auditRepo.EXPECT().CreateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	factory := usecase.NewUnitOfWorkFactory(
		mocks.NewMockTransactionManager(),
		store,
		auditRepo,
		mocks.StaticIdentity{Name: "teller"},
		mocks.NewMockIDGenerator(),
		zerolog.Nop(),
	)

	return usecase.NewAccountUseCase(factory, accountRepo, mocks.NewMockIDGenerator(), nil)
}

func TestAccountUseCase_CreateAccount(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	store := mocks.NewMockEntityStore()
	uc := newAccountUseCase(t, accountRepo, store)

	account, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		AccountNumber: "100200",
		Name:          "Checking",
		Currency:      "USD",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.ID == "" {
		t.Errorf("expected generated id")
	}

	if !account.Balance.IsZero() {
		t.Errorf("expected zero opening balance, got %s", account.Balance)
	}

	if !account.IsActive {
		t.Errorf("expected new account to be active")
	}

	if account.CreatedBy != "teller" {
		t.Errorf("expected creation stamp, got %q", account.CreatedBy)
	}

	if len(store.Applied) != 1 || store.Applied[0].Kind != domain.MutationInsert {
		t.Fatalf("expected one insert mutation")
	}
}

func TestAccountUseCase_GetAccount(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	uc := newAccountUseCase(t, accountRepo, mocks.NewMockEntityStore())

	accountRepo.Add(&domain.Account{Audited: domain.Audited{ID: "acc-1", IsActive: true}})

	account, err := uc.GetAccount(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.ID != "acc-1" {
		t.Errorf("unexpected account: %s", account.ID)
	}

	if _, err := uc.GetAccount(context.Background(), "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAccountUseCase_ListAccountsClampsPageSize(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	uc := newAccountUseCase(t, accountRepo, mocks.NewMockEntityStore())

	var gotLimit int
	accountRepo.ListFunc = func(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
		gotLimit = limit
		return nil, nil
	}

	if _, err := uc.ListAccounts(context.Background(), usecase.ListAccountsInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotLimit != usecase.DefaultPageSize {
		t.Errorf("expected default page size, got %d", gotLimit)
	}

	if _, err := uc.ListAccounts(context.Background(), usecase.ListAccountsInput{Limit: 1000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotLimit != usecase.MaxPageSize {
		t.Errorf("expected max page size, got %d", gotLimit)
	}
}
