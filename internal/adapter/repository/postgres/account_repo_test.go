package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	"github.com/otsbank/bankcore/internal/domain"
)

var accountColumnNames = []string{
	"id", "account_number", "name", "currency", "balance",
	"is_active", "created_at", "created_by", "updated_at", "updated_by",
}

func accountRow(id string, balance int64) *pgxmock.Rows {
	now := time.Now().UTC()

	return pgxmock.NewRows(accountColumnNames).AddRow(
		id,
		"100200",
		"Checking",
		"USD",
		decimalToNumeric(decimal.NewFromInt(balance)),
		true,
		timeToPgTimestamptz(now),
		"teller",
		timeToPgTimestamptz(time.Time{}),
		stringToPgText(""),
	)
}

func TestAccountRepositoryGetByID(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery(`SELECT .+ FROM account WHERE id = \$1`).
		WithArgs("acc-1").
		WillReturnRows(accountRow("acc-1", 150))

	repo := newAccountRepositoryWithDB(mockPool)

	account, err := repo.GetByID(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.ID != "acc-1" {
		t.Errorf("unexpected id: %s", account.ID)
	}

	if !account.Balance.Equal(decimal.NewFromInt(150)) {
		t.Errorf("unexpected balance: %s", account.Balance)
	}

	if account.UpdatedBy != "" {
		t.Errorf("expected empty updated_by, got %q", account.UpdatedBy)
	}

	assertExpectations(t, mockPool)
}

func TestAccountRepositoryGetByIDNotFound(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery(`SELECT .+ FROM account WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := newAccountRepositoryWithDB(mockPool)

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAccountRepositoryList(t *testing.T) {
	mockPool := newMockPool(t)

	rows := accountRow("acc-1", 100).AddRow(
		"acc-2", "100201", "Savings", "USD",
		decimalToNumeric(decimal.NewFromInt(250)),
		true,
		timeToPgTimestamptz(time.Now().UTC()),
		"teller",
		timeToPgTimestamptz(time.Time{}),
		stringToPgText(""),
	)

	mockPool.ExpectQuery(`SELECT .+ FROM account ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 0).
		WillReturnRows(rows)

	repo := newAccountRepositoryWithDB(mockPool)

	accounts, err := repo.List(context.Background(), 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}

	assertExpectations(t, mockPool)
}

func TestAccountRepositoryUpdateMissingRow(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectExec(`UPDATE account SET .+ WHERE id = \$1`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := newAccountRepositoryWithDB(mockPool)

	account := &domain.Account{
		Audited: domain.Audited{ID: "ghost", IsActive: true},
		Balance: decimal.NewFromInt(10),
	}

	if err := repo.updateTx(context.Background(), mockPool, account); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected not found on zero rows, got %v", err)
	}

	assertExpectations(t, mockPool)
}
