package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/otsbank/bankcore/internal/domain"
	"github.com/otsbank/bankcore/internal/usecase"
	"github.com/otsbank/bankcore/internal/usecase/mocks"
)

type uowFixture struct {
	factory   *usecase.UnitOfWorkFactory
	txManager *mocks.MockTransactionManager
	store     *mocks.MockEntityStore
	auditRepo *mocks.MockAuditRepository
}

func newUOWFixture(t *testing.T, userName string) *uowFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	txManager := mocks.NewMockTransactionManager()
	store := mocks.NewMockEntityStore()
	auditRepo := mocks.NewMockAuditRepository(ctrl)

	factory := usecase.NewUnitOfWorkFactory(
		txManager,
		store,
		auditRepo,
		mocks.StaticIdentity{Name: userName},
		mocks.NewMockIDGenerator(),
		zerolog.Nop(),
	)

	return &uowFixture{
		factory:   factory,
		txManager: txManager,
		store:     store,
		auditRepo: auditRepo,
	}
}

func (f *uowFixture) captureAuditLogs() *[]*domain.AuditLog {
	var logs []*domain.AuditLog
	f.auditRepo.EXPECT().
		CreateTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
			logs = append(logs, log)
			return nil
		}).
		AnyTimes()

	return &logs
}

func TestUnitOfWork_CommitStampsAndAudits(t *testing.T) {
	f := newUOWFixture(t, "alice")
	logs := f.captureAuditLogs()

	account := &domain.Account{
		Audited:       domain.Audited{ID: "acc-1"},
		AccountNumber: "100200",
		Name:          "Checking",
		Currency:      "USD",
		Balance:       decimal.Zero,
	}

	insert, err := domain.NewInsert(account)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uow, err := f.factory.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uow.Stage(insert)

	if err := uow.Commit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !account.IsActive {
		t.Errorf("expected inserted entity to become active")
	}

	if account.CreatedBy != "alice" {
		t.Errorf("expected created_by alice, got %q", account.CreatedBy)
	}

	if account.CreatedAt.IsZero() {
		t.Errorf("expected creation timestamp to be set")
	}

	if len(*logs) != 1 {
		t.Fatalf("expected 1 audit log, got %d", len(*logs))
	}

	log := (*logs)[0]
	if log.EntityName != "Account" || log.EntityID != "acc-1" {
		t.Errorf("unexpected audit target: %s/%s", log.EntityName, log.EntityID)
	}

	if log.Action != domain.AuditActionAdded {
		t.Errorf("expected action Added, got %s", log.Action)
	}

	if log.UserName != "alice" {
		t.Errorf("expected user alice, got %q", log.UserName)
	}

	// The snapshot is captured at stage time, before stamping.
	if got := log.ChangedValues["created_by"]; got != "" {
		t.Errorf("expected pre-stamp snapshot, got created_by=%v", got)
	}

	if !f.txManager.LastTx.Committed {
		t.Errorf("expected transaction to be committed")
	}
}

func TestUnitOfWork_AnonymousFallback(t *testing.T) {
	f := newUOWFixture(t, "")
	logs := f.captureAuditLogs()

	country := &domain.Country{
		Audited: domain.Audited{ID: "cty-1"},
		Name:    "Turkey",
		IsoCode: "TR",
	}

	insert, err := domain.NewInsert(country)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uow, err := f.factory.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uow.Stage(insert)

	if err := uow.Commit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(*logs) != 1 {
		t.Fatalf("expected 1 audit log, got %d", len(*logs))
	}

	if (*logs)[0].UserName != domain.AnonymousUser {
		t.Errorf("expected anonymous user, got %q", (*logs)[0].UserName)
	}

	if country.CreatedBy != domain.AnonymousUser {
		t.Errorf("expected anonymous creation stamp, got %q", country.CreatedBy)
	}
}

func TestUnitOfWork_DeactivateBecomesSoftUpdate(t *testing.T) {
	f := newUOWFixture(t, "bob")
	logs := f.captureAuditLogs()

	country := &domain.Country{
		Audited: domain.Audited{ID: "cty-1", IsActive: true},
		Name:    "Turkey",
		IsoCode: "TR",
	}

	original, err := domain.Snapshot(country)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uow, err := f.factory.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uow.Stage(domain.NewDeactivate(country, original))

	if err := uow.Commit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if country.IsActive {
		t.Errorf("expected country to be deactivated")
	}

	if country.UpdatedBy != "bob" {
		t.Errorf("expected modification stamp, got %q", country.UpdatedBy)
	}

	if len(*logs) != 1 {
		t.Fatalf("expected 1 audit log, got %d", len(*logs))
	}

	if (*logs)[0].Action != domain.AuditActionDeleted {
		t.Errorf("expected action Deleted, got %s", (*logs)[0].Action)
	}

	// The record is soft-deleted through the store, not removed.
	if len(f.store.Applied) != 1 || f.store.Applied[0].Kind != domain.MutationDeactivate {
		t.Fatalf("expected one deactivate mutation applied")
	}
}

func TestUnitOfWork_OneAuditRowPerMutation(t *testing.T) {
	f := newUOWFixture(t, "carol")
	logs := f.captureAuditLogs()

	account := &domain.Account{Audited: domain.Audited{ID: "acc-1", IsActive: true}, Balance: decimal.NewFromInt(100)}
	original, err := domain.Snapshot(account)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	txn := domain.NewDebitTransaction("txn-1", "acc-1", decimal.NewFromInt(50), "salary", "REF-1", account.CreatedAt)
	insert, err := domain.NewInsert(txn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	account.Deposit(decimal.NewFromInt(50))
	update, err := domain.NewUpdate(account, original)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uow, err := f.factory.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uow.Stage(insert, update)

	if err := uow.Commit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(*logs) != 2 {
		t.Fatalf("expected 2 audit logs, got %d", len(*logs))
	}

	if (*logs)[0].EntityName != "AccountTransaction" || (*logs)[1].EntityName != "Account" {
		t.Errorf("unexpected audit order: %s, %s", (*logs)[0].EntityName, (*logs)[1].EntityName)
	}

	// The update audit row carries only the changed fields.
	if _, ok := (*logs)[1].ChangedValues["balance"]; !ok {
		t.Errorf("expected balance in changed values")
	}

	if _, ok := (*logs)[1].ChangedValues["currency"]; ok {
		t.Errorf("did not expect unchanged field in changed values")
	}
}

func TestUnitOfWork_StoreFailureRollsBack(t *testing.T) {
	f := newUOWFixture(t, "dave")
	f.captureAuditLogs()

	applyErr := errors.New("constraint violation")
	applied := 0
	f.store.ApplyFunc = func(ctx context.Context, tx usecase.Transaction, m *domain.Mutation) error {
		applied++
		if applied == 2 {
			return applyErr
		}
		return nil
	}

	first, err := domain.NewInsert(&domain.Country{Audited: domain.Audited{ID: "cty-1"}, Name: "Turkey", IsoCode: "TR"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := domain.NewInsert(&domain.Country{Audited: domain.Audited{ID: "cty-2"}, Name: "Greece", IsoCode: "GR"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uow, err := f.factory.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uow.Stage(first, second)

	if err := uow.Commit(context.Background()); !errors.Is(err, applyErr) {
		t.Fatalf("expected apply error, got %v", err)
	}

	if !f.txManager.LastTx.RolledBack {
		t.Errorf("expected transaction rollback")
	}

	if f.txManager.LastTx.Committed {
		t.Errorf("expected no commit after failure")
	}
}

func TestUnitOfWork_AuditFailureRollsBack(t *testing.T) {
	f := newUOWFixture(t, "erin")

	auditErr := errors.New("audit insert failed")
	f.auditRepo.EXPECT().
		CreateTx(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(auditErr)

	insert, err := domain.NewInsert(&domain.Country{Audited: domain.Audited{ID: "cty-1"}, Name: "Turkey", IsoCode: "TR"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uow, err := f.factory.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uow.Stage(insert)

	if err := uow.Commit(context.Background()); !errors.Is(err, auditErr) {
		t.Fatalf("expected audit error, got %v", err)
	}

	if !f.txManager.LastTx.RolledBack {
		t.Errorf("expected transaction rollback")
	}
}

func TestUnitOfWork_RollbackAfterCommitIsNoop(t *testing.T) {
	f := newUOWFixture(t, "frank")
	f.captureAuditLogs()

	insert, err := domain.NewInsert(&domain.Country{Audited: domain.Audited{ID: "cty-1"}, Name: "Turkey", IsoCode: "TR"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uow, err := f.factory.Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uow.Stage(insert)

	if err := uow.Commit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := uow.Rollback(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.txManager.LastTx.RolledBack {
		t.Errorf("rollback after commit must not reach the transaction")
	}
}
