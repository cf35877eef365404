package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/otsbank/bankcore/internal/domain"
	"github.com/otsbank/bankcore/internal/infrastructure/metrics"
)

// LedgerUseCase posts monetary movements against accounts. Every post runs
// inside one unit of work: the ledger entries and the balance change commit
// together or not at all.
type LedgerUseCase struct {
	uowFactory  *UnitOfWorkFactory
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	idGen       IDGenerator
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase. The metrics argument may be
// nil.
func NewLedgerUseCase(
	uowFactory *UnitOfWorkFactory,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	retrier Retrier,
	m *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		uowFactory:  uowFactory,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		idGen:       idGen,
		retrier:     retrier,
		metrics:     m,
	}
}

// PostIncomingInput represents an incoming transaction request.
type PostIncomingInput struct {
	AccountID       string
	Amount          decimal.Decimal
	Description     string
	ReferenceNumber string
}

// PostOutgoingInput represents an outgoing transaction request.
type PostOutgoingInput struct {
	AccountID       string
	Amount          decimal.Decimal
	FeeAmount       decimal.Decimal
	Description     string
	ReferenceNumber string
}

// PostIncoming credits the account balance and appends one ledger entry with
// the debit leg set to the amount.
func (uc *LedgerUseCase) PostIncoming(ctx context.Context, input PostIncomingInput) (*domain.AccountTransaction, error) {
	if err := validatePost(input.Amount, input.Description, input.ReferenceNumber); err != nil {
		uc.recordRejection(err)
		return nil, err
	}

	var txn *domain.AccountTransaction

	err := uc.retrier.Retry(ctx, func() error {
		var opErr error
		txn, opErr = uc.postIncoming(ctx, input)
		return opErr
	})
	if err != nil {
		uc.recordRejection(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsPosted.WithLabelValues("incoming").Inc()
		uc.metrics.TransactionAmount.Observe(input.Amount.InexactFloat64())
	}

	return txn, nil
}

func (uc *LedgerUseCase) postIncoming(ctx context.Context, input PostIncomingInput) (*domain.AccountTransaction, error) {
	uow, err := uc.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	account, err := uc.lockActiveAccount(ctx, uow, input.AccountID)
	if err != nil {
		return nil, err
	}

	original, err := domain.Snapshot(account)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.NewDebitTransaction(uc.idGen.Generate(), account.ID, input.Amount, input.Description, input.ReferenceNumber, now)

	insert, err := domain.NewInsert(txn)
	if err != nil {
		return nil, err
	}

	account.Deposit(input.Amount)

	update, err := domain.NewUpdate(account, original)
	if err != nil {
		return nil, err
	}

	uow.Stage(insert, update)

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

// PostOutgoing debits the account balance by amount plus fee and appends one
// ledger entry with the credit leg set, plus a second fee entry when a fee is
// charged. The balance check happens under the account row lock, before any
// mutation is staged.
func (uc *LedgerUseCase) PostOutgoing(ctx context.Context, input PostOutgoingInput) (*domain.AccountTransaction, error) {
	if err := validatePost(input.Amount, input.Description, input.ReferenceNumber); err != nil {
		uc.recordRejection(err)
		return nil, err
	}

	if input.FeeAmount.IsNegative() {
		uc.recordRejection(domain.ErrNegativeFee)
		return nil, domain.ErrNegativeFee
	}

	var txn *domain.AccountTransaction

	err := uc.retrier.Retry(ctx, func() error {
		var opErr error
		txn, opErr = uc.postOutgoing(ctx, input)
		return opErr
	})
	if err != nil {
		uc.recordRejection(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsPosted.WithLabelValues("outgoing").Inc()
		uc.metrics.TransactionAmount.Observe(input.Amount.InexactFloat64())
	}

	return txn, nil
}

func (uc *LedgerUseCase) postOutgoing(ctx context.Context, input PostOutgoingInput) (*domain.AccountTransaction, error) {
	uow, err := uc.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	account, err := uc.lockActiveAccount(ctx, uow, input.AccountID)
	if err != nil {
		return nil, err
	}

	total := input.Amount.Add(input.FeeAmount)
	if err := account.ValidateWithdrawal(total); err != nil {
		return nil, err
	}

	original, err := domain.Snapshot(account)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if input.FeeAmount.IsPositive() {
		fee := domain.NewCreditTransaction(uc.idGen.Generate(), account.ID, input.FeeAmount, input.Description+" - Fee", input.ReferenceNumber, now)
		fee.TransferType = domain.TransferTypeFee

		feeInsert, err := domain.NewInsert(fee)
		if err != nil {
			return nil, err
		}

		uow.Stage(feeInsert)
	}

	txn := domain.NewCreditTransaction(uc.idGen.Generate(), account.ID, input.Amount, input.Description, input.ReferenceNumber, now)

	insert, err := domain.NewInsert(txn)
	if err != nil {
		return nil, err
	}

	account.Withdraw(total)

	update, err := domain.NewUpdate(account, original)
	if err != nil {
		return nil, err
	}

	uow.Stage(insert, update)

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

// ListTransactionsInput represents input for listing ledger entries.
type ListTransactionsInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactions lists the ledger entries of an account.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.AccountTransaction, error) {
	if input.Limit <= 0 {
		input.Limit = DefaultPageSize
	}

	if input.Limit > MaxPageSize {
		input.Limit = MaxPageSize
	}

	return uc.txnRepo.ListByAccount(ctx, input.AccountID, input.Limit, input.Offset)
}

// lockActiveAccount loads the account with a row lock inside the unit of
// work's transaction. The lock serializes concurrent posts against the same
// account so the balance check and the balance change are atomic.
func (uc *LedgerUseCase) lockActiveAccount(ctx context.Context, uow *UnitOfWork, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByIDForUpdate(ctx, uow.Tx(), id)
	if err != nil {
		return nil, err
	}

	if !account.IsActive {
		return nil, domain.ErrAccountNotActive
	}

	return account, nil
}

func (uc *LedgerUseCase) recordRejection(err error) {
	if uc.metrics == nil {
		return
	}

	var reason string
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		reason = "insufficient_balance"
	case errors.Is(err, domain.ErrAccountNotFound):
		reason = "account_not_found"
	case errors.Is(err, domain.ErrAccountNotActive):
		reason = "account_not_active"
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrNegativeFee),
		errors.Is(err, domain.ErrEmptyDescription),
		errors.Is(err, domain.ErrEmptyReference):
		reason = "invalid_request"
	default:
		reason = "internal"
	}

	uc.metrics.TransactionRejections.WithLabelValues(reason).Inc()
}

func validatePost(amount decimal.Decimal, description, refNumber string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	if description == "" {
		return domain.ErrEmptyDescription
	}

	if refNumber == "" {
		return domain.ErrEmptyReference
	}

	return nil
}
