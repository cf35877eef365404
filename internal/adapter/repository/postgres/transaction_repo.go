package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/otsbank/bankcore/internal/domain"
)

const transactionColumns = `id, account_id, debit_amount, credit_amount, description, reference_number, transfer_type, transaction_date, is_active, created_at, created_by`

// TransactionRepository implements usecase.TransactionRepository. Ledger
// entries are append-only; there is no update path.
type TransactionRepository struct {
	db queryer
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return newTransactionRepositoryWithDB(pool)
}

func newTransactionRepositoryWithDB(db queryer) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// ListByAccount lists the ledger entries of an account, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.AccountTransaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM account_transaction WHERE account_id = $1 ORDER BY transaction_date DESC, id DESC LIMIT $2 OFFSET $3`,
		accountID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.AccountTransaction

	for rows.Next() {
		var (
			t            domain.AccountTransaction
			debit        pgtype.Numeric
			credit       pgtype.Numeric
			transferType pgtype.Text
			txnDate      pgtype.Timestamptz
			createdAt    pgtype.Timestamptz
		)

		err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&debit,
			&credit,
			&t.Description,
			&t.ReferenceNumber,
			&transferType,
			&txnDate,
			&t.IsActive,
			&createdAt,
			&t.CreatedBy,
		)
		if err != nil {
			return nil, err
		}

		t.DebitAmount = numericToNullDecimal(debit)
		t.CreditAmount = numericToNullDecimal(credit)
		t.TransferType = pgTextToString(transferType)
		t.TransactionDate = pgTimestamptzToTime(txnDate)
		t.CreatedAt = pgTimestamptzToTime(createdAt)

		txns = append(txns, &t)
	}

	return txns, rows.Err()
}

func (r *TransactionRepository) insertTx(ctx context.Context, q queryer, t *domain.AccountTransaction) error {
	_, err := q.Exec(ctx,
		`INSERT INTO account_transaction (`+transactionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID,
		t.AccountID,
		nullDecimalToNumeric(t.DebitAmount),
		nullDecimalToNumeric(t.CreditAmount),
		t.Description,
		t.ReferenceNumber,
		stringToPgText(t.TransferType),
		timeToPgTimestamptz(t.TransactionDate),
		t.IsActive,
		timeToPgTimestamptz(t.CreatedAt),
		t.CreatedBy,
	)

	return err
}
