package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/otsbank/bankcore/internal/domain"
	"github.com/otsbank/bankcore/internal/usecase"
)

const accountColumns = `id, account_number, name, currency, balance, is_active, created_at, created_by, updated_at, updated_by`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	db queryer
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return newAccountRepositoryWithDB(pool)
}

func newAccountRepositoryWithDB(db queryer) *AccountRepository {
	return &AccountRepository{db: db}
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM account WHERE id = $1`, id)

	return scanAccount(row)
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE row lock
// inside the given transaction.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `SELECT `+accountColumns+` FROM account WHERE id = $1 FOR UPDATE`, id)

	return scanAccount(row)
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM account ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account

	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func (r *AccountRepository) insertTx(ctx context.Context, q queryer, a *domain.Account) error {
	_, err := q.Exec(ctx,
		`INSERT INTO account (`+accountColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID,
		a.AccountNumber,
		a.Name,
		a.Currency,
		decimalToNumeric(a.Balance),
		a.IsActive,
		timeToPgTimestamptz(a.CreatedAt),
		a.CreatedBy,
		timeToPgTimestamptz(a.UpdatedAt),
		stringToPgText(a.UpdatedBy),
	)

	return err
}

func (r *AccountRepository) updateTx(ctx context.Context, q queryer, a *domain.Account) error {
	tag, err := q.Exec(ctx,
		`UPDATE account SET account_number = $2, name = $3, currency = $4, balance = $5, is_active = $6, updated_at = $7, updated_by = $8 WHERE id = $1`,
		a.ID,
		a.AccountNumber,
		a.Name,
		a.Currency,
		decimalToNumeric(a.Balance),
		a.IsActive,
		timeToPgTimestamptz(a.UpdatedAt),
		stringToPgText(a.UpdatedBy),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a         domain.Account
		balance   pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
		updatedBy pgtype.Text
	)

	err := row.Scan(
		&a.ID,
		&a.AccountNumber,
		&a.Name,
		&a.Currency,
		&balance,
		&a.IsActive,
		&createdAt,
		&a.CreatedBy,
		&updatedAt,
		&updatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	a.Balance = numericToDecimal(balance)
	a.CreatedAt = pgTimestamptzToTime(createdAt)
	a.UpdatedAt = pgTimestamptzToTime(updatedAt)
	a.UpdatedBy = pgTextToString(updatedBy)

	return &a, nil
}
