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

const countryColumns = `id, name, iso_code, phone_code, flag, is_active, created_at, created_by, updated_at, updated_by`

// CountryRepository implements usecase.CountryRepository.
type CountryRepository struct {
	db queryer
}

// NewCountryRepository creates a new CountryRepository.
func NewCountryRepository(pool *pgxpool.Pool) *CountryRepository {
	return newCountryRepositoryWithDB(pool)
}

func newCountryRepositoryWithDB(db queryer) *CountryRepository {
	return &CountryRepository{db: db}
}

// GetByID retrieves a country by ID.
func (r *CountryRepository) GetByID(ctx context.Context, id string) (*domain.Country, error) {
	row := r.db.QueryRow(ctx, `SELECT `+countryColumns+` FROM country WHERE id = $1`, id)

	return scanCountry(row)
}

// GetByIDForUpdate retrieves a country by ID with a FOR UPDATE row lock
// inside the given transaction.
func (r *CountryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Country, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `SELECT `+countryColumns+` FROM country WHERE id = $1 FOR UPDATE`, id)

	return scanCountry(row)
}

// ListActive lists the active country collection ordered by name.
func (r *CountryRepository) ListActive(ctx context.Context) ([]*domain.Country, error) {
	rows, err := r.db.Query(ctx, `SELECT `+countryColumns+` FROM country WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var countries []*domain.Country

	for rows.Next() {
		country, err := scanCountry(rows)
		if err != nil {
			return nil, err
		}

		countries = append(countries, country)
	}

	return countries, rows.Err()
}

func (r *CountryRepository) insertTx(ctx context.Context, q queryer, c *domain.Country) error {
	_, err := q.Exec(ctx,
		`INSERT INTO country (`+countryColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID,
		c.Name,
		c.IsoCode,
		c.PhoneCode,
		c.Flag,
		c.IsActive,
		timeToPgTimestamptz(c.CreatedAt),
		c.CreatedBy,
		timeToPgTimestamptz(c.UpdatedAt),
		stringToPgText(c.UpdatedBy),
	)

	return err
}

func (r *CountryRepository) updateTx(ctx context.Context, q queryer, c *domain.Country) error {
	tag, err := q.Exec(ctx,
		`UPDATE country SET name = $2, iso_code = $3, phone_code = $4, flag = $5, is_active = $6, updated_at = $7, updated_by = $8 WHERE id = $1`,
		c.ID,
		c.Name,
		c.IsoCode,
		c.PhoneCode,
		c.Flag,
		c.IsActive,
		timeToPgTimestamptz(c.UpdatedAt),
		stringToPgText(c.UpdatedBy),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCountryNotFound
	}

	return nil
}

func scanCountry(row pgx.Row) (*domain.Country, error) {
	var (
		c         domain.Country
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
		updatedBy pgtype.Text
	)

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.IsoCode,
		&c.PhoneCode,
		&c.Flag,
		&c.IsActive,
		&createdAt,
		&c.CreatedBy,
		&updatedAt,
		&updatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCountryNotFound
		}

		return nil, err
	}

	c.CreatedAt = pgTimestamptzToTime(createdAt)
	c.UpdatedAt = pgTimestamptzToTime(updatedAt)
	c.UpdatedBy = pgTextToString(updatedBy)

	return &c, nil
}
