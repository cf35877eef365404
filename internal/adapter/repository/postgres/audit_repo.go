package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/otsbank/bankcore/internal/domain"
	"github.com/otsbank/bankcore/internal/usecase"
)

// AuditRepository implements usecase.AuditRepository. Audit rows are written
// inside the unit of work's transaction and never updated afterwards.
type AuditRepository struct {
	db queryer
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return newAuditRepositoryWithDB(pool)
}

func newAuditRepositoryWithDB(db queryer) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateTx inserts an audit log entry inside the given transaction.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	changed, err := marshalSnapshot(log.ChangedValues)
	if err != nil {
		return err
	}

	original, err := marshalSnapshot(log.OriginalValues)
	if err != nil {
		return err
	}

	pgxTx := tx.(*Tx).PgxTx()

	_, err = pgxTx.Exec(ctx,
		`INSERT INTO audit_log (id, entity_name, entity_id, action, user_name, changed_values, original_values, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		log.ID,
		log.EntityName,
		log.EntityID,
		string(log.Action),
		log.UserName,
		changed,
		original,
		timeToPgTimestamptz(log.CreatedAt),
	)

	return err
}

// List retrieves audit logs matching the filter, newest first.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	query := `SELECT id, entity_name, entity_id, action, user_name, changed_values, original_values, created_at
		FROM audit_log WHERE 1=1`

	var args []any

	if filter.EntityName != "" {
		args = append(args, filter.EntityName)
		query += fmt.Sprintf(` AND entity_name = $%d`, len(args))
	}

	if filter.EntityID != "" {
		args = append(args, filter.EntityID)
		query += fmt.Sprintf(` AND entity_id = $%d`, len(args))
	}

	if filter.UserName != "" {
		args = append(args, filter.UserName)
		query += fmt.Sprintf(` AND user_name = $%d`, len(args))
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*domain.AuditLog

	for rows.Next() {
		var (
			log       domain.AuditLog
			action    string
			changed   []byte
			original  []byte
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&log.ID,
			&log.EntityName,
			&log.EntityID,
			&action,
			&log.UserName,
			&changed,
			&original,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		log.Action = domain.AuditAction(action)
		log.CreatedAt = pgTimestamptzToTime(createdAt)

		if changed != nil {
			_ = json.Unmarshal(changed, &log.ChangedValues)
		}

		if original != nil {
			_ = json.Unmarshal(original, &log.OriginalValues)
		}

		logs = append(logs, &log)
	}

	return logs, rows.Err()
}

func marshalSnapshot(snap domain.JSON) ([]byte, error) {
	if snap == nil {
		return nil, nil
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal audit snapshot: %w", err)
	}

	return data, nil
}
