package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/otsbank/bankcore/internal/domain"
)

// UnitOfWorkFactory builds one UnitOfWork per logical operation.
type UnitOfWorkFactory struct {
	txManager TransactionManager
	store     EntityStore
	auditRepo AuditRepository
	identity  IdentityProvider
	idGen     IDGenerator
	logger    zerolog.Logger
}

// NewUnitOfWorkFactory creates a new UnitOfWorkFactory.
func NewUnitOfWorkFactory(
	txManager TransactionManager,
	store EntityStore,
	auditRepo AuditRepository,
	identity IdentityProvider,
	idGen IDGenerator,
	logger zerolog.Logger,
) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		txManager: txManager,
		store:     store,
		auditRepo: auditRepo,
		identity:  identity,
		idGen:     idGen,
		logger:    logger,
	}
}

// Begin opens the storage transaction and returns the unit of work bound to
// it. Callers must either Commit or Rollback; Rollback is safe to defer.
func (f *UnitOfWorkFactory) Begin(ctx context.Context) (*UnitOfWork, error) {
	tx, err := f.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return &UnitOfWork{
		tx:        tx,
		store:     f.store,
		auditRepo: f.auditRepo,
		identity:  f.identity,
		idGen:     f.idGen,
		logger:    f.logger,
	}, nil
}

// UnitOfWork wraps one logical operation in a single atomic commit. Staged
// mutations are persisted together with one audit row each; any failure rolls
// the whole transaction back.
type UnitOfWork struct {
	tx        Transaction
	store     EntityStore
	auditRepo AuditRepository
	identity  IdentityProvider
	idGen     IDGenerator
	logger    zerolog.Logger
	staged    []*domain.Mutation
	finished  bool
}

// Tx exposes the open transaction so repositories can take row locks inside
// the same commit boundary.
func (u *UnitOfWork) Tx() Transaction {
	return u.tx
}

// Stage records entity mutations for the next Commit.
func (u *UnitOfWork) Stage(mutations ...*domain.Mutation) {
	u.staged = append(u.staged, mutations...)
}

// Commit persists all staged mutations plus their audit rows atomically.
// Insertions get creation stamps and the active flag, updates get
// modification stamps, and deactivations are converted to soft updates.
// On failure the transaction is rolled back and the storage error returned;
// no partial commit is ever visible.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	now := time.Now().UTC()

	user := u.identity.UserName(ctx)
	if user == "" {
		user = domain.AnonymousUser
	}

	auditLogs := make([]*domain.AuditLog, 0, len(u.staged))
	for _, m := range u.staged {
		auditLogs = append(auditLogs, &domain.AuditLog{
			ID:             u.idGen.Generate(),
			EntityName:     m.Entity.EntityName(),
			EntityID:       m.Entity.EntityID(),
			Action:         m.Kind.AuditAction(),
			UserName:       user,
			ChangedValues:  m.Changed,
			OriginalValues: m.Original,
			CreatedAt:      now,
		})
	}

	for _, m := range u.staged {
		switch m.Kind {
		case domain.MutationInsert:
			m.Entity.StampCreated(now, user)
		case domain.MutationUpdate:
			m.Entity.StampUpdated(now, user)
		case domain.MutationDeactivate:
			m.Entity.Deactivate()
			m.Entity.StampUpdated(now, user)
		}
	}

	for _, m := range u.staged {
		if err := u.store.Apply(ctx, u.tx, m); err != nil {
			return u.fail(ctx, err)
		}
	}

	for _, log := range auditLogs {
		if err := u.auditRepo.CreateTx(ctx, u.tx, log); err != nil {
			return u.fail(ctx, err)
		}
	}

	if err := u.tx.Commit(ctx); err != nil {
		return u.fail(ctx, err)
	}

	u.finished = true

	return nil
}

// Rollback aborts the transaction. It is a no-op once the unit of work has
// committed or already rolled back.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.finished {
		return nil
	}

	u.finished = true

	return u.tx.Rollback(ctx)
}

func (u *UnitOfWork) fail(ctx context.Context, err error) error {
	u.logger.Error().Err(err).Int("staged", len(u.staged)).Msg("unit of work commit failed, rolling back")

	u.finished = true
	if rbErr := u.tx.Rollback(ctx); rbErr != nil {
		u.logger.Error().Err(rbErr).Msg("rollback failed")
	}

	return err
}
