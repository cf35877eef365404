package usecase

import (
	"context"

	"github.com/otsbank/bankcore/internal/domain"
)

// AuditUseCase exposes the audit trail for inspection.
type AuditUseCase struct {
	auditRepo AuditRepository
}

// NewAuditUseCase creates a new AuditUseCase.
func NewAuditUseCase(auditRepo AuditRepository) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo}
}

// ListAuditLogsInput represents input for listing audit logs.
type ListAuditLogsInput struct {
	EntityName string
	EntityID   string
	UserName   string
	Limit      int
	Offset     int
}

// ListAuditLogs lists audit logs matching the filter, newest first.
func (uc *AuditUseCase) ListAuditLogs(ctx context.Context, input ListAuditLogsInput) ([]*domain.AuditLog, error) {
	if input.Limit <= 0 {
		input.Limit = DefaultPageSize
	}

	if input.Limit > MaxPageSize {
		input.Limit = MaxPageSize
	}

	return uc.auditRepo.List(ctx, domain.AuditFilter{
		EntityName: input.EntityName,
		EntityID:   input.EntityID,
		UserName:   input.UserName,
		Limit:      input.Limit,
		Offset:     input.Offset,
	})
}
