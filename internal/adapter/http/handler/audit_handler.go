package handler

import (
	"context"
	"net/http"

	"github.com/otsbank/bankcore/internal/adapter/http/dto"
	"github.com/otsbank/bankcore/internal/domain"
	"github.com/otsbank/bankcore/internal/usecase"
)

// AuditService defines the behavior needed by AuditHandler.
type AuditService interface {
	ListAuditLogs(ctx context.Context, input usecase.ListAuditLogsInput) ([]*domain.AuditLog, error)
}

// AuditHandler handles audit trail HTTP requests.
type AuditHandler struct {
	auditUC AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditUC AuditService) *AuditHandler {
	return &AuditHandler{auditUC: auditUC}
}

// List lists audit logs, optionally filtered by entity.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.auditUC.ListAuditLogs(r.Context(), usecase.ListAuditLogsInput{
		EntityName: r.URL.Query().Get("entity"),
		EntityID:   r.URL.Query().Get("entity_id"),
		UserName:   r.URL.Query().Get("user"),
		Limit:      parseIntQuery(r, "limit", 20),
		Offset:     parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list audit logs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}
