package usecase_test

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/otsbank/bankcore/internal/domain"
	"github.com/otsbank/bankcore/internal/usecase"
	"github.com/otsbank/bankcore/internal/usecase/mocks"
)

func TestAuditUseCase_ListAuditLogs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auditRepo := mocks.NewMockAuditRepository(ctrl)
	auditRepo.EXPECT().List(gomock.Any(), domain.AuditFilter{
		EntityName: "Country",
		EntityID:   "cty-1",
		Limit:      10,
	}).Return([]*domain.AuditLog{
		{ID: "a1", EntityName: "Country", EntityID: "cty-1", Action: domain.AuditActionAdded},
		{ID: "a2", EntityName: "Country", EntityID: "cty-1", Action: domain.AuditActionModified},
	}, nil)

	uc := usecase.NewAuditUseCase(auditRepo)

	logs, err := uc.ListAuditLogs(context.Background(), usecase.ListAuditLogsInput{
		EntityName: "Country",
		EntityID:   "cty-1",
		Limit:      10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(logs) != 2 {
		t.Errorf("expected 2 logs, got %d", len(logs))
	}
}

func TestAuditUseCase_ListAuditLogsClampsPageSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auditRepo := mocks.NewMockAuditRepository(ctrl)
	auditRepo.EXPECT().List(gomock.Any(), domain.AuditFilter{Limit: usecase.DefaultPageSize}).Return(nil, nil)
	auditRepo.EXPECT().List(gomock.Any(), domain.AuditFilter{UserName: "alice", Limit: usecase.MaxPageSize, Offset: 5}).Return(nil, nil)

	uc := usecase.NewAuditUseCase(auditRepo)

	if _, err := uc.ListAuditLogs(context.Background(), usecase.ListAuditLogsInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.ListAuditLogs(context.Background(), usecase.ListAuditLogsInput{UserName: "alice", Limit: 9999, Offset: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
