package services

import (
	"context"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	"github.com/SscSPs/shopdesk_backend/internal/dto"
)

// ApprovalRuleEvaluatorSvc evaluates approval rule conditions against entity data.
type ApprovalRuleEvaluatorSvc interface {
	GetApplicableRules(ctx context.Context, entityType string, data map[string]any) []domain.ApprovalRule
	CheckApprovalRequired(ctx context.Context, entityType string, data map[string]any) domain.ApprovalCheck
}

// ApprovalWriterSvc defines the lifecycle mutators. These are the only engine
// operations that return errors.
type ApprovalWriterSvc interface {
	// CreateApprovalRequest takes the approver roles from the configured rules named
	// by the request. Unknown or inactive rule ids fail validation.
	CreateApprovalRequest(ctx context.Context, caller domain.Caller, req dto.CreateApprovalRequest) (*domain.ApprovalRequest, error)
	// RaiseApprovalRequest stores a draft whose roles the engine already resolved.
	// It is not reachable from clients.
	RaiseApprovalRequest(ctx context.Context, caller domain.Caller, draft domain.ApprovalDraft) (*domain.ApprovalRequest, error)
	ApproveRequest(ctx context.Context, caller domain.Caller, requestID string, comment *string) (*domain.ApprovalRequest, error)
	RejectRequest(ctx context.Context, caller domain.Caller, requestID string, comment *string) (*domain.ApprovalRequest, error)
}

// ApprovalReaderSvc defines read operations on approval requests.
type ApprovalReaderSvc interface {
	GetApprovalRequest(ctx context.Context, requestID string) (*domain.ApprovalRequest, error)
	// List fetches pending requests newest first, enriched with requester names.
	List(ctx context.Context) ([]domain.PendingApproval, error)
	// Pending returns the last refreshed pending list without touching storage.
	Pending() []domain.PendingApproval
	History(ctx context.Context, entityType, entityID string) ([]domain.ApprovalRequest, error)
	ListDecided(ctx context.Context, limit int, nextToken *string) ([]domain.ApprovalRequest, *string, error)
}

// ApprovalWatcherSvc keeps the pending list fresh and fans it out to viewers.
type ApprovalWatcherSvc interface {
	Refresh(ctx context.Context) error
	// Watch delivers the full pending list after every refresh until ctx is done.
	Watch(ctx context.Context) <-chan []domain.PendingApproval
	// Start subscribes to the change feed; the returned func stops the subscription.
	Start(ctx context.Context) (func(), error)
}

// ApprovalLifecycleSvcFacade combines all approval lifecycle operations.
type ApprovalLifecycleSvcFacade interface {
	ApprovalWriterSvc
	ApprovalReaderSvc
	ApprovalWatcherSvc
}
