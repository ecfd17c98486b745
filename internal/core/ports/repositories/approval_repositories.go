package repositories

import (
	"context"

	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
)

// ApprovalReader defines read operations on approval requests.
type ApprovalReader interface {
	FindApprovalRequestByID(ctx context.Context, requestID string) (*domain.ApprovalRequest, error)
	// ListPendingApprovalRequests returns pending requests, newest first.
	ListPendingApprovalRequests(ctx context.Context) ([]domain.ApprovalRequest, error)
	// ListApprovalRequestsByEntity returns every request raised for an entity, newest first.
	ListApprovalRequestsByEntity(ctx context.Context, entityType, entityID string) ([]domain.ApprovalRequest, error)
	// ListDecidedApprovalRequests pages through terminal requests by review time, newest first.
	ListDecidedApprovalRequests(ctx context.Context, limit int, nextToken *string) ([]domain.ApprovalRequest, *string, error)
}

// ApprovalWriter defines write operations on approval requests.
type ApprovalWriter interface {
	SaveApprovalRequest(ctx context.Context, request domain.ApprovalRequest) error
	// DecideApprovalRequest applies the decision only while the stored request is pending.
	// Otherwise it returns apperrors.ErrApprovalConflict and leaves the row untouched.
	DecideApprovalRequest(ctx context.Context, requestID string, decision domain.ApprovalDecision) (*domain.ApprovalRequest, error)
}

// ApprovalRepositoryFacade combines all approval request operations.
type ApprovalRepositoryFacade interface {
	ApprovalReader
	ApprovalWriter
}

// ChangeFeed delivers at-least-once notifications about approval request changes.
// The returned func stops the subscription.
type ChangeFeed interface {
	Subscribe(ctx context.Context, onChange func(domain.ChangeEvent)) (func(), error)
}
