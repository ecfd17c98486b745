package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/shopdesk_backend/internal/core/ports/repositories"
	"github.com/SscSPs/shopdesk_backend/internal/utils/pagination"
)

// ApprovalRepository keeps approval requests in process memory. Decisions are applied
// under the write lock, so two reviewers racing on one request cannot both succeed.
type ApprovalRepository struct {
	mu       sync.RWMutex
	requests map[string]domain.ApprovalRequest
	feed     *ChangeFeed
}

// NewApprovalRepository creates a repository publishing to feed. feed may be nil.
func NewApprovalRepository(feed *ChangeFeed) *ApprovalRepository {
	return &ApprovalRepository{
		requests: make(map[string]domain.ApprovalRequest),
		feed:     feed,
	}
}

var _ portsrepo.ApprovalRepositoryFacade = (*ApprovalRepository)(nil)

func (r *ApprovalRepository) SaveApprovalRequest(ctx context.Context, request domain.ApprovalRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	if _, exists := r.requests[request.ID]; exists {
		r.mu.Unlock()
		return fmt.Errorf("%w: approval request %s already exists", apperrors.ErrDuplicate, request.ID)
	}
	r.requests[request.ID] = cloneRequest(request)
	r.mu.Unlock()

	r.publish(domain.ChangeInsert, request.ID)
	return nil
}

func (r *ApprovalRepository) DecideApprovalRequest(ctx context.Context, requestID string, decision domain.ApprovalDecision) (*domain.ApprovalRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	stored, ok := r.requests[requestID]
	if !ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("approval request %s: %w", requestID, apperrors.ErrNotFound)
	}
	if err := stored.Apply(decision); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.requests[requestID] = stored
	out := cloneRequest(stored)
	r.mu.Unlock()

	r.publish(domain.ChangeUpdate, requestID)
	return &out, nil
}

func (r *ApprovalRepository) FindApprovalRequestByID(ctx context.Context, requestID string) (*domain.ApprovalRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.requests[requestID]
	if !ok {
		return nil, fmt.Errorf("approval request %s: %w", requestID, apperrors.ErrNotFound)
	}
	out := cloneRequest(stored)
	return &out, nil
}

func (r *ApprovalRepository) ListPendingApprovalRequests(ctx context.Context) ([]domain.ApprovalRequest, error) {
	return r.collect(ctx, func(req domain.ApprovalRequest) bool {
		return req.Status == domain.ApprovalPending
	})
}

func (r *ApprovalRepository) ListApprovalRequestsByEntity(ctx context.Context, entityType, entityID string) ([]domain.ApprovalRequest, error) {
	return r.collect(ctx, func(req domain.ApprovalRequest) bool {
		return req.EntityType == entityType && req.EntityID == entityID
	})
}

// ListDecidedApprovalRequests pages by (reviewedAt, id) descending.
func (r *ApprovalRepository) ListDecidedApprovalRequests(ctx context.Context, limit int, nextToken *string) ([]domain.ApprovalRequest, *string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	var (
		hasCursor bool
		cursorAt  time.Time
		cursorID  string
	)
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		hasCursor, cursorAt, cursorID = true, at, id
	}

	r.mu.RLock()
	decided := make([]domain.ApprovalRequest, 0)
	for _, req := range r.requests {
		if !req.Status.IsTerminal() || req.ReviewedAt == nil {
			continue
		}
		if hasCursor && !pagination.After(*req.ReviewedAt, req.ID, cursorAt, cursorID) {
			continue
		}
		decided = append(decided, cloneRequest(req))
	}
	r.mu.RUnlock()

	sort.Slice(decided, func(i, j int) bool {
		a, b := decided[i], decided[j]
		if a.ReviewedAt.Equal(*b.ReviewedAt) {
			return a.ID > b.ID
		}
		return a.ReviewedAt.After(*b.ReviewedAt)
	})

	if len(decided) <= limit {
		return decided, nil, nil
	}
	page := decided[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(*last.ReviewedAt, last.ID)
	return page, &token, nil
}

// collect returns matching requests, newest first.
func (r *ApprovalRepository) collect(ctx context.Context, keep func(domain.ApprovalRequest) bool) ([]domain.ApprovalRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]domain.ApprovalRequest, 0)
	for _, req := range r.requests {
		if keep(req) {
			out = append(out, cloneRequest(req))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].RequestedAt.Equal(out[j].RequestedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].RequestedAt.After(out[j].RequestedAt)
	})
	return out, nil
}

func (r *ApprovalRepository) publish(op domain.ChangeOp, id string) {
	if r.feed != nil {
		r.feed.Publish(domain.ChangeEvent{Op: op, RequestID: id})
	}
}

func cloneRequest(req domain.ApprovalRequest) domain.ApprovalRequest {
	req.MatchedRuleIDs = slices.Clone(req.MatchedRuleIDs)
	req.ApproverRoles = slices.Clone(req.ApproverRoles)
	req.Metadata = maps.Clone(req.Metadata)
	if req.ReviewedBy != nil {
		v := *req.ReviewedBy
		req.ReviewedBy = &v
	}
	if req.ReviewedAt != nil {
		v := *req.ReviewedAt
		req.ReviewedAt = &v
	}
	if req.Comment != nil {
		v := *req.Comment
		req.Comment = &v
	}
	return req
}
