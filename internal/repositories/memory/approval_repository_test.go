package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func pendingRequest(id string, offset time.Duration) domain.ApprovalRequest {
	return domain.ApprovalRequest{
		ID:            id,
		EntityType:    domain.EntityPurchaseOrder,
		EntityID:      "po-" + id,
		RuleID:        "po_total_over_5000",
		RuleName:      "amount > 5000",
		ApproverRoles: []string{"admin", "manager"},
		RequestedBy:   "u-cashier",
		RequestedAt:   baseTime.Add(offset),
		Status:        domain.ApprovalPending,
		Metadata:      map[string]any{"total": 6000},
	}
}

func approve(at time.Time) domain.ApprovalDecision {
	return domain.ApprovalDecision{Status: domain.ApprovalApproved, ReviewedBy: "u-manager", ReviewedAt: at}
}

func TestApprovalRepository_SaveAndFind(t *testing.T) {
	repo := NewApprovalRepository(nil)
	ctx := context.Background()

	req := pendingRequest("a", 0)
	require.NoError(t, repo.SaveApprovalRequest(ctx, req))
	assert.ErrorIs(t, repo.SaveApprovalRequest(ctx, req), apperrors.ErrDuplicate)

	found, err := repo.FindApprovalRequestByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, req, *found)

	// Returned values are copies.
	found.ApproverRoles[0] = "cashier"
	again, _ := repo.FindApprovalRequestByID(ctx, "a")
	assert.Equal(t, "admin", again.ApproverRoles[0])

	_, err = repo.FindApprovalRequestByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestApprovalRepository_DecideOnlyOnce(t *testing.T) {
	repo := NewApprovalRepository(nil)
	ctx := context.Background()
	require.NoError(t, repo.SaveApprovalRequest(ctx, pendingRequest("a", 0)))

	decided, err := repo.DecideApprovalRequest(ctx, "a", approve(baseTime.Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, decided.Status)
	require.NotNil(t, decided.ReviewedBy)
	assert.Equal(t, "u-manager", *decided.ReviewedBy)

	_, err = repo.DecideApprovalRequest(ctx, "a", domain.ApprovalDecision{
		Status: domain.ApprovalRejected, ReviewedBy: "u-admin", ReviewedAt: baseTime.Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, apperrors.ErrApprovalConflict)

	stored, _ := repo.FindApprovalRequestByID(ctx, "a")
	assert.Equal(t, domain.ApprovalApproved, stored.Status)
	assert.Equal(t, "u-manager", *stored.ReviewedBy)

	_, err = repo.DecideApprovalRequest(ctx, "missing", approve(baseTime))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestApprovalRepository_ConcurrentDecisionsHaveOneWinner(t *testing.T) {
	repo := NewApprovalRepository(nil)
	ctx := context.Background()
	require.NoError(t, repo.SaveApprovalRequest(ctx, pendingRequest("a", 0)))

	var wins, conflicts atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := domain.ApprovalApproved
			if i%2 == 1 {
				status = domain.ApprovalRejected
			}
			_, err := repo.DecideApprovalRequest(ctx, "a", domain.ApprovalDecision{
				Status: status, ReviewedBy: fmt.Sprintf("u-%d", i), ReviewedAt: baseTime,
			})
			if err == nil {
				wins.Add(1)
			} else if assert.ErrorIs(t, err, apperrors.ErrApprovalConflict) {
				conflicts.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(15), conflicts.Load())
}

func TestApprovalRepository_ListPendingNewestFirst(t *testing.T) {
	repo := NewApprovalRepository(nil)
	ctx := context.Background()
	require.NoError(t, repo.SaveApprovalRequest(ctx, pendingRequest("old", 0)))
	require.NoError(t, repo.SaveApprovalRequest(ctx, pendingRequest("new", time.Minute)))
	require.NoError(t, repo.SaveApprovalRequest(ctx, pendingRequest("done", 2*time.Minute)))
	_, err := repo.DecideApprovalRequest(ctx, "done", approve(baseTime.Add(time.Hour)))
	require.NoError(t, err)

	pending, err := repo.ListPendingApprovalRequests(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "new", pending[0].ID)
	assert.Equal(t, "old", pending[1].ID)

	history, err := repo.ListApprovalRequestsByEntity(ctx, domain.EntityPurchaseOrder, "po-done")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.ApprovalApproved, history[0].Status)
}

func TestApprovalRepository_ListDecidedPages(t *testing.T) {
	repo := NewApprovalRepository(nil)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("r%d", i)
		require.NoError(t, repo.SaveApprovalRequest(ctx, pendingRequest(id, 0)))
		_, err := repo.DecideApprovalRequest(ctx, id, approve(baseTime.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}
	require.NoError(t, repo.SaveApprovalRequest(ctx, pendingRequest("open", 0)))

	page1, token, err := repo.ListDecidedApprovalRequests(ctx, 2, nil)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, []string{"r4", "r3"}, ids(page1))

	page2, token, err := repo.ListDecidedApprovalRequests(ctx, 2, token)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, []string{"r2", "r1"}, ids(page2))

	page3, token, err := repo.ListDecidedApprovalRequests(ctx, 2, token)
	require.NoError(t, err)
	assert.Nil(t, token)
	assert.Equal(t, []string{"r0"}, ids(page3))

	bad := "%%%"
	_, _, err = repo.ListDecidedApprovalRequests(ctx, 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestApprovalRepository_PublishesChanges(t *testing.T) {
	feed := NewChangeFeed()
	repo := NewApprovalRepository(feed)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var events []domain.ChangeEvent
	unsubscribe, err := feed.Subscribe(ctx, func(e domain.ChangeEvent) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})
	require.NoError(t, err)

	require.NoError(t, repo.SaveApprovalRequest(ctx, pendingRequest("a", 0)))
	_, err = repo.DecideApprovalRequest(ctx, "a", approve(baseTime))
	require.NoError(t, err)

	unsubscribe()
	require.NoError(t, repo.SaveApprovalRequest(ctx, pendingRequest("b", 0)))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.ChangeEvent{
		{Op: domain.ChangeInsert, RequestID: "a"},
		{Op: domain.ChangeUpdate, RequestID: "a"},
	}, events)
}

func TestProfileDirectory_FindProfilesByIDs(t *testing.T) {
	dir := NewProfileDirectory(domain.UserProfile{UserID: "u1", Name: "Asha"})
	dir.Put(domain.UserProfile{UserID: "u2", Email: "ravi@example.com"})

	found, err := dir.FindProfilesByIDs(context.Background(), []string{"u1", "u2", "u3"})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, "Asha", found["u1"].DisplayName())
	assert.Equal(t, "ravi@example.com", found["u2"].DisplayName())
}

func ids(rs []domain.ApprovalRequest) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}
