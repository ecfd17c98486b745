package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/shopdesk_backend/internal/core/ports/repositories"
	"github.com/SscSPs/shopdesk_backend/internal/models"
	"github.com/SscSPs/shopdesk_backend/internal/utils/mapping"
	"github.com/SscSPs/shopdesk_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const approvalColumns = `approval_id, entity_type, entity_id, rule_id, rule_name, matched_rule_ids, approver_roles,
	requested_by, requested_at, status, reviewed_by, reviewed_at, comment, metadata`

type PgxApprovalRepository struct {
	BaseRepository
}

func newPgxApprovalRepository(pool *pgxpool.Pool) *PgxApprovalRepository {
	return &PgxApprovalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxApprovalRepository implements portsrepo.ApprovalRepositoryFacade
var (
	_ portsrepo.ApprovalRepositoryFacade = (*PgxApprovalRepository)(nil)
	_ portsrepo.RepositoryWithTx         = (*PgxApprovalRepository)(nil)
)

func (r *PgxApprovalRepository) SaveApprovalRequest(ctx context.Context, request domain.ApprovalRequest) error {
	m := mapping.ToModelApprovalRequest(request)
	query := `
		INSERT INTO approval_requests (` + approvalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ApprovalID,
		m.EntityType,
		m.EntityID,
		m.RuleID,
		m.RuleName,
		m.MatchedRuleIDs,
		m.ApproverRoles,
		m.RequestedBy,
		m.RequestedAt,
		m.Status,
		m.ReviewedBy,
		m.ReviewedAt,
		m.Comment,
		m.Metadata,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: approval request %s already exists", apperrors.ErrDuplicate, m.ApprovalID)
		}
		return fmt.Errorf("failed to save approval request %s: %w", m.ApprovalID, err)
	}
	return nil
}

// DecideApprovalRequest updates the row only while it is still pending. When no row is
// updated a read in the same transaction tells a missing request from a decided one.
func (r *PgxApprovalRepository) DecideApprovalRequest(ctx context.Context, requestID string, decision domain.ApprovalDecision) (*domain.ApprovalRequest, error) {
	if !decision.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %q is not a decision", apperrors.ErrValidation, decision.Status)
	}
	query := `
		UPDATE approval_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, comment = $5
		WHERE approval_id = $1 AND status = 'pending'
		RETURNING ` + approvalColumns + `;
	`
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	rows, err := tx.Query(ctx, query, requestID, string(decision.Status), decision.ReviewedBy, decision.ReviewedAt, decision.Comment)
	if err != nil {
		return nil, fmt.Errorf("failed to decide approval request %s: %w", requestID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ApprovalRequest])
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("failed to decide approval request %s: %w", requestID, err)
		}
		var status string
		err := tx.QueryRow(ctx, `SELECT status FROM approval_requests WHERE approval_id = $1;`, requestID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("approval request %s: %w", requestID, apperrors.ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read approval request %s: %w", requestID, err)
		}
		return nil, fmt.Errorf("approval request %s is %s: %w", requestID, status, apperrors.ErrApprovalConflict)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	decided := mapping.ToDomainApprovalRequest(m)
	return &decided, nil
}

func (r *PgxApprovalRepository) FindApprovalRequestByID(ctx context.Context, requestID string) (*domain.ApprovalRequest, error) {
	query := `SELECT ` + approvalColumns + ` FROM approval_requests WHERE approval_id = $1;`
	rows, err := r.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find approval request %s: %w", requestID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ApprovalRequest])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("approval request %s: %w", requestID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find approval request %s: %w", requestID, err)
	}
	request := mapping.ToDomainApprovalRequest(m)
	return &request, nil
}

func (r *PgxApprovalRepository) ListPendingApprovalRequests(ctx context.Context) ([]domain.ApprovalRequest, error) {
	query := `
		SELECT ` + approvalColumns + `
		FROM approval_requests
		WHERE status = 'pending'
		ORDER BY requested_at DESC, approval_id DESC;
	`
	return r.list(ctx, query)
}

func (r *PgxApprovalRepository) ListApprovalRequestsByEntity(ctx context.Context, entityType, entityID string) ([]domain.ApprovalRequest, error) {
	query := `
		SELECT ` + approvalColumns + `
		FROM approval_requests
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY requested_at DESC, approval_id DESC;
	`
	return r.list(ctx, query, entityType, entityID)
}

// ListDecidedApprovalRequests uses keyset pagination over (reviewed_at, approval_id).
func (r *PgxApprovalRepository) ListDecidedApprovalRequests(ctx context.Context, limit int, nextToken *string) ([]domain.ApprovalRequest, *string, error) {
	var (
		cursorAt *time.Time
		cursorID *string
	)
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		cursorAt, cursorID = &at, &id
	}

	// Fetch one extra row to know whether another page exists.
	query := `
		SELECT ` + approvalColumns + `
		FROM approval_requests
		WHERE status <> 'pending'
		  AND ($1::timestamptz IS NULL OR (reviewed_at, approval_id) < ($1::timestamptz, $2::text))
		ORDER BY reviewed_at DESC, approval_id DESC
		LIMIT $3;
	`
	requests, err := r.list(ctx, query, cursorAt, cursorID, limit+1)
	if err != nil {
		return nil, nil, err
	}
	if len(requests) <= limit {
		return requests, nil, nil
	}
	page := requests[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(*last.ReviewedAt, last.ID)
	return page, &token, nil
}

func (r *PgxApprovalRepository) list(ctx context.Context, query string, args ...any) ([]domain.ApprovalRequest, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query approval requests: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ApprovalRequest])
	if err != nil {
		return nil, fmt.Errorf("failed to scan approval requests: %w", err)
	}
	return mapping.ToDomainApprovalRequestSlice(ms), nil
}
