package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
	"github.com/SscSPs/shopdesk_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/shopdesk_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shopdesk_backend/internal/core/ports/services"
	"github.com/SscSPs/shopdesk_backend/internal/dto"
	"github.com/SscSPs/shopdesk_backend/internal/platform/tracing"
	"github.com/google/uuid"
)

const (
	defaultDecidedPageSize = 20
	maxDecidedPageSize     = 100
)

// ApprovalLifecycleService tracks approval requests from creation to decision and
// keeps a shared pending list that every watching viewer receives after each refresh.
type ApprovalLifecycleService struct {
	BaseService
	repo     portsrepo.ApprovalRepositoryFacade
	config   portssvc.ConfigStoreReaderSvc
	profiles portsrepo.ProfileDirectory
	feed     portsrepo.ChangeFeed

	now             func() time.Time
	newID           func() string
	refreshInterval time.Duration

	mu        sync.RWMutex
	pending   []domain.PendingApproval
	refreshed bool
	viewers   map[chan []domain.PendingApproval]struct{}

	refreshMu     sync.Mutex
	refreshSignal chan struct{}
	running       atomic.Bool
}

// ApprovalLifecycleOption configures an ApprovalLifecycleService.
type ApprovalLifecycleOption func(*ApprovalLifecycleService)

// WithProfileDirectory enables requester name enrichment of the pending list.
func WithProfileDirectory(profiles portsrepo.ProfileDirectory) ApprovalLifecycleOption {
	return func(s *ApprovalLifecycleService) {
		s.profiles = profiles
	}
}

// WithChangeFeed makes Start subscribe to storage change notifications. Without a feed
// the service refreshes after its own mutations only.
func WithChangeFeed(feed portsrepo.ChangeFeed) ApprovalLifecycleOption {
	return func(s *ApprovalLifecycleService) {
		s.feed = feed
	}
}

// WithRefreshInterval adds a periodic refresh while started. Zero disables it.
func WithRefreshInterval(d time.Duration) ApprovalLifecycleOption {
	return func(s *ApprovalLifecycleService) {
		s.refreshInterval = d
	}
}

func WithClock(now func() time.Time) ApprovalLifecycleOption {
	return func(s *ApprovalLifecycleService) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) ApprovalLifecycleOption {
	return func(s *ApprovalLifecycleService) {
		s.newID = newID
	}
}

// NewApprovalLifecycleService creates a new ApprovalLifecycleService. Direct creation
// resolves approver roles from the rules in config.
func NewApprovalLifecycleService(repo portsrepo.ApprovalRepositoryFacade, config portssvc.ConfigStoreReaderSvc, options ...ApprovalLifecycleOption) *ApprovalLifecycleService {
	s := &ApprovalLifecycleService{
		repo:          repo,
		config:        config,
		now:           time.Now,
		newID:         uuid.NewString,
		viewers:       make(map[chan []domain.PendingApproval]struct{}),
		refreshSignal: make(chan struct{}, 1),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.ApprovalLifecycleSvcFacade = (*ApprovalLifecycleService)(nil)

// CreateApprovalRequest raises one pending request for a triggering action named by
// its rule ids. The reviewer roles are the union of those rules' approver roles in the
// current configuration.
func (s *ApprovalLifecycleService) CreateApprovalRequest(ctx context.Context, caller domain.Caller, req dto.CreateApprovalRequest) (_ *domain.ApprovalRequest, err error) {
	ctx, span := tracing.StartSpan(ctx, "approval.create")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"entity.type": req.EntityType, "entity.id": req.EntityID, "rule.id": req.RuleID})

	if strings.TrimSpace(req.EntityType) == "" || strings.TrimSpace(req.EntityID) == "" || strings.TrimSpace(req.RuleID) == "" {
		return nil, apperrors.NewValidationFailedError("entityType, entityId and ruleId are required")
	}

	matched, roles, err := s.resolveApproverRoles(req.EntityType, append([]string{req.RuleID}, req.MatchedRules...))
	if err != nil {
		s.LogWarn(ctx, err, "Approval request names an unusable rule",
			slog.String("entity_type", req.EntityType),
			slog.String("rule_id", req.RuleID))
		return nil, err
	}

	return s.raise(ctx, caller, domain.ApprovalDraft{
		EntityType:     req.EntityType,
		EntityID:       req.EntityID,
		RuleID:         req.RuleID,
		RuleName:       req.RuleName,
		MatchedRuleIDs: matched,
		ApproverRoles:  roles,
		Metadata:       req.Metadata,
	})
}

// RaiseApprovalRequest stores a draft whose approver roles were resolved by the engine,
// such as the request for a workflow transition flagged for approval.
func (s *ApprovalLifecycleService) RaiseApprovalRequest(ctx context.Context, caller domain.Caller, draft domain.ApprovalDraft) (_ *domain.ApprovalRequest, err error) {
	ctx, span := tracing.StartSpan(ctx, "approval.raise")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"entity.type": draft.EntityType, "entity.id": draft.EntityID, "rule.id": draft.RuleID})

	return s.raise(ctx, caller, draft)
}

// resolveApproverRoles looks every rule id up in the current snapshot. Each one must be
// an enabled rule of entityType.
func (s *ApprovalLifecycleService) resolveApproverRoles(entityType string, ruleIDs []string) ([]string, []string, error) {
	if s.config == nil {
		return nil, nil, apperrors.NewValidationFailedError("approval rules are not configured")
	}
	snapshot := s.config.Snapshot()
	ids := domain.UniqueStrings(ruleIDs)
	lists := make([][]string, 0, len(ids))
	for _, id := range ids {
		rule, ok := snapshot.Rule(id)
		if !ok || rule.EntityType != entityType {
			return nil, nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown approval rule %q for entity type %q", id, entityType))
		}
		if !rule.Enabled {
			return nil, nil, apperrors.NewValidationFailedError(fmt.Sprintf("approval rule %q is disabled", id))
		}
		lists = append(lists, rule.ApproverRoles)
	}
	return ids, domain.UnionRoles(lists...), nil
}

func (s *ApprovalLifecycleService) raise(ctx context.Context, caller domain.Caller, draft domain.ApprovalDraft) (*domain.ApprovalRequest, error) {
	if strings.TrimSpace(draft.EntityType) == "" || strings.TrimSpace(draft.EntityID) == "" || strings.TrimSpace(draft.RuleID) == "" {
		return nil, apperrors.NewValidationFailedError("entityType, entityId and ruleId are required")
	}
	if caller.UserID == "" {
		return nil, apperrors.NewValidationFailedError("requesting user is required")
	}
	roles := domain.UniqueStrings(draft.ApproverRoles)
	if len(roles) == 0 {
		return nil, apperrors.NewValidationFailedError("approval request for rule " + draft.RuleID + " has no approver roles")
	}

	ruleName := draft.RuleName
	if ruleName == "" {
		ruleName = draft.RuleID
	}
	matched := domain.UniqueStrings(draft.MatchedRuleIDs)
	if len(matched) == 0 {
		matched = []string{draft.RuleID}
	}

	request := domain.ApprovalRequest{
		ID:             s.newID(),
		EntityType:     draft.EntityType,
		EntityID:       draft.EntityID,
		RuleID:         draft.RuleID,
		RuleName:       ruleName,
		MatchedRuleIDs: matched,
		ApproverRoles:  roles,
		RequestedBy:    caller.UserID,
		RequestedAt:    s.now().UTC(),
		Status:         domain.ApprovalPending,
		Metadata:       draft.Metadata,
	}

	if err := s.repo.SaveApprovalRequest(ctx, request); err != nil {
		s.LogError(ctx, err, "Failed to save approval request",
			slog.String("entity_type", request.EntityType),
			slog.String("entity_id", request.EntityID))
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		return nil, apperrors.NewPersistenceError("failed to create approval request", err)
	}

	s.LogInfo(ctx, "Approval request created",
		slog.String("approval_id", request.ID),
		slog.String("entity_type", request.EntityType),
		slog.String("entity_id", request.EntityID),
		slog.String("rule_id", request.RuleID),
		slog.Any("approver_roles", request.ApproverRoles))

	if s.feed == nil {
		s.scheduleRefresh(ctx)
	}
	// The initiating view is gone; the stored request is still picked up by every other viewer.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *ApprovalLifecycleService) ApproveRequest(ctx context.Context, caller domain.Caller, requestID string, comment *string) (*domain.ApprovalRequest, error) {
	return s.decide(ctx, caller, requestID, domain.ApprovalApproved, comment)
}

func (s *ApprovalLifecycleService) RejectRequest(ctx context.Context, caller domain.Caller, requestID string, comment *string) (*domain.ApprovalRequest, error) {
	return s.decide(ctx, caller, requestID, domain.ApprovalRejected, comment)
}

// decide moves a pending request to a terminal status. The store applies the change only
// while the row is still pending, so concurrent reviewers cannot both win.
func (s *ApprovalLifecycleService) decide(ctx context.Context, caller domain.Caller, requestID string, status domain.ApprovalStatus, comment *string) (_ *domain.ApprovalRequest, err error) {
	ctx, span := tracing.StartSpan(ctx, "approval."+string(status))
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"approval.id": requestID, "reviewer.id": caller.UserID})

	logger := s.GetLogger(ctx).With(slog.String("approval_id", requestID), slog.String("decision", string(status)))

	current, err := s.repo.FindApprovalRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		logger.Error("Failed to load approval request", slog.String("error", err.Error()))
		return nil, apperrors.NewPersistenceError("failed to load approval request", err)
	}

	if current.Status.IsTerminal() {
		logger.Warn("Approval request already decided", slog.String("status", string(current.Status)))
		s.scheduleRefresh(ctx)
		return nil, fmt.Errorf("approval request %s is already %s: %w", requestID, current.Status, apperrors.ErrApprovalConflict)
	}

	if !current.CanBeReviewedBy(caller.Roles) {
		logger.Warn("Reviewer lacks an approver role", slog.Any("approver_roles", current.ApproverRoles))
		return nil, apperrors.NewForbiddenError("reviewer holds none of the approver roles for request " + requestID)
	}

	decided, err := s.repo.DecideApprovalRequest(ctx, requestID, domain.ApprovalDecision{
		Status:     status,
		ReviewedBy: caller.UserID,
		ReviewedAt: s.now().UTC(),
		Comment:    comment,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrApprovalConflict) {
			logger.Warn("Lost decision race, request already decided")
			s.scheduleRefresh(ctx)
			return nil, err
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		logger.Error("Failed to record approval decision", slog.String("error", err.Error()))
		return nil, apperrors.NewPersistenceError("failed to record approval decision", err)
	}

	logger.Info("Approval request decided", slog.String("reviewed_by", caller.UserID))

	if s.feed == nil {
		s.scheduleRefresh(ctx)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return decided, nil
}

func (s *ApprovalLifecycleService) GetApprovalRequest(ctx context.Context, requestID string) (*domain.ApprovalRequest, error) {
	request, err := s.repo.FindApprovalRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to load approval request", slog.String("approval_id", requestID))
		return nil, apperrors.NewPersistenceError("failed to load approval request", err)
	}
	return request, nil
}

// List fetches the pending requests newest first and attaches requester display names.
// A failing profile directory degrades to user ids instead of failing the list.
func (s *ApprovalLifecycleService) List(ctx context.Context) ([]domain.PendingApproval, error) {
	requests, err := s.repo.ListPendingApprovalRequests(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending approval requests")
		return nil, apperrors.NewPersistenceError("failed to list pending approval requests", err)
	}
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].RequestedAt.After(requests[j].RequestedAt)
	})

	profiles := map[string]domain.UserProfile{}
	if s.profiles != nil && len(requests) > 0 {
		ids := make([]string, 0, len(requests))
		for _, r := range requests {
			ids = append(ids, r.RequestedBy)
		}
		found, err := s.profiles.FindProfilesByIDs(ctx, domain.UniqueStrings(ids))
		if err != nil {
			s.LogWarn(ctx, err, "Failed to resolve requester profiles, falling back to user ids")
		} else {
			profiles = found
		}
	}

	list := make([]domain.PendingApproval, 0, len(requests))
	for _, r := range requests {
		if r.Status != domain.ApprovalPending {
			continue
		}
		name := r.RequestedBy
		if p, ok := profiles[r.RequestedBy]; ok {
			name = p.DisplayName()
		}
		list = append(list, domain.PendingApproval{ApprovalRequest: r, RequesterName: name})
	}
	return list, nil
}

// Pending returns the last refreshed list. It is empty until the first refresh.
func (s *ApprovalLifecycleService) Pending() []domain.PendingApproval {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.pending)
}

func (s *ApprovalLifecycleService) History(ctx context.Context, entityType, entityID string) ([]domain.ApprovalRequest, error) {
	requests, err := s.repo.ListApprovalRequestsByEntity(ctx, entityType, entityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list approval history",
			slog.String("entity_type", entityType),
			slog.String("entity_id", entityID))
		return nil, apperrors.NewPersistenceError("failed to list approval history", err)
	}
	return requests, nil
}

func (s *ApprovalLifecycleService) ListDecided(ctx context.Context, limit int, nextToken *string) ([]domain.ApprovalRequest, *string, error) {
	if limit <= 0 {
		limit = defaultDecidedPageSize
	}
	if limit > maxDecidedPageSize {
		limit = maxDecidedPageSize
	}
	requests, token, err := s.repo.ListDecidedApprovalRequests(ctx, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, nil, err
		}
		s.LogError(ctx, err, "Failed to list decided approval requests")
		return nil, nil, apperrors.NewPersistenceError("failed to list decided approval requests", err)
	}
	return requests, token, nil
}

// Refresh re-pulls the pending list and hands it to every watching viewer.
func (s *ApprovalLifecycleService) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	list, err := s.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.pending = list
	s.refreshed = true
	s.mu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.viewers {
		offerLatest(ch, slices.Clone(list))
	}
	s.LogDebug(ctx, "Pending approvals refreshed", slog.Int("count", len(list)), slog.Int("viewers", len(s.viewers)))
	return nil
}

// offerLatest replaces whatever the viewer has not consumed yet with list.
func offerLatest(ch chan []domain.PendingApproval, list []domain.PendingApproval) {
	select {
	case ch <- list:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- list:
	default:
	}
}

// Watch registers a viewer. The channel first carries the current list (if one has been
// loaded) and then every refreshed list; it is closed when ctx is done.
func (s *ApprovalLifecycleService) Watch(ctx context.Context) <-chan []domain.PendingApproval {
	ch := make(chan []domain.PendingApproval, 1)

	s.mu.Lock()
	s.viewers[ch] = struct{}{}
	if s.refreshed {
		ch <- slices.Clone(s.pending)
	}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.viewers, ch)
		close(ch)
		s.mu.Unlock()
	}()
	return ch
}

// Start loads the pending list, subscribes to the change feed and runs the refresh loop
// until the returned stop func is called or ctx is done.
func (s *ApprovalLifecycleService) Start(ctx context.Context) (func(), error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, errors.New("approval lifecycle service already started")
	}

	if err := s.Refresh(ctx); err != nil {
		s.LogError(ctx, err, "Initial pending approvals refresh failed, will retry on next change")
	}

	loopCtx, cancel := context.WithCancel(ctx)
	unsubscribe := func() {}
	if s.feed != nil {
		unsub, err := s.feed.Subscribe(loopCtx, func(event domain.ChangeEvent) {
			s.LogDebug(loopCtx, "Approval change received", slog.String("op", string(event.Op)), slog.String("approval_id", event.RequestID))
			s.signalRefresh()
		})
		if err != nil {
			cancel()
			s.running.Store(false)
			return nil, apperrors.NewPersistenceError("failed to subscribe to approval changes", err)
		}
		unsubscribe = unsub
	}

	done := make(chan struct{})
	go s.refreshLoop(loopCtx, done)

	var once sync.Once
	stop := func() {
		once.Do(func() {
			unsubscribe()
			cancel()
			<-done
			s.running.Store(false)
		})
	}
	return stop, nil
}

func (s *ApprovalLifecycleService) refreshLoop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	var tick <-chan time.Time
	if s.refreshInterval > 0 {
		ticker := time.NewTicker(s.refreshInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.refreshSignal:
		case <-tick:
		}
		if err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
			s.LogError(ctx, err, "Pending approvals refresh failed")
		}
	}
}

func (s *ApprovalLifecycleService) signalRefresh() {
	select {
	case s.refreshSignal <- struct{}{}:
	default:
	}
}

// scheduleRefresh hands the refresh to the loop when started, otherwise refreshes inline
// on a context detached from the caller's cancellation.
func (s *ApprovalLifecycleService) scheduleRefresh(ctx context.Context) {
	if s.running.Load() {
		s.signalRefresh()
		return
	}
	if err := s.Refresh(context.WithoutCancel(ctx)); err != nil {
		s.LogError(ctx, err, "Pending approvals refresh failed")
	}
}
