package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/MacDuki/sharedShop/internal/membership"
	"github.com/MacDuki/sharedShop/internal/models"
	"github.com/MacDuki/sharedShop/internal/ratelimit"
	"github.com/MacDuki/sharedShop/internal/storage"
	"github.com/MacDuki/sharedShop/pkg/api"
)

// tokenBytes is the entropy of an invitation token before hex encoding.
const tokenBytes = 32

// MembershipService implements the MembershipService RPC interface.
type MembershipService struct {
	store   storage.Store
	limiter ratelimit.Limiter
	now     func() time.Time
}

// NewMembershipService creates a MembershipService. A nil limiter disables
// rate limiting of invitation accepts.
func NewMembershipService(store storage.Store, limiter ratelimit.Limiter) *MembershipService {
	if limiter == nil {
		limiter = ratelimit.Noop{}
	}
	return &MembershipService{store: store, limiter: limiter, now: time.Now}
}

// CreateBudgetInvitation issues a single-use invitation token. Only the
// owner may invite.
func (s *MembershipService) CreateBudgetInvitation(ctx context.Context, req *connect.Request[api.CreateBudgetInvitationRequest]) (*connect.Response[api.CreateBudgetInvitationResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateBudgetInvitation request received", "user_id", caller, "budget_id", req.Msg.BudgetID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	budget, err := loadBudget(ctx, s.store, req.Msg.BudgetID, caller, ownerAccess, "only the owner can invite members")
	if err != nil {
		return nil, err
	}

	token, err := newInvitationToken()
	if err != nil {
		return nil, internalError("Failed to generate invitation token", err, "budget_id", budget.ID)
	}
	now := s.now().UTC()
	inv := &models.Invitation{
		BudgetID:  budget.ID,
		InvitedBy: caller,
		Token:     token,
		ExpiresAt: now.Add(models.InvitationTTL),
		Status:    models.InvitationPending,
		CreatedAt: now,
	}
	if err := s.store.CreateInvitation(ctx, inv); err != nil {
		return nil, internalError("CreateBudgetInvitation failed", err, "budget_id", budget.ID)
	}

	slog.Info("Invitation created", "budget_id", budget.ID, "invitation_id", inv.ID)
	return connect.NewResponse(&api.CreateBudgetInvitationResponse{
		InvitationID: inv.ID,
		Token:        inv.Token,
		ExpiresAt:    inv.ExpiresAt,
	}), nil
}

// AcceptBudgetInvitation joins the caller to the invitation's budget and
// consumes the invitation.
func (s *MembershipService) AcceptBudgetInvitation(ctx context.Context, req *connect.Request[api.AcceptBudgetInvitationRequest]) (*connect.Response[api.AcceptBudgetInvitationResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AcceptBudgetInvitation request received", "user_id", caller)

	allowed, err := s.limiter.Allow(ctx, "accept_invitation:"+caller)
	if err != nil {
		return nil, internalError("Rate limiter failed", err, "user_id", caller)
	}
	if !allowed {
		return nil, connect.NewError(connect.CodeResourceExhausted, errors.New("too many invitation attempts, try again later"))
	}

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	inv, err := s.store.GetInvitationByToken(ctx, req.Msg.Token)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound("invitation not found")
	}
	if err != nil {
		return nil, internalError("Failed to load invitation", err, "user_id", caller)
	}

	now := s.now().UTC()
	if inv.Expired(now) {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("invitation has expired"))
	}
	if inv.Status != models.InvitationPending {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("invitation has already been used"))
	}

	budget, err := s.store.GetBudget(ctx, inv.BudgetID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound("budget not found")
	}
	if err != nil {
		return nil, internalError("Failed to load budget", err, "budget_id", inv.BudgetID)
	}
	if budget.IsMember(caller) {
		return nil, connect.NewError(connect.CodeAlreadyExists, errors.New("you are already a member of this budget"))
	}

	batch := s.store.NewBatch()
	membership.Join(batch, budget.ID, caller)
	batch.AcceptInvitation(inv.ID, caller, now)
	if err := s.store.CommitBatch(ctx, batch); err != nil {
		switch {
		case errors.Is(err, storage.ErrPreconditionFailed):
			return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("invitation has already been used"))
		case errors.Is(err, storage.ErrNotFound):
			return nil, notFound("budget or user profile not found")
		}
		return nil, internalError("AcceptBudgetInvitation failed", err, "budget_id", budget.ID, "user_id", caller)
	}

	refreshed, err := s.store.GetBudget(ctx, budget.ID)
	if err != nil {
		return nil, internalError("Failed to fetch updated budget", err, "budget_id", budget.ID)
	}
	members, err := s.members(ctx, refreshed)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, budget.OwnerID, budget.ID, models.NotificationMemberJoined,
		"New member joined",
		fmt.Sprintf("%s joined %s", memberName(members, caller), budget.Name),
		map[string]string{"budgetId": budget.ID, "userId": caller},
	)

	slog.Info("Invitation accepted", "budget_id", budget.ID, "user_id", caller, "invitation_id", inv.ID)
	out := toAPIBudget(refreshed)
	return connect.NewResponse(&api.AcceptBudgetInvitationResponse{
		Budget:  &out,
		Members: members,
	}), nil
}

// RemoveBudgetMember removes a non-owner member. Only the owner may remove.
func (s *MembershipService) RemoveBudgetMember(ctx context.Context, req *connect.Request[api.RemoveBudgetMemberRequest]) (*connect.Response[api.RemoveBudgetMemberResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RemoveBudgetMember request received",
		"user_id", caller,
		"budget_id", req.Msg.BudgetID,
		"member_user_id", req.Msg.MemberUserID,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	budget, err := loadBudget(ctx, s.store, req.Msg.BudgetID, caller, ownerAccess, "only the owner can remove members")
	if err != nil {
		return nil, err
	}
	target := req.Msg.MemberUserID
	if budget.IsOwner(target) {
		return nil, invalidArgument("the owner cannot be removed from the budget")
	}
	if !budget.IsMember(target) {
		return nil, notFound("user is not a member of this budget")
	}

	batch := s.store.NewBatch()
	membership.Leave(batch, budget.ID, target)
	if err := s.store.CommitBatch(ctx, batch); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("budget or user profile not found")
		}
		return nil, internalError("RemoveBudgetMember failed", err, "budget_id", budget.ID, "member_user_id", target)
	}

	refreshed, err := s.store.GetBudget(ctx, budget.ID)
	if err != nil {
		return nil, internalError("Failed to fetch updated budget", err, "budget_id", budget.ID)
	}
	members, err := s.members(ctx, refreshed)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, target, budget.ID, models.NotificationMemberRemoved,
		"Removed from budget",
		fmt.Sprintf("You were removed from %s", budget.Name),
		map[string]string{"budgetId": budget.ID},
	)

	slog.Info("Member removed", "budget_id", budget.ID, "member_user_id", target)
	return connect.NewResponse(&api.RemoveBudgetMemberResponse{
		Members:     members,
		MemberCount: len(refreshed.MemberIDs),
	}), nil
}

func (s *MembershipService) members(ctx context.Context, budget *models.Budget) ([]*api.Member, error) {
	profiles, err := s.store.GetUsersByIDs(ctx, budget.MemberIDs)
	if err != nil {
		return nil, internalError("Failed to load member profiles", err, "budget_id", budget.ID)
	}
	return toAPIMembers(budget, profiles, true), nil
}

// notify records a system notification. Failures are logged and dropped;
// the membership change has already committed.
func (s *MembershipService) notify(ctx context.Context, userID, budgetID, kind, title, body string, payload map[string]string) {
	raw, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("Failed to encode notification payload", "type", kind, "error", err)
		return
	}
	n := &models.Notification{
		UserID:         userID,
		BudgetID:       budgetID,
		Type:           kind,
		Title:          title,
		Body:           body,
		Payload:        raw,
		TriggerContext: models.TriggerSystem,
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		slog.Warn("Failed to record notification", "type", kind, "user_id", userID, "error", err)
	}
}

func memberName(members []*api.Member, userID string) string {
	for _, m := range members {
		if m.UserID == userID {
			return m.Name
		}
	}
	return unknownUserName
}

func newInvitationToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
