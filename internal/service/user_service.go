package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"

	"github.com/MacDuki/sharedShop/internal/auth"
	"github.com/MacDuki/sharedShop/internal/calculator"
	"github.com/MacDuki/sharedShop/internal/models"
	"github.com/MacDuki/sharedShop/internal/storage"
	"github.com/MacDuki/sharedShop/pkg/api"
)

// UserService implements the UserService RPC interface.
type UserService struct {
	store storage.Store
	names auth.DisplayNameSyncer
}

// NewUserService creates a UserService. names may be nil when the identity
// provider keeps no display name of its own.
func NewUserService(store storage.Store, names auth.DisplayNameSyncer) *UserService {
	return &UserService{store: store, names: names}
}

// GetCurrentUserProfile returns the caller's profile.
func (s *UserService) GetCurrentUserProfile(ctx context.Context, req *connect.Request[api.GetCurrentUserProfileRequest]) (*connect.Response[api.GetCurrentUserProfileResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetCurrentUserProfile request received", "user_id", caller)

	user, err := s.loadUser(ctx, caller)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetCurrentUserProfileResponse{Profile: toAPIUser(user)}), nil
}

// UpdateUserProfile changes the caller's name, photo or preferences.
// A name change is mirrored to the identity record.
func (s *UserService) UpdateUserProfile(ctx context.Context, req *connect.Request[api.UpdateUserProfileRequest]) (*connect.Response[api.UpdateUserProfileResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateUserProfile request received", "user_id", caller)

	var update storage.ProfileUpdate
	if req.Msg.Name != nil {
		name, ok := trimmed(*req.Msg.Name)
		if !ok {
			return nil, invalidArgument("name cannot be empty")
		}
		update.Name = &name
	}
	update.PhotoURL = req.Msg.PhotoURL
	update.Preferences = req.Msg.Preferences
	if update.Name == nil && update.PhotoURL == nil && update.Preferences == nil {
		return nil, invalidArgument("no valid fields to update")
	}

	if err := s.store.UpdateUserProfile(ctx, caller, update); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("user profile not found")
		}
		return nil, internalError("UpdateUserProfile failed", err, "user_id", caller)
	}

	if update.Name != nil && s.names != nil {
		// The profile is the source of truth; a stale identity name is logged, not fatal.
		if err := s.names.SyncDisplayName(ctx, caller, *update.Name); err != nil {
			slog.Warn("Failed to sync display name", "user_id", caller, "error", err)
		}
	}

	user, err := s.loadUser(ctx, caller)
	if err != nil {
		return nil, err
	}
	slog.Info("User profile updated", "user_id", caller)
	return connect.NewResponse(&api.UpdateUserProfileResponse{Profile: toAPIUser(user)}), nil
}

// GetUserBudgets lists every budget the caller belongs to with its spend totals.
func (s *UserService) GetUserBudgets(ctx context.Context, req *connect.Request[api.GetUserBudgetsRequest]) (*connect.Response[api.GetUserBudgetsResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetUserBudgets request received", "user_id", caller)

	budgets, err := s.store.ListBudgetsByMember(ctx, caller)
	if err != nil {
		return nil, internalError("GetUserBudgets failed", err, "user_id", caller)
	}

	entries := make([]*api.BudgetListEntry, len(budgets))
	g, gctx := errgroup.WithContext(ctx)
	for i, b := range budgets {
		g.Go(func() error {
			items, err := s.store.ListItems(gctx, b.ID, storage.ItemFilter{})
			if err != nil {
				return err
			}
			summary := calculator.Summarize(b.BudgetAmount, items)
			entries[i] = &api.BudgetListEntry{
				Budget:      toAPIBudget(b),
				TotalSpent:  summary.TotalSpent,
				Remaining:   summary.Remaining,
				IsOwner:     b.IsOwner(caller),
				MemberCount: len(b.MemberIDs),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, internalError("Failed to load budget items", err, "user_id", caller)
	}

	slog.Info("GetUserBudgets successful", "user_id", caller, "count", len(entries))
	return connect.NewResponse(&api.GetUserBudgetsResponse{Budgets: entries}), nil
}

// GetLastActiveBudget returns the caller's last active budget. A reference
// to a deleted budget, or one the caller has left, is cleared and reported
// as null.
func (s *UserService) GetLastActiveBudget(ctx context.Context, req *connect.Request[api.GetLastActiveBudgetRequest]) (*connect.Response[api.GetLastActiveBudgetResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetLastActiveBudget request received", "user_id", caller)

	user, err := s.loadUser(ctx, caller)
	if err != nil {
		return nil, err
	}
	budgetID := user.LastActiveBudgetID
	if budgetID == "" {
		return connect.NewResponse(&api.GetLastActiveBudgetResponse{}), nil
	}

	budget, err := s.store.GetBudget(ctx, budgetID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return nil, internalError("Failed to load last active budget", err, "user_id", caller, "budget_id", budgetID)
	case budget.IsMember(caller):
		return connect.NewResponse(&api.GetLastActiveBudgetResponse{BudgetID: &budgetID}), nil
	}

	if err := s.store.ClearLastActiveBudget(ctx, caller, budgetID); err != nil {
		return nil, internalError("Failed to clear stale last active budget", err, "user_id", caller, "budget_id", budgetID)
	}
	slog.Info("Cleared stale last active budget", "user_id", caller, "budget_id", budgetID)
	return connect.NewResponse(&api.GetLastActiveBudgetResponse{}), nil
}

// SetLastActiveBudget records a budget the caller belongs to as last active.
func (s *UserService) SetLastActiveBudget(ctx context.Context, req *connect.Request[api.SetLastActiveBudgetRequest]) (*connect.Response[api.SetLastActiveBudgetResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("SetLastActiveBudget request received", "user_id", caller, "budget_id", req.Msg.BudgetID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if _, err := loadBudget(ctx, s.store, req.Msg.BudgetID, caller, memberAccess, "you are not a member of this budget"); err != nil {
		return nil, err
	}

	if err := s.store.SetLastActiveBudget(ctx, caller, req.Msg.BudgetID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("user profile not found")
		}
		return nil, internalError("SetLastActiveBudget failed", err, "user_id", caller)
	}
	return connect.NewResponse(&api.SetLastActiveBudgetResponse{BudgetID: req.Msg.BudgetID}), nil
}

func (s *UserService) loadUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound("user profile not found")
	}
	if err != nil {
		return nil, internalError("Failed to load user", err, "user_id", userID)
	}
	return user, nil
}
