package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/MacDuki/sharedShop/internal/calculator"
	"github.com/MacDuki/sharedShop/internal/membership"
	"github.com/MacDuki/sharedShop/internal/models"
	"github.com/MacDuki/sharedShop/internal/storage"
	"github.com/MacDuki/sharedShop/pkg/api"
)

// BudgetService implements the BudgetService RPC interface.
type BudgetService struct {
	store storage.Store
	now   func() time.Time
}

// NewBudgetService creates a new BudgetService with the given storage backend.
func NewBudgetService(store storage.Store) *BudgetService {
	return &BudgetService{store: store, now: time.Now}
}

// CreateBudget creates a budget owned by the caller, who becomes its only member.
func (s *BudgetService) CreateBudget(ctx context.Context, req *connect.Request[api.CreateBudgetRequest]) (*connect.Response[api.CreateBudgetResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateBudget request received",
		"user_id", caller,
		"name", req.Msg.Name,
		"period", req.Msg.BudgetPeriod,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	name, ok := trimmed(req.Msg.Name)
	if !ok {
		return nil, invalidArgument("name cannot be empty")
	}

	period := models.BudgetPeriod(req.Msg.BudgetPeriod)
	periodEnd, err := calculator.PeriodEnd(period, s.now(), req.Msg.CustomPeriodEnd)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	budget := &models.Budget{
		Name:             name,
		Description:      req.Msg.Description,
		BudgetAmount:     req.Msg.BudgetAmount,
		BudgetPeriod:     period,
		OwnerID:          caller,
		CurrentPeriodEnd: periodEnd,
		IconName:         req.Msg.IconName,
		ColorHex:         req.Msg.ColorHex,
	}

	batch := s.store.NewBatch()
	batch.CreateBudget(budget)
	membership.Join(batch, budget.ID, caller)
	if err := s.store.CommitBatch(ctx, batch); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("user profile not found")
		}
		return nil, internalError("CreateBudget failed", err, "user_id", caller)
	}
	budget.MemberIDs = []string{caller}

	slog.Info("Budget created", "budget_id", budget.ID, "owner_id", caller)
	out := toAPIBudget(budget)
	return connect.NewResponse(&api.CreateBudgetResponse{Budget: &out}), nil
}

// GetBudgetDetails returns a budget with its spend figures and member profiles.
func (s *BudgetService) GetBudgetDetails(ctx context.Context, req *connect.Request[api.GetBudgetDetailsRequest]) (*connect.Response[api.GetBudgetDetailsResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetBudgetDetails request received", "user_id", caller, "budget_id", req.Msg.BudgetID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	budget, err := loadBudget(ctx, s.store, req.Msg.BudgetID, caller, memberAccess, "you are not a member of this budget")
	if err != nil {
		return nil, err
	}

	var (
		items    []*models.ShoppingItem
		profiles map[string]*models.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.store.ListItems(gctx, budget.ID, storage.ItemFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		profiles, err = s.store.GetUsersByIDs(gctx, budget.MemberIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, internalError("Failed to load budget details", err, "budget_id", budget.ID)
	}

	summary := calculator.Summarize(budget.BudgetAmount, items)
	details := &api.BudgetDetails{
		Budget:             toAPIBudget(budget),
		TotalSpent:         summary.TotalSpent,
		Remaining:          summary.Remaining,
		PercentageUsed:     summary.PercentageUsed,
		Status:             string(summary.Status),
		DaysRemaining:      calculator.DaysRemaining(budget.CurrentPeriodEnd, s.now()),
		ItemCount:          summary.ItemCount,
		PurchasedItemCount: summary.PurchasedCount,
		Members:            toAPIMembers(budget, profiles, false),
	}

	slog.Info("GetBudgetDetails successful",
		"budget_id", budget.ID,
		"total_spent", summary.TotalSpent,
		"status", summary.Status,
	)
	return connect.NewResponse(&api.GetBudgetDetailsResponse{Budget: details}), nil
}

// UpdateBudget applies a partial update. Only the owner may update.
func (s *BudgetService) UpdateBudget(ctx context.Context, req *connect.Request[api.UpdateBudgetRequest]) (*connect.Response[api.UpdateBudgetResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateBudget request received", "user_id", caller, "budget_id", req.Msg.BudgetID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	budget, err := loadBudget(ctx, s.store, req.Msg.BudgetID, caller, ownerAccess, "only the owner can update the budget")
	if err != nil {
		return nil, err
	}

	update, err := s.budgetUpdate(budget, req.Msg)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateBudget(ctx, budget.ID, update); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("budget not found")
		}
		return nil, internalError("UpdateBudget failed", err, "budget_id", budget.ID)
	}

	updated, err := s.store.GetBudget(ctx, budget.ID)
	if err != nil {
		return nil, internalError("Failed to fetch updated budget", err, "budget_id", budget.ID)
	}

	slog.Info("Budget updated", "budget_id", budget.ID)
	out := toAPIBudget(updated)
	return connect.NewResponse(&api.UpdateBudgetResponse{Budget: &out}), nil
}

// budgetUpdate turns the request into a storage update. A new period
// restarts the current period from now.
func (s *BudgetService) budgetUpdate(budget *models.Budget, msg *api.UpdateBudgetRequest) (storage.BudgetUpdate, error) {
	var update storage.BudgetUpdate
	empty := true

	if msg.Name != nil {
		name, ok := trimmed(*msg.Name)
		if !ok {
			return update, invalidArgument("name cannot be empty")
		}
		update.Name = &name
		empty = false
	}
	if msg.Description != nil {
		update.Description = msg.Description
		empty = false
	}
	if msg.BudgetAmount != nil {
		if *msg.BudgetAmount <= 0 {
			return update, invalidArgument("budgetAmount must be a positive number")
		}
		update.BudgetAmount = msg.BudgetAmount
		empty = false
	}

	switch {
	case msg.BudgetPeriod != nil:
		period := models.BudgetPeriod(*msg.BudgetPeriod)
		end, err := calculator.PeriodEnd(period, s.now(), msg.CustomPeriodEnd)
		if err != nil {
			return update, connect.NewError(connect.CodeInvalidArgument, err)
		}
		update.BudgetPeriod = &period
		update.CurrentPeriodEnd = &end
		empty = false
	case msg.CustomPeriodEnd != nil:
		if budget.BudgetPeriod != models.PeriodCustom {
			return update, invalidArgument("customPeriodEnd applies only to custom budgets")
		}
		end := *msg.CustomPeriodEnd
		update.CurrentPeriodEnd = &end
		empty = false
	}

	if msg.IconName != nil {
		update.IconName = msg.IconName
		empty = false
	}
	if msg.ColorHex != nil {
		update.ColorHex = msg.ColorHex
		empty = false
	}

	if empty {
		return update, invalidArgument("no valid fields to update")
	}
	return update, nil
}

// DeleteBudget removes a budget with all of its items, then detaches it from
// every former member. Only the owner may delete.
//
// Items are deleted in batches no larger than the store allows; the budget
// itself goes in the last one. Member cleanup runs per member after the
// budget is gone, and members that could not be updated are reported.
func (s *BudgetService) DeleteBudget(ctx context.Context, req *connect.Request[api.DeleteBudgetRequest]) (*connect.Response[api.DeleteBudgetResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteBudget request received", "user_id", caller, "budget_id", req.Msg.BudgetID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	budget, err := loadBudget(ctx, s.store, req.Msg.BudgetID, caller, ownerAccess, "only the owner can delete the budget")
	if err != nil {
		return nil, err
	}

	items, err := s.store.ListItems(ctx, budget.ID, storage.ItemFilter{})
	if err != nil {
		return nil, internalError("Failed to list budget items", err, "budget_id", budget.ID)
	}

	maxOps := s.store.MaxBatchOps()
	batch := s.store.NewBatch()
	for _, item := range items {
		if batch.Len() == maxOps {
			if err := s.store.CommitBatch(ctx, batch); err != nil {
				return nil, internalError("Failed to delete budget items", err, "budget_id", budget.ID)
			}
			batch = s.store.NewBatch()
		}
		batch.DeleteItem(item.ID)
	}
	if batch.Len() == maxOps {
		if err := s.store.CommitBatch(ctx, batch); err != nil {
			return nil, internalError("Failed to delete budget items", err, "budget_id", budget.ID)
		}
		batch = s.store.NewBatch()
	}
	batch.DeleteBudget(budget.ID)
	if err := s.store.CommitBatch(ctx, batch); err != nil {
		return nil, internalError("Failed to delete budget", err, "budget_id", budget.ID)
	}

	var (
		updated int
		failed  []string
		errs    error
	)
	for _, memberID := range budget.MemberIDs {
		b := s.store.NewBatch()
		membership.Detach(b, budget.ID, memberID)
		if err := s.store.CommitBatch(ctx, b); err != nil {
			failed = append(failed, memberID)
			errs = multierr.Append(errs, err)
			continue
		}
		updated++
	}
	if errs != nil {
		slog.Warn("Budget deleted with member cleanup failures",
			"budget_id", budget.ID,
			"failed_members", failed,
			"error", errs,
		)
	}

	slog.Info("Budget deleted",
		"budget_id", budget.ID,
		"items_deleted", len(items),
		"members_updated", updated,
	)
	return connect.NewResponse(&api.DeleteBudgetResponse{
		ItemsDeleted:   len(items),
		MembersUpdated: updated,
		FailedMembers:  failed,
	}), nil
}

// GetBudgetMembers lists member profiles. Members without a profile are
// shown as "Unknown User".
func (s *BudgetService) GetBudgetMembers(ctx context.Context, req *connect.Request[api.GetBudgetMembersRequest]) (*connect.Response[api.GetBudgetMembersResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetBudgetMembers request received", "user_id", caller, "budget_id", req.Msg.BudgetID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	budget, err := loadBudget(ctx, s.store, req.Msg.BudgetID, caller, memberAccess, "you are not a member of this budget")
	if err != nil {
		return nil, err
	}

	profiles, err := s.store.GetUsersByIDs(ctx, budget.MemberIDs)
	if err != nil {
		return nil, internalError("Failed to load member profiles", err, "budget_id", budget.ID)
	}

	members := toAPIMembers(budget, profiles, true)
	return connect.NewResponse(&api.GetBudgetMembersResponse{
		Members: members,
		OwnerID: budget.OwnerID,
		Count:   len(members),
	}), nil
}

// GetMemberExpenses breaks purchased spend down by purchaser.
func (s *BudgetService) GetMemberExpenses(ctx context.Context, req *connect.Request[api.GetMemberExpensesRequest]) (*connect.Response[api.GetMemberExpensesResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetMemberExpenses request received", "user_id", caller, "budget_id", req.Msg.BudgetID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	budget, err := loadBudget(ctx, s.store, req.Msg.BudgetID, caller, memberAccess, "you are not a member of this budget")
	if err != nil {
		return nil, err
	}

	purchased := true
	items, err := s.store.ListItems(ctx, budget.ID, storage.ItemFilter{Purchased: &purchased})
	if err != nil {
		return nil, internalError("Failed to list purchased items", err, "budget_id", budget.ID)
	}

	spend, grandTotal := calculator.SpendByMember(items)
	ids := make([]string, len(spend))
	for i, m := range spend {
		ids[i] = m.UserID
	}
	profiles, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, internalError("Failed to load member profiles", err, "budget_id", budget.ID)
	}

	members := make([]*api.MemberExpense, len(spend))
	totalItems := 0
	for i, m := range spend {
		name := unknownUserName
		if p, ok := profiles[m.UserID]; ok {
			name = p.Name
		}
		apiItems := make([]*api.ShoppingItem, len(m.Items))
		for j, item := range m.Items {
			apiItems[j] = toAPIItem(item)
		}
		members[i] = &api.MemberExpense{
			UserID:     m.UserID,
			Name:       name,
			Total:      m.Total,
			ItemCount:  m.ItemCount,
			Percentage: m.Percentage,
			Items:      apiItems,
		}
		totalItems += m.ItemCount
	}

	return connect.NewResponse(&api.GetMemberExpensesResponse{
		Members:    members,
		GrandTotal: grandTotal,
		TotalItems: totalItems,
	}), nil
}
