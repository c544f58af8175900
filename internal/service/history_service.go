package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/MacDuki/sharedShop/internal/calculator"
	"github.com/MacDuki/sharedShop/internal/models"
	"github.com/MacDuki/sharedShop/internal/storage"
	"github.com/MacDuki/sharedShop/pkg/api"
)

// DefaultHistoryLimit is the number of snapshots returned when none is requested.
const DefaultHistoryLimit = 10

// HistoryService implements the HistoryService RPC interface.
type HistoryService struct {
	store storage.Store
}

// NewHistoryService creates a new HistoryService with the given storage backend.
func NewHistoryService(store storage.Store) *HistoryService {
	return &HistoryService{store: store}
}

// CreateBudgetHistorySnapshot freezes the budget's current period totals.
// Only the owner may snapshot.
func (s *HistoryService) CreateBudgetHistorySnapshot(ctx context.Context, req *connect.Request[api.CreateBudgetHistorySnapshotRequest]) (*connect.Response[api.CreateBudgetHistorySnapshotResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateBudgetHistorySnapshot request received", "user_id", caller, "budget_id", req.Msg.BudgetID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	budget, err := loadBudget(ctx, s.store, req.Msg.BudgetID, caller, ownerAccess, "only the owner can create history snapshots")
	if err != nil {
		return nil, err
	}

	items, err := s.store.ListItems(ctx, budget.ID, storage.ItemFilter{})
	if err != nil {
		return nil, internalError("Failed to list budget items", err, "budget_id", budget.ID)
	}
	summary := calculator.Summarize(budget.BudgetAmount, items)

	snap := &models.BudgetSnapshot{
		BudgetID:     budget.ID,
		BudgetName:   budget.Name,
		BudgetAmount: budget.BudgetAmount,
		BudgetPeriod: budget.BudgetPeriod,
		TotalSpent:   summary.TotalSpent,
		Remaining:    summary.Remaining,
		MemberIDs:    budget.MemberIDs,
		MemberCount:  len(budget.MemberIDs),
		ItemCount:    summary.PurchasedCount,
		PeriodStart:  calculator.PeriodStart(budget.BudgetPeriod, budget.CurrentPeriodEnd),
		PeriodEnd:    budget.CurrentPeriodEnd,
		CreatedBy:    caller,
	}
	if err := s.store.CreateSnapshot(ctx, snap); err != nil {
		return nil, internalError("CreateBudgetHistorySnapshot failed", err, "budget_id", budget.ID)
	}

	slog.Info("Snapshot created",
		"budget_id", budget.ID,
		"snapshot_id", snap.ID,
		"total_spent", snap.TotalSpent,
	)
	return connect.NewResponse(&api.CreateBudgetHistorySnapshotResponse{Snapshot: toAPISnapshot(snap)}), nil
}

// GetBudgetHistory returns a budget's snapshots, latest period first.
func (s *HistoryService) GetBudgetHistory(ctx context.Context, req *connect.Request[api.GetBudgetHistoryRequest]) (*connect.Response[api.GetBudgetHistoryResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetBudgetHistory request received",
		"user_id", caller,
		"budget_id", req.Msg.BudgetID,
		"limit", req.Msg.Limit,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	budget, err := loadBudget(ctx, s.store, req.Msg.BudgetID, caller, memberAccess, "you are not a member of this budget")
	if err != nil {
		return nil, err
	}

	limit := req.Msg.Limit
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	snaps, err := s.store.ListSnapshots(ctx, budget.ID, limit)
	if err != nil {
		return nil, internalError("GetBudgetHistory failed", err, "budget_id", budget.ID)
	}

	history := make([]*api.BudgetSnapshot, len(snaps))
	for i, snap := range snaps {
		history[i] = toAPISnapshot(snap)
	}
	return connect.NewResponse(&api.GetBudgetHistoryResponse{
		History: history,
		Count:   len(history),
	}), nil
}
