package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/MacDuki/sharedShop/internal/calculator"
	"github.com/MacDuki/sharedShop/internal/models"
	"github.com/MacDuki/sharedShop/internal/storage"
	"github.com/MacDuki/sharedShop/pkg/api"
)

const unknownCreatorName = "Unknown"

// ItemService implements the ItemService RPC interface.
type ItemService struct {
	store storage.Store
	now   func() time.Time
}

// NewItemService creates a new ItemService with the given storage backend.
func NewItemService(store storage.Store) *ItemService {
	return &ItemService{store: store, now: time.Now}
}

// AddShoppingItem adds an unpurchased item to a budget the caller belongs to.
func (s *ItemService) AddShoppingItem(ctx context.Context, req *connect.Request[api.AddShoppingItemRequest]) (*connect.Response[api.AddShoppingItemResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddShoppingItem request received",
		"user_id", caller,
		"budget_id", req.Msg.BudgetID,
		"name", req.Msg.Name,
		"estimated_price", req.Msg.EstimatedPrice,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	name, ok := trimmed(req.Msg.Name)
	if !ok {
		return nil, invalidArgument("name cannot be empty")
	}
	budget, err := loadBudget(ctx, s.store, req.Msg.BudgetID, caller, memberAccess, "you are not a member of this budget")
	if err != nil {
		return nil, err
	}

	item := &models.ShoppingItem{
		BudgetID:       budget.ID,
		Name:           name,
		EstimatedPrice: req.Msg.EstimatedPrice,
		Category:       req.Msg.Category,
		CreatedBy:      caller,
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, internalError("AddShoppingItem failed", err, "budget_id", budget.ID)
	}

	status, err := s.budgetStatus(ctx, budget)
	if err != nil {
		return nil, err
	}

	slog.Info("Item added", "budget_id", budget.ID, "item_id", item.ID)
	return connect.NewResponse(&api.AddShoppingItemResponse{
		Item:         toAPIItem(item),
		BudgetStatus: status,
	}), nil
}

// UpdateShoppingItem applies a partial item update. Marking an item
// purchased records the caller and time; unmarking clears both.
func (s *ItemService) UpdateShoppingItem(ctx context.Context, req *connect.Request[api.UpdateShoppingItemRequest]) (*connect.Response[api.UpdateShoppingItemResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateShoppingItem request received", "user_id", caller, "item_id", req.Msg.ItemID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	item, budget, err := s.loadItem(ctx, req.Msg.ItemID, caller)
	if err != nil {
		return nil, err
	}

	update, err := s.itemUpdate(item, req.Msg, caller)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateItem(ctx, item.ID, update); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("item not found")
		}
		return nil, internalError("UpdateShoppingItem failed", err, "item_id", item.ID)
	}

	updated, err := s.store.GetItem(ctx, item.ID)
	if err != nil {
		return nil, internalError("Failed to fetch updated item", err, "item_id", item.ID)
	}
	status, err := s.budgetStatus(ctx, budget)
	if err != nil {
		return nil, err
	}

	slog.Info("Item updated", "item_id", item.ID, "is_purchased", updated.IsPurchased)
	return connect.NewResponse(&api.UpdateShoppingItemResponse{
		Item:         toAPIItem(updated),
		BudgetStatus: status,
	}), nil
}

func (s *ItemService) itemUpdate(item *models.ShoppingItem, msg *api.UpdateShoppingItemRequest, caller string) (storage.ItemUpdate, error) {
	var update storage.ItemUpdate
	empty := true

	if msg.Name != nil {
		name, ok := trimmed(*msg.Name)
		if !ok {
			return update, invalidArgument("name cannot be empty")
		}
		update.Name = &name
		empty = false
	}
	if msg.EstimatedPrice != nil {
		if *msg.EstimatedPrice <= 0 {
			return update, invalidArgument("estimatedPrice must be a positive number")
		}
		update.EstimatedPrice = msg.EstimatedPrice
		empty = false
	}
	if msg.Category != nil {
		update.Category = msg.Category
		empty = false
	}
	if msg.IsPurchased != nil {
		update.IsPurchased = msg.IsPurchased
		switch {
		case !*msg.IsPurchased:
		case item.IsPurchased:
			// Already purchased: keep the original purchaser and time.
			update.PurchasedBy = item.PurchasedBy
			update.PurchasedAt = item.PurchasedAt
		default:
			at := s.now().UTC()
			update.PurchasedBy = caller
			update.PurchasedAt = &at
		}
		empty = false
	}

	if empty {
		return update, invalidArgument("no valid fields to update")
	}
	return update, nil
}

// GetBudgetItems lists a budget's items, newest first, with creator names.
func (s *ItemService) GetBudgetItems(ctx context.Context, req *connect.Request[api.GetBudgetItemsRequest]) (*connect.Response[api.GetBudgetItemsResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetBudgetItems request received",
		"user_id", caller,
		"budget_id", req.Msg.BudgetID,
		"filter", req.Msg.Filter,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	budget, err := loadBudget(ctx, s.store, req.Msg.BudgetID, caller, memberAccess, "you are not a member of this budget")
	if err != nil {
		return nil, err
	}

	all, err := s.store.ListItems(ctx, budget.ID, storage.ItemFilter{})
	if err != nil {
		return nil, internalError("GetBudgetItems failed", err, "budget_id", budget.ID)
	}

	var selected []*models.ShoppingItem
	for _, item := range all {
		switch req.Msg.Filter {
		case api.FilterActive:
			if item.IsPurchased {
				continue
			}
		case api.FilterPurchased:
			if !item.IsPurchased {
				continue
			}
		}
		selected = append(selected, item)
	}

	creators := make([]string, 0, len(selected))
	seen := make(map[string]bool)
	for _, item := range selected {
		if !seen[item.CreatedBy] {
			seen[item.CreatedBy] = true
			creators = append(creators, item.CreatedBy)
		}
	}
	profiles, err := s.store.GetUsersByIDs(ctx, creators)
	if err != nil {
		return nil, internalError("Failed to load item creators", err, "budget_id", budget.ID)
	}

	items := make([]*api.ShoppingItem, len(selected))
	for i, item := range selected {
		items[i] = toAPIItem(item)
		items[i].CreatedByName = unknownCreatorName
		if p, ok := profiles[item.CreatedBy]; ok {
			items[i].CreatedByName = p.Name
		}
	}

	summary := calculator.Summarize(budget.BudgetAmount, all)
	slog.Info("GetBudgetItems successful", "budget_id", budget.ID, "count", len(items))
	return connect.NewResponse(&api.GetBudgetItemsResponse{
		Items:        items,
		TotalItems:   len(items),
		TotalValue:   summary.TotalSpent,
		BudgetStatus: toAPIStatus(summary),
	}), nil
}

// DeleteShoppingItem removes an item from a budget the caller belongs to.
func (s *ItemService) DeleteShoppingItem(ctx context.Context, req *connect.Request[api.DeleteShoppingItemRequest]) (*connect.Response[api.DeleteShoppingItemResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteShoppingItem request received", "user_id", caller, "item_id", req.Msg.ItemID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	item, budget, err := s.loadItem(ctx, req.Msg.ItemID, caller)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteItem(ctx, item.ID); err != nil {
		return nil, internalError("DeleteShoppingItem failed", err, "item_id", item.ID)
	}

	status, err := s.budgetStatus(ctx, budget)
	if err != nil {
		return nil, err
	}

	slog.Info("Item deleted", "item_id", item.ID, "budget_id", budget.ID)
	return connect.NewResponse(&api.DeleteShoppingItemResponse{BudgetStatus: status}), nil
}

// loadItem fetches an item and its budget and checks the caller is a member.
func (s *ItemService) loadItem(ctx context.Context, itemID, caller string) (*models.ShoppingItem, *models.Budget, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, notFound("item not found")
	}
	if err != nil {
		return nil, nil, internalError("Failed to load item", err, "item_id", itemID)
	}
	budget, err := loadBudget(ctx, s.store, item.BudgetID, caller, memberAccess, "you are not a member of this budget")
	if err != nil {
		return nil, nil, err
	}
	return item, budget, nil
}

func (s *ItemService) budgetStatus(ctx context.Context, budget *models.Budget) (*api.BudgetStatus, error) {
	items, err := s.store.ListItems(ctx, budget.ID, storage.ItemFilter{})
	if err != nil {
		return nil, internalError("Failed to compute budget status", err, "budget_id", budget.ID)
	}
	return toAPIStatus(calculator.Summarize(budget.BudgetAmount, items)), nil
}
