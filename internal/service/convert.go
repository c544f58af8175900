package service

import (
	"github.com/MacDuki/sharedShop/internal/calculator"
	"github.com/MacDuki/sharedShop/internal/models"
	"github.com/MacDuki/sharedShop/pkg/api"
)

const unknownUserName = "Unknown User"

func toAPIUser(u *models.User) *api.User {
	budgetIDs := u.BudgetIDs
	if budgetIDs == nil {
		budgetIDs = []string{}
	}
	return &api.User{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		PhotoURL:           u.PhotoURL,
		Preferences:        u.Preferences,
		BudgetIDs:          budgetIDs,
		LastActiveBudgetID: u.LastActiveBudgetID,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func toAPIBudget(b *models.Budget) api.Budget {
	return api.Budget{
		ID:               b.ID,
		Name:             b.Name,
		Description:      b.Description,
		BudgetAmount:     b.BudgetAmount,
		BudgetPeriod:     string(b.BudgetPeriod),
		OwnerID:          b.OwnerID,
		MemberIDs:        b.MemberIDs,
		CurrentPeriodEnd: b.CurrentPeriodEnd,
		IconName:         b.IconName,
		ColorHex:         b.ColorHex,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

func toAPIItem(i *models.ShoppingItem) *api.ShoppingItem {
	return &api.ShoppingItem{
		ID:             i.ID,
		BudgetID:       i.BudgetID,
		Name:           i.Name,
		EstimatedPrice: i.EstimatedPrice,
		Category:       i.Category,
		CreatedBy:      i.CreatedBy,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
		IsPurchased:    i.IsPurchased,
		PurchasedBy:    i.PurchasedBy,
		PurchasedAt:    i.PurchasedAt,
	}
}

func toAPIStatus(s calculator.Summary) *api.BudgetStatus {
	return &api.BudgetStatus{
		TotalSpent: s.TotalSpent,
		Remaining:  s.Remaining,
		Exceeded:   s.Exceeded,
	}
}

func toAPISnapshot(s *models.BudgetSnapshot) *api.BudgetSnapshot {
	return &api.BudgetSnapshot{
		ID:             s.ID,
		BudgetID:       s.BudgetID,
		BudgetName:     s.BudgetName,
		BudgetAmount:   s.BudgetAmount,
		BudgetPeriod:   string(s.BudgetPeriod),
		TotalSpent:     s.TotalSpent,
		Remaining:      s.Remaining,
		PercentageUsed: calculator.Percentage(s.TotalSpent, s.BudgetAmount),
		MemberIDs:      s.MemberIDs,
		MemberCount:    s.MemberCount,
		ItemCount:      s.ItemCount,
		PeriodStart:    s.PeriodStart,
		PeriodEnd:      s.PeriodEnd,
		CreatedAt:      s.CreatedAt,
		CreatedBy:      s.CreatedBy,
	}
}

func toAPINotification(n *models.Notification) *api.Notification {
	return &api.Notification{
		ID:             n.ID,
		UserID:         n.UserID,
		BudgetID:       n.BudgetID,
		Type:           n.Type,
		Title:          n.Title,
		Body:           n.Body,
		Payload:        n.Payload,
		Read:           n.Read,
		TriggerContext: string(n.TriggerContext),
		CreatedAt:      n.CreatedAt,
		ReadAt:         n.ReadAt,
	}
}

// toAPIMembers renders budget members in member order. Missing profiles
// are skipped, or shown as placeholders when placeholder is true.
func toAPIMembers(b *models.Budget, profiles map[string]*models.User, placeholder bool) []*api.Member {
	members := make([]*api.Member, 0, len(b.MemberIDs))
	for _, id := range b.MemberIDs {
		p, ok := profiles[id]
		if !ok {
			if placeholder {
				members = append(members, &api.Member{UserID: id, Name: unknownUserName, IsOwner: b.IsOwner(id)})
			}
			continue
		}
		members = append(members, &api.Member{
			UserID:   id,
			Name:     p.Name,
			Email:    p.Email,
			PhotoURL: p.PhotoURL,
			IsOwner:  b.IsOwner(id),
		})
	}
	return members
}
