// Package membership stages every write to the budget/user membership
// relation. A budget's member set and each member's budget set are always
// changed in the same storage.Batch, so a commit either updates both sides
// or neither.
package membership

import "github.com/MacDuki/sharedShop/internal/storage"

// Join adds userID to the budget and the budget to the user.
func Join(b storage.Batch, budgetID, userID string) {
	b.AddBudgetMember(budgetID, userID)
	b.AddUserBudget(userID, budgetID)
}

// Leave removes userID from the budget and the budget from the user, and
// clears the user's last active budget if it pointed here.
func Leave(b storage.Batch, budgetID, userID string) {
	b.RemoveBudgetMember(budgetID, userID)
	b.RemoveUserBudget(userID, budgetID)
	b.ClearLastActiveBudget(userID, budgetID)
}

// Detach strips a deleted budget from one former member. The budget side is
// already gone with the budget document.
func Detach(b storage.Batch, budgetID, userID string) {
	b.RemoveUserBudget(userID, budgetID)
	b.ClearLastActiveBudget(userID, budgetID)
}
