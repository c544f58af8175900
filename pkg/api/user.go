package api

type GetCurrentUserProfileRequest struct{}

type GetCurrentUserProfileResponse struct {
	Profile *User `json:"profile"`
}

// UpdateUserProfileRequest changes only the fields that are set.
type UpdateUserProfileRequest struct {
	Name        *string           `json:"name,omitempty"`
	PhotoURL    *string           `json:"photoURL,omitempty"`
	Preferences map[string]string `json:"preferences,omitempty"`
}

type UpdateUserProfileResponse struct {
	Profile *User `json:"profile"`
}

type GetUserBudgetsRequest struct{}

// BudgetListEntry is a budget with its spend totals from the caller's view.
type BudgetListEntry struct {
	Budget
	TotalSpent  float64 `json:"totalSpent"`
	Remaining   float64 `json:"remaining"`
	IsOwner     bool    `json:"isOwner"`
	MemberCount int     `json:"memberCount"`
}

type GetUserBudgetsResponse struct {
	Budgets []*BudgetListEntry `json:"budgets"`
}

type GetLastActiveBudgetRequest struct{}

type GetLastActiveBudgetResponse struct {
	// BudgetID is null when no valid last active budget is recorded.
	BudgetID *string `json:"budgetId"`
}

type SetLastActiveBudgetRequest struct {
	BudgetID string `json:"budgetId" validate:"required"`
}

type SetLastActiveBudgetResponse struct {
	BudgetID string `json:"budgetId"`
}
