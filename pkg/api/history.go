package api

type CreateBudgetHistorySnapshotRequest struct {
	BudgetID string `json:"budgetId" validate:"required"`
}

type CreateBudgetHistorySnapshotResponse struct {
	Snapshot *BudgetSnapshot `json:"snapshot"`
}

type GetBudgetHistoryRequest struct {
	BudgetID string `json:"budgetId" validate:"required"`
	Limit    int    `json:"limit,omitempty" validate:"gte=0,lte=100"`
}

type GetBudgetHistoryResponse struct {
	History []*BudgetSnapshot `json:"history"`
	Count   int               `json:"count"`
}
