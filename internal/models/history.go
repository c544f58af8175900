package models

import "time"

// BudgetSnapshot is an immutable record of a budget's totals for one period.
type BudgetSnapshot struct {
	ID       string
	BudgetID string

	BudgetName   string
	BudgetAmount float64
	BudgetPeriod BudgetPeriod

	TotalSpent float64
	Remaining  float64

	MemberIDs   []string
	MemberCount int

	// ItemCount is the number of purchased items at snapshot time.
	ItemCount int

	PeriodStart time.Time
	PeriodEnd   time.Time

	CreatedAt time.Time
	CreatedBy string
}
