package models

import (
	"slices"
	"time"
)

// BudgetPeriod controls how a budget's period end is computed.
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodCustom  BudgetPeriod = "custom"
)

// Valid reports whether p is a known period.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodCustom:
		return true
	}
	return false
}

// Budget is a shared spending cap.
//
// OwnerID is fixed at creation and is always present in MemberIDs.
type Budget struct {
	ID          string
	Name        string
	Description string

	// BudgetAmount is the spending cap. Always positive.
	BudgetAmount float64
	BudgetPeriod BudgetPeriod

	OwnerID   string
	MemberIDs []string

	CurrentPeriodEnd time.Time

	IconName string
	ColorHex string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsMember reports whether userID belongs to the budget.
func (b *Budget) IsMember(userID string) bool {
	return slices.Contains(b.MemberIDs, userID)
}

// IsOwner reports whether userID owns the budget.
func (b *Budget) IsOwner(userID string) bool {
	return userID != "" && b.OwnerID == userID
}
