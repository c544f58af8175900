package calculator

import (
	"errors"
	"time"

	"github.com/MacDuki/sharedShop/internal/models"
)

var (
	ErrUnknownPeriod           = errors.New("budgetPeriod must be weekly, monthly or custom")
	ErrCustomPeriodEndRequired = errors.New("customPeriodEnd is required for custom budgets")
)

// PeriodEnd computes a budget's period end from now.
//
// Weekly periods end exactly seven days later. Monthly periods end at
// midnight UTC on the same day of the next month; days past the end of that
// month roll over the way time.Date normalizes them. Custom periods end at
// customEnd.
func PeriodEnd(period models.BudgetPeriod, now time.Time, customEnd *time.Time) (time.Time, error) {
	switch period {
	case models.PeriodWeekly:
		return now.Add(7 * 24 * time.Hour), nil
	case models.PeriodMonthly:
		y, m, d := now.UTC().Date()
		return time.Date(y, m+1, d, 0, 0, 0, 0, time.UTC), nil
	case models.PeriodCustom:
		if customEnd == nil || customEnd.IsZero() {
			return time.Time{}, ErrCustomPeriodEndRequired
		}
		return *customEnd, nil
	default:
		return time.Time{}, ErrUnknownPeriod
	}
}

// PeriodStart derives the start of the period ending at end.
// Custom periods are assumed to span thirty days.
func PeriodStart(period models.BudgetPeriod, end time.Time) time.Time {
	switch period {
	case models.PeriodWeekly:
		return end.Add(-7 * 24 * time.Hour)
	case models.PeriodMonthly:
		y, m, d := end.UTC().Date()
		return time.Date(y, m-1, d, 0, 0, 0, 0, time.UTC)
	default:
		return end.Add(-30 * 24 * time.Hour)
	}
}
