package calculator

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MacDuki/sharedShop/internal/models"
)

// Status classifies how much of a budget has been used.
type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusExceeded Status = "exceeded"
)

// Percentage thresholds for Status.
const (
	WarningPercent  = 80.0
	ExceededPercent = 100.0
)

// Summary is the spend state of a budget derived from its items.
type Summary struct {
	TotalSpent     float64
	Remaining      float64
	PercentageUsed float64
	Status         Status

	// Exceeded is true only when Remaining is negative. Spending exactly the
	// budget amount reports StatusExceeded but Exceeded false.
	Exceeded bool

	ItemCount      int
	PurchasedCount int
}

// Summarize computes totals for a budget of budgetAmount from its items.
// Only purchased items count as spent.
func Summarize(budgetAmount float64, items []*models.ShoppingItem) Summary {
	spent := decimal.Zero
	purchased := 0
	for _, item := range items {
		if !item.IsPurchased {
			continue
		}
		spent = spent.Add(decimal.NewFromFloat(item.EstimatedPrice))
		purchased++
	}

	amount := decimal.NewFromFloat(budgetAmount)
	remaining := amount.Sub(spent)
	pct := Percentage(spent.InexactFloat64(), budgetAmount)

	return Summary{
		TotalSpent:     spent.InexactFloat64(),
		Remaining:      remaining.InexactFloat64(),
		PercentageUsed: pct,
		Status:         StatusFor(pct),
		Exceeded:       remaining.IsNegative(),
		ItemCount:      len(items),
		PurchasedCount: purchased,
	}
}

// Percentage returns spent as a percentage of budgetAmount, or 0 for a zero budget.
func Percentage(spent, budgetAmount float64) float64 {
	if budgetAmount == 0 {
		return 0
	}
	return decimal.NewFromFloat(spent).
		Div(decimal.NewFromFloat(budgetAmount)).
		Mul(decimal.NewFromInt(100)).
		InexactFloat64()
}

// StatusFor maps a usage percentage to a Status.
func StatusFor(pct float64) Status {
	switch {
	case pct >= ExceededPercent:
		return StatusExceeded
	case pct >= WarningPercent:
		return StatusWarning
	default:
		return StatusOK
	}
}

// DaysRemaining returns the whole days left until periodEnd, rounded up and
// never negative.
func DaysRemaining(periodEnd, now time.Time) int {
	left := periodEnd.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Hours() / 24))
}

// MemberSpend is one member's share of a budget's purchases.
type MemberSpend struct {
	UserID     string
	Total      float64
	ItemCount  int
	Percentage float64
	Items      []*models.ShoppingItem
}

// SpendByMember groups purchased items by purchaser, largest spender first.
// Items without a purchaser are skipped.
func SpendByMember(items []*models.ShoppingItem) (members []MemberSpend, grandTotal float64) {
	totals := make(map[string]decimal.Decimal)
	byUser := make(map[string][]*models.ShoppingItem)
	grand := decimal.Zero

	for _, item := range items {
		if !item.IsPurchased || item.PurchasedBy == "" {
			continue
		}
		price := decimal.NewFromFloat(item.EstimatedPrice)
		totals[item.PurchasedBy] = totals[item.PurchasedBy].Add(price)
		byUser[item.PurchasedBy] = append(byUser[item.PurchasedBy], item)
		grand = grand.Add(price)
	}

	grandTotal = grand.InexactFloat64()
	for userID, total := range totals {
		t := total.InexactFloat64()
		members = append(members, MemberSpend{
			UserID:     userID,
			Total:      t,
			ItemCount:  len(byUser[userID]),
			Percentage: Percentage(t, grandTotal),
			Items:      byUser[userID],
		})
	}

	slices.SortFunc(members, func(a, b MemberSpend) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	return members, grandTotal
}
