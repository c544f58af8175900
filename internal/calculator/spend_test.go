package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacDuki/sharedShop/internal/models"
)

func item(price float64, purchasedBy string) *models.ShoppingItem {
	return &models.ShoppingItem{
		EstimatedPrice: price,
		IsPurchased:    purchasedBy != "",
		PurchasedBy:    purchasedBy,
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name          string
		amount        float64
		items         []*models.ShoppingItem
		wantSpent     float64
		wantRemaining float64
		wantPct       float64
		wantStatus    Status
		wantExceeded  bool
	}{
		{
			name:          "empty budget",
			amount:        500,
			wantRemaining: 500,
			wantStatus:    StatusOK,
		},
		{
			name:          "unpurchased items do not count",
			amount:        500,
			items:         []*models.ShoppingItem{item(425, ""), item(10, "")},
			wantRemaining: 500,
			wantStatus:    StatusOK,
		},
		{
			name:          "warning at 85 percent",
			amount:        500,
			items:         []*models.ShoppingItem{item(425, "alice")},
			wantSpent:     425,
			wantRemaining: 75,
			wantPct:       85,
			wantStatus:    StatusWarning,
		},
		{
			name:          "exactly spent is exceeded status but not over",
			amount:        500,
			items:         []*models.ShoppingItem{item(425, "alice"), item(75, "bob")},
			wantSpent:     500,
			wantRemaining: 0,
			wantPct:       100,
			wantStatus:    StatusExceeded,
		},
		{
			name:          "over budget",
			amount:        100,
			items:         []*models.ShoppingItem{item(60, "alice"), item(60, "bob")},
			wantSpent:     120,
			wantRemaining: -20,
			wantPct:       120,
			wantStatus:    StatusExceeded,
			wantExceeded:  true,
		},
		{
			name:          "cents add up without drift",
			amount:        1,
			items:         []*models.ShoppingItem{item(0.1, "a"), item(0.2, "a"), item(0.3, "a")},
			wantSpent:     0.6,
			wantRemaining: 0.4,
			wantPct:       60,
			wantStatus:    StatusOK,
		},
		{
			name:          "zero budget reports zero percent",
			amount:        0,
			items:         []*models.ShoppingItem{item(5, "a")},
			wantSpent:     5,
			wantRemaining: -5,
			wantStatus:    StatusOK,
			wantExceeded:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.amount, tt.items)
			assert.Equal(t, tt.wantSpent, got.TotalSpent)
			assert.Equal(t, tt.wantRemaining, got.Remaining)
			assert.InDelta(t, tt.wantPct, got.PercentageUsed, 1e-9)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantExceeded, got.Exceeded)
			assert.Equal(t, len(tt.items), got.ItemCount)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusOK, StatusFor(79.99))
	assert.Equal(t, StatusWarning, StatusFor(80))
	assert.Equal(t, StatusWarning, StatusFor(99.9))
	assert.Equal(t, StatusExceeded, StatusFor(100))
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysRemaining(now.Add(-time.Hour), now))
	assert.Equal(t, 0, DaysRemaining(now, now))
	assert.Equal(t, 1, DaysRemaining(now.Add(time.Minute), now))
	assert.Equal(t, 7, DaysRemaining(now.Add(7*24*time.Hour), now))
	assert.Equal(t, 8, DaysRemaining(now.Add(7*24*time.Hour+time.Second), now))
}

func TestSpendByMember(t *testing.T) {
	items := []*models.ShoppingItem{
		item(30, "bob"),
		item(50, "alice"),
		item(20, "bob"),
		item(25, "carol"),
		item(99, ""),
		{EstimatedPrice: 10, IsPurchased: true},
	}

	members, grand := SpendByMember(items)
	assert.Equal(t, 125.0, grand)
	require.Len(t, members, 3)

	// alice and bob tie at 50; ties break by user id.
	assert.Equal(t, "alice", members[0].UserID)
	assert.Equal(t, "bob", members[1].UserID)
	assert.Equal(t, 2, members[1].ItemCount)
	assert.Len(t, members[1].Items, 2)
	assert.Equal(t, "carol", members[2].UserID)
	assert.InDelta(t, 40.0, members[0].Percentage, 1e-9)
	assert.InDelta(t, 20.0, members[2].Percentage, 1e-9)
}

func TestSpendByMemberEmpty(t *testing.T) {
	members, grand := SpendByMember(nil)
	assert.Empty(t, members)
	assert.Zero(t, grand)
}
