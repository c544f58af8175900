package service

import (
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacDuki/sharedShop/pkg/api"
)

func TestBudgetHistory(t *testing.T) {
	store := newTestStore(t)
	budgets := NewBudgetService(store)
	budgets.now = func() time.Time { return time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC) }
	items := NewItemService(store)
	members := NewMembershipService(store, nil)
	history := NewHistoryService(store)
	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")
	carol := createUser(t, store, "carol@example.com", "Carol")
	budget := createGroceries(t, budgets, alice)

	inv := invite(t, members, alice, budget.ID)
	_, err := members.AcceptBudgetInvitation(as(bob), connect.NewRequest(&api.AcceptBudgetInvitationRequest{Token: inv.Token}))
	require.NoError(t, err)

	yes := true
	for _, price := range []float64{100, 25} {
		added, err := items.AddShoppingItem(as(bob), connect.NewRequest(&api.AddShoppingItemRequest{
			BudgetID: budget.ID, Name: "food", EstimatedPrice: price,
		}))
		require.NoError(t, err)
		_, err = items.UpdateShoppingItem(as(bob), connect.NewRequest(&api.UpdateShoppingItemRequest{
			ItemID: added.Msg.Item.ID, IsPurchased: &yes,
		}))
		require.NoError(t, err)
	}
	_, err = items.AddShoppingItem(as(bob), connect.NewRequest(&api.AddShoppingItemRequest{
		BudgetID: budget.ID, Name: "later", EstimatedPrice: 9,
	}))
	require.NoError(t, err)

	t.Run("only the owner may snapshot", func(t *testing.T) {
		_, err := history.CreateBudgetHistorySnapshot(as(bob), connect.NewRequest(&api.CreateBudgetHistorySnapshotRequest{BudgetID: budget.ID}))
		requireCode(t, connect.CodePermissionDenied, err)
	})

	resp, err := history.CreateBudgetHistorySnapshot(as(alice), connect.NewRequest(&api.CreateBudgetHistorySnapshotRequest{BudgetID: budget.ID}))
	require.NoError(t, err)
	snap := resp.Msg.Snapshot
	assert.Equal(t, "Groceries", snap.BudgetName)
	assert.Equal(t, 125.0, snap.TotalSpent)
	assert.Equal(t, 375.0, snap.Remaining)
	assert.Equal(t, 25.0, snap.PercentageUsed)
	assert.Equal(t, 2, snap.ItemCount)
	assert.Equal(t, 2, snap.MemberCount)
	assert.True(t, snap.PeriodEnd.Equal(time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, snap.PeriodStart.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))

	// A later period, as after the budget rolls over.
	next := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	_, err = budgets.UpdateBudget(as(alice), connect.NewRequest(&api.UpdateBudgetRequest{BudgetID: budget.ID, Name: ptr("Food")}))
	require.NoError(t, err)
	budgets.now = func() time.Time { return next.AddDate(0, -1, 0) }
	_, err = budgets.UpdateBudget(as(alice), connect.NewRequest(&api.UpdateBudgetRequest{BudgetID: budget.ID, BudgetPeriod: ptr("monthly")}))
	require.NoError(t, err)
	_, err = history.CreateBudgetHistorySnapshot(as(alice), connect.NewRequest(&api.CreateBudgetHistorySnapshotRequest{BudgetID: budget.ID}))
	require.NoError(t, err)

	list, err := history.GetBudgetHistory(as(bob), connect.NewRequest(&api.GetBudgetHistoryRequest{BudgetID: budget.ID}))
	require.NoError(t, err)
	require.Equal(t, 2, list.Msg.Count)
	assert.Equal(t, "Food", list.Msg.History[0].BudgetName)
	assert.True(t, list.Msg.History[0].PeriodEnd.Equal(next))
	assert.Equal(t, "Groceries", list.Msg.History[1].BudgetName)

	limited, err := history.GetBudgetHistory(as(bob), connect.NewRequest(&api.GetBudgetHistoryRequest{BudgetID: budget.ID, Limit: 1}))
	require.NoError(t, err)
	assert.Equal(t, 1, limited.Msg.Count)

	_, err = history.GetBudgetHistory(as(carol), connect.NewRequest(&api.GetBudgetHistoryRequest{BudgetID: budget.ID}))
	requireCode(t, connect.CodePermissionDenied, err)
}
