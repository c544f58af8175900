package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacDuki/sharedShop/pkg/api"
)

type recordingSyncer struct {
	names map[string]string
}

func (r *recordingSyncer) SyncDisplayName(_ context.Context, userID, displayName string) error {
	r.names[userID] = displayName
	return nil
}

func TestUserProfile(t *testing.T) {
	store := newTestStore(t)
	syncer := &recordingSyncer{names: map[string]string{}}
	users := NewUserService(store, syncer)
	alice := createUser(t, store, "alice@example.com", "Alice")

	resp, err := users.GetCurrentUserProfile(as(alice), connect.NewRequest(&api.GetCurrentUserProfileRequest{}))
	require.NoError(t, err)
	assert.Equal(t, "Alice", resp.Msg.Profile.Name)
	assert.Equal(t, []string{}, resp.Msg.Profile.BudgetIDs)

	updated, err := users.UpdateUserProfile(as(alice), connect.NewRequest(&api.UpdateUserProfileRequest{
		Name:        ptr(" Ally "),
		Preferences: map[string]string{"currency": "EUR"},
	}))
	require.NoError(t, err)
	assert.Equal(t, "Ally", updated.Msg.Profile.Name)
	assert.Equal(t, "EUR", updated.Msg.Profile.Preferences["currency"])
	assert.Equal(t, "Ally", syncer.names[alice.ID])

	_, err = users.UpdateUserProfile(as(alice), connect.NewRequest(&api.UpdateUserProfileRequest{}))
	requireCode(t, connect.CodeInvalidArgument, err)
	_, err = users.UpdateUserProfile(as(alice), connect.NewRequest(&api.UpdateUserProfileRequest{Name: ptr("")}))
	requireCode(t, connect.CodeInvalidArgument, err)

	_, err = users.GetCurrentUserProfile(context.Background(), connect.NewRequest(&api.GetCurrentUserProfileRequest{}))
	requireCode(t, connect.CodeUnauthenticated, err)
}

func TestUserBudgets(t *testing.T) {
	store := newTestStore(t)
	budgets := NewBudgetService(store)
	items := NewItemService(store)
	members := NewMembershipService(store, nil)
	users := NewUserService(store, nil)
	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")

	groceries := createGroceries(t, budgets, alice)
	own, err := budgets.CreateBudget(as(bob), connect.NewRequest(&api.CreateBudgetRequest{
		Name: "Snacks", BudgetAmount: 50, BudgetPeriod: "weekly",
	}))
	require.NoError(t, err)
	inv := invite(t, members, alice, groceries.ID)
	_, err = members.AcceptBudgetInvitation(as(bob), connect.NewRequest(&api.AcceptBudgetInvitationRequest{Token: inv.Token}))
	require.NoError(t, err)

	added, err := items.AddShoppingItem(as(bob), connect.NewRequest(&api.AddShoppingItemRequest{
		BudgetID: groceries.ID, Name: "Rice", EstimatedPrice: 12,
	}))
	require.NoError(t, err)
	_, err = items.UpdateShoppingItem(as(bob), connect.NewRequest(&api.UpdateShoppingItemRequest{
		ItemID: added.Msg.Item.ID, IsPurchased: ptr(true),
	}))
	require.NoError(t, err)

	resp, err := users.GetUserBudgets(as(bob), connect.NewRequest(&api.GetUserBudgetsRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Budgets, 2)

	byID := map[string]*api.BudgetListEntry{}
	for _, b := range resp.Msg.Budgets {
		byID[b.ID] = b
	}
	assert.True(t, byID[own.Msg.Budget.ID].IsOwner)
	assert.Equal(t, 1, byID[own.Msg.Budget.ID].MemberCount)
	assert.False(t, byID[groceries.ID].IsOwner)
	assert.Equal(t, 2, byID[groceries.ID].MemberCount)
	assert.Equal(t, 12.0, byID[groceries.ID].TotalSpent)
	assert.Equal(t, 488.0, byID[groceries.ID].Remaining)
}

func TestLastActiveBudget(t *testing.T) {
	store := newTestStore(t)
	budgets := NewBudgetService(store)
	members := NewMembershipService(store, nil)
	users := NewUserService(store, nil)
	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")
	groceries := createGroceries(t, budgets, alice)

	resp, err := users.GetLastActiveBudget(as(alice), connect.NewRequest(&api.GetLastActiveBudgetRequest{}))
	require.NoError(t, err)
	assert.Nil(t, resp.Msg.BudgetID)

	_, err = users.SetLastActiveBudget(as(bob), connect.NewRequest(&api.SetLastActiveBudgetRequest{BudgetID: groceries.ID}))
	requireCode(t, connect.CodePermissionDenied, err)
	_, err = users.SetLastActiveBudget(as(alice), connect.NewRequest(&api.SetLastActiveBudgetRequest{BudgetID: "missing"}))
	requireCode(t, connect.CodeNotFound, err)

	_, err = users.SetLastActiveBudget(as(alice), connect.NewRequest(&api.SetLastActiveBudgetRequest{BudgetID: groceries.ID}))
	require.NoError(t, err)
	resp, err = users.GetLastActiveBudget(as(alice), connect.NewRequest(&api.GetLastActiveBudgetRequest{}))
	require.NoError(t, err)
	require.NotNil(t, resp.Msg.BudgetID)
	assert.Equal(t, groceries.ID, *resp.Msg.BudgetID)

	t.Run("stale reference is cleared", func(t *testing.T) {
		inv := invite(t, members, alice, groceries.ID)
		_, err := members.AcceptBudgetInvitation(as(bob), connect.NewRequest(&api.AcceptBudgetInvitationRequest{Token: inv.Token}))
		require.NoError(t, err)
		_, err = users.SetLastActiveBudget(as(bob), connect.NewRequest(&api.SetLastActiveBudgetRequest{BudgetID: groceries.ID}))
		require.NoError(t, err)

		// Leave the user side pointing at the budget while the budget side drops bob.
		b := store.NewBatch()
		b.RemoveBudgetMember(groceries.ID, bob.ID)
		require.NoError(t, store.CommitBatch(context.Background(), b))

		resp, err := users.GetLastActiveBudget(as(bob), connect.NewRequest(&api.GetLastActiveBudgetRequest{}))
		require.NoError(t, err)
		assert.Nil(t, resp.Msg.BudgetID)

		profile, err := store.GetUser(context.Background(), bob.ID)
		require.NoError(t, err)
		assert.Empty(t, profile.LastActiveBudgetID)
	})
}
