package service

import (
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacDuki/sharedShop/pkg/api"
)

func TestShoppingItems(t *testing.T) {
	store := newTestStore(t)
	budgets := NewBudgetService(store)
	items := NewItemService(store)
	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")
	budget := createGroceries(t, budgets, alice)

	added, err := items.AddShoppingItem(as(alice), connect.NewRequest(&api.AddShoppingItemRequest{
		BudgetID: budget.ID, Name: " Apples ", EstimatedPrice: 4.5, Category: "fruit",
	}))
	require.NoError(t, err)
	apples := added.Msg.Item
	assert.Equal(t, "Apples", apples.Name)
	assert.False(t, apples.IsPurchased)
	assert.Equal(t, alice.ID, apples.CreatedBy)
	assert.Equal(t, &api.BudgetStatus{TotalSpent: 0, Remaining: 500}, added.Msg.BudgetStatus)

	_, err = items.AddShoppingItem(as(alice), connect.NewRequest(&api.AddShoppingItemRequest{
		BudgetID: budget.ID, Name: "Bread", EstimatedPrice: 2,
	}))
	require.NoError(t, err)

	t.Run("validation", func(t *testing.T) {
		_, err := items.AddShoppingItem(as(alice), connect.NewRequest(&api.AddShoppingItemRequest{
			BudgetID: budget.ID, Name: "  ", EstimatedPrice: 1,
		}))
		requireCode(t, connect.CodeInvalidArgument, err)

		_, err = items.AddShoppingItem(as(alice), connect.NewRequest(&api.AddShoppingItemRequest{
			BudgetID: budget.ID, Name: "Free", EstimatedPrice: 0,
		}))
		requireCode(t, connect.CodeInvalidArgument, err)

		_, err = items.UpdateShoppingItem(as(alice), connect.NewRequest(&api.UpdateShoppingItemRequest{ItemID: apples.ID}))
		requireCode(t, connect.CodeInvalidArgument, err)
	})

	t.Run("non-member", func(t *testing.T) {
		_, err := items.AddShoppingItem(as(bob), connect.NewRequest(&api.AddShoppingItemRequest{
			BudgetID: budget.ID, Name: "Chips", EstimatedPrice: 1,
		}))
		requireCode(t, connect.CodePermissionDenied, err)

		_, err = items.DeleteShoppingItem(as(bob), connect.NewRequest(&api.DeleteShoppingItemRequest{ItemID: apples.ID}))
		requireCode(t, connect.CodePermissionDenied, err)
	})

	t.Run("purchase transitions", func(t *testing.T) {
		yes, no := true, false
		resp, err := items.UpdateShoppingItem(as(alice), connect.NewRequest(&api.UpdateShoppingItemRequest{
			ItemID: apples.ID, IsPurchased: &yes,
		}))
		require.NoError(t, err)
		item := resp.Msg.Item
		assert.True(t, item.IsPurchased)
		assert.Equal(t, alice.ID, item.PurchasedBy)
		require.NotNil(t, item.PurchasedAt)
		assert.Equal(t, 4.5, resp.Msg.BudgetStatus.TotalSpent)
		assert.Equal(t, 495.5, resp.Msg.BudgetStatus.Remaining)
		firstPurchase := *item.PurchasedAt

		resp, err = items.UpdateShoppingItem(as(alice), connect.NewRequest(&api.UpdateShoppingItemRequest{
			ItemID: apples.ID, IsPurchased: &yes,
		}))
		require.NoError(t, err)
		assert.True(t, resp.Msg.Item.PurchasedAt.Equal(firstPurchase))

		resp, err = items.UpdateShoppingItem(as(alice), connect.NewRequest(&api.UpdateShoppingItemRequest{
			ItemID: apples.ID, IsPurchased: &no,
		}))
		require.NoError(t, err)
		assert.False(t, resp.Msg.Item.IsPurchased)
		assert.Empty(t, resp.Msg.Item.PurchasedBy)
		assert.Nil(t, resp.Msg.Item.PurchasedAt)
		assert.Equal(t, 0.0, resp.Msg.BudgetStatus.TotalSpent)

		_, err = items.UpdateShoppingItem(as(alice), connect.NewRequest(&api.UpdateShoppingItemRequest{
			ItemID: apples.ID, IsPurchased: &yes,
		}))
		require.NoError(t, err)
	})

	t.Run("filters", func(t *testing.T) {
		cases := map[string][]string{
			api.FilterAll:       {"Bread", "Apples"},
			"":                  {"Bread", "Apples"},
			api.FilterActive:    {"Bread"},
			api.FilterPurchased: {"Apples"},
		}
		for filter, want := range cases {
			resp, err := items.GetBudgetItems(as(alice), connect.NewRequest(&api.GetBudgetItemsRequest{
				BudgetID: budget.ID, Filter: filter,
			}))
			require.NoError(t, err)

			var names []string
			for _, item := range resp.Msg.Items {
				names = append(names, item.Name)
				assert.Equal(t, "Alice", item.CreatedByName)
			}
			assert.Equal(t, want, names, "filter %q", filter)
			assert.Equal(t, len(want), resp.Msg.TotalItems)
			assert.Equal(t, 4.5, resp.Msg.TotalValue, "filter %q", filter)
		}

		_, err := items.GetBudgetItems(as(alice), connect.NewRequest(&api.GetBudgetItemsRequest{
			BudgetID: budget.ID, Filter: "someday",
		}))
		requireCode(t, connect.CodeInvalidArgument, err)
	})

	t.Run("delete", func(t *testing.T) {
		resp, err := items.DeleteShoppingItem(as(alice), connect.NewRequest(&api.DeleteShoppingItemRequest{ItemID: apples.ID}))
		require.NoError(t, err)
		assert.Equal(t, 0.0, resp.Msg.BudgetStatus.TotalSpent)

		_, err = items.DeleteShoppingItem(as(alice), connect.NewRequest(&api.DeleteShoppingItemRequest{ItemID: apples.ID}))
		requireCode(t, connect.CodeNotFound, err)
	})
}

func TestBudgetStatusExceeded(t *testing.T) {
	store := newTestStore(t)
	budgets := NewBudgetService(store)
	items := NewItemService(store)
	alice := createUser(t, store, "alice@example.com", "Alice")
	budget := createGroceries(t, budgets, alice)

	added, err := items.AddShoppingItem(as(alice), connect.NewRequest(&api.AddShoppingItemRequest{
		BudgetID: budget.ID, Name: "Everything", EstimatedPrice: 520,
	}))
	require.NoError(t, err)

	yes := true
	resp, err := items.UpdateShoppingItem(as(alice), connect.NewRequest(&api.UpdateShoppingItemRequest{
		ItemID: added.Msg.Item.ID, IsPurchased: &yes,
	}))
	require.NoError(t, err)
	assert.Equal(t, -20.0, resp.Msg.BudgetStatus.Remaining)
	assert.True(t, resp.Msg.BudgetStatus.Exceeded)
}
