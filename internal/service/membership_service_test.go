package service

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacDuki/sharedShop/internal/models"
	"github.com/MacDuki/sharedShop/internal/storage"
	"github.com/MacDuki/sharedShop/pkg/api"
)

type denyAll struct{}

func (denyAll) Allow(context.Context, string) (bool, error) { return false, nil }

func invite(t *testing.T, svc *MembershipService, owner *models.User, budgetID string) *api.CreateBudgetInvitationResponse {
	t.Helper()
	resp, err := svc.CreateBudgetInvitation(as(owner), connect.NewRequest(&api.CreateBudgetInvitationRequest{BudgetID: budgetID}))
	require.NoError(t, err)
	return resp.Msg
}

func TestInvitationFlow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	budgets := NewBudgetService(store)
	members := NewMembershipService(store, nil)
	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")
	carol := createUser(t, store, "carol@example.com", "Carol")
	budget := createGroceries(t, budgets, alice)

	inv := invite(t, members, alice, budget.ID)
	assert.Len(t, inv.Token, 2*tokenBytes)
	assert.WithinDuration(t, time.Now().Add(models.InvitationTTL), inv.ExpiresAt, time.Minute)

	t.Run("only the owner may invite", func(t *testing.T) {
		_, err := members.CreateBudgetInvitation(as(bob), connect.NewRequest(&api.CreateBudgetInvitationRequest{BudgetID: budget.ID}))
		requireCode(t, connect.CodePermissionDenied, err)
	})

	resp, err := members.AcceptBudgetInvitation(as(bob), connect.NewRequest(&api.AcceptBudgetInvitationRequest{Token: inv.Token}))
	require.NoError(t, err)
	assert.Equal(t, []string{alice.ID, bob.ID}, resp.Msg.Budget.MemberIDs)
	require.Len(t, resp.Msg.Members, 2)
	assert.Equal(t, "Bob", resp.Msg.Members[1].Name)

	profile, err := store.GetUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{budget.ID}, profile.BudgetIDs)

	notes, err := store.ListNotifications(ctx, storage.NotificationFilter{UserID: alice.ID})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationMemberJoined, notes[0].Type)
	assert.Equal(t, models.TriggerSystem, notes[0].TriggerContext)

	t.Run("invitation is single use", func(t *testing.T) {
		_, err := members.AcceptBudgetInvitation(as(carol), connect.NewRequest(&api.AcceptBudgetInvitationRequest{Token: inv.Token}))
		requireCode(t, connect.CodeFailedPrecondition, err)
	})

	t.Run("existing member", func(t *testing.T) {
		again := invite(t, members, alice, budget.ID)
		_, err := members.AcceptBudgetInvitation(as(bob), connect.NewRequest(&api.AcceptBudgetInvitationRequest{Token: again.Token}))
		requireCode(t, connect.CodeAlreadyExists, err)
	})

	t.Run("expired invitation", func(t *testing.T) {
		fresh := invite(t, members, alice, budget.ID)
		members.now = func() time.Time { return fresh.ExpiresAt.Add(time.Second) }
		defer func() { members.now = time.Now }()

		_, err := members.AcceptBudgetInvitation(as(carol), connect.NewRequest(&api.AcceptBudgetInvitationRequest{Token: fresh.Token}))
		requireCode(t, connect.CodeFailedPrecondition, err)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := members.AcceptBudgetInvitation(as(carol), connect.NewRequest(&api.AcceptBudgetInvitationRequest{Token: "deadbeef"}))
		requireCode(t, connect.CodeNotFound, err)
	})

	t.Run("budget deleted after invite", func(t *testing.T) {
		other := createGroceries(t, budgets, alice)
		pending := invite(t, members, alice, other.ID)
		_, err := budgets.DeleteBudget(as(alice), connect.NewRequest(&api.DeleteBudgetRequest{BudgetID: other.ID}))
		require.NoError(t, err)

		_, err = members.AcceptBudgetInvitation(as(carol), connect.NewRequest(&api.AcceptBudgetInvitationRequest{Token: pending.Token}))
		requireCode(t, connect.CodeNotFound, err)
	})
}

func TestAcceptRateLimited(t *testing.T) {
	store := newTestStore(t)
	members := NewMembershipService(store, denyAll{})
	bob := createUser(t, store, "bob@example.com", "Bob")

	_, err := members.AcceptBudgetInvitation(as(bob), connect.NewRequest(&api.AcceptBudgetInvitationRequest{Token: "anything"}))
	requireCode(t, connect.CodeResourceExhausted, err)
}

func TestRemoveBudgetMember(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	budgets := NewBudgetService(store)
	users := NewUserService(store, nil)
	members := NewMembershipService(store, nil)
	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")
	carol := createUser(t, store, "carol@example.com", "Carol")
	budget := createGroceries(t, budgets, alice)

	inv := invite(t, members, alice, budget.ID)
	_, err := members.AcceptBudgetInvitation(as(bob), connect.NewRequest(&api.AcceptBudgetInvitationRequest{Token: inv.Token}))
	require.NoError(t, err)
	_, err = users.SetLastActiveBudget(as(bob), connect.NewRequest(&api.SetLastActiveBudgetRequest{BudgetID: budget.ID}))
	require.NoError(t, err)

	t.Run("owner cannot be removed", func(t *testing.T) {
		_, err := members.RemoveBudgetMember(as(alice), connect.NewRequest(&api.RemoveBudgetMemberRequest{
			BudgetID: budget.ID, MemberUserID: alice.ID,
		}))
		requireCode(t, connect.CodeInvalidArgument, err)
	})

	t.Run("non-member target", func(t *testing.T) {
		_, err := members.RemoveBudgetMember(as(alice), connect.NewRequest(&api.RemoveBudgetMemberRequest{
			BudgetID: budget.ID, MemberUserID: carol.ID,
		}))
		requireCode(t, connect.CodeNotFound, err)
	})

	t.Run("only the owner may remove", func(t *testing.T) {
		_, err := members.RemoveBudgetMember(as(bob), connect.NewRequest(&api.RemoveBudgetMemberRequest{
			BudgetID: budget.ID, MemberUserID: bob.ID,
		}))
		requireCode(t, connect.CodePermissionDenied, err)
	})

	resp, err := members.RemoveBudgetMember(as(alice), connect.NewRequest(&api.RemoveBudgetMemberRequest{
		BudgetID: budget.ID, MemberUserID: bob.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Msg.MemberCount)
	require.Len(t, resp.Msg.Members, 1)
	assert.Equal(t, alice.ID, resp.Msg.Members[0].UserID)

	profile, err := store.GetUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.BudgetIDs)
	assert.Empty(t, profile.LastActiveBudgetID)

	notes, err := store.ListNotifications(ctx, storage.NotificationFilter{UserID: bob.ID})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationMemberRemoved, notes[0].Type)
}
