package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MacDuki/sharedShop/internal/auth"
	"github.com/MacDuki/sharedShop/internal/storage/sqlite"
	"github.com/MacDuki/sharedShop/pkg/api"
	"github.com/MacDuki/sharedShop/pkg/api/apiconnect"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	router := NewRouter(Deps{
		Store:          store,
		Authenticator:  auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost),
		JWTManager:     auth.NewJWTManager("test-secret", time.Hour),
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Registry:       prometheus.NewRegistry(),
		AllowedOrigins: []string{"*"},
		RequestTimeout: 10 * time.Second,
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func withToken[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func register(t *testing.T, client apiconnect.AuthServiceClient, email, name string) string {
	t.Helper()
	resp, err := client.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email: email, DisplayName: name, Password: "correct horse",
	}))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Msg.Token)
	return resp.Msg.Token
}

func TestSharedBudgetOverHTTP(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	authClient := apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL)
	budgets := apiconnect.NewBudgetServiceClient(http.DefaultClient, server.URL)
	membership := apiconnect.NewMembershipServiceClient(http.DefaultClient, server.URL)
	items := apiconnect.NewItemServiceClient(http.DefaultClient, server.URL)
	users := apiconnect.NewUserServiceClient(http.DefaultClient, server.URL)

	alice := register(t, authClient, "alice@example.com", "Alice")
	bob := register(t, authClient, "bob@example.com", "Bob")

	_, err := authClient.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email: "alice@example.com", DisplayName: "Alice again", Password: "correct horse",
	}))
	assert.Equal(t, connect.CodeAlreadyExists, connect.CodeOf(err))

	login, err := authClient.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "bob@example.com", Password: "correct horse"}))
	require.NoError(t, err)
	assert.Equal(t, "Bob", login.Msg.User.Name)

	_, err = authClient.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "bob@example.com", Password: "wrong password"}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	created, err := budgets.CreateBudget(ctx, withToken(&api.CreateBudgetRequest{
		Name: "Groceries", BudgetAmount: 500, BudgetPeriod: "monthly",
	}, alice))
	require.NoError(t, err)
	budgetID := created.Msg.Budget.ID

	inv, err := membership.CreateBudgetInvitation(ctx, withToken(&api.CreateBudgetInvitationRequest{BudgetID: budgetID}, alice))
	require.NoError(t, err)
	accepted, err := membership.AcceptBudgetInvitation(ctx, withToken(&api.AcceptBudgetInvitationRequest{Token: inv.Msg.Token}, bob))
	require.NoError(t, err)
	assert.Len(t, accepted.Msg.Members, 2)

	added, err := items.AddShoppingItem(ctx, withToken(&api.AddShoppingItemRequest{
		BudgetID: budgetID, Name: "Big shop", EstimatedPrice: 425,
	}, bob))
	require.NoError(t, err)
	purchased := true
	updated, err := items.UpdateShoppingItem(ctx, withToken(&api.UpdateShoppingItemRequest{
		ItemID: added.Msg.Item.ID, IsPurchased: &purchased,
	}, bob))
	require.NoError(t, err)
	assert.Equal(t, 75.0, updated.Msg.BudgetStatus.Remaining)

	details, err := budgets.GetBudgetDetails(ctx, withToken(&api.GetBudgetDetailsRequest{BudgetID: budgetID}, alice))
	require.NoError(t, err)
	assert.Equal(t, "warning", details.Msg.Budget.Status)
	assert.Equal(t, 425.0, details.Msg.Budget.TotalSpent)

	list, err := users.GetUserBudgets(ctx, withToken(&api.GetUserBudgetsRequest{}, bob))
	require.NoError(t, err)
	require.Len(t, list.Msg.Budgets, 1)
	assert.False(t, list.Msg.Budgets[0].IsOwner)

	t.Run("missing token", func(t *testing.T) {
		_, err := budgets.GetBudgetDetails(ctx, connect.NewRequest(&api.GetBudgetDetailsRequest{BudgetID: budgetID}))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("forged token", func(t *testing.T) {
		forged, err := auth.NewJWTManager("other-secret", time.Hour).Generate("someone", "x@example.com")
		require.NoError(t, err)
		_, err = budgets.GetBudgetDetails(ctx, withToken(&api.GetBudgetDetailsRequest{BudgetID: budgetID}, forged))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})
}

func TestOperationalEndpoints(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	authClient := apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL)
	_, err = authClient.Logout(context.Background(), connect.NewRequest(&api.LogoutRequest{}))
	require.NoError(t, err)

	resp, err = http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), `sharedshop_rpc_calls_total{code="ok",procedure="/sharedshop.v1.AuthService/Logout"} 1`)
}
