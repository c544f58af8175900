package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/MacDuki/sharedShop/pkg/api"
)

// UserServiceName is the fully-qualified name of the UserService service.
const UserServiceName = "sharedshop.v1.UserService"

// Procedure paths served under UserServiceName.
const (
	UserServiceGetCurrentUserProfileProcedure = "/sharedshop.v1.UserService/GetCurrentUserProfile"
	UserServiceUpdateUserProfileProcedure     = "/sharedshop.v1.UserService/UpdateUserProfile"
	UserServiceGetUserBudgetsProcedure        = "/sharedshop.v1.UserService/GetUserBudgets"
	UserServiceGetLastActiveBudgetProcedure   = "/sharedshop.v1.UserService/GetLastActiveBudget"
	UserServiceSetLastActiveBudgetProcedure   = "/sharedshop.v1.UserService/SetLastActiveBudget"
)

// UserServiceHandler is the server side of the UserService service.
type UserServiceHandler interface {
	GetCurrentUserProfile(context.Context, *connect.Request[api.GetCurrentUserProfileRequest]) (*connect.Response[api.GetCurrentUserProfileResponse], error)
	UpdateUserProfile(context.Context, *connect.Request[api.UpdateUserProfileRequest]) (*connect.Response[api.UpdateUserProfileResponse], error)
	GetUserBudgets(context.Context, *connect.Request[api.GetUserBudgetsRequest]) (*connect.Response[api.GetUserBudgetsResponse], error)
	GetLastActiveBudget(context.Context, *connect.Request[api.GetLastActiveBudgetRequest]) (*connect.Response[api.GetLastActiveBudgetResponse], error)
	SetLastActiveBudget(context.Context, *connect.Request[api.SetLastActiveBudgetRequest]) (*connect.Response[api.SetLastActiveBudgetResponse], error)
}

// NewUserServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	getCurrentUserProfileHandler := connect.NewUnaryHandler(UserServiceGetCurrentUserProfileProcedure, svc.GetCurrentUserProfile, opts...)
	updateUserProfileHandler := connect.NewUnaryHandler(UserServiceUpdateUserProfileProcedure, svc.UpdateUserProfile, opts...)
	getUserBudgetsHandler := connect.NewUnaryHandler(UserServiceGetUserBudgetsProcedure, svc.GetUserBudgets, opts...)
	getLastActiveBudgetHandler := connect.NewUnaryHandler(UserServiceGetLastActiveBudgetProcedure, svc.GetLastActiveBudget, opts...)
	setLastActiveBudgetHandler := connect.NewUnaryHandler(UserServiceSetLastActiveBudgetProcedure, svc.SetLastActiveBudget, opts...)
	return "/" + UserServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case UserServiceGetCurrentUserProfileProcedure:
			getCurrentUserProfileHandler.ServeHTTP(w, r)
		case UserServiceUpdateUserProfileProcedure:
			updateUserProfileHandler.ServeHTTP(w, r)
		case UserServiceGetUserBudgetsProcedure:
			getUserBudgetsHandler.ServeHTTP(w, r)
		case UserServiceGetLastActiveBudgetProcedure:
			getLastActiveBudgetHandler.ServeHTTP(w, r)
		case UserServiceSetLastActiveBudgetProcedure:
			setLastActiveBudgetHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UserServiceClient is a client for the UserService service.
type UserServiceClient interface {
	GetCurrentUserProfile(context.Context, *connect.Request[api.GetCurrentUserProfileRequest]) (*connect.Response[api.GetCurrentUserProfileResponse], error)
	UpdateUserProfile(context.Context, *connect.Request[api.UpdateUserProfileRequest]) (*connect.Response[api.UpdateUserProfileResponse], error)
	GetUserBudgets(context.Context, *connect.Request[api.GetUserBudgetsRequest]) (*connect.Response[api.GetUserBudgetsResponse], error)
	GetLastActiveBudget(context.Context, *connect.Request[api.GetLastActiveBudgetRequest]) (*connect.Response[api.GetLastActiveBudgetResponse], error)
	SetLastActiveBudget(context.Context, *connect.Request[api.SetLastActiveBudgetRequest]) (*connect.Response[api.SetLastActiveBudgetResponse], error)
}

// NewUserServiceClient constructs a client for the UserService service at baseURL.
func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) UserServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &userServiceClient{
		getCurrentUserProfile: connect.NewClient[api.GetCurrentUserProfileRequest, api.GetCurrentUserProfileResponse](httpClient, baseURL+UserServiceGetCurrentUserProfileProcedure, opts...),
		updateUserProfile: connect.NewClient[api.UpdateUserProfileRequest, api.UpdateUserProfileResponse](httpClient, baseURL+UserServiceUpdateUserProfileProcedure, opts...),
		getUserBudgets: connect.NewClient[api.GetUserBudgetsRequest, api.GetUserBudgetsResponse](httpClient, baseURL+UserServiceGetUserBudgetsProcedure, opts...),
		getLastActiveBudget: connect.NewClient[api.GetLastActiveBudgetRequest, api.GetLastActiveBudgetResponse](httpClient, baseURL+UserServiceGetLastActiveBudgetProcedure, opts...),
		setLastActiveBudget: connect.NewClient[api.SetLastActiveBudgetRequest, api.SetLastActiveBudgetResponse](httpClient, baseURL+UserServiceSetLastActiveBudgetProcedure, opts...),
	}
}

type userServiceClient struct {
	getCurrentUserProfile *connect.Client[api.GetCurrentUserProfileRequest, api.GetCurrentUserProfileResponse]
	updateUserProfile     *connect.Client[api.UpdateUserProfileRequest, api.UpdateUserProfileResponse]
	getUserBudgets        *connect.Client[api.GetUserBudgetsRequest, api.GetUserBudgetsResponse]
	getLastActiveBudget   *connect.Client[api.GetLastActiveBudgetRequest, api.GetLastActiveBudgetResponse]
	setLastActiveBudget   *connect.Client[api.SetLastActiveBudgetRequest, api.SetLastActiveBudgetResponse]
}

func (c *userServiceClient) GetCurrentUserProfile(ctx context.Context, req *connect.Request[api.GetCurrentUserProfileRequest]) (*connect.Response[api.GetCurrentUserProfileResponse], error) {
	return c.getCurrentUserProfile.CallUnary(ctx, req)
}

func (c *userServiceClient) UpdateUserProfile(ctx context.Context, req *connect.Request[api.UpdateUserProfileRequest]) (*connect.Response[api.UpdateUserProfileResponse], error) {
	return c.updateUserProfile.CallUnary(ctx, req)
}

func (c *userServiceClient) GetUserBudgets(ctx context.Context, req *connect.Request[api.GetUserBudgetsRequest]) (*connect.Response[api.GetUserBudgetsResponse], error) {
	return c.getUserBudgets.CallUnary(ctx, req)
}

func (c *userServiceClient) GetLastActiveBudget(ctx context.Context, req *connect.Request[api.GetLastActiveBudgetRequest]) (*connect.Response[api.GetLastActiveBudgetResponse], error) {
	return c.getLastActiveBudget.CallUnary(ctx, req)
}

func (c *userServiceClient) SetLastActiveBudget(ctx context.Context, req *connect.Request[api.SetLastActiveBudgetRequest]) (*connect.Response[api.SetLastActiveBudgetResponse], error) {
	return c.setLastActiveBudget.CallUnary(ctx, req)
}
