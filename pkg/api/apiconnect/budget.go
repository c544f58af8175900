package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/MacDuki/sharedShop/pkg/api"
)

// BudgetServiceName is the fully-qualified name of the BudgetService service.
const BudgetServiceName = "sharedshop.v1.BudgetService"

// Procedure paths served under BudgetServiceName.
const (
	BudgetServiceCreateBudgetProcedure      = "/sharedshop.v1.BudgetService/CreateBudget"
	BudgetServiceGetBudgetDetailsProcedure  = "/sharedshop.v1.BudgetService/GetBudgetDetails"
	BudgetServiceUpdateBudgetProcedure      = "/sharedshop.v1.BudgetService/UpdateBudget"
	BudgetServiceDeleteBudgetProcedure      = "/sharedshop.v1.BudgetService/DeleteBudget"
	BudgetServiceGetBudgetMembersProcedure  = "/sharedshop.v1.BudgetService/GetBudgetMembers"
	BudgetServiceGetMemberExpensesProcedure = "/sharedshop.v1.BudgetService/GetMemberExpenses"
)

// BudgetServiceHandler is the server side of the BudgetService service.
type BudgetServiceHandler interface {
	CreateBudget(context.Context, *connect.Request[api.CreateBudgetRequest]) (*connect.Response[api.CreateBudgetResponse], error)
	GetBudgetDetails(context.Context, *connect.Request[api.GetBudgetDetailsRequest]) (*connect.Response[api.GetBudgetDetailsResponse], error)
	UpdateBudget(context.Context, *connect.Request[api.UpdateBudgetRequest]) (*connect.Response[api.UpdateBudgetResponse], error)
	DeleteBudget(context.Context, *connect.Request[api.DeleteBudgetRequest]) (*connect.Response[api.DeleteBudgetResponse], error)
	GetBudgetMembers(context.Context, *connect.Request[api.GetBudgetMembersRequest]) (*connect.Response[api.GetBudgetMembersResponse], error)
	GetMemberExpenses(context.Context, *connect.Request[api.GetMemberExpensesRequest]) (*connect.Response[api.GetMemberExpensesResponse], error)
}

// NewBudgetServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewBudgetServiceHandler(svc BudgetServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createBudgetHandler := connect.NewUnaryHandler(BudgetServiceCreateBudgetProcedure, svc.CreateBudget, opts...)
	getBudgetDetailsHandler := connect.NewUnaryHandler(BudgetServiceGetBudgetDetailsProcedure, svc.GetBudgetDetails, opts...)
	updateBudgetHandler := connect.NewUnaryHandler(BudgetServiceUpdateBudgetProcedure, svc.UpdateBudget, opts...)
	deleteBudgetHandler := connect.NewUnaryHandler(BudgetServiceDeleteBudgetProcedure, svc.DeleteBudget, opts...)
	getBudgetMembersHandler := connect.NewUnaryHandler(BudgetServiceGetBudgetMembersProcedure, svc.GetBudgetMembers, opts...)
	getMemberExpensesHandler := connect.NewUnaryHandler(BudgetServiceGetMemberExpensesProcedure, svc.GetMemberExpenses, opts...)
	return "/" + BudgetServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BudgetServiceCreateBudgetProcedure:
			createBudgetHandler.ServeHTTP(w, r)
		case BudgetServiceGetBudgetDetailsProcedure:
			getBudgetDetailsHandler.ServeHTTP(w, r)
		case BudgetServiceUpdateBudgetProcedure:
			updateBudgetHandler.ServeHTTP(w, r)
		case BudgetServiceDeleteBudgetProcedure:
			deleteBudgetHandler.ServeHTTP(w, r)
		case BudgetServiceGetBudgetMembersProcedure:
			getBudgetMembersHandler.ServeHTTP(w, r)
		case BudgetServiceGetMemberExpensesProcedure:
			getMemberExpensesHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// BudgetServiceClient is a client for the BudgetService service.
type BudgetServiceClient interface {
	CreateBudget(context.Context, *connect.Request[api.CreateBudgetRequest]) (*connect.Response[api.CreateBudgetResponse], error)
	GetBudgetDetails(context.Context, *connect.Request[api.GetBudgetDetailsRequest]) (*connect.Response[api.GetBudgetDetailsResponse], error)
	UpdateBudget(context.Context, *connect.Request[api.UpdateBudgetRequest]) (*connect.Response[api.UpdateBudgetResponse], error)
	DeleteBudget(context.Context, *connect.Request[api.DeleteBudgetRequest]) (*connect.Response[api.DeleteBudgetResponse], error)
	GetBudgetMembers(context.Context, *connect.Request[api.GetBudgetMembersRequest]) (*connect.Response[api.GetBudgetMembersResponse], error)
	GetMemberExpenses(context.Context, *connect.Request[api.GetMemberExpensesRequest]) (*connect.Response[api.GetMemberExpensesResponse], error)
}

// NewBudgetServiceClient constructs a client for the BudgetService service at baseURL.
func NewBudgetServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BudgetServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &budgetServiceClient{
		createBudget: connect.NewClient[api.CreateBudgetRequest, api.CreateBudgetResponse](httpClient, baseURL+BudgetServiceCreateBudgetProcedure, opts...),
		getBudgetDetails: connect.NewClient[api.GetBudgetDetailsRequest, api.GetBudgetDetailsResponse](httpClient, baseURL+BudgetServiceGetBudgetDetailsProcedure, opts...),
		updateBudget: connect.NewClient[api.UpdateBudgetRequest, api.UpdateBudgetResponse](httpClient, baseURL+BudgetServiceUpdateBudgetProcedure, opts...),
		deleteBudget: connect.NewClient[api.DeleteBudgetRequest, api.DeleteBudgetResponse](httpClient, baseURL+BudgetServiceDeleteBudgetProcedure, opts...),
		getBudgetMembers: connect.NewClient[api.GetBudgetMembersRequest, api.GetBudgetMembersResponse](httpClient, baseURL+BudgetServiceGetBudgetMembersProcedure, opts...),
		getMemberExpenses: connect.NewClient[api.GetMemberExpensesRequest, api.GetMemberExpensesResponse](httpClient, baseURL+BudgetServiceGetMemberExpensesProcedure, opts...),
	}
}

type budgetServiceClient struct {
	createBudget      *connect.Client[api.CreateBudgetRequest, api.CreateBudgetResponse]
	getBudgetDetails  *connect.Client[api.GetBudgetDetailsRequest, api.GetBudgetDetailsResponse]
	updateBudget      *connect.Client[api.UpdateBudgetRequest, api.UpdateBudgetResponse]
	deleteBudget      *connect.Client[api.DeleteBudgetRequest, api.DeleteBudgetResponse]
	getBudgetMembers  *connect.Client[api.GetBudgetMembersRequest, api.GetBudgetMembersResponse]
	getMemberExpenses *connect.Client[api.GetMemberExpensesRequest, api.GetMemberExpensesResponse]
}

func (c *budgetServiceClient) CreateBudget(ctx context.Context, req *connect.Request[api.CreateBudgetRequest]) (*connect.Response[api.CreateBudgetResponse], error) {
	return c.createBudget.CallUnary(ctx, req)
}

func (c *budgetServiceClient) GetBudgetDetails(ctx context.Context, req *connect.Request[api.GetBudgetDetailsRequest]) (*connect.Response[api.GetBudgetDetailsResponse], error) {
	return c.getBudgetDetails.CallUnary(ctx, req)
}

func (c *budgetServiceClient) UpdateBudget(ctx context.Context, req *connect.Request[api.UpdateBudgetRequest]) (*connect.Response[api.UpdateBudgetResponse], error) {
	return c.updateBudget.CallUnary(ctx, req)
}

func (c *budgetServiceClient) DeleteBudget(ctx context.Context, req *connect.Request[api.DeleteBudgetRequest]) (*connect.Response[api.DeleteBudgetResponse], error) {
	return c.deleteBudget.CallUnary(ctx, req)
}

func (c *budgetServiceClient) GetBudgetMembers(ctx context.Context, req *connect.Request[api.GetBudgetMembersRequest]) (*connect.Response[api.GetBudgetMembersResponse], error) {
	return c.getBudgetMembers.CallUnary(ctx, req)
}

func (c *budgetServiceClient) GetMemberExpenses(ctx context.Context, req *connect.Request[api.GetMemberExpensesRequest]) (*connect.Response[api.GetMemberExpensesResponse], error) {
	return c.getMemberExpenses.CallUnary(ctx, req)
}
