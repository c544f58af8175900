package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/MacDuki/sharedShop/pkg/api"
)

// HistoryServiceName is the fully-qualified name of the HistoryService service.
const HistoryServiceName = "sharedshop.v1.HistoryService"

// Procedure paths served under HistoryServiceName.
const (
	HistoryServiceCreateBudgetHistorySnapshotProcedure = "/sharedshop.v1.HistoryService/CreateBudgetHistorySnapshot"
	HistoryServiceGetBudgetHistoryProcedure            = "/sharedshop.v1.HistoryService/GetBudgetHistory"
)

// HistoryServiceHandler is the server side of the HistoryService service.
type HistoryServiceHandler interface {
	CreateBudgetHistorySnapshot(context.Context, *connect.Request[api.CreateBudgetHistorySnapshotRequest]) (*connect.Response[api.CreateBudgetHistorySnapshotResponse], error)
	GetBudgetHistory(context.Context, *connect.Request[api.GetBudgetHistoryRequest]) (*connect.Response[api.GetBudgetHistoryResponse], error)
}

// NewHistoryServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewHistoryServiceHandler(svc HistoryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createBudgetHistorySnapshotHandler := connect.NewUnaryHandler(HistoryServiceCreateBudgetHistorySnapshotProcedure, svc.CreateBudgetHistorySnapshot, opts...)
	getBudgetHistoryHandler := connect.NewUnaryHandler(HistoryServiceGetBudgetHistoryProcedure, svc.GetBudgetHistory, opts...)
	return "/" + HistoryServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case HistoryServiceCreateBudgetHistorySnapshotProcedure:
			createBudgetHistorySnapshotHandler.ServeHTTP(w, r)
		case HistoryServiceGetBudgetHistoryProcedure:
			getBudgetHistoryHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// HistoryServiceClient is a client for the HistoryService service.
type HistoryServiceClient interface {
	CreateBudgetHistorySnapshot(context.Context, *connect.Request[api.CreateBudgetHistorySnapshotRequest]) (*connect.Response[api.CreateBudgetHistorySnapshotResponse], error)
	GetBudgetHistory(context.Context, *connect.Request[api.GetBudgetHistoryRequest]) (*connect.Response[api.GetBudgetHistoryResponse], error)
}

// NewHistoryServiceClient constructs a client for the HistoryService service at baseURL.
func NewHistoryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) HistoryServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &historyServiceClient{
		createBudgetHistorySnapshot: connect.NewClient[api.CreateBudgetHistorySnapshotRequest, api.CreateBudgetHistorySnapshotResponse](httpClient, baseURL+HistoryServiceCreateBudgetHistorySnapshotProcedure, opts...),
		getBudgetHistory: connect.NewClient[api.GetBudgetHistoryRequest, api.GetBudgetHistoryResponse](httpClient, baseURL+HistoryServiceGetBudgetHistoryProcedure, opts...),
	}
}

type historyServiceClient struct {
	createBudgetHistorySnapshot *connect.Client[api.CreateBudgetHistorySnapshotRequest, api.CreateBudgetHistorySnapshotResponse]
	getBudgetHistory            *connect.Client[api.GetBudgetHistoryRequest, api.GetBudgetHistoryResponse]
}

func (c *historyServiceClient) CreateBudgetHistorySnapshot(ctx context.Context, req *connect.Request[api.CreateBudgetHistorySnapshotRequest]) (*connect.Response[api.CreateBudgetHistorySnapshotResponse], error) {
	return c.createBudgetHistorySnapshot.CallUnary(ctx, req)
}

func (c *historyServiceClient) GetBudgetHistory(ctx context.Context, req *connect.Request[api.GetBudgetHistoryRequest]) (*connect.Response[api.GetBudgetHistoryResponse], error) {
	return c.getBudgetHistory.CallUnary(ctx, req)
}
