package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/MacDuki/sharedShop/pkg/api"
)

// ItemServiceName is the fully-qualified name of the ItemService service.
const ItemServiceName = "sharedshop.v1.ItemService"

// Procedure paths served under ItemServiceName.
const (
	ItemServiceAddShoppingItemProcedure    = "/sharedshop.v1.ItemService/AddShoppingItem"
	ItemServiceUpdateShoppingItemProcedure = "/sharedshop.v1.ItemService/UpdateShoppingItem"
	ItemServiceGetBudgetItemsProcedure     = "/sharedshop.v1.ItemService/GetBudgetItems"
	ItemServiceDeleteShoppingItemProcedure = "/sharedshop.v1.ItemService/DeleteShoppingItem"
)

// ItemServiceHandler is the server side of the ItemService service.
type ItemServiceHandler interface {
	AddShoppingItem(context.Context, *connect.Request[api.AddShoppingItemRequest]) (*connect.Response[api.AddShoppingItemResponse], error)
	UpdateShoppingItem(context.Context, *connect.Request[api.UpdateShoppingItemRequest]) (*connect.Response[api.UpdateShoppingItemResponse], error)
	GetBudgetItems(context.Context, *connect.Request[api.GetBudgetItemsRequest]) (*connect.Response[api.GetBudgetItemsResponse], error)
	DeleteShoppingItem(context.Context, *connect.Request[api.DeleteShoppingItemRequest]) (*connect.Response[api.DeleteShoppingItemResponse], error)
}

// NewItemServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewItemServiceHandler(svc ItemServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	addShoppingItemHandler := connect.NewUnaryHandler(ItemServiceAddShoppingItemProcedure, svc.AddShoppingItem, opts...)
	updateShoppingItemHandler := connect.NewUnaryHandler(ItemServiceUpdateShoppingItemProcedure, svc.UpdateShoppingItem, opts...)
	getBudgetItemsHandler := connect.NewUnaryHandler(ItemServiceGetBudgetItemsProcedure, svc.GetBudgetItems, opts...)
	deleteShoppingItemHandler := connect.NewUnaryHandler(ItemServiceDeleteShoppingItemProcedure, svc.DeleteShoppingItem, opts...)
	return "/" + ItemServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ItemServiceAddShoppingItemProcedure:
			addShoppingItemHandler.ServeHTTP(w, r)
		case ItemServiceUpdateShoppingItemProcedure:
			updateShoppingItemHandler.ServeHTTP(w, r)
		case ItemServiceGetBudgetItemsProcedure:
			getBudgetItemsHandler.ServeHTTP(w, r)
		case ItemServiceDeleteShoppingItemProcedure:
			deleteShoppingItemHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// ItemServiceClient is a client for the ItemService service.
type ItemServiceClient interface {
	AddShoppingItem(context.Context, *connect.Request[api.AddShoppingItemRequest]) (*connect.Response[api.AddShoppingItemResponse], error)
	UpdateShoppingItem(context.Context, *connect.Request[api.UpdateShoppingItemRequest]) (*connect.Response[api.UpdateShoppingItemResponse], error)
	GetBudgetItems(context.Context, *connect.Request[api.GetBudgetItemsRequest]) (*connect.Response[api.GetBudgetItemsResponse], error)
	DeleteShoppingItem(context.Context, *connect.Request[api.DeleteShoppingItemRequest]) (*connect.Response[api.DeleteShoppingItemResponse], error)
}

// NewItemServiceClient constructs a client for the ItemService service at baseURL.
func NewItemServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ItemServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &itemServiceClient{
		addShoppingItem: connect.NewClient[api.AddShoppingItemRequest, api.AddShoppingItemResponse](httpClient, baseURL+ItemServiceAddShoppingItemProcedure, opts...),
		updateShoppingItem: connect.NewClient[api.UpdateShoppingItemRequest, api.UpdateShoppingItemResponse](httpClient, baseURL+ItemServiceUpdateShoppingItemProcedure, opts...),
		getBudgetItems: connect.NewClient[api.GetBudgetItemsRequest, api.GetBudgetItemsResponse](httpClient, baseURL+ItemServiceGetBudgetItemsProcedure, opts...),
		deleteShoppingItem: connect.NewClient[api.DeleteShoppingItemRequest, api.DeleteShoppingItemResponse](httpClient, baseURL+ItemServiceDeleteShoppingItemProcedure, opts...),
	}
}

type itemServiceClient struct {
	addShoppingItem    *connect.Client[api.AddShoppingItemRequest, api.AddShoppingItemResponse]
	updateShoppingItem *connect.Client[api.UpdateShoppingItemRequest, api.UpdateShoppingItemResponse]
	getBudgetItems     *connect.Client[api.GetBudgetItemsRequest, api.GetBudgetItemsResponse]
	deleteShoppingItem *connect.Client[api.DeleteShoppingItemRequest, api.DeleteShoppingItemResponse]
}

func (c *itemServiceClient) AddShoppingItem(ctx context.Context, req *connect.Request[api.AddShoppingItemRequest]) (*connect.Response[api.AddShoppingItemResponse], error) {
	return c.addShoppingItem.CallUnary(ctx, req)
}

func (c *itemServiceClient) UpdateShoppingItem(ctx context.Context, req *connect.Request[api.UpdateShoppingItemRequest]) (*connect.Response[api.UpdateShoppingItemResponse], error) {
	return c.updateShoppingItem.CallUnary(ctx, req)
}

func (c *itemServiceClient) GetBudgetItems(ctx context.Context, req *connect.Request[api.GetBudgetItemsRequest]) (*connect.Response[api.GetBudgetItemsResponse], error) {
	return c.getBudgetItems.CallUnary(ctx, req)
}

func (c *itemServiceClient) DeleteShoppingItem(ctx context.Context, req *connect.Request[api.DeleteShoppingItemRequest]) (*connect.Response[api.DeleteShoppingItemResponse], error) {
	return c.deleteShoppingItem.CallUnary(ctx, req)
}
