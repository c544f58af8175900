package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/MacDuki/sharedShop/pkg/api"
)

// NotificationServiceName is the fully-qualified name of the NotificationService service.
const NotificationServiceName = "sharedshop.v1.NotificationService"

// Procedure paths served under NotificationServiceName.
const (
	NotificationServiceCreateNotificationProcedure     = "/sharedshop.v1.NotificationService/CreateNotification"
	NotificationServiceGetUserNotificationsProcedure   = "/sharedshop.v1.NotificationService/GetUserNotifications"
	NotificationServiceMarkNotificationAsReadProcedure = "/sharedshop.v1.NotificationService/MarkNotificationAsRead"
	NotificationServiceDeleteNotificationProcedure     = "/sharedshop.v1.NotificationService/DeleteNotification"
	NotificationServiceClearAllNotificationsProcedure  = "/sharedshop.v1.NotificationService/ClearAllNotifications"
)

// NotificationServiceHandler is the server side of the NotificationService service.
type NotificationServiceHandler interface {
	CreateNotification(context.Context, *connect.Request[api.CreateNotificationRequest]) (*connect.Response[api.CreateNotificationResponse], error)
	GetUserNotifications(context.Context, *connect.Request[api.GetUserNotificationsRequest]) (*connect.Response[api.GetUserNotificationsResponse], error)
	MarkNotificationAsRead(context.Context, *connect.Request[api.MarkNotificationAsReadRequest]) (*connect.Response[api.MarkNotificationAsReadResponse], error)
	DeleteNotification(context.Context, *connect.Request[api.DeleteNotificationRequest]) (*connect.Response[api.DeleteNotificationResponse], error)
	ClearAllNotifications(context.Context, *connect.Request[api.ClearAllNotificationsRequest]) (*connect.Response[api.ClearAllNotificationsResponse], error)
}

// NewNotificationServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewNotificationServiceHandler(svc NotificationServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createNotificationHandler := connect.NewUnaryHandler(NotificationServiceCreateNotificationProcedure, svc.CreateNotification, opts...)
	getUserNotificationsHandler := connect.NewUnaryHandler(NotificationServiceGetUserNotificationsProcedure, svc.GetUserNotifications, opts...)
	markNotificationAsReadHandler := connect.NewUnaryHandler(NotificationServiceMarkNotificationAsReadProcedure, svc.MarkNotificationAsRead, opts...)
	deleteNotificationHandler := connect.NewUnaryHandler(NotificationServiceDeleteNotificationProcedure, svc.DeleteNotification, opts...)
	clearAllNotificationsHandler := connect.NewUnaryHandler(NotificationServiceClearAllNotificationsProcedure, svc.ClearAllNotifications, opts...)
	return "/" + NotificationServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case NotificationServiceCreateNotificationProcedure:
			createNotificationHandler.ServeHTTP(w, r)
		case NotificationServiceGetUserNotificationsProcedure:
			getUserNotificationsHandler.ServeHTTP(w, r)
		case NotificationServiceMarkNotificationAsReadProcedure:
			markNotificationAsReadHandler.ServeHTTP(w, r)
		case NotificationServiceDeleteNotificationProcedure:
			deleteNotificationHandler.ServeHTTP(w, r)
		case NotificationServiceClearAllNotificationsProcedure:
			clearAllNotificationsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// NotificationServiceClient is a client for the NotificationService service.
type NotificationServiceClient interface {
	CreateNotification(context.Context, *connect.Request[api.CreateNotificationRequest]) (*connect.Response[api.CreateNotificationResponse], error)
	GetUserNotifications(context.Context, *connect.Request[api.GetUserNotificationsRequest]) (*connect.Response[api.GetUserNotificationsResponse], error)
	MarkNotificationAsRead(context.Context, *connect.Request[api.MarkNotificationAsReadRequest]) (*connect.Response[api.MarkNotificationAsReadResponse], error)
	DeleteNotification(context.Context, *connect.Request[api.DeleteNotificationRequest]) (*connect.Response[api.DeleteNotificationResponse], error)
	ClearAllNotifications(context.Context, *connect.Request[api.ClearAllNotificationsRequest]) (*connect.Response[api.ClearAllNotificationsResponse], error)
}

// NewNotificationServiceClient constructs a client for the NotificationService service at baseURL.
func NewNotificationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) NotificationServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &notificationServiceClient{
		createNotification: connect.NewClient[api.CreateNotificationRequest, api.CreateNotificationResponse](httpClient, baseURL+NotificationServiceCreateNotificationProcedure, opts...),
		getUserNotifications: connect.NewClient[api.GetUserNotificationsRequest, api.GetUserNotificationsResponse](httpClient, baseURL+NotificationServiceGetUserNotificationsProcedure, opts...),
		markNotificationAsRead: connect.NewClient[api.MarkNotificationAsReadRequest, api.MarkNotificationAsReadResponse](httpClient, baseURL+NotificationServiceMarkNotificationAsReadProcedure, opts...),
		deleteNotification: connect.NewClient[api.DeleteNotificationRequest, api.DeleteNotificationResponse](httpClient, baseURL+NotificationServiceDeleteNotificationProcedure, opts...),
		clearAllNotifications: connect.NewClient[api.ClearAllNotificationsRequest, api.ClearAllNotificationsResponse](httpClient, baseURL+NotificationServiceClearAllNotificationsProcedure, opts...),
	}
}

type notificationServiceClient struct {
	createNotification     *connect.Client[api.CreateNotificationRequest, api.CreateNotificationResponse]
	getUserNotifications   *connect.Client[api.GetUserNotificationsRequest, api.GetUserNotificationsResponse]
	markNotificationAsRead *connect.Client[api.MarkNotificationAsReadRequest, api.MarkNotificationAsReadResponse]
	deleteNotification     *connect.Client[api.DeleteNotificationRequest, api.DeleteNotificationResponse]
	clearAllNotifications  *connect.Client[api.ClearAllNotificationsRequest, api.ClearAllNotificationsResponse]
}

func (c *notificationServiceClient) CreateNotification(ctx context.Context, req *connect.Request[api.CreateNotificationRequest]) (*connect.Response[api.CreateNotificationResponse], error) {
	return c.createNotification.CallUnary(ctx, req)
}

func (c *notificationServiceClient) GetUserNotifications(ctx context.Context, req *connect.Request[api.GetUserNotificationsRequest]) (*connect.Response[api.GetUserNotificationsResponse], error) {
	return c.getUserNotifications.CallUnary(ctx, req)
}

func (c *notificationServiceClient) MarkNotificationAsRead(ctx context.Context, req *connect.Request[api.MarkNotificationAsReadRequest]) (*connect.Response[api.MarkNotificationAsReadResponse], error) {
	return c.markNotificationAsRead.CallUnary(ctx, req)
}

func (c *notificationServiceClient) DeleteNotification(ctx context.Context, req *connect.Request[api.DeleteNotificationRequest]) (*connect.Response[api.DeleteNotificationResponse], error) {
	return c.deleteNotification.CallUnary(ctx, req)
}

func (c *notificationServiceClient) ClearAllNotifications(ctx context.Context, req *connect.Request[api.ClearAllNotificationsRequest]) (*connect.Response[api.ClearAllNotificationsResponse], error) {
	return c.clearAllNotifications.CallUnary(ctx, req)
}
