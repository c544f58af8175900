package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"go.uber.org/multierr"

	"github.com/MacDuki/sharedShop/internal/models"
	"github.com/MacDuki/sharedShop/internal/storage"
	"github.com/MacDuki/sharedShop/pkg/api"
)

// DefaultNotificationLimit is the page size when none is requested.
const DefaultNotificationLimit = 50

// NotificationService implements the NotificationService RPC interface.
type NotificationService struct {
	store storage.Store
	now   func() time.Time
}

// NewNotificationService creates a new NotificationService with the given storage backend.
func NewNotificationService(store storage.Store) *NotificationService {
	return &NotificationService{store: store, now: time.Now}
}

// CreateNotification records a notification for a user. Callers may notify
// themselves, or another member of a budget they share.
func (s *NotificationService) CreateNotification(ctx context.Context, req *connect.Request[api.CreateNotificationRequest]) (*connect.Response[api.CreateNotificationResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateNotification request received",
		"user_id", caller,
		"target_user_id", req.Msg.UserID,
		"budget_id", req.Msg.BudgetID,
		"type", req.Msg.Type,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	trigger := models.TriggerSystem
	if req.Msg.TriggerContext != "" {
		trigger = models.TriggerContext(req.Msg.TriggerContext)
	}

	if _, err := s.store.GetUser(ctx, req.Msg.UserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("user not found")
		}
		return nil, internalError("Failed to load user", err, "user_id", req.Msg.UserID)
	}

	if req.Msg.BudgetID != "" {
		budget, err := s.store.GetBudget(ctx, req.Msg.BudgetID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("budget not found")
		}
		if err != nil {
			return nil, internalError("Failed to load budget", err, "budget_id", req.Msg.BudgetID)
		}
		if req.Msg.UserID != caller && !(budget.IsMember(caller) && budget.IsMember(req.Msg.UserID)) {
			return nil, permissionDenied("you can only notify members of budgets you belong to")
		}
	} else if req.Msg.UserID != caller {
		return nil, permissionDenied("notifying another user requires a shared budget")
	}

	n := &models.Notification{
		UserID:         req.Msg.UserID,
		BudgetID:       req.Msg.BudgetID,
		Type:           req.Msg.Type,
		Title:          req.Msg.Title,
		Body:           req.Msg.Body,
		Payload:        req.Msg.Payload,
		TriggerContext: trigger,
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		return nil, internalError("CreateNotification failed", err, "user_id", req.Msg.UserID)
	}

	slog.Info("Notification created", "notification_id", n.ID, "user_id", n.UserID)
	return connect.NewResponse(&api.CreateNotificationResponse{Notification: toAPINotification(n)}), nil
}

// GetUserNotifications lists the caller's notifications, newest first.
func (s *NotificationService) GetUserNotifications(ctx context.Context, req *connect.Request[api.GetUserNotificationsRequest]) (*connect.Response[api.GetUserNotificationsResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetUserNotifications request received",
		"user_id", caller,
		"budget_id", req.Msg.BudgetID,
		"unread_only", req.Msg.UnreadOnly,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	limit := req.Msg.Limit
	if limit == 0 {
		limit = DefaultNotificationLimit
	}

	list, err := s.store.ListNotifications(ctx, storage.NotificationFilter{
		UserID:     caller,
		BudgetID:   req.Msg.BudgetID,
		UnreadOnly: req.Msg.UnreadOnly,
		Limit:      limit,
	})
	if err != nil {
		return nil, internalError("GetUserNotifications failed", err, "user_id", caller)
	}

	out := make([]*api.Notification, len(list))
	unread := 0
	for i, n := range list {
		out[i] = toAPINotification(n)
		if !n.Read {
			unread++
		}
	}
	return connect.NewResponse(&api.GetUserNotificationsResponse{
		Notifications: out,
		Count:         len(out),
		UnreadCount:   unread,
	}), nil
}

// MarkNotificationAsRead marks one of the caller's notifications read.
// Marking again moves readAt forward.
func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, req *connect.Request[api.MarkNotificationAsReadRequest]) (*connect.Response[api.MarkNotificationAsReadResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("MarkNotificationAsRead request received", "user_id", caller, "notification_id", req.Msg.NotificationID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	n, err := s.ownNotification(ctx, req.Msg.NotificationID, caller)
	if err != nil {
		return nil, err
	}

	at := s.now().UTC()
	if err := s.store.MarkNotificationRead(ctx, n.ID, at); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("notification not found")
		}
		return nil, internalError("MarkNotificationAsRead failed", err, "notification_id", n.ID)
	}
	return connect.NewResponse(&api.MarkNotificationAsReadResponse{
		NotificationID: n.ID,
		ReadAt:         at,
	}), nil
}

// DeleteNotification deletes one of the caller's notifications.
func (s *NotificationService) DeleteNotification(ctx context.Context, req *connect.Request[api.DeleteNotificationRequest]) (*connect.Response[api.DeleteNotificationResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteNotification request received", "user_id", caller, "notification_id", req.Msg.NotificationID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	n, err := s.ownNotification(ctx, req.Msg.NotificationID, caller)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteNotification(ctx, n.ID); err != nil {
		return nil, internalError("DeleteNotification failed", err, "notification_id", n.ID)
	}
	return connect.NewResponse(&api.DeleteNotificationResponse{}), nil
}

// ClearAllNotifications deletes every notification the caller owns, in
// batches no larger than the store allows. A failed partition does not stop
// the ones after it.
func (s *NotificationService) ClearAllNotifications(ctx context.Context, req *connect.Request[api.ClearAllNotificationsRequest]) (*connect.Response[api.ClearAllNotificationsResponse], error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ClearAllNotifications request received", "user_id", caller)

	ids, err := s.store.ListNotificationIDs(ctx, caller)
	if err != nil {
		return nil, internalError("Failed to list notifications", err, "user_id", caller)
	}

	var (
		deleted int
		errs    error
	)
	maxOps := s.store.MaxBatchOps()
	for start := 0; start < len(ids); start += maxOps {
		end := min(start+maxOps, len(ids))
		batch := s.store.NewBatch()
		for _, id := range ids[start:end] {
			batch.DeleteNotification(id)
		}
		if err := s.store.CommitBatch(ctx, batch); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		deleted += end - start
	}
	if errs != nil {
		return nil, internalError("ClearAllNotifications failed", errs, "user_id", caller, "deleted", deleted)
	}

	slog.Info("Notifications cleared", "user_id", caller, "deleted", deleted)
	return connect.NewResponse(&api.ClearAllNotificationsResponse{DeletedCount: deleted}), nil
}

func (s *NotificationService) ownNotification(ctx context.Context, notificationID, caller string) (*models.Notification, error) {
	n, err := s.store.GetNotification(ctx, notificationID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound("notification not found")
	}
	if err != nil {
		return nil, internalError("Failed to load notification", err, "notification_id", notificationID)
	}
	if n.UserID != caller {
		return nil, permissionDenied("you can only access your own notifications")
	}
	return n, nil
}
