package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MacDuki/sharedShop/internal/models"
	"github.com/MacDuki/sharedShop/internal/storage"
)

const notificationColumns = `id, user_id, budget_id, type, title, body, payload, read, trigger_context,
	created_at, read_at`

// CreateNotification persists a new notification.
func (s *SQLiteStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	n.CreatedAt = now()

	var payload sql.NullString
	if len(n.Payload) > 0 {
		payload = sql.NullString{String: string(n.Payload), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, nullString(n.BudgetID), n.Type, n.Title, n.Body, payload, n.Read,
		string(n.TriggerContext), toMillis(n.CreatedAt), nullMillis(n.ReadAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// GetNotification retrieves a notification by ID.
func (s *SQLiteStore) GetNotification(ctx context.Context, notificationID string) (*models.Notification, error) {
	n, err := scanNotification(s.db.QueryRowContext(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE id = ?", notificationID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("notification %s: %w", notificationID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return n, nil
}

// ListNotifications returns a user's notifications, newest first.
func (s *SQLiteStore) ListNotifications(ctx context.Context, filter storage.NotificationFilter) ([]*models.Notification, error) {
	query := "SELECT " + notificationColumns + " FROM notifications WHERE user_id = ?"
	args := []any{filter.UserID}
	if filter.BudgetID != "" {
		query += " AND budget_id = ?"
		args = append(args, filter.BudgetID)
	}
	if filter.UnreadOnly {
		query += " AND read = 0"
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var list []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		list = append(list, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return list, nil
}

// MarkNotificationRead sets read and readAt. Marking twice rewrites readAt.
func (s *SQLiteStore) MarkNotificationRead(ctx context.Context, notificationID string, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET read = 1, read_at = ? WHERE id = ?",
		toMillis(at), notificationID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return expectOneRow(res, "notification", notificationID)
}

// DeleteNotification removes a notification. Deleting a missing one is not an error.
func (s *SQLiteStore) DeleteNotification(ctx context.Context, notificationID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM notifications WHERE id = ?", notificationID); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

// ListNotificationIDs returns the IDs of all notifications owned by userID.
func (s *SQLiteStore) ListNotificationIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM notifications WHERE user_id = ? ORDER BY created_at, rowid", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notification ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan notification id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notification ids: %w", err)
	}
	return ids, nil
}

func scanNotification(row rowScanner) (*models.Notification, error) {
	n := &models.Notification{}
	var (
		budgetID, payload sql.NullString
		trigger           string
		createdAt         int64
		readAt            sql.NullInt64
	)
	if err := row.Scan(&n.ID, &n.UserID, &budgetID, &n.Type, &n.Title, &n.Body, &payload, &n.Read,
		&trigger, &createdAt, &readAt); err != nil {
		return nil, err
	}
	n.BudgetID = budgetID.String
	if payload.Valid {
		n.Payload = json.RawMessage(payload.String)
	}
	n.TriggerContext = models.TriggerContext(trigger)
	n.CreatedAt = fromMillis(createdAt)
	n.ReadAt = timePtr(readAt)
	return n, nil
}
