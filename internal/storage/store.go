// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/MacDuki/sharedShop/internal/models"
)

var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a unique key is already taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrBatchTooLarge is returned when a batch holds more operations than
	// the store accepts in one commit.
	ErrBatchTooLarge = errors.New("batch exceeds operation limit")

	// ErrPreconditionFailed is returned when a conditional write finds the
	// document in an unexpected state.
	ErrPreconditionFailed = errors.New("precondition failed")
)

// DefaultMaxBatchOps is the largest number of operations committed in one batch.
const DefaultMaxBatchOps = 500

// BudgetUpdate lists the budget fields to change. Nil fields are left alone.
type BudgetUpdate struct {
	Name             *string
	Description      *string
	BudgetAmount     *float64
	BudgetPeriod     *models.BudgetPeriod
	CurrentPeriodEnd *time.Time
	IconName         *string
	ColorHex         *string
}

// ItemUpdate lists the item fields to change. Nil fields are left alone.
// When IsPurchased is set, PurchasedBy and PurchasedAt are written with it.
type ItemUpdate struct {
	Name           *string
	EstimatedPrice *float64
	Category       *string
	IsPurchased    *bool
	PurchasedBy    string
	PurchasedAt    *time.Time
}

// ProfileUpdate lists the profile fields to change. Nil fields are left alone.
type ProfileUpdate struct {
	Name        *string
	PhotoURL    *string
	Preferences map[string]string
}

// ItemFilter narrows an item listing. A nil Purchased returns every item.
type ItemFilter struct {
	Purchased *bool
}

// NotificationFilter narrows a notification listing.
type NotificationFilter struct {
	UserID     string
	BudgetID   string
	UnreadOnly bool
	Limit      int
}

// Batch queues writes that are applied atomically by Store.CommitBatch.
//
// Update-style operations fail the whole batch with ErrNotFound when their
// target document is missing. Delete-style operations on missing documents
// succeed.
type Batch interface {
	// CreateBudget inserts a budget. An empty ID is generated immediately so
	// later operations in the same batch can reference it.
	CreateBudget(budget *models.Budget)

	// AddBudgetMember adds userID to the budget's member set.
	AddBudgetMember(budgetID, userID string)
	// RemoveBudgetMember removes userID from the budget's member set.
	RemoveBudgetMember(budgetID, userID string)

	// AddUserBudget adds budgetID to the user's budget set.
	AddUserBudget(userID, budgetID string)
	// RemoveUserBudget removes budgetID from the user's budget set.
	RemoveUserBudget(userID, budgetID string)
	// ClearLastActiveBudget clears the user's last active budget only when
	// it currently equals budgetID.
	ClearLastActiveBudget(userID, budgetID string)

	// AcceptInvitation marks a pending invitation accepted. The batch fails
	// with ErrPreconditionFailed when the invitation is no longer pending.
	AcceptInvitation(invitationID, userID string, at time.Time)

	DeleteItem(itemID string)
	DeleteBudget(budgetID string)
	DeleteNotification(notificationID string)

	// Len returns the number of queued operations.
	Len() int
}

// UserStore holds user profiles and credentials.
type UserStore interface {
	// CreateUserWithCredential persists a profile and its credential together.
	// Returns ErrAlreadyExists when the email is taken.
	CreateUserWithCredential(ctx context.Context, user *models.User, cred *models.Credential) error

	// GetUser returns the profile with its budget list. Returns ErrNotFound
	// when missing.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetUsersByIDs returns the profiles that exist, keyed by ID.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	UpdateUserProfile(ctx context.Context, userID string, update ProfileUpdate) error
	SetLastActiveBudget(ctx context.Context, userID, budgetID string) error

	// ClearLastActiveBudget clears the field only when it equals budgetID.
	ClearLastActiveBudget(ctx context.Context, userID, budgetID string) error

	GetCredentialByEmail(ctx context.Context, email string) (*models.Credential, error)
	UpdateCredentialDisplayName(ctx context.Context, userID, displayName string) error
}

// BudgetStore holds budgets and their shopping items.
type BudgetStore interface {
	// GetBudget returns the budget with its member list in join order.
	GetBudget(ctx context.Context, budgetID string) (*models.Budget, error)

	// ListBudgetsByMember returns every budget userID belongs to.
	ListBudgetsByMember(ctx context.Context, userID string) ([]*models.Budget, error)

	UpdateBudget(ctx context.Context, budgetID string, update BudgetUpdate) error

	CreateItem(ctx context.Context, item *models.ShoppingItem) error
	GetItem(ctx context.Context, itemID string) (*models.ShoppingItem, error)
	UpdateItem(ctx context.Context, itemID string, update ItemUpdate) error
	DeleteItem(ctx context.Context, itemID string) error

	// ListItems returns a budget's items, newest first.
	ListItems(ctx context.Context, budgetID string, filter ItemFilter) ([]*models.ShoppingItem, error)
}

// InvitationStore holds invitations.
type InvitationStore interface {
	CreateInvitation(ctx context.Context, inv *models.Invitation) error
	GetInvitationByToken(ctx context.Context, token string) (*models.Invitation, error)
}

// HistoryStore holds budget snapshots.
type HistoryStore interface {
	CreateSnapshot(ctx context.Context, snap *models.BudgetSnapshot) error

	// ListSnapshots returns a budget's snapshots by period end, newest first.
	ListSnapshots(ctx context.Context, budgetID string, limit int) ([]*models.BudgetSnapshot, error)
}

// NotificationStore holds notifications.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	GetNotification(ctx context.Context, notificationID string) (*models.Notification, error)

	// ListNotifications returns matching notifications, newest first.
	ListNotifications(ctx context.Context, filter NotificationFilter) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID string, at time.Time) error
	DeleteNotification(ctx context.Context, notificationID string) error

	// ListNotificationIDs returns the IDs of every notification owned by userID.
	ListNotificationIDs(ctx context.Context, userID string) ([]string, error)
}

// Store defines the interface for SharedShop storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	BudgetStore
	InvitationStore
	HistoryStore
	NotificationStore

	// NewBatch returns an empty batch.
	NewBatch() Batch

	// CommitBatch applies every queued operation in one transaction.
	// Returns ErrBatchTooLarge when the batch exceeds MaxBatchOps.
	CommitBatch(ctx context.Context, batch Batch) error

	// MaxBatchOps is the operation limit of a single batch.
	MaxBatchOps() int

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
