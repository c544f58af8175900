package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MacDuki/sharedShop/internal/models"
	"github.com/MacDuki/sharedShop/internal/storage"
)

// CreateInvitation persists a new invitation. Tokens are unique.
func (s *SQLiteStore) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO invitations (id, budget_id, invited_by, token, expires_at, status, accepted_by, accepted_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.BudgetID, inv.InvitedBy, inv.Token, toMillis(inv.ExpiresAt), string(inv.Status),
		nullString(inv.AcceptedBy), nullMillis(inv.AcceptedAt), toMillis(inv.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("invitation token: %w", storage.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to insert invitation: %w", err)
	}
	return nil
}

// GetInvitationByToken retrieves the invitation carrying token.
func (s *SQLiteStore) GetInvitationByToken(ctx context.Context, token string) (*models.Invitation, error) {
	inv := &models.Invitation{}
	var (
		status               string
		expiresAt, createdAt int64
		acceptedBy           sql.NullString
		acceptedAt           sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, budget_id, invited_by, token, expires_at, status, accepted_by, accepted_at, created_at
		FROM invitations WHERE token = ?`, token,
	).Scan(&inv.ID, &inv.BudgetID, &inv.InvitedBy, &inv.Token, &expiresAt, &status,
		&acceptedBy, &acceptedAt, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("invitation: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	inv.Status = models.InvitationStatus(status)
	inv.ExpiresAt = fromMillis(expiresAt)
	inv.CreatedAt = fromMillis(createdAt)
	inv.AcceptedBy = acceptedBy.String
	inv.AcceptedAt = timePtr(acceptedAt)
	return inv, nil
}
