package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/MacDuki/sharedShop/internal/models"
	"github.com/MacDuki/sharedShop/internal/storage"
)

// CreateUserWithCredential inserts a profile and its credential in one transaction.
func (s *SQLiteStore) CreateUserWithCredential(ctx context.Context, user *models.User, cred *models.Credential) error {
	prefs, err := json.Marshal(user.Preferences)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM credentials WHERE email = ?", cred.Email).Scan(&one)
	if err == nil {
		return fmt.Errorf("email %s: %w", cred.Email, storage.ErrAlreadyExists)
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check email: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, name, email, photo_url, preferences, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.PhotoURL, string(prefs),
		toMillis(user.CreatedAt), toMillis(user.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	cred.UserID = user.ID
	_, err = tx.ExecContext(ctx, `
		INSERT INTO credentials (user_id, email, password_hash, display_name, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		cred.UserID, cred.Email, cred.PasswordHash, cred.DisplayName, toMillis(cred.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create credential: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetUser retrieves a profile by ID, including its budget list.
func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, name, email, photo_url, preferences, last_active_budget_id, created_at, updated_at
		FROM users WHERE id = ?`, userID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT budget_id FROM user_budgets WHERE user_id = ? ORDER BY added_at, rowid",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user budgets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var budgetID string
		if err := rows.Scan(&budgetID); err != nil {
			return nil, fmt.Errorf("failed to scan user budget: %w", err)
		}
		user.BudgetIDs = append(user.BudgetIDs, budgetID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user budgets: %w", err)
	}

	return user, nil
}

// GetUsersByIDs retrieves multiple profiles by their IDs.
// Users that don't exist are omitted from the result. Budget lists are not loaded.
func (s *SQLiteStore) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, photo_url, preferences, last_active_budget_id, created_at, updated_at
		FROM users WHERE id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// UpdateUserProfile applies a partial profile update.
func (s *SQLiteStore) UpdateUserProfile(ctx context.Context, userID string, update storage.ProfileUpdate) error {
	var set setClause
	if update.Name != nil {
		set.add("name", *update.Name)
	}
	if update.PhotoURL != nil {
		set.add("photo_url", *update.PhotoURL)
	}
	if update.Preferences != nil {
		prefs, err := json.Marshal(update.Preferences)
		if err != nil {
			return fmt.Errorf("failed to encode preferences: %w", err)
		}
		set.add("preferences", string(prefs))
	}
	set.add("updated_at", toMillis(now()))

	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET "+set.String()+" WHERE id = ?",
		append(set.args, userID)...,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return expectOneRow(res, "user", userID)
}

// SetLastActiveBudget records the budget the user last opened.
func (s *SQLiteStore) SetLastActiveBudget(ctx context.Context, userID, budgetID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET last_active_budget_id = ?, updated_at = ? WHERE id = ?",
		budgetID, toMillis(now()), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set last active budget: %w", err)
	}
	return expectOneRow(res, "user", userID)
}

// ClearLastActiveBudget clears the last active budget when it equals budgetID.
func (s *SQLiteStore) ClearLastActiveBudget(ctx context.Context, userID, budgetID string) error {
	return clearLastActive(ctx, s.db, userID, budgetID, now())
}

// GetCredentialByEmail retrieves the credential registered for email.
func (s *SQLiteStore) GetCredentialByEmail(ctx context.Context, email string) (*models.Credential, error) {
	cred := &models.Credential{}
	var createdAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, email, password_hash, display_name, created_at
		FROM credentials WHERE email = ?`, email,
	).Scan(&cred.UserID, &cred.Email, &cred.PasswordHash, &cred.DisplayName, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("credential %s: %w", email, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	cred.CreatedAt = fromMillis(createdAt)
	return cred, nil
}

// UpdateCredentialDisplayName keeps the identity record's name in step with the profile.
func (s *SQLiteStore) UpdateCredentialDisplayName(ctx context.Context, userID, displayName string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE credentials SET display_name = ? WHERE user_id = ?",
		displayName, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update display name: %w", err)
	}
	return expectOneRow(res, "credential", userID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var (
		prefs                string
		lastActive           sql.NullString
		createdAt, updatedAt int64
	)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PhotoURL, &prefs,
		&lastActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(prefs), &user.Preferences); err != nil {
		return nil, fmt.Errorf("failed to decode preferences: %w", err)
	}
	if user.Preferences == nil {
		user.Preferences = map[string]string{}
	}
	user.LastActiveBudgetID = lastActive.String
	user.CreatedAt = fromMillis(createdAt)
	user.UpdatedAt = fromMillis(updatedAt)
	return user, nil
}
