package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MacDuki/sharedShop/internal/models"
	"github.com/MacDuki/sharedShop/internal/storage"
)

const budgetColumns = `b.id, b.name, b.description, b.budget_amount, b.budget_period, b.owner_id,
	b.current_period_end, b.icon_name, b.color_hex, b.created_at, b.updated_at`

// GetBudget retrieves a budget by ID, including its members in join order.
func (s *SQLiteStore) GetBudget(ctx context.Context, budgetID string) (*models.Budget, error) {
	budget, err := scanBudget(s.db.QueryRowContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets b WHERE b.id = ?", budgetID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("budget %s: %w", budgetID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	budget.MemberIDs, err = s.budgetMembers(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	return budget, nil
}

// ListBudgetsByMember returns the budgets userID belongs to, in join order.
func (s *SQLiteStore) ListBudgetsByMember(ctx context.Context, userID string) ([]*models.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+budgetColumns+`
		FROM budgets b
		JOIN budget_members m ON m.budget_id = b.id
		WHERE m.user_id = ?
		ORDER BY m.added_at, m.rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	var budgets []*models.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, budget)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budgets: %w", err)
	}

	// Members are loaded after the cursor is closed; the pool holds one connection.
	for _, budget := range budgets {
		budget.MemberIDs, err = s.budgetMembers(ctx, budget.ID)
		if err != nil {
			return nil, err
		}
	}
	return budgets, nil
}

// UpdateBudget applies a partial budget update.
func (s *SQLiteStore) UpdateBudget(ctx context.Context, budgetID string, update storage.BudgetUpdate) error {
	var set setClause
	if update.Name != nil {
		set.add("name", *update.Name)
	}
	if update.Description != nil {
		set.add("description", *update.Description)
	}
	if update.BudgetAmount != nil {
		set.add("budget_amount", *update.BudgetAmount)
	}
	if update.BudgetPeriod != nil {
		set.add("budget_period", string(*update.BudgetPeriod))
	}
	if update.CurrentPeriodEnd != nil {
		set.add("current_period_end", toMillis(*update.CurrentPeriodEnd))
	}
	if update.IconName != nil {
		set.add("icon_name", *update.IconName)
	}
	if update.ColorHex != nil {
		set.add("color_hex", *update.ColorHex)
	}
	set.add("updated_at", toMillis(now()))

	res, err := s.db.ExecContext(ctx,
		"UPDATE budgets SET "+set.String()+" WHERE id = ?",
		append(set.args, budgetID)...,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	return expectOneRow(res, "budget", budgetID)
}

func (s *SQLiteStore) budgetMembers(ctx context.Context, budgetID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM budget_members WHERE budget_id = ? ORDER BY added_at, rowid",
		budgetID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget members: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan budget member: %w", err)
		}
		members = append(members, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budget members: %w", err)
	}
	return members, nil
}

func scanBudget(row rowScanner) (*models.Budget, error) {
	b := &models.Budget{}
	var (
		period                         string
		periodEnd, createdAt, updatedAt int64
	)
	if err := row.Scan(&b.ID, &b.Name, &b.Description, &b.BudgetAmount, &period, &b.OwnerID,
		&periodEnd, &b.IconName, &b.ColorHex, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	b.BudgetPeriod = models.BudgetPeriod(period)
	b.CurrentPeriodEnd = fromMillis(periodEnd)
	b.CreatedAt = fromMillis(createdAt)
	b.UpdatedAt = fromMillis(updatedAt)
	return b, nil
}
