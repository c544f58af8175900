package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/MacDuki/sharedShop/internal/models"
)

// CreateSnapshot persists an immutable budget snapshot.
func (s *SQLiteStore) CreateSnapshot(ctx context.Context, snap *models.BudgetSnapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	snap.CreatedAt = now()

	members, err := json.Marshal(snap.MemberIDs)
	if err != nil {
		return fmt.Errorf("failed to encode member ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO budget_history (id, budget_id, budget_name, budget_amount, budget_period,
			total_spent, remaining, member_ids, member_count, item_count,
			period_start, period_end, created_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.BudgetID, snap.BudgetName, snap.BudgetAmount, string(snap.BudgetPeriod),
		snap.TotalSpent, snap.Remaining, string(members), snap.MemberCount, snap.ItemCount,
		toMillis(snap.PeriodStart), toMillis(snap.PeriodEnd), toMillis(snap.CreatedAt), snap.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns up to limit snapshots of a budget, latest period first.
func (s *SQLiteStore) ListSnapshots(ctx context.Context, budgetID string, limit int) ([]*models.BudgetSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, budget_id, budget_name, budget_amount, budget_period, total_spent, remaining,
			member_ids, member_count, item_count, period_start, period_end, created_at, created_by
		FROM budget_history
		WHERE budget_id = ?
		ORDER BY period_end DESC, rowid DESC
		LIMIT ?`, budgetID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*models.BudgetSnapshot
	for rows.Next() {
		snap := &models.BudgetSnapshot{}
		var (
			period, members                   string
			periodStart, periodEnd, createdAt int64
		)
		if err := rows.Scan(&snap.ID, &snap.BudgetID, &snap.BudgetName, &snap.BudgetAmount, &period,
			&snap.TotalSpent, &snap.Remaining, &members, &snap.MemberCount, &snap.ItemCount,
			&periodStart, &periodEnd, &createdAt, &snap.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		if err := json.Unmarshal([]byte(members), &snap.MemberIDs); err != nil {
			return nil, fmt.Errorf("failed to decode member ids: %w", err)
		}
		snap.BudgetPeriod = models.BudgetPeriod(period)
		snap.PeriodStart = fromMillis(periodStart)
		snap.PeriodEnd = fromMillis(periodEnd)
		snap.CreatedAt = fromMillis(createdAt)
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return snaps, nil
}
