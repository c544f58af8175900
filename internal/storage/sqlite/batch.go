package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MacDuki/sharedShop/internal/models"
	"github.com/MacDuki/sharedShop/internal/storage"
)

// batchOp is one queued write. at is the commit timestamp shared by every
// op in the batch.
type batchOp func(ctx context.Context, tx *sql.Tx, at time.Time) error

// batch implements storage.Batch by queuing closures run in one transaction.
type batch struct {
	ops []batchOp
}

var _ storage.Batch = (*batch)(nil)

// NewBatch returns an empty batch.
func (s *SQLiteStore) NewBatch() storage.Batch {
	return &batch{}
}

// CommitBatch applies the queued operations atomically.
func (s *SQLiteStore) CommitBatch(ctx context.Context, b storage.Batch) error {
	sb, ok := b.(*batch)
	if !ok {
		return fmt.Errorf("unsupported batch type %T", b)
	}
	if len(sb.ops) > s.maxBatchOps {
		return fmt.Errorf("%d ops: %w", len(sb.ops), storage.ErrBatchTooLarge)
	}
	if len(sb.ops) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	at := now()
	for _, op := range sb.ops {
		if err := op(ctx, tx, at); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (b *batch) Len() int {
	return len(b.ops)
}

func (b *batch) CreateBudget(budget *models.Budget) {
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	b.ops = append(b.ops, func(ctx context.Context, tx *sql.Tx, at time.Time) error {
		budget.CreatedAt = at
		budget.UpdatedAt = at
		_, err := tx.ExecContext(ctx, `
			INSERT INTO budgets (id, name, description, budget_amount, budget_period, owner_id,
				current_period_end, icon_name, color_hex, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			budget.ID, budget.Name, budget.Description, budget.BudgetAmount, string(budget.BudgetPeriod),
			budget.OwnerID, toMillis(budget.CurrentPeriodEnd), budget.IconName, budget.ColorHex,
			toMillis(at), toMillis(at),
		)
		if err != nil {
			return fmt.Errorf("failed to insert budget: %w", err)
		}
		return nil
	})
}

func (b *batch) AddBudgetMember(budgetID, userID string) {
	b.ops = append(b.ops, func(ctx context.Context, tx *sql.Tx, at time.Time) error {
		if err := touch(ctx, tx, "budgets", budgetID, at); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO budget_members (budget_id, user_id, added_at) VALUES (?, ?, ?)",
			budgetID, userID, toMillis(at),
		)
		if err != nil {
			return fmt.Errorf("failed to add budget member: %w", err)
		}
		return nil
	})
}

func (b *batch) RemoveBudgetMember(budgetID, userID string) {
	b.ops = append(b.ops, func(ctx context.Context, tx *sql.Tx, at time.Time) error {
		if err := touch(ctx, tx, "budgets", budgetID, at); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"DELETE FROM budget_members WHERE budget_id = ? AND user_id = ?",
			budgetID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to remove budget member: %w", err)
		}
		return nil
	})
}

func (b *batch) AddUserBudget(userID, budgetID string) {
	b.ops = append(b.ops, func(ctx context.Context, tx *sql.Tx, at time.Time) error {
		if err := touch(ctx, tx, "users", userID, at); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO user_budgets (user_id, budget_id, added_at) VALUES (?, ?, ?)",
			userID, budgetID, toMillis(at),
		)
		if err != nil {
			return fmt.Errorf("failed to add user budget: %w", err)
		}
		return nil
	})
}

func (b *batch) RemoveUserBudget(userID, budgetID string) {
	b.ops = append(b.ops, func(ctx context.Context, tx *sql.Tx, at time.Time) error {
		if err := touch(ctx, tx, "users", userID, at); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"DELETE FROM user_budgets WHERE user_id = ? AND budget_id = ?",
			userID, budgetID,
		)
		if err != nil {
			return fmt.Errorf("failed to remove user budget: %w", err)
		}
		return nil
	})
}

func (b *batch) ClearLastActiveBudget(userID, budgetID string) {
	b.ops = append(b.ops, func(ctx context.Context, tx *sql.Tx, at time.Time) error {
		return clearLastActive(ctx, tx, userID, budgetID, at)
	})
}

func (b *batch) AcceptInvitation(invitationID, userID string, acceptedAt time.Time) {
	b.ops = append(b.ops, func(ctx context.Context, tx *sql.Tx, _ time.Time) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE invitations SET status = ?, accepted_by = ?, accepted_at = ?
			WHERE id = ? AND status = ?`,
			string(models.InvitationAccepted), userID, toMillis(acceptedAt),
			invitationID, string(models.InvitationPending),
		)
		if err != nil {
			return fmt.Errorf("failed to accept invitation: %w", err)
		}
		err = expectOneRow(res, "invitation", invitationID)
		if errors.Is(err, storage.ErrNotFound) {
			if err := requireRow(ctx, tx, "invitations", invitationID); err != nil {
				return err
			}
			return fmt.Errorf("invitation %s: %w", invitationID, storage.ErrPreconditionFailed)
		}
		return err
	})
}

func (b *batch) DeleteItem(itemID string) {
	b.ops = append(b.ops, deleteByID("shopping_items", itemID))
}

func (b *batch) DeleteBudget(budgetID string) {
	b.ops = append(b.ops, deleteByID("budgets", budgetID))
}

func (b *batch) DeleteNotification(notificationID string) {
	b.ops = append(b.ops, deleteByID("notifications", notificationID))
}

func deleteByID(table, id string) batchOp {
	return func(ctx context.Context, tx *sql.Tx, _ time.Time) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
		return nil
	}
}

// touch bumps updated_at, failing with storage.ErrNotFound for a missing row.
func touch(ctx context.Context, q execer, table, id string, at time.Time) error {
	res, err := q.ExecContext(ctx, "UPDATE "+table+" SET updated_at = ? WHERE id = ?", toMillis(at), id)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", table[:len(table)-1], id, storage.ErrNotFound)
	}
	return nil
}

func clearLastActive(ctx context.Context, q execer, userID, budgetID string, at time.Time) error {
	_, err := q.ExecContext(ctx, `
		UPDATE users SET last_active_budget_id = NULL, updated_at = ?
		WHERE id = ? AND last_active_budget_id = ?`,
		toMillis(at), userID, budgetID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear last active budget: %w", err)
	}
	return nil
}
