package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MacDuki/sharedShop/internal/models"
	"github.com/MacDuki/sharedShop/internal/storage"
)

const itemColumns = `id, budget_id, name, estimated_price, category, created_by, created_at, updated_at,
	is_purchased, purchased_by, purchased_at`

// CreateItem persists a new shopping item, generating its ID and timestamps.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.ShoppingItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	at := now()
	item.CreatedAt = at
	item.UpdatedAt = at

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shopping_items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.BudgetID, item.Name, item.EstimatedPrice, item.Category, item.CreatedBy,
		toMillis(at), toMillis(at), item.IsPurchased, nullString(item.PurchasedBy), nullMillis(item.PurchasedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// GetItem retrieves a shopping item by ID.
func (s *SQLiteStore) GetItem(ctx context.Context, itemID string) (*models.ShoppingItem, error) {
	item, err := scanItem(s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM shopping_items WHERE id = ?", itemID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item %s: %w", itemID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// UpdateItem applies a partial item update.
func (s *SQLiteStore) UpdateItem(ctx context.Context, itemID string, update storage.ItemUpdate) error {
	var set setClause
	if update.Name != nil {
		set.add("name", *update.Name)
	}
	if update.EstimatedPrice != nil {
		set.add("estimated_price", *update.EstimatedPrice)
	}
	if update.Category != nil {
		set.add("category", *update.Category)
	}
	if update.IsPurchased != nil {
		set.add("is_purchased", *update.IsPurchased)
		set.add("purchased_by", nullString(update.PurchasedBy))
		set.add("purchased_at", nullMillis(update.PurchasedAt))
	}
	set.add("updated_at", toMillis(now()))

	res, err := s.db.ExecContext(ctx,
		"UPDATE shopping_items SET "+set.String()+" WHERE id = ?",
		append(set.args, itemID)...,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return expectOneRow(res, "item", itemID)
}

// DeleteItem removes a shopping item. Deleting a missing item is not an error.
func (s *SQLiteStore) DeleteItem(ctx context.Context, itemID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM shopping_items WHERE id = ?", itemID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// ListItems returns a budget's items, newest first.
func (s *SQLiteStore) ListItems(ctx context.Context, budgetID string, filter storage.ItemFilter) ([]*models.ShoppingItem, error) {
	query := "SELECT " + itemColumns + " FROM shopping_items WHERE budget_id = ?"
	args := []any{budgetID}
	if filter.Purchased != nil {
		query += " AND is_purchased = ?"
		args = append(args, *filter.Purchased)
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*models.ShoppingItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

func scanItem(row rowScanner) (*models.ShoppingItem, error) {
	item := &models.ShoppingItem{}
	var (
		createdAt, updatedAt int64
		purchasedBy          sql.NullString
		purchasedAt          sql.NullInt64
	)
	if err := row.Scan(&item.ID, &item.BudgetID, &item.Name, &item.EstimatedPrice, &item.Category,
		&item.CreatedBy, &createdAt, &updatedAt, &item.IsPurchased, &purchasedBy, &purchasedAt); err != nil {
		return nil, err
	}
	item.CreatedAt = fromMillis(createdAt)
	item.UpdatedAt = fromMillis(updatedAt)
	item.PurchasedBy = purchasedBy.String
	item.PurchasedAt = timePtr(purchasedAt)
	return item, nil
}
