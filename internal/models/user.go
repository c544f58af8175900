package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// User is the profile document of a registered user.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name shown to other members.
	Name string

	Email    string
	PhotoURL string

	// Preferences holds free-form client settings.
	Preferences map[string]string

	// BudgetIDs lists the budgets the user belongs to, in join order.
	BudgetIDs []string

	// LastActiveBudgetID is empty or references a budget the user is a
	// current member of.
	LastActiveBudgetID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a new user profile with a generated ID.
func NewUser(email, name string) *User {
	now := time.Now().UTC()
	return &User{
		ID:          uuid.New().String(),
		Name:        name,
		Email:       email,
		Preferences: map[string]string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasBudget reports whether budgetID is in the user's budget list.
func (u *User) HasBudget(budgetID string) bool {
	return slices.Contains(u.BudgetIDs, budgetID)
}

// Credential is the identity record used to sign a user in. It lives apart
// from the profile the way an external identity provider keeps its own
// account data.
type Credential struct {
	UserID       string
	Email        string
	PasswordHash string
	DisplayName  string
	CreatedAt    time.Time
}
