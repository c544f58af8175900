package models

import "time"

// InvitationTTL is how long an invitation token stays valid.
const InvitationTTL = 7 * 24 * time.Hour

// InvitationStatus is the lifecycle state of an invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
)

// Invitation lets the holder of Token join a budget once.
//
// Expiry is evaluated when the invitation is read; nothing sweeps
// expired invitations.
type Invitation struct {
	ID        string
	BudgetID  string
	InvitedBy string
	Token     string
	ExpiresAt time.Time
	Status    InvitationStatus

	AcceptedBy string
	AcceptedAt *time.Time

	CreatedAt time.Time
}

// Expired reports whether the invitation can no longer be accepted at now.
func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
