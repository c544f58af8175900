package api

import "time"

type CreateBudgetInvitationRequest struct {
	BudgetID string `json:"budgetId" validate:"required"`
}

type CreateBudgetInvitationResponse struct {
	InvitationID string    `json:"invitationId"`
	Token        string    `json:"invitationToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type AcceptBudgetInvitationRequest struct {
	Token string `json:"invitationToken" validate:"required"`
}

type AcceptBudgetInvitationResponse struct {
	Budget  *Budget   `json:"budget"`
	Members []*Member `json:"members"`
}

type RemoveBudgetMemberRequest struct {
	BudgetID     string `json:"budgetId" validate:"required"`
	MemberUserID string `json:"memberUserId" validate:"required"`
}

type RemoveBudgetMemberResponse struct {
	Members     []*Member `json:"members"`
	MemberCount int       `json:"memberCount"`
}
