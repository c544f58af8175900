package membership

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MacDuki/sharedShop/internal/models"
)

// recordingBatch captures staged operations in order.
type recordingBatch struct {
	ops []string
}

func (r *recordingBatch) CreateBudget(b *models.Budget) { r.ops = append(r.ops, "create:"+b.ID) }
func (r *recordingBatch) AddBudgetMember(budgetID, userID string) {
	r.ops = append(r.ops, "budget+:"+budgetID+":"+userID)
}
func (r *recordingBatch) RemoveBudgetMember(budgetID, userID string) {
	r.ops = append(r.ops, "budget-:"+budgetID+":"+userID)
}
func (r *recordingBatch) AddUserBudget(userID, budgetID string) {
	r.ops = append(r.ops, "user+:"+userID+":"+budgetID)
}
func (r *recordingBatch) RemoveUserBudget(userID, budgetID string) {
	r.ops = append(r.ops, "user-:"+userID+":"+budgetID)
}
func (r *recordingBatch) ClearLastActiveBudget(userID, budgetID string) {
	r.ops = append(r.ops, "clear:"+userID+":"+budgetID)
}
func (r *recordingBatch) AcceptInvitation(id, userID string, _ time.Time) {
	r.ops = append(r.ops, "accept:"+id+":"+userID)
}
func (r *recordingBatch) DeleteItem(id string)         { r.ops = append(r.ops, "item-:"+id) }
func (r *recordingBatch) DeleteBudget(id string)       { r.ops = append(r.ops, "budget-doc-:"+id) }
func (r *recordingBatch) DeleteNotification(id string) { r.ops = append(r.ops, "notif-:"+id) }
func (r *recordingBatch) Len() int                     { return len(r.ops) }

func TestJoinWritesBothSides(t *testing.T) {
	b := &recordingBatch{}
	Join(b, "b1", "u1")
	assert.Equal(t, []string{"budget+:b1:u1", "user+:u1:b1"}, b.ops)
}

func TestLeaveWritesBothSidesAndClearsLastActive(t *testing.T) {
	b := &recordingBatch{}
	Leave(b, "b1", "u1")
	assert.Equal(t, []string{"budget-:b1:u1", "user-:u1:b1", "clear:u1:b1"}, b.ops)
}

func TestDetachOnlyTouchesUser(t *testing.T) {
	b := &recordingBatch{}
	Detach(b, "b1", "u1")
	assert.Equal(t, []string{"user-:u1:b1", "clear:u1:b1"}, b.ops)
}
