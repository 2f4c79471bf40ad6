package policy

import (
	"testing"

	"github.com/bchege/wellspring_api/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func membership(role model.MemberRole, status model.MembershipStatus) *model.Membership {
	return &model.Membership{
		UserID:  uuid.New(),
		GroupID: uuid.New(),
		Role:    role,
		Status:  status,
	}
}

func TestIsActiveMember(t *testing.T) {
	assert.True(t, IsActiveMember(membership(model.RoleMember, model.StatusActive)))
	assert.False(t, IsActiveMember(membership(model.RoleMember, model.StatusPending)))
	assert.False(t, IsActiveMember(membership(model.RoleMember, model.StatusLeft)))
	assert.False(t, IsActiveMember(membership(model.RoleFacilitator, model.StatusInactive)))
	assert.False(t, IsActiveMember(nil))
}

func TestIsFacilitator(t *testing.T) {
	assert.True(t, IsFacilitator(membership(model.RoleFacilitator, model.StatusActive)))
	assert.True(t, IsFacilitator(membership(model.RoleAdmin, model.StatusActive)))
	assert.False(t, IsFacilitator(membership(model.RoleMember, model.StatusActive)))
	// role without active status grants nothing
	assert.False(t, IsFacilitator(membership(model.RoleFacilitator, model.StatusPending)))
	assert.False(t, IsFacilitator(membership(model.RoleFacilitator, model.StatusLeft)))
	assert.False(t, IsFacilitator(nil))
}

func TestCanEditPost(t *testing.T) {
	author := uuid.New()
	post := &model.Post{ID: uuid.New(), AuthorID: author}

	assert.True(t, CanEditPost(post, author))
	// no facilitator override for edits
	assert.False(t, CanEditPost(post, uuid.New()))
	assert.False(t, CanEditPost(nil, author))
}

func TestCanDeletePost(t *testing.T) {
	author := uuid.New()
	other := uuid.New()
	post := &model.Post{ID: uuid.New(), AuthorID: author}

	assert.True(t, CanDeletePost(post, author, nil))
	assert.True(t, CanDeletePost(post, other, membership(model.RoleFacilitator, model.StatusActive)))
	assert.True(t, CanDeletePost(post, other, membership(model.RoleAdmin, model.StatusActive)))
	assert.False(t, CanDeletePost(post, other, membership(model.RoleMember, model.StatusActive)))
	assert.False(t, CanDeletePost(post, other, membership(model.RoleFacilitator, model.StatusLeft)))
	assert.False(t, CanDeletePost(post, other, nil))
}

func TestCanDeleteComment(t *testing.T) {
	author := uuid.New()
	other := uuid.New()
	comment := &model.Comment{ID: uuid.New(), AuthorID: author}

	assert.True(t, CanDeleteComment(comment, author, nil))
	assert.True(t, CanDeleteComment(comment, other, membership(model.RoleFacilitator, model.StatusActive)))
	assert.False(t, CanDeleteComment(comment, other, membership(model.RoleMember, model.StatusActive)))
}

func TestCanAcceptInvitation(t *testing.T) {
	assert.True(t, CanAcceptInvitation(membership(model.RoleMember, model.StatusPending)))
	assert.False(t, CanAcceptInvitation(membership(model.RoleMember, model.StatusActive)))
	assert.False(t, CanAcceptInvitation(membership(model.RoleMember, model.StatusLeft)))
	assert.False(t, CanAcceptInvitation(nil))
}

func TestCanLeaveGroup(t *testing.T) {
	t.Run("plain member leaves freely", func(t *testing.T) {
		assert.True(t, CanLeaveGroup(membership(model.RoleMember, model.StatusActive), 0))
	})

	t.Run("last facilitator cannot leave", func(t *testing.T) {
		assert.False(t, CanLeaveGroup(membership(model.RoleFacilitator, model.StatusActive), 0))
		assert.False(t, CanLeaveGroup(membership(model.RoleAdmin, model.StatusActive), 0))
	})

	t.Run("facilitator leaves when another remains", func(t *testing.T) {
		assert.True(t, CanLeaveGroup(membership(model.RoleFacilitator, model.StatusActive), 1))
		assert.True(t, CanLeaveGroup(membership(model.RoleAdmin, model.StatusActive), 2))
	})

	assert.False(t, CanLeaveGroup(nil, 5))
}

func TestCanInvite(t *testing.T) {
	assert.True(t, CanInvite(nil))
	// any existing row blocks re-invitation, including LEFT and INACTIVE
	assert.False(t, CanInvite(membership(model.RoleMember, model.StatusPending)))
	assert.False(t, CanInvite(membership(model.RoleMember, model.StatusActive)))
	assert.False(t, CanInvite(membership(model.RoleMember, model.StatusLeft)))
	assert.False(t, CanInvite(membership(model.RoleMember, model.StatusInactive)))
}

func TestWithinGroupCapacity(t *testing.T) {
	assert.True(t, WithinGroupCapacity(7, 8))
	assert.False(t, WithinGroupCapacity(8, 8))
	assert.False(t, WithinGroupCapacity(9, 8))
}

func TestWithinEventCapacity(t *testing.T) {
	cap8 := 8

	assert.True(t, WithinEventCapacity(model.ParticipationGoing, 7, &cap8))
	assert.False(t, WithinEventCapacity(model.ParticipationGoing, 8, &cap8))

	// non-GOING responses never consume capacity
	assert.True(t, WithinEventCapacity(model.ParticipationMaybe, 8, &cap8))
	assert.True(t, WithinEventCapacity(model.ParticipationNotGoing, 8, &cap8))

	// uncapped event
	assert.True(t, WithinEventCapacity(model.ParticipationGoing, 1000, nil))
}

func TestValidGroupCapacity(t *testing.T) {
	tests := []struct {
		size int
		want bool
	}{
		{3, false},
		{4, true},
		{8, true},
		{12, true},
		{13, false},
		{0, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ValidGroupCapacity(tc.size), "size %d", tc.size)
	}
}
