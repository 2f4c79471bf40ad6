// Package policy holds the pure authorization decisions for group-scoped
// actions. Every function works over already-loaded rows; nothing here
// touches the store, which keeps the rules testable in isolation.
package policy

import (
	"github.com/bchege/wellspring_api/internal/model"
	"github.com/google/uuid"
)

// IsActiveMember reports whether m grants plain membership rights.
func IsActiveMember(m *model.Membership) bool {
	return m != nil && m.Status == model.StatusActive
}

// IsFacilitator reports whether m grants management rights over its
// group. ADMIN has equivalent standing to FACILITATOR.
func IsFacilitator(m *model.Membership) bool {
	if m == nil || m.Status != model.StatusActive {
		return false
	}
	return m.Role == model.RoleFacilitator || m.Role == model.RoleAdmin
}

// CanEditPost: edits are author-only, with no facilitator override.
func CanEditPost(p *model.Post, userID uuid.UUID) bool {
	return p != nil && p.AuthorID == userID
}

// CanDeletePost: the author may delete their own post; an active
// facilitator of the owning group may delete anyone's.
func CanDeletePost(p *model.Post, userID uuid.UUID, m *model.Membership) bool {
	if p == nil {
		return false
	}
	if p.AuthorID == userID {
		return true
	}
	return IsFacilitator(m)
}

// CanDeleteComment mirrors CanDeletePost for comments.
func CanDeleteComment(c *model.Comment, userID uuid.UUID, m *model.Membership) bool {
	if c == nil {
		return false
	}
	if c.AuthorID == userID {
		return true
	}
	return IsFacilitator(m)
}

// CanManageEvent gates event update and cancellation. Creation only
// needs active membership; the stricter check applies to mutation of an
// existing event.
func CanManageEvent(m *model.Membership) bool {
	return IsFacilitator(m)
}

// CanAcceptInvitation: only a PENDING row can transition to ACTIVE.
func CanAcceptInvitation(m *model.Membership) bool {
	return m != nil && m.Status == model.StatusPending
}

// CanLeaveGroup enforces the last-facilitator invariant: a facilitator
// or admin may leave only while another active facilitator or admin
// remains. otherFacilitators counts active FACILITATOR/ADMIN rows in the
// group excluding the leaver.
func CanLeaveGroup(m *model.Membership, otherFacilitators int) bool {
	if m == nil {
		return false
	}
	if m.Role == model.RoleFacilitator || m.Role == model.RoleAdmin {
		return otherFacilitators >= 1
	}
	return true
}

// CanInvite: an existing membership row in any status blocks a new
// invite; rejoining after LEFT/INACTIVE is not supported.
func CanInvite(existing *model.Membership) bool {
	return existing == nil
}

// WithinGroupCapacity reports whether one more active member fits.
func WithinGroupCapacity(activeMembers, maxMembers int) bool {
	return activeMembers < maxMembers
}

// WithinEventCapacity gates a new GOING response. A nil maxParticipants
// means the event is uncapped. Responses other than GOING never consume
// capacity.
func WithinEventCapacity(status model.ParticipationStatus, goingCount int, maxParticipants *int) bool {
	if status != model.ParticipationGoing {
		return true
	}
	if maxParticipants == nil {
		return true
	}
	return goingCount < *maxParticipants
}

// ValidGroupCapacity bounds a group's configured size.
func ValidGroupCapacity(maxMembers int) bool {
	return maxMembers >= model.MinGroupMembers && maxMembers <= model.MaxGroupMembers
}
