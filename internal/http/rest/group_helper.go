package rest

import (
	"context"
	"log"

	"github.com/bchege/wellspring_api/internal/model"
	"github.com/bchege/wellspring_api/internal/policy"
	"github.com/bchege/wellspring_api/util"
	"github.com/bchege/wellspring_api/util/values"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateGroupHelper creates the group and its first ACTIVE FACILITATOR
// membership for the owner in one transaction.
func (api *API) CreateGroupHelper(ctx context.Context, ownerID uuid.UUID, req model.CreateGroupRequest) (model.GroupResponse, string, string, error) {
	if err := util.ValidateStruct(req); err != nil {
		return model.GroupResponse{}, values.BadRequestBody, "Max members must be between 4 and 12", err
	}

	if req.MaxMembers == 0 {
		req.MaxMembers = model.DefaultGroupMembers
	}
	if !policy.ValidGroupCapacity(req.MaxMembers) {
		return model.GroupResponse{}, values.BadRequestBody, "Max members must be between 4 and 12", errValue("max_members out of range")
	}

	group := model.Group{
		ID:              util.GenerateUUID(),
		Name:            req.Name,
		Description:     req.Description,
		Purpose:         req.Purpose,
		MaxMembers:      req.MaxMembers,
		IsPrivate:       req.IsPrivate,
		RequireApproval: req.RequireApproval,
		IsActive:        true,
	}

	created, err := api.CreateGroupWithFacilitator(ctx, group, ownerID)
	if err != nil {
		return model.GroupResponse{}, values.Error, "Failed to create group", err
	}

	resp := model.GroupResponse{
		Group:       created,
		MemberCount: 1,
		UserRole:    model.RoleFacilitator,
	}
	return resp, values.Created, "Group created successfully", nil
}

func (api *API) GetGroupHelper(ctx context.Context, groupID, userID uuid.UUID) (model.GroupResponse, string, string, error) {
	membership, err := api.GetMembership(ctx, api.DB, userID, groupID)
	if err != nil {
		return model.GroupResponse{}, values.Error, "Failed to check membership", err
	}
	if !policy.IsActiveMember(membership) {
		return model.GroupResponse{}, values.NotAllowed, "Access denied: Not a member of this group", errValue("not an active member")
	}

	group, err := api.GetGroupByID(ctx, groupID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.GroupResponse{}, values.NotFound, "Group not found", err
		}
		return model.GroupResponse{}, values.Error, "Failed to get group", err
	}

	count, err := api.CountActiveMembers(ctx, api.DB, groupID)
	if err != nil {
		return model.GroupResponse{}, values.Error, "Failed to count members", err
	}

	resp := model.GroupResponse{
		Group:       group,
		MemberCount: count,
		UserRole:    membership.Role,
	}
	return resp, values.Success, "Group retrieved", nil
}

func (api *API) UpdateGroupHelper(ctx context.Context, groupID, userID uuid.UUID, req model.UpdateGroupRequest) (model.Group, string, string, error) {
	if err := util.ValidateStruct(req); err != nil {
		return model.Group{}, values.BadRequestBody, "Max members must be between 4 and 12", err
	}

	membership, err := api.GetMembership(ctx, api.DB, userID, groupID)
	if err != nil {
		return model.Group{}, values.Error, "Failed to check membership", err
	}
	if !policy.IsFacilitator(membership) {
		return model.Group{}, values.NotAllowed, "Access denied: Facilitator role required", errValue("facilitator role required")
	}

	group, err := api.GetGroupByID(ctx, groupID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Group{}, values.NotFound, "Group not found", err
		}
		return model.Group{}, values.Error, "Failed to get group", err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Description != nil {
		group.Description = req.Description
	}
	if req.Purpose != nil {
		group.Purpose = req.Purpose
	}
	if req.MaxMembers != nil {
		group.MaxMembers = *req.MaxMembers
	}
	if req.IsPrivate != nil {
		group.IsPrivate = *req.IsPrivate
	}
	if req.RequireApproval != nil {
		group.RequireApproval = *req.RequireApproval
	}

	updated, err := api.UpdateGroupRepo(ctx, group)
	if err != nil {
		return model.Group{}, values.Error, "Failed to update group", err
	}

	return updated, values.Success, "Group updated successfully", nil
}

func (api *API) DeleteGroupHelper(ctx context.Context, groupID, userID uuid.UUID) (string, string, error) {
	membership, err := api.GetMembership(ctx, api.DB, userID, groupID)
	if err != nil {
		return values.Error, "Failed to check membership", err
	}
	if !policy.IsFacilitator(membership) {
		return values.NotAllowed, "Access denied: Facilitator role required", errValue("facilitator role required")
	}

	if err = api.SoftDeleteGroup(ctx, groupID); err != nil {
		return values.Error, "Failed to delete group", err
	}

	return values.Success, "Group deleted successfully", nil
}

func (api *API) GetGroupMembersHelper(ctx context.Context, groupID, userID uuid.UUID) ([]model.MemberResponse, string, string, error) {
	membership, err := api.GetMembership(ctx, api.DB, userID, groupID)
	if err != nil {
		return nil, values.Error, "Failed to check membership", err
	}
	if !policy.IsActiveMember(membership) {
		return nil, values.NotAllowed, "Access denied: Not a member of this group", errValue("not an active member")
	}

	members, err := api.ListActiveMembers(ctx, groupID)
	if err != nil {
		return nil, values.Error, "Failed to list members", err
	}

	return members, values.Success, "Members retrieved", nil
}

// InviteMemberHelper runs the capacity check and the PENDING insert in
// one transaction, holding the group row lock so concurrent invites
// cannot push an at-capacity group over its limit.
func (api *API) InviteMemberHelper(ctx context.Context, groupID, inviterID uuid.UUID, inviteeEmail string) (model.Membership, string, string, error) {
	var membership model.Membership
	var invitee model.User
	var group model.Group

	status, message := values.Created, "Invitation sent"

	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		inviterMembership, err := api.GetMembership(ctx, tx, inviterID, groupID)
		if err != nil {
			status, message = values.Error, "Failed to check membership"
			return err
		}
		if !policy.IsFacilitator(inviterMembership) {
			status, message = values.NotAllowed, "Access denied: Facilitator role required"
			return errValue("facilitator role required")
		}

		group, err = api.lockGroup(ctx, tx, groupID)
		if err != nil {
			if err == pgx.ErrNoRows {
				status, message = values.NotFound, "Group not found"
			} else {
				status, message = values.Error, "Failed to get group"
			}
			return err
		}

		activeCount, err := api.CountActiveMembers(ctx, tx, groupID)
		if err != nil {
			status, message = values.Error, "Failed to count members"
			return err
		}
		if !policy.WithinGroupCapacity(activeCount, group.MaxMembers) {
			status, message = values.Capacity, "Group is at maximum capacity"
			return errValue("group at capacity")
		}

		invitee, err = api.GetUserByEmail(ctx, inviteeEmail)
		if err != nil {
			if err == pgx.ErrNoRows {
				status, message = values.NotFound, "User not found"
			} else {
				status, message = values.Error, "Failed to look up user"
			}
			return err
		}

		existing, err := api.GetMembership(ctx, tx, invitee.ID, groupID)
		if err != nil {
			status, message = values.Error, "Failed to check membership"
			return err
		}
		// Any prior row blocks re-invitation; rejoining after
		// LEFT/INACTIVE is not supported.
		if !policy.CanInvite(existing) {
			status, message = values.Conflict, "User is already a member or has pending invitation"
			return errValue("membership already exists")
		}

		membership = model.Membership{
			UserID:    invitee.ID,
			GroupID:   groupID,
			Role:      model.RoleMember,
			Status:    model.StatusPending,
			InvitedBy: &inviterID,
		}
		return api.insertMembership(ctx, tx, membership)
	})
	if err != nil {
		return model.Membership{}, status, message, err
	}

	go func() {
		inviter, lookupErr := api.GetUserByID(context.Background(), inviterID.String())
		inviterName := ""
		if lookupErr == nil && inviter.DisplayName != nil {
			inviterName = *inviter.DisplayName
		}
		emailData := map[string]interface{}{
			"Name":        invitee.FirstName,
			"GroupName":   group.Name,
			"InviterName": inviterName,
		}
		if sendErr := api.Mailer.Send(invitee.Email, emailData, "groupInvite.tmpl"); sendErr != nil {
			log.Println(values.Error, "Failed to send invitation email", sendErr)
		}
	}()

	return membership, status, message, nil
}

func (api *API) AcceptInvitationHelper(ctx context.Context, groupID, userID uuid.UUID) (model.Membership, string, string, error) {
	membership, err := api.GetMembership(ctx, api.DB, userID, groupID)
	if err != nil {
		return model.Membership{}, values.Error, "Failed to check membership", err
	}
	if membership == nil {
		return model.Membership{}, values.NotFound, "Invitation not found", errValue("no membership row")
	}
	if !policy.CanAcceptInvitation(membership) {
		return model.Membership{}, values.BadRequestBody, "Invalid invitation status", errValue("membership not pending")
	}

	updated, err := api.ActivateMembership(ctx, userID, groupID)
	if err != nil {
		return model.Membership{}, values.Error, "Failed to accept invitation", err
	}

	return updated, values.Success, "Invitation accepted", nil
}

// LeaveGroupHelper enforces the last-facilitator invariant inside the
// transaction: the facilitator count is read under the group row lock,
// so two facilitators leaving at once cannot both pass the check.
func (api *API) LeaveGroupHelper(ctx context.Context, groupID, userID uuid.UUID) (string, string, error) {
	status, message := values.Success, "Successfully left the group"

	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		if _, err := api.lockGroup(ctx, tx, groupID); err != nil {
			if err == pgx.ErrNoRows {
				status, message = values.NotFound, "Group not found"
			} else {
				status, message = values.Error, "Failed to get group"
			}
			return err
		}

		membership, err := api.GetMembership(ctx, tx, userID, groupID)
		if err != nil {
			status, message = values.Error, "Failed to check membership"
			return err
		}
		if membership == nil {
			status, message = values.NotFound, "Membership not found"
			return errValue("no membership row")
		}

		others, err := api.CountOtherActiveFacilitators(ctx, tx, groupID, userID)
		if err != nil {
			status, message = values.Error, "Failed to count facilitators"
			return err
		}
		if !policy.CanLeaveGroup(membership, others) {
			status, message = values.Invariant, "Cannot leave group: You are the last facilitator. Please assign another facilitator first."
			return errValue("last facilitator")
		}

		return api.closeMembership(ctx, tx, userID, groupID, model.StatusLeft)
	})
	if err != nil {
		return status, message, err
	}

	return status, message, nil
}

// RemoveMemberHelper deliberately does not apply the last-facilitator
// check: a facilitator removing another facilitator may leave the group
// without one. Asymmetric with LeaveGroupHelper on purpose.
func (api *API) RemoveMemberHelper(ctx context.Context, groupID, actorID, targetID uuid.UUID) (string, string, error) {
	actorMembership, err := api.GetMembership(ctx, api.DB, actorID, groupID)
	if err != nil {
		return values.Error, "Failed to check membership", err
	}
	if !policy.IsFacilitator(actorMembership) {
		return values.NotAllowed, "Access denied: Facilitator role required", errValue("facilitator role required")
	}

	if actorID == targetID {
		return values.BadRequestBody, "Cannot remove yourself. Use leave group instead.", errValue("self removal")
	}

	targetMembership, err := api.GetMembership(ctx, api.DB, targetID, groupID)
	if err != nil {
		return values.Error, "Failed to check membership", err
	}
	if targetMembership == nil {
		return values.NotFound, "Membership not found", errValue("no membership row")
	}

	if err = api.closeMembership(ctx, api.DB, targetID, groupID, model.StatusInactive); err != nil {
		return values.Error, "Failed to remove member", err
	}

	return values.Success, "Member removed successfully", nil
}
