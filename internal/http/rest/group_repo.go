package rest

import (
	"context"

	"github.com/bchege/wellspring_api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so membership
// reads can run standalone or under a row lock inside RunInTx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (api *API) CreateGroupWithFacilitator(ctx context.Context, group model.Group, ownerID uuid.UUID) (model.Group, error) {
	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		stmt := `
			INSERT INTO groups (id, name, description, purpose, max_members, is_private, require_approval, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
			RETURNING created_at, updated_at`
		err := tx.QueryRow(ctx, stmt,
			group.ID, group.Name, group.Description, group.Purpose,
			group.MaxMembers, group.IsPrivate, group.RequireApproval,
		).Scan(&group.CreatedAt, &group.UpdatedAt)
		if err != nil {
			return err
		}

		stmt = `
			INSERT INTO group_memberships (user_id, group_id, role, status, joined_at)
			VALUES ($1, $2, $3, $4, NOW())`
		_, err = tx.Exec(ctx, stmt, ownerID, group.ID, model.RoleFacilitator, model.StatusActive)
		return err
	})
	if err != nil {
		return model.Group{}, err
	}
	return group, nil
}

func (api *API) GetGroupByID(ctx context.Context, groupID uuid.UUID) (model.Group, error) {
	var group model.Group
	stmt := `
		SELECT id, name, description, purpose, max_members, is_private, require_approval, is_active, created_at, updated_at
		FROM groups
		WHERE id = $1 AND is_active = TRUE`

	err := api.DB.QueryRow(ctx, stmt, groupID).Scan(
		&group.ID, &group.Name, &group.Description, &group.Purpose,
		&group.MaxMembers, &group.IsPrivate, &group.RequireApproval,
		&group.IsActive, &group.CreatedAt, &group.UpdatedAt,
	)
	if err != nil {
		return model.Group{}, err
	}
	return group, nil
}

// lockGroup reads the group row FOR UPDATE so capacity and facilitator
// counts stay stable until the surrounding transaction commits.
func (api *API) lockGroup(ctx context.Context, tx pgx.Tx, groupID uuid.UUID) (model.Group, error) {
	var group model.Group
	stmt := `
		SELECT id, name, description, purpose, max_members, is_private, require_approval, is_active, created_at, updated_at
		FROM groups
		WHERE id = $1 AND is_active = TRUE
		FOR UPDATE`

	err := tx.QueryRow(ctx, stmt, groupID).Scan(
		&group.ID, &group.Name, &group.Description, &group.Purpose,
		&group.MaxMembers, &group.IsPrivate, &group.RequireApproval,
		&group.IsActive, &group.CreatedAt, &group.UpdatedAt,
	)
	if err != nil {
		return model.Group{}, err
	}
	return group, nil
}

func (api *API) UpdateGroupRepo(ctx context.Context, group model.Group) (model.Group, error) {
	stmt := `
		UPDATE groups
		SET name = $2, description = $3, purpose = $4, max_members = $5,
		    is_private = $6, require_approval = $7, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
		RETURNING updated_at`

	err := api.DB.QueryRow(ctx, stmt,
		group.ID, group.Name, group.Description, group.Purpose,
		group.MaxMembers, group.IsPrivate, group.RequireApproval,
	).Scan(&group.UpdatedAt)
	if err != nil {
		return model.Group{}, err
	}
	return group, nil
}

func (api *API) SoftDeleteGroup(ctx context.Context, groupID uuid.UUID) error {
	stmt := `
		UPDATE groups
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE`

	tag, err := api.DB.Exec(ctx, stmt, groupID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// GetMembership returns (nil, nil) when no row exists for the pair.
func (api *API) GetMembership(ctx context.Context, q querier, userID, groupID uuid.UUID) (*model.Membership, error) {
	var m model.Membership
	stmt := `
		SELECT user_id, group_id, role, status, joined_at, left_at, invited_by, created_at, updated_at
		FROM group_memberships
		WHERE user_id = $1 AND group_id = $2`

	err := q.QueryRow(ctx, stmt, userID, groupID).Scan(
		&m.UserID, &m.GroupID, &m.Role, &m.Status,
		&m.JoinedAt, &m.LeftAt, &m.InvitedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (api *API) CountActiveMembers(ctx context.Context, q querier, groupID uuid.UUID) (int, error) {
	var count int
	stmt := `
		SELECT COUNT(*)
		FROM group_memberships
		WHERE group_id = $1 AND status = $2`

	err := q.QueryRow(ctx, stmt, groupID, model.StatusActive).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (api *API) CountOtherActiveFacilitators(ctx context.Context, q querier, groupID, excludeUserID uuid.UUID) (int, error) {
	var count int
	stmt := `
		SELECT COUNT(*)
		FROM group_memberships
		WHERE group_id = $1 AND user_id <> $2
		  AND status = $3 AND role IN ($4, $5)`

	err := q.QueryRow(ctx, stmt, groupID, excludeUserID,
		model.StatusActive, model.RoleFacilitator, model.RoleAdmin).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (api *API) ListActiveMembers(ctx context.Context, groupID uuid.UUID) ([]model.MemberResponse, error) {
	stmt := `
		SELECT u.id, u.first_name, u.last_name, u.display_name, u.avatar, m.role, m.joined_at
		FROM group_memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.group_id = $1 AND m.status = $2
		ORDER BY m.joined_at ASC`

	rows, err := api.DB.Query(ctx, stmt, groupID, model.StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []model.MemberResponse{}
	for rows.Next() {
		var m model.MemberResponse
		err = rows.Scan(&m.ID, &m.FirstName, &m.LastName, &m.DisplayName, &m.Avatar, &m.Role, &m.JoinedAt)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (api *API) insertMembership(ctx context.Context, q querier, m model.Membership) error {
	stmt := `
		INSERT INTO group_memberships (user_id, group_id, role, status, invited_by)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := q.Exec(ctx, stmt, m.UserID, m.GroupID, m.Role, m.Status, m.InvitedBy)
	return err
}

func (api *API) ActivateMembership(ctx context.Context, userID, groupID uuid.UUID) (model.Membership, error) {
	var m model.Membership
	stmt := `
		UPDATE group_memberships
		SET status = $3, joined_at = NOW(), updated_at = NOW()
		WHERE user_id = $1 AND group_id = $2
		RETURNING user_id, group_id, role, status, joined_at, left_at, invited_by, created_at, updated_at`

	err := api.DB.QueryRow(ctx, stmt, userID, groupID, model.StatusActive).Scan(
		&m.UserID, &m.GroupID, &m.Role, &m.Status,
		&m.JoinedAt, &m.LeftAt, &m.InvitedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return model.Membership{}, err
	}
	return m, nil
}

func (api *API) closeMembership(ctx context.Context, q querier, userID, groupID uuid.UUID, status model.MembershipStatus) error {
	stmt := `
		UPDATE group_memberships
		SET status = $3, left_at = NOW(), updated_at = NOW()
		WHERE user_id = $1 AND group_id = $2`

	tag, err := q.Exec(ctx, stmt, userID, groupID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (api *API) ListUserGroups(ctx context.Context, userID uuid.UUID) ([]model.UserGroupResponse, error) {
	stmt := `
		SELECT g.id, g.name, g.description, g.max_members, g.created_at,
		       m.role, m.joined_at,
		       (SELECT COUNT(*) FROM group_memberships am
		        WHERE am.group_id = g.id AND am.status = $2) AS member_count
		FROM group_memberships m
		JOIN groups g ON g.id = m.group_id
		WHERE m.user_id = $1 AND m.status = $2 AND g.is_active = TRUE
		ORDER BY g.created_at DESC`

	rows, err := api.DB.Query(ctx, stmt, userID, model.StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []model.UserGroupResponse{}
	for rows.Next() {
		var g model.UserGroupResponse
		err = rows.Scan(&g.ID, &g.Name, &g.Description, &g.MaxMembers, &g.CreatedAt,
			&g.Role, &g.JoinedAt, &g.MemberCount)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
