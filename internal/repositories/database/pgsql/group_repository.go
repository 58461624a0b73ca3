package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/splitmate/splitmate_backend/internal/apperrors"
	"github.com/splitmate/splitmate_backend/internal/core/domain"
	portsrepo "github.com/splitmate/splitmate_backend/internal/core/ports/repositories"
	"github.com/splitmate/splitmate_backend/internal/models"
	"github.com/splitmate/splitmate_backend/internal/utils/mapping"
)

const groupColumns = `group_id, name, emoji, description, invite_code, admin_id, is_active,
       created_at, created_by, last_updated_at, last_updated_by`

type PgxGroupRepository struct {
	BaseRepository
}

func newPgxGroupRepository(pool *pgxpool.Pool) portsrepo.GroupRepositoryWithTx {
	return &PgxGroupRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxGroupRepository implements portsrepo.GroupRepositoryWithTx
var _ portsrepo.GroupRepositoryWithTx = (*PgxGroupRepository)(nil)

func scanGroup(row pgx.Row) (*models.Group, error) {
	var m models.Group
	err := row.Scan(
		&m.GroupID,
		&m.Name,
		&m.Emoji,
		&m.Description,
		&m.InviteCode,
		&m.AdminID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveGroup persists the group and its creator's admin membership in one transaction.
func (r *PgxGroupRepository) SaveGroup(ctx context.Context, group domain.Group, adminMembership domain.GroupMember) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored if the transaction commits

	modelGroup := mapping.ToModelGroup(group)
	groupQuery := `
        INSERT INTO groups (group_id, name, emoji, description, invite_code, admin_id, is_active, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err = tx.Exec(ctx, groupQuery,
		modelGroup.GroupID,
		modelGroup.Name,
		modelGroup.Emoji,
		modelGroup.Description,
		modelGroup.InviteCode,
		modelGroup.AdminID,
		modelGroup.IsActive,
		modelGroup.CreatedAt,
		modelGroup.CreatedBy,
		modelGroup.LastUpdatedAt,
		modelGroup.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert group "+modelGroup.GroupID, err)
	}

	memberQuery := `
        INSERT INTO group_members (group_id, user_id, role, joined_at)
        VALUES ($1, $2, $3, $4);
    `
	_, err = tx.Exec(ctx, memberQuery,
		adminMembership.GroupID,
		adminMembership.UserID,
		string(adminMembership.Role),
		adminMembership.JoinedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert admin membership for group "+modelGroup.GroupID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE group_id = $1;`
	modelGroup, err := scanGroup(r.Pool.QueryRow(ctx, query, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find group by ID "+groupID, err)
	}

	domainGroup := mapping.ToDomainGroup(*modelGroup)
	return &domainGroup, nil
}

func (r *PgxGroupRepository) FindGroupByInviteCode(ctx context.Context, inviteCode string) (*domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE invite_code = $1 AND is_active = TRUE;`
	modelGroup, err := scanGroup(r.Pool.QueryRow(ctx, query, inviteCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find group by invite code", err)
	}

	domainGroup := mapping.ToDomainGroup(*modelGroup)
	return &domainGroup, nil
}

func (r *PgxGroupRepository) ListGroupsByUserID(ctx context.Context, userID string) ([]domain.Group, error) {
	query := `
        SELECT g.group_id, g.name, g.emoji, g.description, g.invite_code, g.admin_id, g.is_active,
               g.created_at, g.created_by, g.last_updated_at, g.last_updated_by
        FROM groups g
        JOIN group_members gm ON g.group_id = gm.group_id
        WHERE gm.user_id = $1 AND g.is_active = TRUE
        ORDER BY g.created_at DESC;
    `
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query groups for user "+userID, err)
	}
	defer rows.Close()

	modelGroups := []models.Group{}
	for rows.Next() {
		modelGroup, err := scanGroup(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan group row", err)
		}
		modelGroups = append(modelGroups, *modelGroup)
	}
	if rows.Err() != nil {
		return nil, apperrors.NewAppError(500, "error iterating group rows", rows.Err())
	}

	return mapping.ToDomainGroupSlice(modelGroups), nil
}

func (r *PgxGroupRepository) UpdateGroup(ctx context.Context, group domain.Group) error {
	modelGroup := mapping.ToModelGroup(group)
	query := `
        UPDATE groups
        SET name = $1, emoji = $2, description = $3, invite_code = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
        WHERE group_id = $8;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelGroup.Name,
		modelGroup.Emoji,
		modelGroup.Description,
		modelGroup.InviteCode,
		modelGroup.IsActive,
		modelGroup.LastUpdatedAt,
		modelGroup.LastUpdatedBy,
		modelGroup.GroupID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on invite_code
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to update group "+modelGroup.GroupID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxGroupRepository) AddUserToGroup(ctx context.Context, membership domain.GroupMember) error {
	query := `
        INSERT INTO group_members (group_id, user_id, role, joined_at)
        VALUES ($1, $2, $3, $4);
    `
	_, err := r.Pool.Exec(ctx, query,
		membership.GroupID,
		membership.UserID,
		string(membership.Role),
		membership.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation, already a member
				return apperrors.ErrDuplicate
			}
			if pgErr.Code == "23503" { // foreign_key_violation, no such group or user
				return apperrors.ErrNotFound
			}
		}
		return apperrors.NewAppError(500, "failed to add user to group "+membership.GroupID, err)
	}
	return nil
}

func (r *PgxGroupRepository) RemoveUserFromGroup(ctx context.Context, groupID, userID string) error {
	query := `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, groupID, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to remove user from group "+groupID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxGroupRepository) FindUserGroupRole(ctx context.Context, userID, groupID string) (*domain.GroupMember, error) {
	query := `
        SELECT gm.user_id, u.name, gm.group_id, gm.role, gm.joined_at
        FROM group_members gm
        JOIN users u ON gm.user_id = u.user_id
        WHERE gm.user_id = $1 AND gm.group_id = $2;
    `
	var m models.GroupMember
	err := r.Pool.QueryRow(ctx, query, userID, groupID).Scan(
		&m.UserID,
		&m.UserName,
		&m.GroupID,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find membership for group "+groupID, err)
	}

	domainMember := mapping.ToDomainGroupMember(m)
	return &domainMember, nil
}

func (r *PgxGroupRepository) ListGroupMembers(ctx context.Context, groupID string) ([]domain.GroupMember, error) {
	query := `
        SELECT gm.user_id, u.name, gm.group_id, gm.role, gm.joined_at
        FROM group_members gm
        JOIN users u ON gm.user_id = u.user_id
        WHERE gm.group_id = $1
        ORDER BY gm.joined_at ASC;
    `
	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query members for group "+groupID, err)
	}
	defer rows.Close()

	modelMembers := []models.GroupMember{}
	for rows.Next() {
		var m models.GroupMember
		err := rows.Scan(
			&m.UserID,
			&m.UserName,
			&m.GroupID,
			&m.Role,
			&m.JoinedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan group member row", err)
		}
		modelMembers = append(modelMembers, m)
	}
	if rows.Err() != nil {
		return nil, apperrors.NewAppError(500, "error iterating group member rows", rows.Err())
	}

	return mapping.ToDomainGroupMemberSlice(modelMembers), nil
}
