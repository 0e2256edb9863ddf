package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/JhonW67/ProjectHub/types"
)

// GroupRepository handles persistence for student groups and membership.
type GroupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) List(ctx context.Context) ([]types.Group, error) {
	const query = `
		SELECT id, name, description, code, created_at, updated_at
		FROM groups
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]types.Group, 0)
	for rows.Next() {
		var group types.Group
		if err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.Description,
			&group.Code,
			&group.CreatedAt,
			&group.UpdatedAt,
		); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

func (r *GroupRepository) Get(ctx context.Context, id int) (types.Group, error) {
	const query = `
		SELECT id, name, description, code, created_at, updated_at
		FROM groups
		WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *GroupRepository) GetByCode(ctx context.Context, code string) (types.Group, error) {
	const query = `
		SELECT id, name, description, code, created_at, updated_at
		FROM groups
		WHERE code = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, code))
}

// GetByUserID returns the group the user is a member of.
func (r *GroupRepository) GetByUserID(ctx context.Context, userID int) (types.Group, error) {
	const query = `
		SELECT g.id, g.name, g.description, g.code, g.created_at, g.updated_at
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID))
}

// Members returns the user ids of the group's members.
func (r *GroupRepository) Members(ctx context.Context, groupID int) ([]int, error) {
	const query = `
		SELECT user_id
		FROM group_members
		WHERE group_id = $1
		ORDER BY joined_at`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]int, 0)
	for rows.Next() {
		var userID int
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		members = append(members, userID)
	}
	return members, rows.Err()
}

// Create inserts the group and its founding member in one transaction.
func (r *GroupRepository) Create(ctx context.Context, group types.Group, founderID int) (types.Group, error) {
	now := time.Now()
	group.CreatedAt = now
	group.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Group{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insertGroup = `
		INSERT INTO groups (name, description, code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := tx.QueryRowContext(
		ctx,
		insertGroup,
		group.Name,
		group.Description,
		group.Code,
		group.CreatedAt,
		group.UpdatedAt,
	).Scan(&group.ID); err != nil {
		return types.Group{}, mapConstraintError(err)
	}

	const insertMember = `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2)`
	if _, err := tx.ExecContext(ctx, insertMember, group.ID, founderID); err != nil {
		return types.Group{}, mapConstraintError(err)
	}

	if err := tx.Commit(); err != nil {
		return types.Group{}, err
	}
	group.Members = []int{founderID}
	return group, nil
}

// AddMember records a user joining a group. Joining twice, or while
// already in another group, yields ErrDuplicate.
func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID int) error {
	const query = `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, groupID, userID); err != nil {
		return mapConstraintError(err)
	}
	return nil
}

// IsMember reports whether the user belongs to the group.
func (r *GroupRepository) IsMember(ctx context.Context, groupID, userID int) (bool, error) {
	const query = `
		SELECT 1
		FROM group_members
		WHERE group_id = $1 AND user_id = $2`
	var one int
	err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *GroupRepository) scanOne(row *sql.Row) (types.Group, error) {
	var group types.Group
	err := row.Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.Code,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Group{}, ErrNotFound
		}
		return types.Group{}, err
	}
	return group, nil
}
