package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cliptube/backend/pkg/apperror"
)

// Ownership-gated mutations. The existence check and the ownership check
// are folded into the WHERE clause of a single statement, so there is no
// window where the row can change between deciding and writing, and a
// non-owner gets the same answer as a caller naming a row that never
// existed.

// UpdateOwned applies patch to the row with the given id, but only when
// ownerID owns it. The updated row is read back through RETURNING.
// Zero matched rows collapse to ErrNotFoundOrForbidden.
func UpdateOwned[T any](ctx context.Context, db *gorm.DB, id, ownerID uuid.UUID, patch map[string]any) (*T, error) {
	var row T
	res := db.WithContext(ctx).
		Model(&row).
		Clauses(clause.Returning{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(patch)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperror.ErrNotFoundOrForbidden
	}
	return &row, nil
}

// DeleteOwned removes the row with the given id when ownerID owns it.
func DeleteOwned[T any](ctx context.Context, db *gorm.DB, id, ownerID uuid.UUID) error {
	var row T
	res := db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFoundOrForbidden
	}
	return nil
}

// TakeOwned loads the row with the given id when ownerID owns it. Reads
// do not need the atomicity of the write helpers, but they use the same
// merged-denial outcome.
func TakeOwned[T any](ctx context.Context, db *gorm.DB, id, ownerID uuid.UUID) (*T, error) {
	var rows []T
	err := db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperror.ErrNotFoundOrForbidden
	}
	return &rows[0], nil
}
