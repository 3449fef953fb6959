package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// firstOrNil loads the first row matching query, nil when there is none
func firstOrNil[T any](ctx context.Context, db *gorm.DB, query string, args ...interface{}) (*T, error) {
	var out T
	err := db.WithContext(ctx).Where(query, args...).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// clampExpr adds delta to column in SQL, flooring the result at zero
func clampExpr(column string, delta int) clause.Expr {
	return gorm.Expr(fmt.Sprintf("CASE WHEN %[1]s + ? < 0 THEN 0 ELSE %[1]s + ? END", column), delta, delta)
}

// updateColumns writes only the listed columns of row and reloads it, so counters
// moved by concurrent increments are neither overwritten nor reported stale
func updateColumns[T any](ctx context.Context, tx *gorm.DB, id string, row *T, columns []string) (*T, error) {
	if len(columns) > 0 {
		if err := tx.Model(row).Select(columns).Updates(row).Error; err != nil {
			return nil, err
		}
	}
	return firstOrNil[T](ctx, tx, "id = ?", id)
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id string) (bool, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern for a literal substring, used with ESCAPE '\'
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// prefilterable reports whether s survives SQL lower casing and JSON encoding
// unchanged, so a LIKE over the raw column cannot miss a match Go would find.
func prefilterable(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x80 || c < 0x20 || strings.IndexByte(`"\<>&`, c) >= 0 {
			return false
		}
	}
	return true
}

func translateUnique(err, taken error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return taken
	}
	return err
}
