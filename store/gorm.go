package store

import (
	"errors"
	"fmt"

	"github.com/edumatch/tutor_marketplace/errdefs"
	"gorm.io/gorm"
)

// wrapErr maps persistence failures onto the engine's error taxonomy. Anything
// the store cannot classify surfaces as an opaque ErrStore.
func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errdefs.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errdefs.ErrConflict
	default:
		return fmt.Errorf("%w: %v", errdefs.ErrStore, err)
	}
}

// orderClause builds the ORDER BY for a whitelisted sort field, with id as a
// secondary key so pagination stays deterministic across pages.
func orderClause(table string, spec QuerySpec) string {
	return fmt.Sprintf("%s.%s %s, %s.id asc", table, spec.SortBy, spec.SortOrder, table)
}
