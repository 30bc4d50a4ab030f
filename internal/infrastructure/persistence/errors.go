package persistence

import (
	"errors"

	"gorm.io/gorm"
)

// conflictOn returns conflict when err is a unique index violation and err
// otherwise. Sessions must be opened with TranslateError for the driver error
// to surface as gorm.ErrDuplicatedKey.
func conflictOn(err, conflict error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict
	}
	return err
}
