package services

import (
	"errors"
	"net/http"

	"github.com/localnerve/starwars-api/internal/types"
	"gorm.io/gorm"
)

// Page selects a window of a list query. A zero Limit returns every row.
type Page struct {
	Number int
	Limit  int
}

// MaxPageLimit caps the rows a single list request can return
const MaxPageLimit = 100

func (p Page) scope(db *gorm.DB) *gorm.DB {
	if p.Limit <= 0 {
		return db
	}
	limit := min(p.Limit, MaxPageLimit)
	number := max(p.Number, 1)
	return db.Offset((number - 1) * limit).Limit(limit)
}

// lookup loads the record with the primary key id, or answers with a fixed 404 message
func lookup(db *gorm.DB, dest interface{}, id uint, notFound string) error {
	err := db.First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.NotFound(notFound)
	}
	return err
}

// exists reports a 404 when no row of model has the primary key id
func exists(db *gorm.DB, model interface{}, id uint, notFound string) error {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return types.NotFound(notFound)
	}
	return nil
}

// translateWriteError maps constraint violations reported by the database onto API errors
func translateWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return types.NewAPIError(http.StatusConflict, "Record already exists", "conflict")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return types.NotFound("Referenced record not found")
	}
	return err
}
