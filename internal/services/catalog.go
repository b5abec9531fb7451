// catalog.go
//
// A Star Wars favorites REST service backed by GORM
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of starwars-api.
// starwars-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// starwars-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with starwars-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"errors"

	"github.com/localnerve/starwars-api/internal/models"
	"github.com/localnerve/starwars-api/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// Record is implemented by the catalog models
type Record interface {
	Validate() error
	ClearID()
}

// Catalog provides list/get/create/delete for one named entity table
type Catalog[T any, PT interface {
	*T
	Record
}] struct {
	Entity string // lower case singular, used in metrics and response keys
	Label  string // capitalized singular, used in messages

	// references checks foreign keys of a new record
	references func(tx *gorm.DB, item PT) error
	// cleanup removes or detaches rows that point at a record being deleted
	cleanup func(tx *gorm.DB, id uint) error
}

// Catalogs served by the API
var (
	Planets = Catalog[models.Planet, *models.Planet]{
		Entity:  "planet",
		Label:   "Planet",
		cleanup: deleteFavoritesOf(models.FavoritePlanet),
	}
	Characters = Catalog[models.Character, *models.Character]{
		Entity: "character",
		Label:  "Character",
		references: func(tx *gorm.DB, c *models.Character) error {
			if c.AddressID == nil {
				return nil
			}
			return exists(tx, &models.Address{}, *c.AddressID, Addresses.NotFoundMessage())
		},
		cleanup: deleteFavoritesOf(models.FavoriteCharacter),
	}
	Vehicles = Catalog[models.Vehicle, *models.Vehicle]{
		Entity:  "vehicle",
		Label:   "Vehicle",
		cleanup: deleteFavoritesOf(models.FavoriteVehicle),
	}
	Addresses = Catalog[models.Address, *models.Address]{
		Entity: "address",
		Label:  "Address",
		references: func(tx *gorm.DB, a *models.Address) error {
			if a.UserID == nil {
				return nil
			}
			return exists(tx, &models.User{}, *a.UserID, UserNotFound)
		},
		cleanup: func(tx *gorm.DB, id uint) error {
			return tx.Model(&models.Character{}).Where("address_id = ?", id).Update("address_id", nil).Error
		},
	}
)

// NotFoundMessage is the fixed 404 message of the entity, e.g. "Planet not found"
func (c Catalog[T, PT]) NotFoundMessage() string {
	return c.Label + " not found"
}

// List returns the records ordered by id
func (c Catalog[T, PT]) List(db *gorm.DB, page Page) ([]T, error) {
	items := []T{}
	err := page.scope(db.Clauses(hints.CommentBefore("select", "list "+c.Entity))).
		Order("id").Find(&items).Error
	return items, err
}

// Get returns the record with the given id
func (c Catalog[T, PT]) Get(db *gorm.DB, id uint) (*T, error) {
	var item T
	if err := lookup(db, &item, id, c.NotFoundMessage()); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create validates and stores item. Any client supplied id is discarded.
func (c Catalog[T, PT]) Create(db *gorm.DB, item PT) error {
	if err := item.Validate(); err != nil {
		if errors.Is(err, models.ErrNameRequired) {
			return types.BadRequest(c.Label + " name is required")
		}
		return types.BadRequest(err.Error())
	}
	item.ClearID()

	return db.Transaction(func(tx *gorm.DB) error {
		if c.references != nil {
			if err := c.references(tx, item); err != nil {
				return err
			}
		}
		return translateWriteError(tx.Create(item).Error)
	})
}

// Delete removes the record with the given id along with the favorites pointing at it
func (c Catalog[T, PT]) Delete(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var item T
		if err := lookup(tx, &item, id, c.NotFoundMessage()); err != nil {
			return err
		}
		if c.cleanup != nil {
			if err := c.cleanup(tx, id); err != nil {
				return err
			}
		}
		return tx.Delete(&item).Error
	})
}

func deleteFavoritesOf(kind models.FavoriteKind) func(tx *gorm.DB, id uint) error {
	return func(tx *gorm.DB, id uint) error {
		return tx.Where(kind.Column()+" = ?", id).Delete(&models.FavoriteList{}).Error
	}
}
