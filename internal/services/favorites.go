// favorites.go
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
	"github.com/localnerve/starwars-api/internal/models"
	"github.com/localnerve/starwars-api/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

const (
	// FavoriteListNotFound is the fixed message for missing favorite list rows
	FavoriteListNotFound = "Favorite list not found"
	// FavoriteNotFound is the fixed message when a user has not marked an entity
	FavoriteNotFound = "Favorite not found"
)

// FavoriteInput is the body of a favorite list create.
// Ids may be JSON numbers or numeric strings.
type FavoriteInput struct {
	UserID      types.FlexUint  `json:"user_id"`
	PlanetID    *types.FlexUint `json:"planet_id"`
	CharacterID *types.FlexUint `json:"character_id"`
	VehicleID   *types.FlexUint `json:"vehicle_id"`
}

// UserFavorites is a user's favorite rows along with the entities they point at
type UserFavorites struct {
	UserID     uint                  `json:"user_id"`
	Favorites  []models.FavoriteList `json:"favorites"`
	Planets    []models.Planet       `json:"planets"`
	Characters []models.Character    `json:"characters"`
	Vehicles   []models.Vehicle      `json:"vehicles"`
}

// ListFavoriteLists returns every favorite row ordered by id
func ListFavoriteLists(db *gorm.DB, page Page) ([]models.FavoriteList, error) {
	favorites := []models.FavoriteList{}
	err := page.scope(db.Clauses(hints.CommentBefore("select", "list favorite_lists"))).
		Order("id").Find(&favorites).Error
	return favorites, err
}

// GetFavoriteList returns the favorite row with the given id
func GetFavoriteList(db *gorm.DB, id uint) (*models.FavoriteList, error) {
	var favorite models.FavoriteList
	if err := lookup(db, &favorite, id, FavoriteListNotFound); err != nil {
		return nil, err
	}
	return &favorite, nil
}

// CreateFavoriteLists stores one row per input in a single transaction.
// Every referenced user and entity must exist. Duplicates are stored as separate rows.
func CreateFavoriteLists(db *gorm.DB, inputs []FavoriteInput) ([]models.FavoriteList, error) {
	if len(inputs) == 0 {
		return nil, types.BadRequest("Invalid input")
	}

	favorites := make([]models.FavoriteList, 0, len(inputs))
	for _, in := range inputs {
		favorite := models.FavoriteList{
			UserID:      in.UserID.Uint(),
			PlanetID:    in.PlanetID.Ptr(),
			CharacterID: in.CharacterID.Ptr(),
			VehicleID:   in.VehicleID.Ptr(),
		}
		if favorite.UserID == 0 {
			return nil, types.BadRequest("user_id is required")
		}
		if favorite.PlanetID == nil && favorite.CharacterID == nil && favorite.VehicleID == nil {
			return nil, types.BadRequest("One of planet_id, character_id or vehicle_id is required")
		}
		favorites = append(favorites, favorite)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range favorites {
			if err := checkFavoriteReferences(tx, &favorites[i]); err != nil {
				return err
			}
		}
		return translateWriteError(tx.Create(&favorites).Error)
	})
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

// DeleteFavoriteList removes the favorite row with the given id
func DeleteFavoriteList(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var favorite models.FavoriteList
		if err := lookup(tx, &favorite, id, FavoriteListNotFound); err != nil {
			return err
		}
		return tx.Delete(&favorite).Error
	})
}

// AddFavorite marks the entity of the given kind as a favorite of the user
func AddFavorite(db *gorm.DB, userID uint, kind models.FavoriteKind, targetID uint) (*models.FavoriteList, error) {
	target := types.FlexUint(targetID)
	input := FavoriteInput{UserID: types.FlexUint(userID)}

	switch kind {
	case models.FavoritePlanet:
		input.PlanetID = &target
	case models.FavoriteCharacter:
		input.CharacterID = &target
	case models.FavoriteVehicle:
		input.VehicleID = &target
	default:
		return nil, types.BadRequest("Unknown favorite kind: " + string(kind))
	}

	favorites, err := CreateFavoriteLists(db, []FavoriteInput{input})
	if err != nil {
		return nil, err
	}
	return &favorites[0], nil
}

// RemoveFavorite deletes every row marking the entity as a favorite of the user.
// It returns the number of rows removed.
func RemoveFavorite(db *gorm.DB, userID uint, kind models.FavoriteKind, targetID uint) (int64, error) {
	column := kind.Column()
	if column == "" {
		return 0, types.BadRequest("Unknown favorite kind: " + string(kind))
	}

	var deleted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.User{}, userID, UserNotFound); err != nil {
			return err
		}
		result := tx.Where("user_id = ? AND "+column+" = ?", userID, targetID).Delete(&models.FavoriteList{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return types.NotFound(FavoriteNotFound)
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}

// ListUserFavorites returns the favorites of the user with the given id
func ListUserFavorites(db *gorm.DB, userID uint) (*UserFavorites, error) {
	if err := exists(db, &models.User{}, userID, UserNotFound); err != nil {
		return nil, err
	}

	result := &UserFavorites{
		UserID:     userID,
		Favorites:  []models.FavoriteList{},
		Planets:    []models.Planet{},
		Characters: []models.Character{},
		Vehicles:   []models.Vehicle{},
	}

	query := db.Clauses(hints.CommentBefore("select", "user favorites")).Session(&gorm.Session{})
	if err := query.Where("user_id = ?", userID).Order("id").Find(&result.Favorites).Error; err != nil {
		return nil, err
	}
	if err := query.Where("id IN (?)", favoriteTargets(db, userID, models.FavoritePlanet)).Order("id").Find(&result.Planets).Error; err != nil {
		return nil, err
	}
	if err := query.Where("id IN (?)", favoriteTargets(db, userID, models.FavoriteCharacter)).Order("id").Find(&result.Characters).Error; err != nil {
		return nil, err
	}
	if err := query.Where("id IN (?)", favoriteTargets(db, userID, models.FavoriteVehicle)).Order("id").Find(&result.Vehicles).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// favoriteTargets is a subquery selecting the ids of one kind marked by the user
func favoriteTargets(db *gorm.DB, userID uint, kind models.FavoriteKind) *gorm.DB {
	column := kind.Column()
	return db.Model(&models.FavoriteList{}).
		Select(column).
		Where("user_id = ? AND "+column+" IS NOT NULL", userID)
}

func checkFavoriteReferences(tx *gorm.DB, favorite *models.FavoriteList) error {
	if err := exists(tx, &models.User{}, favorite.UserID, UserNotFound); err != nil {
		return err
	}
	if favorite.PlanetID != nil {
		if err := exists(tx, &models.Planet{}, *favorite.PlanetID, Planets.NotFoundMessage()); err != nil {
			return err
		}
	}
	if favorite.CharacterID != nil {
		if err := exists(tx, &models.Character{}, *favorite.CharacterID, Characters.NotFoundMessage()); err != nil {
			return err
		}
	}
	if favorite.VehicleID != nil {
		if err := exists(tx, &models.Vehicle{}, *favorite.VehicleID, Vehicles.NotFoundMessage()); err != nil {
			return err
		}
	}
	return nil
}
