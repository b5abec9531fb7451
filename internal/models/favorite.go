package models

import "time"

// FavoriteKind names the catalog entity a favorite points at
type FavoriteKind string

const (
	FavoritePlanet    FavoriteKind = "planet"
	FavoriteCharacter FavoriteKind = "character"
	FavoriteVehicle   FavoriteKind = "vehicle"
)

// FavoriteList is the join record for "user marked entity as favorite".
// Exactly one target is normally set, but the schema allows any combination.
type FavoriteList struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	PlanetID    *uint     `gorm:"index" json:"planet_id"`
	CharacterID *uint     `gorm:"index" json:"character_id"`
	VehicleID   *uint     `gorm:"index" json:"vehicle_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName overrides the table name for FavoriteList
func (FavoriteList) TableName() string {
	return "favorite_lists"
}

// Column returns the foreign key column that stores targets of this kind
func (k FavoriteKind) Column() string {
	switch k {
	case FavoritePlanet:
		return "planet_id"
	case FavoriteCharacter:
		return "character_id"
	case FavoriteVehicle:
		return "vehicle_id"
	}
	return ""
}

// All returns every model managed by the service, in migration order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Address{},
		&Planet{},
		&Character{},
		&Vehicle{},
		&FavoriteList{},
	}
}
