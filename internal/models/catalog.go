package models

import (
	"errors"
	"strings"
)

// ErrNameRequired is returned when a catalog record is saved without a name
var ErrNameRequired = errors.New("name is required")

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	return nil
}

// Character represents a person of the Star Wars universe
type Character struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"size:120;not null" json:"name"`
	Gender    string `gorm:"size:40" json:"gender,omitempty"`
	BirthYear string `gorm:"size:40" json:"birth_year,omitempty"`
	AddressID *uint  `gorm:"index" json:"address_id"`

	Address   *Address       `json:"-"`
	Favorites []FavoriteList `json:"-"`
}

// Planet represents a planet of the Star Wars universe
type Planet struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string `gorm:"size:120;not null" json:"name"`
	Climate    string `gorm:"size:120" json:"climate,omitempty"`
	Terrain    string `gorm:"size:120" json:"terrain,omitempty"`
	Population string `gorm:"size:40" json:"population,omitempty"`

	Favorites []FavoriteList `json:"-"`
}

// Vehicle represents a vehicle of the Star Wars universe
type Vehicle struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"size:120;not null" json:"name"`
	Model        string `gorm:"size:120" json:"model,omitempty"`
	Manufacturer string `gorm:"size:120" json:"manufacturer,omitempty"`

	Favorites []FavoriteList `json:"-"`
}

// Address represents a named location, optionally owned by a user
type Address struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string `gorm:"size:120;not null" json:"name"`
	UserID *uint  `gorm:"index" json:"user_id"`
}

// TableName overrides the table name for Character
func (Character) TableName() string { return "characters" }

// TableName overrides the table name for Planet
func (Planet) TableName() string { return "planets" }

// TableName overrides the table name for Vehicle
func (Vehicle) TableName() string { return "vehicles" }

// TableName overrides the table name for Address
func (Address) TableName() string { return "addresses" }

// Validate checks the record before it is created
func (c *Character) Validate() error { return validateName(c.Name) }

// Validate checks the record before it is created
func (p *Planet) Validate() error { return validateName(p.Name) }

// Validate checks the record before it is created
func (v *Vehicle) Validate() error { return validateName(v.Name) }

// Validate checks the record before it is created
func (a *Address) Validate() error { return validateName(a.Name) }

// ClearID drops a client supplied primary key so the database assigns one
func (c *Character) ClearID() { c.ID = 0 }

// ClearID drops a client supplied primary key so the database assigns one
func (p *Planet) ClearID() { p.ID = 0 }

// ClearID drops a client supplied primary key so the database assigns one
func (v *Vehicle) ClearID() { v.ID = 0 }

// ClearID drops a client supplied primary key so the database assigns one
func (a *Address) ClearID() { a.ID = 0 }
