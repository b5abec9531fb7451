package models

import (
	"time"

	"gorm.io/datatypes"
)

// User represents an account that can mark catalog entities as favorites
type User struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Username        string          `gorm:"size:80" json:"username"`
	Password        string          `gorm:"size:80" json:"-"`
	Name            string          `gorm:"size:120" json:"name"`
	Surname         string          `gorm:"size:120" json:"surname"`
	PhoneNumber     string          `gorm:"size:40" json:"phone_number"`
	Email           *string         `gorm:"size:120;index" json:"email"`
	IsActive        bool            `gorm:"not null" json:"is_active"`
	InscriptionDate *datatypes.Date `json:"inscription_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Favorites []FavoriteList `json:"-"`
	Addresses []Address      `json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
