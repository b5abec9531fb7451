package services

import (
	"net/http"
	"strings"

	"github.com/localnerve/starwars-api/internal/models"
	"github.com/localnerve/starwars-api/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// UserNotFound is the fixed message for missing users
const UserNotFound = "User not found"

// UserInput is the body accepted by user create and update.
// Absent fields keep their current value on update. An empty email or
// inscription_date clears it.
type UserInput struct {
	Username        *string         `json:"username"`
	Password        *string         `json:"password"`
	Name            *string         `json:"name"`
	Surname         *string         `json:"surname"`
	PhoneNumber     *string         `json:"phone_number"`
	Email           *string         `json:"email"`
	IsActive        *bool           `json:"is_active"`
	InscriptionDate *types.FlexDate `json:"inscription_date"`
}

// ListUsers returns users ordered by id
func ListUsers(db *gorm.DB, page Page) ([]models.User, error) {
	users := []models.User{}
	err := page.scope(db.Clauses(hints.CommentBefore("select", "list users"))).
		Order("id").Find(&users).Error
	return users, err
}

// GetUser returns the user with the given id
func GetUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := lookup(db, &user, id, UserNotFound); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser stores a new user, hashing the password when one is given
func CreateUser(db *gorm.DB, input UserInput, bcryptCost int) (*models.User, error) {
	user := models.User{IsActive: true}
	if err := applyUserInput(&user, input, bcryptCost); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := checkEmailFree(tx, user.Email, 0); err != nil {
			return err
		}
		return translateWriteError(tx.Create(&user).Error)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies the present fields of input to the user with the given id
func UpdateUser(db *gorm.DB, id uint, input UserInput, bcryptCost int) (*models.User, error) {
	var user models.User

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lookup(tx, &user, id, UserNotFound); err != nil {
			return err
		}
		if err := applyUserInput(&user, input, bcryptCost); err != nil {
			return err
		}
		if err := checkEmailFree(tx, user.Email, user.ID); err != nil {
			return err
		}
		return translateWriteError(tx.Save(&user).Error)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the user together with their favorites and detaches their addresses
func DeleteUser(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := lookup(tx, &user, id, UserNotFound); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.FavoriteList{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Address{}).Where("user_id = ?", id).Update("user_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

func applyUserInput(user *models.User, input UserInput, bcryptCost int) error {
	if input.Username != nil {
		user.Username = strings.TrimSpace(*input.Username)
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return types.BadRequest("Invalid password: " + err.Error())
		}
		user.Password = string(hash)
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Surname != nil {
		user.Surname = *input.Surname
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			user.Email = nil
		} else {
			if !strings.Contains(email, "@") {
				return types.BadRequest("Invalid email address")
			}
			user.Email = &email
		}
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.InscriptionDate != nil {
		user.InscriptionDate = input.InscriptionDate.Date()
	}
	return nil
}

// checkEmailFree rejects an email already used by a user other than selfID.
// Uniqueness is enforced here rather than by a unique index, since SQL Server
// unique indexes admit a single NULL.
func checkEmailFree(tx *gorm.DB, email *string, selfID uint) error {
	if email == nil {
		return nil
	}
	var count int64
	if err := tx.Model(&models.User{}).Where("email = ? AND id <> ?", *email, selfID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return types.NewAPIError(http.StatusConflict, "Email already registered", "conflict")
	}
	return nil
}
