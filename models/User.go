package models

import "gorm.io/gorm"

// MaxUsernameLength bounds the username column.
const MaxUsernameLength = 20

// User represents an account that can author recipes, comment on them and keep favorites.
type User struct {
	gorm.Model
	Username     string   `gorm:"type:varchar(20);uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null"`
	Recipes      []Recipe `gorm:"foreignKey:AuthorID"`
}
