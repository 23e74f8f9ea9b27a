package models

import "time"

// MaxTitleLength bounds the recipe title column.
const MaxTitleLength = 100

// Recipe is a dish shared by its author. Only the author may change or remove it.
type Recipe struct {
	ID           uint      `gorm:"primaryKey"`
	Title        string    `gorm:"type:varchar(100);not null"`
	Ingredients  string    `gorm:"type:text;not null"`
	Instructions string    `gorm:"type:text;not null"`
	CreatedAt    time.Time `gorm:"not null;index"`
	AuthorID     uint      `gorm:"not null;index"`
	Author       *User     `gorm:"foreignKey:AuthorID"`
	Comments     []Comment `gorm:"foreignKey:RecipeID"`
}

// AuthoredBy reports whether userID is the recipe's author.
func (r Recipe) AuthoredBy(userID uint) bool {
	return userID != 0 && r.AuthorID == userID
}

// AuthorName returns the author's username when the association is loaded.
func (r Recipe) AuthorName() string {
	if r.Author == nil {
		return ""
	}
	return r.Author.Username
}
