package models

import "time"

// Comment is a note left by a user on a recipe. Comments are removed with their recipe.
type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UserID    uint      `gorm:"not null;index"`
	RecipeID  uint      `gorm:"not null;index"`
	User      *User     `gorm:"foreignKey:UserID"`
}

// AuthorName returns the commenter's username when the association is loaded.
func (c Comment) AuthorName() string {
	if c.User == nil {
		return ""
	}
	return c.User.Username
}
