package models

// Favorite links a user to a recipe they marked. The pair is the primary key.
type Favorite struct {
	UserID   uint `gorm:"primaryKey;autoIncrement:false"`
	RecipeID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

// TableName keeps the join table name stable regardless of naming strategy.
func (Favorite) TableName() string {
	return "favorites"
}
