package models

import (
	"time"
)

// Bounds shared by cooking time and ingredient amounts.
const (
	MinAmount      = 1
	MaxAmount      = 32000
	MinCookingTime = 1
	MaxCookingTime = 32000
)

// Recipe is the aggregate root: the recipe row plus its ingredient lines
// and tag associations. Deleting the author cascades to the recipe, and
// deleting the recipe cascades to its lines and relation rows.
type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Name        string    `gorm:"not null" json:"name"`
	Text        string    `gorm:"not null" json:"text"`
	// ImageKey round-trips through the cache; API responses expose it only
	// as a media URL built by the presentation layer.
	ImageKey    string    `json:"image_key"`
	CookingTime int       `gorm:"not null" json:"cooking_time"`
	PubDate     time.Time `gorm:"autoCreateTime;index" json:"pub_date"`

	Author          User             `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Tags            []Tag            `gorm:"many2many:recipe_tags;" json:"tags,omitempty"`
	IngredientLines []IngredientLine `gorm:"foreignKey:RecipeID" json:"ingredient_lines,omitempty"`
}

// IngredientLine joins a recipe to one ingredient with an amount.
// The (recipe, ingredient) pair is unique within a recipe.
type IngredientLine struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RecipeID     uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Amount       int  `gorm:"not null" json:"amount"`

	Recipe     Recipe     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Ingredient Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"ingredient,omitempty"`
}

// RecipeImage stores the decoded bytes of an uploaded recipe image.
// Key is the public media path component, e.g. "3f1c...d2.png".
type RecipeImage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"unique;not null" json:"key"`
	ContentType string    `gorm:"not null" json:"content_type"`
	Data        []byte    `gorm:"not null" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
