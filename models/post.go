package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is the closed set of blog categories a post may belong to.
type Category string

const (
	CategoryTechnology    Category = "Technology"
	CategoryScience       Category = "Science"
	CategoryTravel        Category = "Travel"
	CategoryFood          Category = "Food"
	CategoryHealth        Category = "Health"
	CategoryFitness       Category = "Fitness"
	CategoryFashion       Category = "Fashion"
	CategoryLifestyle     Category = "Lifestyle"
	CategoryBusiness      Category = "Business"
	CategoryFinance       Category = "Finance"
	CategoryEducation     Category = "Education"
	CategoryEntertainment Category = "Entertainment"
	CategoryMusic         Category = "Music"
	CategoryArt           Category = "Art"
	CategorySports        Category = "Sports"
	CategoryGaming        Category = "Gaming"
)

// Categories lists every valid category in declaration order.
var Categories = []Category{
	CategoryTechnology, CategoryScience, CategoryTravel, CategoryFood,
	CategoryHealth, CategoryFitness, CategoryFashion, CategoryLifestyle,
	CategoryBusiness, CategoryFinance, CategoryEducation, CategoryEntertainment,
	CategoryMusic, CategoryArt, CategorySports, CategoryGaming,
}

// ValidCategory reports whether s names one of the fixed categories.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if s == string(c) {
			return true
		}
	}
	return false
}

// Post is a blog post document. Author always references an existing user and
// is immutable after creation, as is the category.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Category  Category           `bson:"category" json:"category"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// AuthorProfile is the public slice of a user document joined into post reads.
// The password hash never crosses this boundary.
type AuthorProfile struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Username string             `bson:"username" json:"username"`
	Avatar   string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

// PostWithAuthor is a post joined with its author's public profile, as
// returned by list and read-by-id operations.
type PostWithAuthor struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Category  Category           `bson:"category" json:"category"`
	Author    AuthorProfile      `bson:"author" json:"author"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
