package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// User is a registered member of the movie-tracking site. Only the fields
// the messaging layer and its collaborator endpoints touch are modelled
// here; ratings, reviews and watchlists live in their own services.
type User struct {
	ID             string         `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"uniqueIndex;not null" json:"username"`
	Email          string         `gorm:"uniqueIndex" json:"email"`
	UserImage      string         `json:"userImage"`
	FavoriteGenres pq.StringArray `gorm:"type:text[]" json:"favoriteGenres"`
	FollowersCount int            `json:"followersCount"`
	FollowingCount int            `json:"followingCount"`
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when the record has
// no ID yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
