package models

// User represents the user model in the database
type User struct {
	Base
	Email            string `gorm:"uniqueIndex;not null" json:"email"`
	Password         string `gorm:"not null" json:"-"`
	Name             string `json:"name"`
	RefreshTokenHash string `gorm:"size:64" json:"-"`
}
