package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PostModel mirrors the 'posts' table. Tags are stored as a JSON array.
type PostModel struct {
	ID         uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Title      string                      `gorm:"type:text;not null"`
	Text       string                      `gorm:"type:text;not null"`
	ImageURL   string                      `gorm:"type:text;not null;default:''"`
	Tags       datatypes.JSONSlice[string] `gorm:"not null"`
	ViewsCount int64                       `gorm:"not null;default:0"`
	UserID     uuid.UUID                   `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time                   `gorm:"index"`
	UpdatedAt  time.Time

	User *UserModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (PostModel) TableName() string {
	return "posts"
}
