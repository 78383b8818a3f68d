package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	WorkflowID string    `gorm:"type:char(36);not null;index" json:"workflowId"`
	UserID     string    `gorm:"type:char(36);not null" json:"userId"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	Rating     int       `gorm:"not null" json:"rating"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Author is filled from the users table when comments are served.
	User *CommentAuthor `gorm:"-" json:"user,omitempty"`
}

// CommentAuthor is the slice of the user record exposed alongside a comment.
type CommentAuthor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
