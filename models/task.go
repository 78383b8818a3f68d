package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/moaz779/Task-Workflow-Manager/constants"
)

var (
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
)

type Task struct {
	ID          string     `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      string     `gorm:"type:char(36);not null;index" json:"userId"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:20;not null" json:"status"`
	Priority    string     `gorm:"size:20;not null" json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Estimate    float64    `gorm:"not null" json:"estimate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave enforces the status/priority enums on every write, the portable
// equivalent of a database ENUM column.
func (t *Task) BeforeSave(tx *gorm.DB) error {
	if t.Status == "" {
		t.Status = constants.TaskStatusTodo
	}
	if t.Priority == "" {
		t.Priority = constants.TaskPriorityMedium
	}
	if !constants.ValidStatus(t.Status) {
		return ErrInvalidStatus
	}
	if !constants.ValidPriority(t.Priority) {
		return ErrInvalidPriority
	}
	return nil
}
