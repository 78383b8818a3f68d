package models

import "time"

// WorkflowTask is the association row linking a workflow to a task. The
// composite primary key guarantees a task appears in a workflow at most once;
// position records append order and is never compacted on removal.
type WorkflowTask struct {
	WorkflowID string    `gorm:"type:char(36);primaryKey" json:"workflowId"`
	TaskID     string    `gorm:"type:char(36);primaryKey" json:"taskId"`
	Position   int       `gorm:"not null" json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
}
