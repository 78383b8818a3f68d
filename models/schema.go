package models

import "gorm.io/gorm"

// All enumerates every persisted entity. Migration and test setup both run
// off this list so the schema cannot drift between them.
func All() []any {
	return []any{
		&User{},
		&Task{},
		&Workflow{},
		&WorkflowTask{},
		&Comment{},
	}
}

// TasksOf returns a workflow's tasks in association-position order.
func TasksOf(db *gorm.DB, workflowID string) ([]Task, error) {
	tasks := make([]Task, 0)
	err := db.
		Select("tasks.*").
		Joins("JOIN workflow_tasks ON workflow_tasks.task_id = tasks.id").
		Where("workflow_tasks.workflow_id = ?", workflowID).
		Order("workflow_tasks.position").
		Find(&tasks).Error
	return tasks, err
}

// NextPosition returns the append position for a workflow's task list.
func NextPosition(db *gorm.DB, workflowID string) (int, error) {
	var max int
	err := db.Model(&WorkflowTask{}).
		Where("workflow_id = ?", workflowID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	return max + 1, err
}

// AttachAuthors fills each comment's User field with the author's id and name.
func AttachAuthors(db *gorm.DB, comments []Comment) error {
	if len(comments) == 0 {
		return nil
	}
	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	var users []User
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return err
	}
	byID := make(map[string]CommentAuthor, len(users))
	for _, u := range users {
		byID[u.ID] = CommentAuthor{ID: u.ID, Name: u.Name}
	}
	for i := range comments {
		if author, ok := byID[comments[i].UserID]; ok {
			comments[i].User = &author
		}
	}
	return nil
}
