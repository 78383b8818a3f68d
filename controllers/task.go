package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/moaz779/Task-Workflow-Manager/constants"
	"github.com/moaz779/Task-Workflow-Manager/models"
	"github.com/moaz779/Task-Workflow-Manager/utils"
)

type TaskController struct {
	DB       *gorm.DB
	Notifier utils.Notifier

	// Daily-estimate warning threshold, in hours.
	ThresholdHours float64
}

type taskInput struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Priority    *string  `json:"priority"`
	DueDate     *string  `json:"dueDate"`
	Estimate    *float64 `json:"estimate"`
}

// parseDate accepts RFC 3339 timestamps and plain dates. Plain dates are
// taken in server-local time so they line up with the daily-estimate window.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func (tc *TaskController) CreateTask(c *gin.Context) {
	userID := c.GetString("user_id")

	var input taskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}
	if input.Title == nil || *input.Title == "" {
		utils.BadRequest(c, "Title is required")
		return
	}

	task := models.Task{
		UserID:   userID,
		Title:    *input.Title,
		Estimate: 1.0,
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = constants.NormalizeStatus(*input.Status)
	}
	if input.Priority != nil {
		task.Priority = constants.NormalizePriority(*input.Priority)
	}
	if input.DueDate != nil {
		due, err := parseDate(*input.DueDate)
		if err != nil {
			utils.BadRequest(c, "Invalid date format for dueDate")
			return
		}
		task.DueDate = &due
	}
	if input.Estimate != nil {
		if *input.Estimate < 0 {
			utils.BadRequest(c, "Estimate must be >= 0")
			return
		}
		task.Estimate = *input.Estimate
	}

	if err := tc.DB.Create(&task).Error; err != nil {
		if errors.Is(err, models.ErrInvalidStatus) || errors.Is(err, models.ErrInvalidPriority) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.ServerError(c, err, "Task creation failed")
		return
	}

	// Notification email is best effort; a failure never fails the request.
	var owner models.User
	if err := tc.DB.First(&owner, "id = ?", userID).Error; err == nil {
		go func(u models.User, t models.Task) {
			if err := tc.Notifier.TaskCreated(u, t); err != nil {
				log.Printf("task notification email failed: %v", err)
			}
		}(owner, task)
	}

	c.JSON(http.StatusCreated, task)
}

func (tc *TaskController) ListTasks(c *gin.Context) {
	userID := c.GetString("user_id")

	query := tc.DB.Where("user_id = ?", userID)

	if status := c.Query("status"); status != "" {
		normalized := constants.NormalizeStatus(status)
		if !constants.ValidStatus(normalized) {
			utils.BadRequest(c, "Invalid status")
			return
		}
		query = query.Where("status = ?", normalized)
	}
	if priority := c.Query("priority"); priority != "" {
		normalized := constants.NormalizePriority(priority)
		if !constants.ValidPriority(normalized) {
			utils.BadRequest(c, "Invalid priority")
			return
		}
		query = query.Where("priority = ?", normalized)
	}
	if dueBefore := c.Query("dueBefore"); dueBefore != "" {
		cutoff, err := parseDate(dueBefore)
		if err != nil {
			utils.BadRequest(c, "Invalid date format for dueBefore")
			return
		}
		query = query.Where("due_date <= ?", cutoff)
	}

	tasks := make([]models.Task, 0)
	if err := query.Find(&tasks).Error; err != nil {
		utils.ServerError(c, err, "Could not list tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (tc *TaskController) GetTask(c *gin.Context) {
	userID := c.GetString("user_id")

	var task models.Task
	if err := tc.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&task).Error; err != nil {

		utils.NotFound(c, "Task not found")
		return
	}

	c.JSON(http.StatusOK, task)
}

func (tc *TaskController) UpdateTask(c *gin.Context) {
	userID := c.GetString("user_id")

	var task models.Task
	if err := tc.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&task).Error; err != nil {

		utils.NotFound(c, "Task not found")
		return
	}

	var input taskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	if input.Title != nil {
		if *input.Title == "" {
			utils.BadRequest(c, "Title cannot be empty")
			return
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = constants.NormalizeStatus(*input.Status)
	}
	if input.Priority != nil {
		task.Priority = constants.NormalizePriority(*input.Priority)
	}
	if input.DueDate != nil {
		due, err := parseDate(*input.DueDate)
		if err != nil {
			utils.BadRequest(c, "Invalid date format for dueDate")
			return
		}
		task.DueDate = &due
	}
	if input.Estimate != nil {
		if *input.Estimate < 0 {
			utils.BadRequest(c, "Estimate must be >= 0")
			return
		}
		task.Estimate = *input.Estimate
	}

	if err := tc.DB.Save(&task).Error; err != nil {
		if errors.Is(err, models.ErrInvalidStatus) || errors.Is(err, models.ErrInvalidPriority) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.ServerError(c, err, "Could not update task")
		return
	}

	c.JSON(http.StatusOK, task)
}

func (tc *TaskController) DeleteTask(c *gin.Context) {
	userID := c.GetString("user_id")

	result := tc.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Delete(&models.Task{})
	if result.Error != nil {
		utils.ServerError(c, result.Error, "Could not delete task")
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Task not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// DailyEstimate sums the estimates of the caller's unfinished tasks due today
// and reports them against the configured threshold.
func (tc *TaskController) DailyEstimate(c *gin.Context) {
	userID := c.GetString("user_id")

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	var total float64
	err := tc.DB.Model(&models.Task{}).
		Where("user_id = ? AND status <> ? AND due_date >= ? AND due_date < ?",
			userID, constants.TaskStatusDone, start, end).
		Select("COALESCE(SUM(estimate), 0)").
		Scan(&total).Error
	if err != nil {
		utils.ServerError(c, err, "Could not check threshold")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dailyEstimate": total,
		"threshold":     tc.ThresholdHours,
	})
}
