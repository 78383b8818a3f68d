package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/moaz779/Task-Workflow-Manager/models"
	"github.com/moaz779/Task-Workflow-Manager/utils"
)

type WorkflowController struct {
	DB *gorm.DB
}

// visible scopes a query to workflows the caller may read: their own plus any
// marked public. Writes never use this; they require ownership.
func (wc *WorkflowController) visible(userID string) *gorm.DB {
	return wc.DB.Where("user_id = ? OR is_public = ?", userID, true)
}

func (wc *WorkflowController) loadTasks(wf *models.Workflow) error {
	tasks, err := models.TasksOf(wc.DB, wf.ID)
	if err != nil {
		return err
	}
	wf.Tasks = tasks
	return nil
}

type workflowInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Cost        *float64 `json:"cost"`
	TaxRate     *float64 `json:"taxRate"`
	IsPublic    *bool    `json:"isPublic"`
	Tasks       []string `json:"tasks"`
}

func (in *workflowInput) validateRanges(c *gin.Context) bool {
	if in.Cost != nil && *in.Cost < 0 {
		utils.BadRequest(c, "Cost must be >= 0")
		return false
	}
	if in.TaxRate != nil && (*in.TaxRate < 0 || *in.TaxRate > 1) {
		utils.BadRequest(c, "Tax rate must be between 0 and 1")
		return false
	}
	return true
}

func (wc *WorkflowController) ListWorkflows(c *gin.Context) {
	userID := c.GetString("user_id")

	workflows := make([]models.Workflow, 0)
	if err := wc.visible(userID).Find(&workflows).Error; err != nil {
		utils.ServerError(c, err, "Could not list workflows")
		return
	}

	for i := range workflows {
		if err := wc.loadTasks(&workflows[i]); err != nil {
			utils.ServerError(c, err, "Could not list workflows")
			return
		}
	}

	c.JSON(http.StatusOK, workflows)
}

func (wc *WorkflowController) CreateWorkflow(c *gin.Context) {
	userID := c.GetString("user_id")

	var input workflowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}
	if input.Name == nil || *input.Name == "" {
		utils.BadRequest(c, "Workflow name is required")
		return
	}
	if !input.validateRanges(c) {
		return
	}

	workflow := models.Workflow{
		UserID:   userID,
		Name:     *input.Name,
		IsPublic: true,
	}
	if input.Description != nil {
		workflow.Description = *input.Description
	}
	if input.Cost != nil {
		workflow.Cost = *input.Cost
	}
	if input.TaxRate != nil {
		workflow.TaxRate = *input.TaxRate
	}
	if input.IsPublic != nil {
		workflow.IsPublic = *input.IsPublic
	}

	var badTask string
	err := wc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&workflow).Error; err != nil {
			return err
		}
		// Associate any initial tasks, in the order given.
		for i, taskID := range input.Tasks {
			var task models.Task
			if err := tx.First(&task, "id = ?", taskID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					badTask = taskID
				}
				return err
			}
			row := models.WorkflowTask{WorkflowID: workflow.ID, TaskID: task.ID, Position: i + 1}
			if err := tx.Create(&row).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					badTask = taskID
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		if badTask != "" {
			utils.BadRequest(c, "Invalid task id "+badTask)
			return
		}
		utils.ServerError(c, err, "Workflow creation failed")
		return
	}

	if err := wc.loadTasks(&workflow); err != nil {
		utils.ServerError(c, err, "Workflow creation failed")
		return
	}

	c.JSON(http.StatusCreated, workflow)
}

func (wc *WorkflowController) GetWorkflow(c *gin.Context) {
	userID := c.GetString("user_id")

	var workflow models.Workflow
	if err := wc.visible(userID).
		Where("id = ?", c.Param("id")).
		First(&workflow).Error; err != nil {

		utils.NotFound(c, "Workflow not found")
		return
	}

	if err := wc.loadTasks(&workflow); err != nil {
		utils.ServerError(c, err, "Could not retrieve workflow")
		return
	}

	c.JSON(http.StatusOK, struct {
		models.Workflow
		IsOwner bool `json:"isOwner"`
	}{workflow, workflow.UserID == userID})
}

func (wc *WorkflowController) UpdateWorkflow(c *gin.Context) {
	userID := c.GetString("user_id")

	var workflow models.Workflow
	if err := wc.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&workflow).Error; err != nil {

		utils.NotFound(c, "Workflow not found")
		return
	}

	var input workflowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}
	if !input.validateRanges(c) {
		return
	}

	if input.Name != nil {
		if *input.Name == "" {
			utils.BadRequest(c, "Name cannot be empty")
			return
		}
		workflow.Name = *input.Name
	}
	if input.Description != nil {
		workflow.Description = *input.Description
	}
	if input.Cost != nil {
		workflow.Cost = *input.Cost
	}
	if input.TaxRate != nil {
		workflow.TaxRate = *input.TaxRate
	}
	if input.IsPublic != nil {
		workflow.IsPublic = *input.IsPublic
	}

	if err := wc.DB.Save(&workflow).Error; err != nil {
		utils.ServerError(c, err, "Could not update workflow")
		return
	}

	if err := wc.loadTasks(&workflow); err != nil {
		utils.ServerError(c, err, "Could not update workflow")
		return
	}

	c.JSON(http.StatusOK, workflow)
}

func (wc *WorkflowController) DeleteWorkflow(c *gin.Context) {
	userID := c.GetString("user_id")

	var workflow models.Workflow
	if err := wc.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&workflow).Error; err != nil {

		utils.NotFound(c, "Workflow not found")
		return
	}

	err := wc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workflow_id = ?", workflow.ID).Delete(&models.WorkflowTask{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workflow_id = ?", workflow.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&workflow).Error
	})
	if err != nil {
		utils.ServerError(c, err, "Could not delete workflow")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workflow deleted successfully"})
}

func (wc *WorkflowController) CalculateWorkflow(c *gin.Context) {
	userID := c.GetString("user_id")

	var workflow models.Workflow
	if err := wc.visible(userID).
		Where("id = ?", c.Param("id")).
		First(&workflow).Error; err != nil {

		utils.NotFound(c, "Workflow not found")
		return
	}

	c.JSON(http.StatusOK, workflow.Calc())
}

type addTaskInput struct {
	TaskID string `json:"taskId"`
}

func (wc *WorkflowController) AddTaskToWorkflow(c *gin.Context) {
	userID := c.GetString("user_id")

	var workflow models.Workflow
	if err := wc.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&workflow).Error; err != nil {

		utils.NotFound(c, "Workflow not found")
		return
	}

	var input addTaskInput
	if err := c.ShouldBindJSON(&input); err != nil || input.TaskID == "" {
		utils.BadRequest(c, "taskId is required")
		return
	}

	// The task must exist; it need not belong to the workflow's owner.
	var task models.Task
	if err := wc.DB.First(&task, "id = ?", input.TaskID).Error; err != nil {
		utils.NotFound(c, "Task not found")
		return
	}

	position, err := models.NextPosition(wc.DB, workflow.ID)
	if err != nil {
		utils.ServerError(c, err, "Could not add task to workflow")
		return
	}

	row := models.WorkflowTask{WorkflowID: workflow.ID, TaskID: task.ID, Position: position}
	if err := wc.DB.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Task already in workflow")
			return
		}
		utils.ServerError(c, err, "Could not add task to workflow")
		return
	}

	if err := wc.loadTasks(&workflow); err != nil {
		utils.ServerError(c, err, "Could not add task to workflow")
		return
	}

	c.JSON(http.StatusOK, workflow)
}

func (wc *WorkflowController) RemoveTaskFromWorkflow(c *gin.Context) {
	userID := c.GetString("user_id")

	var workflow models.Workflow
	if err := wc.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&workflow).Error; err != nil {

		utils.NotFound(c, "Workflow not found")
		return
	}

	// Remaining positions are left untouched; removal is idempotent.
	if err := wc.DB.
		Where("workflow_id = ? AND task_id = ?", workflow.ID, c.Param("taskId")).
		Delete(&models.WorkflowTask{}).Error; err != nil {

		utils.ServerError(c, err, "Could not remove task from workflow")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task removed from workflow"})
}
