package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/moaz779/Task-Workflow-Manager/models"
	"github.com/moaz779/Task-Workflow-Manager/utils"
)

type CommentController struct {
	DB *gorm.DB
}

// visibleWorkflow resolves the parent workflow under the caller's read scope;
// commenting is allowed wherever reading is.
func (cc *CommentController) visibleWorkflow(c *gin.Context) (models.Workflow, bool) {
	userID := c.GetString("user_id")

	var workflow models.Workflow
	err := cc.DB.
		Where("user_id = ? OR is_public = ?", userID, true).
		Where("id = ?", c.Param("id")).
		First(&workflow).Error
	if err != nil {
		utils.NotFound(c, "Workflow not found")
		return models.Workflow{}, false
	}
	return workflow, true
}

func (cc *CommentController) ListComments(c *gin.Context) {
	workflow, ok := cc.visibleWorkflow(c)
	if !ok {
		return
	}

	comments := make([]models.Comment, 0)
	if err := cc.DB.
		Where("workflow_id = ?", workflow.ID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {

		utils.ServerError(c, err, "Could not list comments")
		return
	}

	if err := models.AttachAuthors(cc.DB, comments); err != nil {
		utils.ServerError(c, err, "Could not list comments")
		return
	}

	c.JSON(http.StatusOK, comments)
}

type commentInput struct {
	Text   string `json:"text"`
	Rating *int   `json:"rating"`
}

func (cc *CommentController) CreateComment(c *gin.Context) {
	workflow, ok := cc.visibleWorkflow(c)
	if !ok {
		return
	}

	var input commentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}
	if input.Text == "" {
		utils.BadRequest(c, "Comment text is required")
		return
	}
	if input.Rating == nil || *input.Rating < 1 || *input.Rating > 5 {
		utils.BadRequest(c, "Rating must be an integer between 1 and 5")
		return
	}

	comment := models.Comment{
		WorkflowID: workflow.ID,
		UserID:     c.GetString("user_id"),
		Text:       input.Text,
		Rating:     *input.Rating,
	}

	if err := cc.DB.Create(&comment).Error; err != nil {
		utils.ServerError(c, err, "Could not create comment")
		return
	}

	comments := []models.Comment{comment}
	if err := models.AttachAuthors(cc.DB, comments); err != nil {
		utils.ServerError(c, err, "Could not create comment")
		return
	}

	c.JSON(http.StatusCreated, comments[0])
}
