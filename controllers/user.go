package controllers

import (
	"errors"
	"net/http"
	"net/mail"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/moaz779/Task-Workflow-Manager/models"
	"github.com/moaz779/Task-Workflow-Manager/utils"
)

type UserController struct {
	DB *gorm.DB
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		// The token verified but the account is gone.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Account no longer exists")
			return
		}
		utils.ServerError(c, err, "Could not retrieve profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Account no longer exists")
			return
		}
		utils.ServerError(c, err, "Could not update profile")
		return
	}

	var input struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}
	if input.Email != nil && *input.Email != user.Email {
		if _, err := mail.ParseAddress(*input.Email); err != nil {
			utils.BadRequest(c, "Valid email is required")
			return
		}
		// Email uniqueness is re-checked on change.
		var count int64
		if err := uc.DB.Model(&models.User{}).Where("email = ?", *input.Email).Count(&count).Error; err != nil {
			utils.ServerError(c, err, "Could not update profile")
			return
		}
		if count > 0 {
			utils.Conflict(c, "Email already in use")
			return
		}
		user.Email = *input.Email
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Email already in use")
			return
		}
		utils.ServerError(c, err, "Could not update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}
