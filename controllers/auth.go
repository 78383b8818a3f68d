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

type AuthController struct {
	DB *gorm.DB
}

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var input registerInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		utils.BadRequest(c, "Name, email, and password are required")
		return
	}
	if len(input.Password) < 6 {
		utils.BadRequest(c, "Password must be at least 6 chars")
		return
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		utils.BadRequest(c, "Valid email is required")
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.ServerError(c, err, "Registration failed, please try again")
		return
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashed,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Email already in use")
			return
		}
		utils.ServerError(c, err, "Registration failed, please try again")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var input loginInput
	var user models.User

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.BadRequest(c, "Email and password are required")
		return
	}

	// Unknown email and wrong password respond identically.
	if err := ac.DB.
		Where("email = ?", input.Email).
		First(&user).Error; err != nil {

		utils.JSONError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid credentials")
		return
	}

	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		utils.JSONError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		utils.ServerError(c, err, "Login failed, please try again")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresIn": int(utils.TokenTTL.Seconds()),
	})
}
