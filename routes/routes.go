package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/moaz779/Task-Workflow-Manager/config"
	"github.com/moaz779/Task-Workflow-Manager/controllers"
	"github.com/moaz779/Task-Workflow-Manager/middleware"
	"github.com/moaz779/Task-Workflow-Manager/utils"
)

func SetupRouter(db *gorm.DB, cfg config.Config, notifier utils.Notifier) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	authController := controllers.AuthController{DB: db}
	taskController := controllers.TaskController{DB: db, Notifier: notifier, ThresholdHours: cfg.ThresholdHours}
	workflowController := controllers.WorkflowController{DB: db}
	commentController := controllers.CommentController{DB: db}
	userController := controllers.UserController{DB: db}

	// Health check
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is running"})
	})

	auth := r.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/tasks", taskController.ListTasks)
	protected.POST("/tasks", taskController.CreateTask)
	protected.GET("/tasks/threshold", taskController.DailyEstimate)
	protected.GET("/tasks/:id", taskController.GetTask)
	protected.PUT("/tasks/:id", taskController.UpdateTask)
	protected.DELETE("/tasks/:id", taskController.DeleteTask)

	protected.GET("/workflows", workflowController.ListWorkflows)
	protected.POST("/workflows", workflowController.CreateWorkflow)
	protected.GET("/workflows/:id", workflowController.GetWorkflow)
	protected.PUT("/workflows/:id", workflowController.UpdateWorkflow)
	protected.DELETE("/workflows/:id", workflowController.DeleteWorkflow)
	protected.GET("/workflows/:id/calc", workflowController.CalculateWorkflow)
	protected.POST("/workflows/:id/tasks", workflowController.AddTaskToWorkflow)
	protected.DELETE("/workflows/:id/tasks/:taskId", workflowController.RemoveTaskFromWorkflow)
	protected.GET("/workflows/:id/comments", commentController.ListComments)
	protected.POST("/workflows/:id/comments", commentController.CreateComment)

	protected.GET("/users/me", userController.GetProfile)
	protected.PUT("/users/me", userController.UpdateProfile)

	return r
}
