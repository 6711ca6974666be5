package main

import (
	"log"
	"net/http"
	"os"

	"task-management-api/config"
	"task-management-api/handlers"
	"task-management-api/helper"
	"task-management-api/repositories"
	"task-management-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	db := config.InitDB()

	// Initialize repositories
	taskRepo := repositories.NewTaskRepository()
	tagRepo := repositories.NewTagRepository()

	// Initialize services
	taskService := services.NewTaskService(db, taskRepo, tagRepo)
	tagService := services.NewTagService(db, tagRepo)

	// Initialize handlers
	httpHelper := helper.NewHTTPHelper()
	taskHandler := handlers.NewTaskHandler(taskService, httpHelper)
	tagHandler := handlers.NewTagHandler(tagService, httpHelper)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Task Management API is running"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		tasks := v1.Group("/tasks")
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.GetTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		v1.GET("/tags", tagHandler.GetTags)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
