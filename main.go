package main

import (
	"log"
	"os"

	"github.com/campusmind/wellness_backend/controllers"
	"github.com/campusmind/wellness_backend/database"
	"github.com/campusmind/wellness_backend/middleware"
	"github.com/campusmind/wellness_backend/store"
	"github.com/campusmind/wellness_backend/websocket"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize database
	database.Connect()
	database.Migrate()

	// Chat core: storage, room registry, realtime handler
	chatStore := store.NewGormStore(database.DB)
	hub := websocket.NewHub()
	go hub.Run()

	wsHandler := websocket.NewHandler(hub, chatStore)
	chatController := controllers.NewChatController(chatStore, hub)

	// Set up router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Authentication routes
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected routes
	api := router.Group("/api")
	api.Use(middleware.JWTAuth())
	{
		// User routes
		api.GET("/users", controllers.ListUsers)
		api.GET("/users/me", controllers.GetProfile)
		api.PUT("/users/me", controllers.UpdateProfile)
		api.PUT("/users/me/password", controllers.ChangePassword)
		api.DELETE("/users/me", controllers.DeleteAccount)

		// Chat routes
		api.GET("/chats", chatController.GetChats)
		api.POST("/chats/private", chatController.CreatePrivateChat)
		api.POST("/chats/group", chatController.CreateGroupChat)
		api.GET("/chats/:id", chatController.GetChat)
		api.DELETE("/chats/:id", chatController.LeaveChat)
		api.GET("/chats/:id/messages", chatController.GetMessages)
		api.GET("/chats/:id/participants", chatController.GetParticipants)

		// Message routes
		api.POST("/messages", chatController.SendMessage)
		api.POST("/messages/:id/read", chatController.MarkMessageRead)
		api.DELETE("/messages/:id", chatController.DeleteMessage)
		api.POST("/participants", chatController.AddParticipant)

		// Note routes
		api.GET("/notes", controllers.GetNotes)
		api.GET("/notes/search", controllers.SearchNotes)
		api.POST("/notes", controllers.CreateNote)
		api.PUT("/notes/:id", controllers.UpdateNote)
		api.DELETE("/notes/:id", controllers.DeleteNote)

		// Task routes
		api.GET("/tasks", controllers.GetTasks)
		api.GET("/tasks/search", controllers.SearchTasks)
		api.POST("/tasks", controllers.CreateTask)
		api.PUT("/tasks/:id", controllers.UpdateTask)
		api.DELETE("/tasks/:id", controllers.DeleteTask)

		// Event routes
		api.GET("/events", controllers.GetEvents)
		api.GET("/events/upcoming", controllers.GetUpcomingEvents)
		api.POST("/events", controllers.CreateEvent)
		api.PUT("/events/:id", controllers.UpdateEvent)
		api.DELETE("/events/:id", controllers.DeleteEvent)

		// Emotion diary routes
		api.POST("/diary", controllers.LogEmotion)
		api.GET("/diary/history", controllers.GetEmotionalHistory)

		// Emergency contact routes
		api.GET("/contacts", controllers.GetEmergencyContacts)
		api.GET("/contacts/:id", controllers.GetEmergencyContact)
		api.POST("/contacts", controllers.CreateEmergencyContact)
		api.PUT("/contacts/:id", controllers.UpdateEmergencyContact)
		api.DELETE("/contacts/:id", controllers.DeleteEmergencyContact)

		// Resource routes
		api.GET("/resources", controllers.GetResources)
		api.GET("/resources/:id", controllers.GetResource)
		api.POST("/resources", controllers.CreateResource)
		api.PUT("/resources/:id", controllers.UpdateResource)
		api.DELETE("/resources/:id", controllers.DeleteResource)

		// Reward routes
		api.GET("/rewards/balance", controllers.GetBalance)
		api.POST("/rewards/daily", controllers.ClaimDailyCoins)
		api.POST("/rewards/subtract-points", controllers.SubtractPoints)
	}

	// WebSocket route
	router.GET("/ws", wsHandler.HandleConnection)

	// Status route
	router.GET("/api/status", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "active"})
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server running on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
