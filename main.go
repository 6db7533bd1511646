package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Moorthy04/Chat-bot/config"
	"github.com/Moorthy04/Chat-bot/controller"
	"github.com/Moorthy04/Chat-bot/dao"
	"github.com/Moorthy04/Chat-bot/logic"
	"github.com/Moorthy04/Chat-bot/middleware"
	"github.com/Moorthy04/Chat-bot/models"
	"github.com/Moorthy04/Chat-bot/pkg"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Initialize config
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run main.go <config.yaml>")
	}
	configFile := os.Args[1]
	if err := config.LoadConfig(configFile); err != nil {
		log.Fatalf("Failed to load config from %s: %v", configFile, err)
	}

	// Initialize database
	db, err := gorm.Open(postgres.Open(config.GlobalConfig.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db.AutoMigrate(&models.User{}, &models.Conversation{}, &models.Message{}, &models.Attachment{})

	// Initialize AI engine with the configured provider credentials
	engine := pkg.NewEngine(pkg.EngineConfig{
		GeminiAPIKey: config.GlobalConfig.Providers.GeminiAPIKey,
		OpenAIAPIKey: config.GlobalConfig.Providers.OpenAIAPIKey,
		ClaudeAPIKey: config.GlobalConfig.Providers.ClaudeAPIKey,
	})

	// Initialize DAOs
	userDAO := dao.NewUserDAO(db)
	convoDAO := dao.NewConversationDAO(db)
	messageDAO := dao.NewMessageDAO(db)
	attachmentDAO := dao.NewAttachmentDAO(db)

	// Initialize Logics
	userLogic := logic.NewUserLogic(userDAO)
	convoLogic := logic.NewConversationLogic(convoDAO, messageDAO)
	attachmentLogic := logic.NewAttachmentLogic(attachmentDAO, config.GlobalConfig.Uploads.Dir)
	chatLogic := logic.NewChatLogic(convoDAO, messageDAO, attachmentDAO, engine)

	// Initialize Controllers
	userCtrl := controller.NewUserController(userLogic)
	convoCtrl := controller.NewConversationController(convoLogic)
	attachmentCtrl := controller.NewAttachmentController(attachmentLogic)
	chatCtrl := controller.NewChatController(chatLogic)

	// Setup Gin router
	r := gin.Default()
	r.POST("/auth/register", userCtrl.Register)
	r.POST("/auth/login", userCtrl.Login)
	r.POST("/conversations", middleware.Auth, convoCtrl.CreateConversation)
	r.GET("/conversations", middleware.Auth, convoCtrl.GetConversations)
	r.GET("/conversations/:id", middleware.Auth, convoCtrl.GetConversation)
	r.DELETE("/conversations/:id", middleware.Auth, convoCtrl.DeleteConversation)
	r.GET("/conversations/:id/messages", middleware.Auth, convoCtrl.GetMessages)
	r.POST("/upload", middleware.Auth, attachmentCtrl.Upload)
	r.DELETE("/attachments/:id", middleware.Auth, attachmentCtrl.DeleteAttachment)
	r.POST("/chat/stream", middleware.Auth, chatCtrl.ChatStream)

	// Run server
	if err := r.Run(fmt.Sprintf(":%d", config.GlobalConfig.Server.Port)); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
