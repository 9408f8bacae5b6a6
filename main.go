package main

import (
	"log"
	"os"

	"KidScreen/clock"
	"KidScreen/config"
	"KidScreen/controllers"
	"KidScreen/repositories/impl"
	"KidScreen/routes"
	"KidScreen/services"
	"KidScreen/websocket"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	config.InitDatabase()
	config.InitFirebase()

	// Repositories
	familyRepo := impl.NewFamilyRepository(config.DB)
	sessionRepo := impl.NewSessionRepository(config.DB)

	// Часы семьи: все решения о границах дня идут через них
	clk := clock.NewRealClock(config.FamilyLocation())

	// WebSocket-хаб - живой канал семьи
	hub := websocket.NewHub()
	controllers.SetWebSocketHub(hub)

	// Push-уведомления, если настроен Firebase
	var push services.PushNotifier
	if config.FirebaseApp != nil {
		notificationService, err := services.NewNotificationService(config.FirebaseApp, familyRepo)
		if err != nil {
			log.Printf("push notifications disabled: %v", err)
		} else {
			push = notificationService
		}
	}

	// Engine services
	limitService := services.NewLimitService(clk)
	usageService := services.NewUsageService(limitService)
	bedtimeService := services.NewBedtimeService(clk)
	sessionService := services.NewSessionService(familyRepo, sessionRepo, usageService, bedtimeService, clk, hub, push)
	familyService := services.NewFamilyService(familyRepo, sessionRepo, usageService, clk, config.GuardianPasscodeHash())
	settingsService := services.NewSettingsService(familyRepo, clk, hub)

	controllers.SetSessionService(sessionService)
	controllers.SetFamilyService(familyService)
	controllers.SetSettingsService(settingsService)

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	r.Run(":" + port)
}
