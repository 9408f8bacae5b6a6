package routes

import (
	"KidScreen/controllers"
	"KidScreen/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Канал реального времени семьи
	r.GET("/ws", middlewares.AuthMiddleware(), controllers.ServeWs)

	families := r.Group("/families")
	families.Use(middlewares.AuthMiddleware())
	{
		families.GET("/state", controllers.GetFamilyState)
		families.PUT("/settings", controllers.UpdateMasterSettings)

		families.POST("/children/:child_uid/sessions", controllers.CreateSession)
		families.PUT("/children/:child_uid/sessions/:session_uid", controllers.UpdateSession)
		families.DELETE("/children/:child_uid/sessions/:session_uid", controllers.DeleteSession)

		families.GET("/children/:child_uid/usage", controllers.GetChildUsage)
		families.PUT("/children/:child_uid/settings", controllers.UpdateChildSettings)
	}
}
