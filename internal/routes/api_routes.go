package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DiChris2901/Dr-Group-sub015/internal/handlers"
	"github.com/DiChris2901/Dr-Group-sub015/internal/middleware"
)

// RegisterAPIRoutes registers every authenticated API route.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	apiGroup := api.Group("/api")
	{
		dashboard := apiGroup.Group("/dashboard")
		{
			dashboard.GET("/summary", handlers.GetDashboardSummaryHandler)
			dashboard.GET("/summary/month", handlers.GetMonthSummaryHandler)
		}

		commitments := apiGroup.Group("/commitments")
		{
			commitments.GET("", handlers.ListCommitmentsHandler)
			commitments.POST("", handlers.CreateCommitmentHandler)
			commitments.GET("/:id", handlers.GetCommitmentHandler)
			commitments.PUT("/:id", handlers.UpdateCommitmentHandler)
			commitments.DELETE("/:id", middleware.AdminMiddleware(), handlers.DeleteCommitmentHandler)
		}

		payments := apiGroup.Group("/payments")
		{
			payments.GET("", handlers.ListPaymentsHandler)
			payments.POST("", handlers.CreatePaymentHandler)
			payments.GET("/:id/receipt", handlers.GetPaymentReceiptHandler)
			payments.DELETE("/:id", middleware.AdminMiddleware(), handlers.DeletePaymentHandler)
		}

		recurring := apiGroup.Group("/recurring")
		{
			recurring.GET("", handlers.ListRecurringHandler)
			recurring.POST("", handlers.CreateRecurringHandler)
			recurring.POST("/:id/generate-plan", handlers.GenerateCommitmentPlanHandler)
		}

		liquidations := apiGroup.Group("/liquidations")
		{
			liquidations.GET("", handlers.ListLiquidationsHandler)
			liquidations.POST("", handlers.CreateLiquidationHandler)
			liquidations.GET("/:id/export", handlers.ExportLiquidationHandler)
		}

		notifications := apiGroup.Group("/notifications")
		{
			notifications.GET("", handlers.ListNotificationsHandler)
			notifications.POST("/:id/read", handlers.MarkNotificationReadHandler)
			notifications.GET("/settings", handlers.GetNotificationSettingsHandler)
			notifications.PUT("/settings", handlers.UpdateNotificationSettingsHandler)
		}

		chat := apiGroup.Group("/chat")
		{
			chat.GET("/ws", handlers.ChatWSEndpoint)
			chat.GET("/rooms", handlers.ListChatsHandler)
			chat.POST("/rooms", handlers.CreateChatHandler)
			chat.GET("/rooms/:id/messages", handlers.GetMessagesHandler)
		}
	}
}
