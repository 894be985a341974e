package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, transactionHandler *TransactionHandler, summaryHandler *SummaryHandler, filterHandler *FilterHandler, categoryHandler *CategoryHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Summary route
	api.GET("/summary", summaryHandler.GetSummary)

	// Date filter routes
	filter := api.Group("/filter")
	filter.GET("", filterHandler.GetFilter)
	filter.PUT("", filterHandler.SetFilter)
	filter.DELETE("", filterHandler.ResetFilter)

	// Category routes
	api.GET("/categories", categoryHandler.GetCategories)

	// WebSocket event feed
	api.GET("/ws", wsHandler.HandleWebSocket)
}
