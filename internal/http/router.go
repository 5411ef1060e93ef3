// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estatematch/internal/http/handlers"
	"estatematch/internal/http/middleware"
	"estatematch/internal/maps"
	"estatematch/internal/modules/analysis"
	"estatematch/internal/modules/chat"
	"estatematch/internal/modules/usage"
)

func NewRouter(
	analysisService *analysis.Service,
	chatService *chat.Service,
	usageService *usage.Service,
	commuteService *maps.CommuteService,
) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	analyzeHandler := handlers.NewAnalyzeHandler(analysisService, usageService, commuteService)
	r.POST("/api/analyze", analyzeHandler.Analyze)

	chatHandler := handlers.NewChatHandler(chatService, chat.NewRegistry())
	r.POST("/api/chat/sessions", chatHandler.CreateSession)
	r.POST("/api/chat/sessions/:id/messages", chatHandler.SendMessage)
	r.GET("/api/chat/sessions/:id", chatHandler.History)
	r.DELETE("/api/chat/sessions/:id", chatHandler.DeleteSession)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
