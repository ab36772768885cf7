package server

import (
	"time"

	httpHandler "yt-embed/interfaces/http"
	"yt-embed/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	embedHandler httpHandler.IEmbedHandler,
	healthHandler httpHandler.IHealthHandler,
	allowOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler.Healthz)
	router.GET("/assets/lite-youtube-embed.css", embedHandler.Stylesheet)
	router.GET("/embed/youtube/:videoId", embedHandler.YoutubeFragment)

	api := router.Group("api")
	{
		api.POST("/embeds/youtube", embedHandler.RenderYoutube)
		api.POST("/shortcodes/render", embedHandler.RenderShortcodes)
	}

	return router
}
