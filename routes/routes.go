package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"hotel-control-backend/controllers"
	"hotel-control-backend/middleware"
	"hotel-control-backend/realtime"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the REST surface and the websocket endpoint.
func SetupRouter(
	hc *controllers.HotelController,
	hub *realtime.Hub,
	dispatcher *realtime.Dispatcher,
	cache *redis.Client,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ws", realtime.ServeWS(hub, dispatcher))

	api := r.Group("/api")
	api.Use(middleware.Cache(cache, 10*time.Second))
	{
		api.GET("/rooms", hc.GetRooms)
		api.GET("/rooms/:id", hc.GetRoomByID)
		api.GET("/guests", hc.GetGuests)
		api.GET("/guests/:id", hc.GetGuestByID)
		api.GET("/stats", hc.GetStats)
		api.GET("/admins", hc.GetAdmins)
	}

	return r
}
