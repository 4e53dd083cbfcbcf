// Package web provides API routes for the web server.
package web

import (
	"net/http"

	"github.com/PancyStudios/PancyWarden/pkg/settings"
	"github.com/PancyStudios/PancyWarden/pkg/storage"
	"github.com/PancyStudios/PancyWarden/pkg/warnings"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BotStatus reports the Discord connection state
type BotStatus interface {
	IsReady() bool
	GuildCount() int
}

// APIDeps are the services exposed by the API. Bot may be nil before the client starts.
type APIDeps struct {
	Ledger   *warnings.Ledger
	Settings *settings.Store
	Storage  storage.Backend
	Bot      BotStatus
}

// SetupAPIRoutes sets up the read-only API and the metrics endpoint
func SetupAPIRoutes(s *Server, deps APIDeps) {
	api := s.Group("/api")
	{
		api.GET("/health", healthHandler)
		api.GET("/status", statusHandler(deps))
		api.GET("/guilds", guildsHandler(deps.Ledger))
		api.GET("/guilds/:guildId/users/:userId/warnings", warningsHandler(deps.Ledger))
		api.GET("/guilds/:guildId/settings", settingsHandler(deps.Settings))
	}

	s.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "PancyWarden is running",
	})
}

// statusHandler returns the bot and storage status
func statusHandler(deps APIDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		storageStatus, storageOnline := storage.Status(deps.Storage)

		botOnline, guilds := false, 0
		if deps.Bot != nil {
			botOnline = deps.Bot.IsReady()
			guilds = deps.Bot.GuildCount()
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"storage": gin.H{
				"status":   storageStatus,
				"isOnline": storageOnline,
			},
			"bot": gin.H{
				"isOnline": botOnline,
				"guilds":   guilds,
			},
		})
	}
}

func guildsHandler(ledger *warnings.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"guilds": ledger.Guilds()})
	}
}

func warningsHandler(ledger *warnings.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		guildID, userID := c.Param("guildId"), c.Param("userId")

		warns, ok := ledger.GetWarnings(guildID, userID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "El usuario no tiene advertencias registradas.",
				"status":  404,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"guildId":  guildID,
			"userId":   userID,
			"count":    len(warns),
			"warnings": warns,
		})
	}
}

func settingsHandler(store *settings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		guildID := c.Param("guildId")
		c.JSON(http.StatusOK, gin.H{
			"guildId":    guildID,
			"configured": store.Has(guildID),
			"settings":   store.GetOrDefault(guildID),
		})
	}
}
