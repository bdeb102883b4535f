package main

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/JFL110/key-mole/game"
	"github.com/JFL110/key-mole/shared/configs"
	"github.com/JFL110/key-mole/shared/logger"
)

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(ctx *gin.Context) { ctx.String(200, "healthy") })
	r.GET("/ping", func(ctx *gin.Context) { ctx.String(200, "pong") })

	r.Use(func(ctx *gin.Context) {
		// Non-browser clients send no Origin header and are let through,
		// same as the websocket upgrader's origin check.
		origin := ctx.Request.Header.Get("Origin")
		if origin == "" || slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func main() {
	log := logger.New()

	envs := configs.Load()
	gin.SetMode(envs.GinMode)
	allowedOrigins := strings.Split(envs.AllowedOrigins, ",")

	r := CreateServer(allowedOrigins)

	lobby := game.NewLobby(game.DefaultRules(), log)
	handler := game.NewHandler(lobby, allowedOrigins, log)
	r.GET("/api/websocket", handler.WebsocketHandler)

	log.Info().Str("port", envs.Port).Msg("api listening")
	if err := r.Run(":" + envs.Port); err != nil {
		log.Fatal().Err(err).Msg("couldn't start server")
	}
}
