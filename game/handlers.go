package game

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type Handler struct {
	lobby    *Lobby
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewHandler(lobby *Lobby, allowedOrigins []string, log zerolog.Logger) *Handler {
	return &Handler{
		lobby: lobby,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
		log: log,
	}
}

// WebsocketHandler admits a player into a room and upgrades the connection.
// All denials happen before the upgrade, as plain HTTP statuses; past this
// point the room is never fatal.
func (h *Handler) WebsocketHandler(ctx *gin.Context) {
	if !websocket.IsWebSocketUpgrade(ctx.Request) {
		ctx.String(http.StatusUpgradeRequired, "expected websocket upgrade")
		return
	}

	gameID := ctx.Query("gameId")
	if gameID == "" || gameID == "null" {
		h.log.Warn().Str("ip", ctx.ClientIP()).Msg("bad request, missing gameId")
		ctx.String(http.StatusBadRequest, "missing gameId")
		return
	}

	playerID := ctx.Query("playerId")
	if playerID == "" || playerID == "null" {
		playerID = NewPlayerID()
	}

	room := h.lobby.Room(gameID)
	if err := room.Admit(playerID); err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	room.Bind(playerID, newWebsocketConn(conn))
}
