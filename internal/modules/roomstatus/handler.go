package roomstatus

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"hotelops/internal/pkg/jwt"
	"hotelops/internal/pkg/response"
)

type WSHandler struct {
	hub      *Hub
	jwt      *jwt.Service
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewWSHandler builds the live feed handler. originAllowed decides the
// handshake's Origin header; nil accepts any origin.
func NewWSHandler(hub *Hub, jwtService *jwt.Service, originAllowed func(origin string) bool, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		hub: hub,
		jwt: jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed == nil || originAllowed(r.Header.Get("Origin"))
			},
		},
		log: log,
	}
}

func (h *WSHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/ws/rooms", h.Serve)
}

// Serve upgrades GET /ws/rooms?token=JWT[&room_id=1&room_id=2] and streams
// room status events. Browsers cannot set headers on a WebSocket handshake,
// so the token travels in the query.
func (h *WSHandler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "AUTH_TOKEN_MISSING", "token query parameter is required")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	var rooms []int64
	for _, raw := range c.QueryArray("room_id") {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "room_id must be a positive integer")
			return
		}
		rooms = append(rooms, id)
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("room feed upgrade failed")
		return
	}

	h.log.Info().Int64("user_id", claims.UserID).Str("role", claims.Role).Msg("room feed connected")
	h.hub.ServeWS(conn, claims.UserID, rooms)
	h.log.Info().Int64("user_id", claims.UserID).Msg("room feed disconnected")
}
