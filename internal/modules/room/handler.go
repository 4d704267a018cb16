package room

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelops/internal/domain"
	"hotelops/internal/pkg/response"
	"hotelops/internal/repository"
)

// RoomReader is the read side of the room registry.
type RoomReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, f repository.RoomFilters) ([]domain.Room, error)
}

type Handler struct {
	rooms RoomReader
}

func NewHandler(rooms RoomReader) *Handler {
	return &Handler{rooms: rooms}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms", h.List)
	rg.GET("/rooms/:id", h.Get)
}

// GET /rooms?status=Available&room_type=Suite&is_active=true
func (h *Handler) List(c *gin.Context) {
	var f repository.RoomFilters

	if s := c.Query("status"); s != "" {
		f.Status = domain.RoomStatus(s)
		if !f.Status.Valid() {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown room status")
			return
		}
	}
	if t := c.Query("room_type"); t != "" {
		f.Type = domain.RoomType(t)
		if !f.Type.Valid() {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown room type")
			return
		}
	}
	if a := c.Query("is_active"); a != "" {
		active, err := strconv.ParseBool(a)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "is_active must be true or false")
			return
		}
		f.IsActive = &active
	}

	rooms, err := h.rooms.List(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rooms": rooms, "total": len(rooms)})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room id")
		return
	}

	room, err := h.rooms.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room": room})
}
