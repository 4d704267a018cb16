package availability

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelops/internal/domain"
	"hotelops/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability", h.Search)
}

// GET /availability?check_in=2025-01-01&check_out=2025-01-03&room_type=Suite
func (h *Handler) Search(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, "check_in and check_out are required", err)
		return
	}

	rng, err := domain.ParseDateRange(q.CheckIn, q.CheckOut)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var roomType *domain.RoomType
	if q.RoomType != "" {
		t := domain.RoomType(q.RoomType)
		roomType = &t
	}

	rooms, err := h.service.FindAvailable(c.Request.Context(), rng.CheckIn, rng.CheckOut, roomType)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, SearchResponse{
		CheckIn:  rng.CheckIn.Format(domain.DateLayout),
		CheckOut: rng.CheckOut.Format(domain.DateLayout),
		Nights:   rng.Nights(),
		Rooms:    rooms,
	})
}
