package housekeeping

import (
	"net/http"
	"strconv"

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

// RegisterRoutes mounts the task endpoints on rg. The caller decides how rg
// is authenticated (staff JWT or the internal housekeeping token).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/housekeeping/tasks", h.Create)
	rg.GET("/housekeeping/tasks/:id", h.Get)
	rg.PATCH("/housekeeping/tasks/:id/status", h.UpdateStatus)
	rg.GET("/rooms/:id/housekeeping-tasks", h.ListByRoom)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, "Invalid request body", err)
		return
	}

	task, err := h.service.Create(c.Request.Context(), CreateInput{
		RoomID:        req.RoomID,
		ReservationID: req.ReservationID,
		Type:          domain.TaskType(req.TaskType),
		Priority:      domain.TaskPriority(req.Priority),
		AssignedTo:    req.AssignedTo,
		Notes:         req.Notes,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"task": task})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	task, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"task": task})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, "Invalid request body", err)
		return
	}

	task, err := h.service.UpdateStatus(c.Request.Context(), id, domain.TaskStatus(req.Status), req.Notes)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"task": task})
}

func (h *Handler) ListByRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	tasks, err := h.service.ListByRoom(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tasks": tasks})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}
