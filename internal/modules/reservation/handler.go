package reservation

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hotelops/internal/domain"
	"hotelops/internal/middleware"
	"hotelops/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the booking endpoints guests may use themselves.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.Create)
	rg.GET("/reservations/:id", h.Get)
}

// RegisterDeskRoutes mounts the front desk lifecycle endpoints.
func (h *Handler) RegisterDeskRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/reservations/:id", h.Update)
	rg.POST("/reservations/:id/confirm", h.Confirm)
	rg.POST("/reservations/:id/check-in", h.CheckIn)
	rg.POST("/reservations/:id/check-out", h.CheckOut)
	rg.POST("/reservations/:id/cancel", h.Cancel)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, "Invalid request body", err)
		return
	}

	rng, err := domain.ParseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		response.FromError(c, err)
		return
	}

	userID := c.GetInt64("user_id")
	guestID := req.GuestID
	status := domain.ReservationStatus(req.Status)
	total := req.TotalAmount
	if c.GetString("role") == middleware.RoleGuest {
		// self-service bookings wait for the desk and pay the room rate
		guestID = userID
		status = domain.ReservationPending
		total = nil
	}
	if guestID == 0 {
		guestID = userID
	}

	res, err := h.service.Create(c.Request.Context(), CreateInput{
		GuestID:         guestID,
		RoomID:          req.RoomID,
		CheckIn:         rng.CheckIn,
		CheckOut:        rng.CheckOut,
		Adults:          req.Adults,
		Children:        req.Children,
		TotalAmount:     total,
		AdvancePayment:  req.AdvancePayment,
		Status:          status,
		SpecialRequests: req.SpecialRequests,
		CreatedBy:       userID,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"reservation": res})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if c.GetString("role") == middleware.RoleGuest && res.GuestID != c.GetInt64("user_id") {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, "Invalid request body", err)
		return
	}

	in := UpdateInput{
		RoomID:          req.RoomID,
		Adults:          req.Adults,
		Children:        req.Children,
		AdvancePayment:  req.AdvancePayment,
		SpecialRequests: req.SpecialRequests,
	}
	var err error
	if in.CheckIn, err = parseOptionalDate(req.CheckIn, "check_in"); err != nil {
		response.FromError(c, err)
		return
	}
	if in.CheckOut, err = parseOptionalDate(req.CheckOut, "check_out"); err != nil {
		response.FromError(c, err)
		return
	}

	res, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) Confirm(c *gin.Context) {
	h.step(c, h.service.Confirm)
}

func (h *Handler) CheckIn(c *gin.Context) {
	h.step(c, h.service.CheckIn)
}

func (h *Handler) CheckOut(c *gin.Context) {
	h.step(c, h.service.CheckOut)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CancelReservationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BindError(c, "Invalid request body", err)
			return
		}
	}

	res, err := h.service.Cancel(c.Request.Context(), id, c.GetInt64("user_id"), req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) step(c *gin.Context, op func(ctx context.Context, id int64) (*domain.Reservation, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := op(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation id")
		return 0, false
	}
	return id, true
}

func parseOptionalDate(v *string, field string) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, *v)
	if err != nil {
		return nil, domain.Validationf("%s must be YYYY-MM-DD", field)
	}
	return &t, nil
}
