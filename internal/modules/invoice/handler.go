package invoice

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/invoices", h.Generate)
	rg.GET("/invoices/:id", h.Get)
	rg.PATCH("/invoices/:id/payment", h.UpdatePayment)
	rg.GET("/reservations/:id/invoice", h.GetByReservation)
}

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, "Invalid request body", err)
		return
	}

	inv, err := h.service.Generate(c.Request.Context(), GenerateInput{
		ReservationID:  req.ReservationID,
		ServiceCharges: req.ServiceCharges,
		Taxes:          req.Taxes,
		Discount:       req.Discount,
		Notes:          req.Notes,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"invoice": inv})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	inv, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoice": inv})
}

func (h *Handler) GetByReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	inv, err := h.service.GetByReservation(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoice": inv})
}

func (h *Handler) UpdatePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, "amount_paid and payment_method are required", err)
		return
	}

	inv, err := h.service.UpdatePayment(c.Request.Context(), id, *req.AmountPaid, domain.PaymentMethod(req.PaymentMethod))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoice": inv})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}
