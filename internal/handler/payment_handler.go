package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/parkstack/service-parking/internal/application"
	"github.com/parkstack/service-parking/internal/auth"
	"github.com/parkstack/service-parking/internal/middleware"
	"github.com/parkstack/service-parking/internal/response"
)

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	service *application.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *application.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RegisterRoutes registers payment routes.
func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	payments := r.Group("/payments")
	payments.Use(middleware.AuthMiddleware(jwtManager))
	{
		payments.POST("", h.RecordPayment)
		payments.GET("/reservation/:id", h.PaymentsByReservation)
	}
}

// RecordPayment handles POST /api/v1/payments
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req application.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.RecordPayment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// PaymentsByReservation handles GET /api/v1/payments/reservation/:id
func (h *PaymentHandler) PaymentsByReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid reservation ID")
		return
	}

	dtos, err := h.service.PaymentsByReservation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dtos)
}
