package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/parkstack/service-parking/internal/application"
	"github.com/parkstack/service-parking/internal/auth"
	"github.com/parkstack/service-parking/internal/middleware"
	"github.com/parkstack/service-parking/internal/response"
)

// ReservationHandler handles HTTP requests for reservations.
type ReservationHandler struct {
	service *application.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(service *application.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// RegisterRoutes registers reservation routes. All routes require a
// valid token; the list-all and lifecycle routes additionally require
// the admin role.
func (h *ReservationHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	reservations := r.Group("/reservations")
	reservations.Use(middleware.AuthMiddleware(jwtManager))
	{
		reservations.POST("", h.Reserve)
		reservations.GET("/me", h.MyReservations)
		reservations.POST("/:id/cancel", h.Cancel)
	}

	admin := r.Group("/reservations")
	admin.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleAdmin))
	{
		admin.GET("", h.ListAll)
		admin.POST("/:id/activate", h.Activate)
		admin.POST("/:id/complete", h.Complete)
	}
}

// Reserve handles POST /api/v1/reservations
func (h *ReservationHandler) Reserve(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.Reserve(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto)
}

// MyReservations handles GET /api/v1/reservations/me
func (h *ReservationHandler) MyReservations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	dtos, err := h.service.MyReservations(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dtos)
}

// ListAll handles GET /api/v1/reservations
func (h *ReservationHandler) ListAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	dtos, total, err := h.service.ListAll(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, dtos, total, page, limit)
}

// Cancel handles POST /api/v1/reservations/:id/cancel
func (h *ReservationHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	role := middleware.GetRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid reservation ID")
		return
	}

	dto, err := h.service.Cancel(c.Request.Context(), id, userID, role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// Activate handles POST /api/v1/reservations/:id/activate
func (h *ReservationHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid reservation ID")
		return
	}

	dto, err := h.service.Activate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// Complete handles POST /api/v1/reservations/:id/complete
func (h *ReservationHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid reservation ID")
		return
	}

	dto, err := h.service.Complete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}
