package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/parkstack/service-parking/internal/application"
	"github.com/parkstack/service-parking/internal/auth"
	"github.com/parkstack/service-parking/internal/middleware"
	"github.com/parkstack/service-parking/internal/response"
)

// LotHandler handles HTTP requests for parking lot management.
type LotHandler struct {
	service *application.LotService
}

// NewLotHandler creates a new LotHandler.
func NewLotHandler(service *application.LotService) *LotHandler {
	return &LotHandler{service: service}
}

// RegisterRoutes registers lot routes. Browsing is public; mutations are
// admin only.
func (h *LotHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	lots := r.Group("/lots")
	{
		lots.GET("", h.ListLots)
		lots.GET("/:id", h.GetLot)
	}

	admin := r.Group("/lots")
	admin.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleAdmin))
	{
		admin.POST("", h.CreateLot)
		admin.PUT("/:id", h.UpdateLot)
		admin.DELETE("/:id", h.DeleteLot)
	}
}

// ListLots handles GET /api/v1/lots
func (h *LotHandler) ListLots(c *gin.Context) {
	dtos, err := h.service.ListLots(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dtos)
}

// GetLot handles GET /api/v1/lots/:id
func (h *LotHandler) GetLot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid lot ID")
		return
	}

	dto, err := h.service.GetLot(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// CreateLot handles POST /api/v1/lots
func (h *LotHandler) CreateLot(c *gin.Context) {
	var req application.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.CreateLot(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto)
}

// UpdateLot handles PUT /api/v1/lots/:id
func (h *LotHandler) UpdateLot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid lot ID")
		return
	}

	var req application.UpdateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.UpdateLot(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// DeleteLot handles DELETE /api/v1/lots/:id
func (h *LotHandler) DeleteLot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid lot ID")
		return
	}

	if err := h.service.DeleteLot(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
