package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	lotDomain "github.com/parkstack/service-parking/internal/domain/lot"
)

// CreateLotRequest is the DTO for creating a parking lot.
type CreateLotRequest struct {
	Name              string `json:"name" binding:"required"`
	Location          string `json:"location" binding:"required"`
	TotalCapacity     int    `json:"total_capacity" binding:"min=0"`
	AvailableCapacity *int   `json:"available_capacity"`
}

// UpdateLotRequest is the DTO for editing a parking lot. Omitted fields
// are left unchanged.
type UpdateLotRequest struct {
	Name              *string `json:"name"`
	Location          *string `json:"location"`
	TotalCapacity     *int    `json:"total_capacity"`
	AvailableCapacity *int    `json:"available_capacity"`
}

// LotDTO is the API response representation of a parking lot.
type LotDTO struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Location          string    `json:"location"`
	TotalCapacity     int       `json:"total_capacity"`
	AvailableCapacity int       `json:"available_capacity"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// LotService handles parking lot management use cases.
type LotService struct {
	lots   lotDomain.LotRepository
	logger *zap.Logger
}

// NewLotService creates a new LotService.
func NewLotService(lots lotDomain.LotRepository, logger *zap.Logger) *LotService {
	return &LotService{lots: lots, logger: logger}
}

// ListLots returns all lots.
func (s *LotService) ListLots(ctx context.Context) ([]LotDTO, error) {
	lots, err := s.lots.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]LotDTO, len(lots))
	for i, l := range lots {
		dtos[i] = toLotDTO(l)
	}
	return dtos, nil
}

// GetLot retrieves one lot by ID.
func (s *LotService) GetLot(ctx context.Context, id uuid.UUID) (*LotDTO, error) {
	l, err := s.lots.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toLotDTO(l)
	return &dto, nil
}

// CreateLot creates a new lot (admin). When available_capacity is
// omitted the lot starts fully available.
func (s *LotService) CreateLot(ctx context.Context, req CreateLotRequest) (*LotDTO, error) {
	available := -1
	if req.AvailableCapacity != nil {
		available = *req.AvailableCapacity
	}

	l, err := lotDomain.NewLot(req.Name, req.Location, req.TotalCapacity, available)
	if err != nil {
		return nil, err
	}

	if err := s.lots.Save(ctx, l); err != nil {
		return nil, err
	}

	s.logger.Info("parking lot created",
		zap.String("lot_id", l.ID().String()),
		zap.String("name", l.Name()),
		zap.Int("total_capacity", l.TotalCapacity()),
	)

	dto := toLotDTO(l)
	return &dto, nil
}

// UpdateLot applies an administrative edit to a lot (admin).
func (s *LotService) UpdateLot(ctx context.Context, id uuid.UUID, req UpdateLotRequest) (*LotDTO, error) {
	l, err := s.lots.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := l.UpdateDetails(req.Name, req.Location, req.TotalCapacity, req.AvailableCapacity); err != nil {
		return nil, err
	}

	if err := s.lots.Update(ctx, l); err != nil {
		return nil, err
	}

	dto := toLotDTO(l)
	return &dto, nil
}

// DeleteLot removes a lot (admin).
func (s *LotService) DeleteLot(ctx context.Context, id uuid.UUID) error {
	if err := s.lots.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("parking lot deleted", zap.String("lot_id", id.String()))
	return nil
}

// toLotDTO maps a domain Lot to a LotDTO.
func toLotDTO(l *lotDomain.Lot) LotDTO {
	return LotDTO{
		ID:                l.ID(),
		Name:              l.Name(),
		Location:          l.Location(),
		TotalCapacity:     l.TotalCapacity(),
		AvailableCapacity: l.AvailableCapacity(),
		CreatedAt:         l.CreatedAt(),
		UpdatedAt:         l.UpdatedAt(),
	}
}
