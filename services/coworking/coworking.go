package coworking

import (
	"context"
	"fmt"

	"bookit/models"
	"bookit/remote"
)

type API interface {
	Coworkings(ctx context.Context) ([]remote.CoworkingSummaryDTO, error)
	Coworking(ctx context.Context, id string) (remote.CoworkingDetailDTO, error)
}

// Service is the coworking directory.
type Service struct {
	api API
}

func NewService(api API) *Service {
	return &Service{api: api}
}

func (s *Service) List(ctx context.Context) ([]models.CoworkingSummary, error) {
	dtos, err := s.api.Coworkings(ctx)
	if err != nil {
		return []models.CoworkingSummary{}, fmt.Errorf("list coworkings: %w", err)
	}
	out := make([]models.CoworkingSummary, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, models.CoworkingSummary{
			ID:       d.ID,
			Name:     d.Name,
			Address:  d.Address,
			OpensAt:  d.OpensAt,
			ClosesAt: d.ClosesAt,
		})
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.CoworkingDetail, error) {
	d, err := s.api.Coworking(ctx, id)
	if err != nil {
		return models.CoworkingDetail{}, fmt.Errorf("get coworking %s: %w", id, err)
	}
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return models.CoworkingDetail{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Address:     d.Address,
		Capacity:    d.Capacity,
		OpensAt:     d.OpensAt,
		ClosesAt:    d.ClosesAt,
		Images:      images,
	}, nil
}
