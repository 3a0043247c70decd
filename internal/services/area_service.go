package services

import (
	"github.com/qualitrack/qualitrack-api/internal/models"
	"github.com/qualitrack/qualitrack-api/internal/repository"
)

type AreaInput struct {
	EventID     uint
	AreaCode    string
	AreaName    string
	Description string
	SortOrder   int
}

type AreaService struct {
	store repository.Store
}

func NewAreaService(store repository.Store) *AreaService {
	return &AreaService{store: store}
}

func (s *AreaService) validate(in AreaInput) error {
	if in.EventID == 0 {
		return missingField("EventID", "Event ID is required")
	}
	if in.AreaCode == "" {
		return missingField("AreaCode", "Area code is required")
	}
	if in.AreaName == "" {
		return missingField("AreaName", "Area name is required")
	}
	return nil
}

func (s *AreaService) Create(in AreaInput) (*models.Area, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	if _, err := s.store.GetEvent(in.EventID); err != nil {
		if err == repository.ErrNotFound {
			return nil, missingField("EventID", "Event not found")
		}
		return nil, err
	}
	sortOrder := in.SortOrder
	if sortOrder == 0 {
		sortOrder = 1
	}
	area := models.Area{
		EventID:     in.EventID,
		AreaCode:    in.AreaCode,
		AreaName:    in.AreaName,
		Description: in.Description,
		SortOrder:   sortOrder,
		IsActive:    true,
	}
	if err := s.store.InsertArea(&area); err != nil {
		return nil, err
	}
	return &area, nil
}

func (s *AreaService) List() ([]models.Area, error) {
	return s.store.ListAreas()
}

func (s *AreaService) ListByEvent(eventID uint) ([]models.Area, error) {
	return s.store.FindAreasByEvent(eventID)
}

func (s *AreaService) Update(id uint, in AreaInput) (*models.Area, error) {
	if in.AreaCode == "" {
		return nil, missingField("AreaCode", "Area code is required")
	}
	if in.AreaName == "" {
		return nil, missingField("AreaName", "Area name is required")
	}
	existing, err := s.store.GetArea(id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, &NotFoundError{Resource: "Area", ID: id}
		}
		return nil, err
	}
	sortOrder := in.SortOrder
	if sortOrder == 0 {
		sortOrder = existing.SortOrder
	}
	if _, err := s.store.UpdateArea(id, models.Area{
		AreaCode:    in.AreaCode,
		AreaName:    in.AreaName,
		Description: in.Description,
		SortOrder:   sortOrder,
	}); err != nil {
		return nil, err
	}
	return s.store.GetArea(id)
}

// Deactivate soft-deletes an area; listings filter on IsActive.
func (s *AreaService) Deactivate(id uint) error {
	affected, err := s.store.DeactivateArea(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return &NotFoundError{Resource: "Area", ID: id}
	}
	return nil
}
