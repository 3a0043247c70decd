package services

import (
	"github.com/qualitrack/qualitrack-api/internal/models"
	"github.com/qualitrack/qualitrack-api/internal/repository"
)

type EventInput struct {
	EventCode   string
	EventName   string
	Description string
}

type EventService struct {
	store repository.Store
}

func NewEventService(store repository.Store) *EventService {
	return &EventService{store: store}
}

func (s *EventService) validate(in EventInput) error {
	if in.EventCode == "" {
		return missingField("EventCode", "Event code is required")
	}
	if in.EventName == "" {
		return missingField("EventName", "Event name is required")
	}
	return nil
}

func (s *EventService) Create(in EventInput) (*models.Event, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	event := models.Event{
		EventCode:   in.EventCode,
		EventName:   in.EventName,
		Description: in.Description,
	}
	if err := s.store.InsertEvent(&event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventService) List() ([]models.Event, error) {
	return s.store.ListEvents()
}

func (s *EventService) Get(id uint) (*models.Event, error) {
	event, err := s.store.GetEvent(id)
	if err == repository.ErrNotFound {
		return nil, &NotFoundError{Resource: "Event", ID: id}
	}
	return event, err
}

func (s *EventService) Update(id uint, in EventInput) (*models.Event, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	affected, err := s.store.UpdateEvent(id, models.Event{
		EventCode:   in.EventCode,
		EventName:   in.EventName,
		Description: in.Description,
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, &NotFoundError{Resource: "Event", ID: id}
	}
	return s.store.GetEvent(id)
}
