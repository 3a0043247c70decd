package services

import (
	"strconv"
	"strings"

	"github.com/qualitrack/qualitrack-api/internal/models"
	"github.com/qualitrack/qualitrack-api/internal/repository"
)

// NormalizeOptionalID maps the optional foreign-key values the frontend
// sends (numbers, numeric strings, "", "null", "undefined", absent) to a
// nullable ID.
func NormalizeOptionalID(v any) *uint {
	switch t := v.(type) {
	case float64:
		if t <= 0 {
			return nil
		}
		id := uint(t)
		return &id
	case string:
		t = strings.TrimSpace(t)
		if t == "" || t == "null" || t == "undefined" {
			return nil
		}
		n, err := strconv.ParseUint(t, 10, 32)
		if err != nil || n == 0 {
			return nil
		}
		id := uint(n)
		return &id
	default:
		return nil
	}
}

type CriteriaInput struct {
	EventID          uint
	AreaID           *uint
	ParentCriteriaID *uint
	CriteriaCode     string
	CriteriaName     string
	Description      string
}

type CriteriaService struct {
	store repository.Store
}

func NewCriteriaService(store repository.Store) *CriteriaService {
	return &CriteriaService{store: store}
}

func (s *CriteriaService) validate(in CriteriaInput) error {
	if in.EventID == 0 {
		return missingField("EventID", "Event ID is required")
	}
	if in.CriteriaCode == "" {
		return missingField("CriteriaCode", "Criteria code is required")
	}
	if in.CriteriaName == "" {
		return missingField("CriteriaName", "Criteria name is required")
	}
	if in.Description == "" {
		return missingField("Description", "Description is required")
	}
	return nil
}

// checkParent verifies the parent row exists, lives in the same event, and
// that assigning it would not make selfID its own ancestor.
func (s *CriteriaService) checkParent(parentID uint, eventID uint, selfID uint) error {
	parent, err := s.store.GetCriteria(parentID)
	if err != nil {
		if err == repository.ErrNotFound {
			return missingField("ParentCriteriaID", "Parent criteria not found")
		}
		return err
	}
	if parent.EventID != eventID {
		return missingField("ParentCriteriaID", "Parent criteria belongs to a different event")
	}
	if selfID == 0 {
		return nil
	}
	for cursor := parent; ; {
		if cursor.CriteriaID == selfID {
			return &CycleError{Message: "Criteria cannot be its own ancestor"}
		}
		if cursor.ParentCriteriaID == nil {
			return nil
		}
		next, err := s.store.GetCriteria(*cursor.ParentCriteriaID)
		if err != nil {
			if err == repository.ErrNotFound {
				return nil
			}
			return err
		}
		cursor = next
	}
}

func (s *CriteriaService) Create(in CriteriaInput) (*models.Criteria, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	if in.ParentCriteriaID != nil {
		if err := s.checkParent(*in.ParentCriteriaID, in.EventID, 0); err != nil {
			return nil, err
		}
	}
	criteria := models.Criteria{
		EventID:          in.EventID,
		AreaID:           in.AreaID,
		ParentCriteriaID: in.ParentCriteriaID,
		CriteriaCode:     in.CriteriaCode,
		CriteriaName:     in.CriteriaName,
		Description:      in.Description,
		IsActive:         true,
	}
	if err := s.store.InsertCriteria(&criteria); err != nil {
		return nil, err
	}
	return &criteria, nil
}

func (s *CriteriaService) Update(id uint, in CriteriaInput) (*models.Criteria, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	if _, err := s.store.GetCriteria(id); err != nil {
		if err == repository.ErrNotFound {
			return nil, &NotFoundError{Resource: "Criteria", ID: id}
		}
		return nil, err
	}
	if in.ParentCriteriaID != nil {
		if *in.ParentCriteriaID == id {
			return nil, &CycleError{Message: "Criteria cannot be its own parent"}
		}
		if err := s.checkParent(*in.ParentCriteriaID, in.EventID, id); err != nil {
			return nil, err
		}
	}
	if _, err := s.store.UpdateCriteria(id, models.Criteria{
		EventID:          in.EventID,
		AreaID:           in.AreaID,
		ParentCriteriaID: in.ParentCriteriaID,
		CriteriaCode:     in.CriteriaCode,
		CriteriaName:     in.CriteriaName,
		Description:      in.Description,
	}); err != nil {
		return nil, err
	}
	return s.store.GetCriteria(id)
}

func (s *CriteriaService) ListByEvent(eventID uint) ([]models.Criteria, error) {
	return s.store.FindCriteriaByEvent(eventID)
}

func (s *CriteriaService) ListByArea(areaID uint) ([]models.Criteria, error) {
	return s.store.FindCriteriaByArea(areaID)
}
