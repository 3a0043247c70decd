package repository

import (
	"errors"

	"github.com/qualitrack/qualitrack-api/internal/models"

	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm connection in the Store interface.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// Events

func (s *gormStore) ListEvents() ([]models.Event, error) {
	var events []models.Event
	err := s.db.Order("EventCode asc").Find(&events).Error
	return events, err
}

func (s *gormStore) GetEvent(id uint) (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, "EventID = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (s *gormStore) InsertEvent(e *models.Event) error {
	return translate(s.db.Create(e).Error)
}

func (s *gormStore) UpdateEvent(id uint, e models.Event) (int64, error) {
	res := s.db.Model(&models.Event{}).Where("EventID = ?", id).
		Select("EventCode", "EventName", "Description").
		Updates(map[string]interface{}{
			"EventCode":   e.EventCode,
			"EventName":   e.EventName,
			"Description": e.Description,
		})
	return res.RowsAffected, translate(res.Error)
}

// Areas

func (s *gormStore) ListAreas() ([]models.Area, error) {
	var areas []models.Area
	err := s.db.Where("IsActive = ?", true).Order("SortOrder asc").Find(&areas).Error
	return areas, err
}

func (s *gormStore) FindAreasByEvent(eventID uint) ([]models.Area, error) {
	var areas []models.Area
	err := s.db.Where("EventID = ? AND IsActive = ?", eventID, true).
		Order("SortOrder asc").Find(&areas).Error
	return areas, err
}

func (s *gormStore) GetArea(id uint) (*models.Area, error) {
	var area models.Area
	if err := s.db.First(&area, "AreaID = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &area, nil
}

func (s *gormStore) InsertArea(a *models.Area) error {
	return translate(s.db.Create(a).Error)
}

func (s *gormStore) UpdateArea(id uint, a models.Area) (int64, error) {
	res := s.db.Model(&models.Area{}).Where("AreaID = ?", id).
		Updates(map[string]interface{}{
			"AreaCode":    a.AreaCode,
			"AreaName":    a.AreaName,
			"Description": a.Description,
			"SortOrder":   a.SortOrder,
		})
	return res.RowsAffected, translate(res.Error)
}

func (s *gormStore) DeactivateArea(id uint) (int64, error) {
	res := s.db.Model(&models.Area{}).Where("AreaID = ? AND IsActive = ?", id, true).
		Update("IsActive", false)
	return res.RowsAffected, translate(res.Error)
}

// Criteria

func (s *gormStore) FindCriteriaByEvent(eventID uint) ([]models.Criteria, error) {
	var criteria []models.Criteria
	err := s.db.Table("criteria").
		Select("criteria.*, events.EventName AS EventName, events.EventCode AS EventCode").
		Joins("JOIN events ON events.EventID = criteria.EventID").
		Where("criteria.EventID = ?", eventID).
		Order("criteria.CriteriaCode asc").
		Scan(&criteria).Error
	return criteria, err
}

func (s *gormStore) FindCriteriaByArea(areaID uint) ([]models.Criteria, error) {
	var criteria []models.Criteria
	err := s.db.Where("AreaID = ? AND IsActive = ?", areaID, true).
		Order("CriteriaCode asc").Find(&criteria).Error
	return criteria, err
}

func (s *gormStore) FindCriteriaByParent(parentID uint) ([]models.Criteria, error) {
	var criteria []models.Criteria
	err := s.db.Where("ParentCriteriaID = ?", parentID).
		Order("CriteriaCode asc").Find(&criteria).Error
	return criteria, err
}

func (s *gormStore) GetCriteria(id uint) (*models.Criteria, error) {
	var c models.Criteria
	if err := s.db.First(&c, "CriteriaID = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *gormStore) InsertCriteria(c *models.Criteria) error {
	return translate(s.db.Create(c).Error)
}

func (s *gormStore) UpdateCriteria(id uint, c models.Criteria) (int64, error) {
	res := s.db.Model(&models.Criteria{}).Where("CriteriaID = ?", id).
		Updates(map[string]interface{}{
			"CriteriaCode":     c.CriteriaCode,
			"CriteriaName":     c.CriteriaName,
			"Description":      c.Description,
			"EventID":          c.EventID,
			"AreaID":           c.AreaID,
			"ParentCriteriaID": c.ParentCriteriaID,
		})
	return res.RowsAffected, translate(res.Error)
}

// Requirements

const requirementViewSelect = `requirements.RequirementID, requirements.RequirementCode,
	requirements.Description, requirements.CriteriaID, requirements.ParentRequirementCode,
	criteria.CriteriaCode, criteria.CriteriaName,
	areas.AreaID, areas.AreaCode, areas.AreaName, areas.SortOrder,
	events.EventID, events.EventCode, events.EventName`

func (s *gormStore) requirementViewQuery() *gorm.DB {
	// LEFT JOIN on areas so requirements under area-less criteria still appear
	return s.db.Table("requirements").
		Select(requirementViewSelect).
		Joins("JOIN criteria ON criteria.CriteriaID = requirements.CriteriaID").
		Joins("LEFT JOIN areas ON areas.AreaID = criteria.AreaID").
		Joins("JOIN events ON events.EventID = criteria.EventID").
		Order("areas.SortOrder asc, criteria.CriteriaCode asc, requirements.RequirementCode asc")
}

func (s *gormStore) FindRequirementsAll() ([]models.RequirementView, error) {
	var views []models.RequirementView
	err := s.requirementViewQuery().Scan(&views).Error
	return views, err
}

func (s *gormStore) FindRequirementsByEvent(eventID uint) ([]models.RequirementView, error) {
	var views []models.RequirementView
	err := s.requirementViewQuery().Where("events.EventID = ?", eventID).Scan(&views).Error
	return views, err
}

func (s *gormStore) FindRequirementsByParent(parentID uint) ([]models.Requirement, error) {
	var reqs []models.Requirement
	err := s.db.Where("ParentRequirementID = ?", parentID).
		Order("RequirementCode desc").Find(&reqs).Error
	return reqs, err
}

func (s *gormStore) FindRequirementsByCriteria(criteriaID uint) ([]models.Requirement, error) {
	var reqs []models.Requirement
	err := s.db.Where("CriteriaID = ?", criteriaID).
		Order("RequirementCode asc").Find(&reqs).Error
	return reqs, err
}

func (s *gormStore) GetRequirement(id uint) (*models.Requirement, error) {
	var r models.Requirement
	if err := s.db.First(&r, "RequirementID = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *gormStore) GetRequirementView(id uint) (*models.RequirementView, error) {
	var view models.RequirementView
	res := s.requirementViewQuery().Where("requirements.RequirementID = ?", id).Scan(&view)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &view, nil
}

func (s *gormStore) GetRequirementByCode(criteriaID uint, code string) (*models.Requirement, error) {
	var r models.Requirement
	err := s.db.First(&r, "CriteriaID = ? AND RequirementCode = ?", criteriaID, code).Error
	if err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *gormStore) InsertRequirement(r *models.Requirement) error {
	return translate(s.db.Create(r).Error)
}

func (s *gormStore) UpdateRequirement(id uint, r models.Requirement) (int64, error) {
	res := s.db.Model(&models.Requirement{}).Where("RequirementID = ?", id).
		Updates(map[string]interface{}{
			"RequirementCode":       r.RequirementCode,
			"Description":           r.Description,
			"CriteriaID":            r.CriteriaID,
			"ParentRequirementID":   r.ParentRequirementID,
			"ParentRequirementCode": r.ParentRequirementCode,
		})
	return res.RowsAffected, translate(res.Error)
}

// Evidence

func (s *gormStore) InsertEvidence(ev *models.Evidence) error {
	return translate(s.db.Create(ev).Error)
}

func (s *gormStore) ListEvidenceByRequirement(requirementID uint) ([]models.Evidence, error) {
	var evidence []models.Evidence
	err := s.db.Where("RequirementID = ?", requirementID).
		Order("UploadedAt desc").Find(&evidence).Error
	return evidence, err
}

func (s *gormStore) GetEvidence(id uint) (*models.Evidence, error) {
	var ev models.Evidence
	if err := s.db.First(&ev, "EvidenceID = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &ev, nil
}

func (s *gormStore) DeleteEvidence(id uint) (int64, error) {
	res := s.db.Delete(&models.Evidence{}, "EvidenceID = ?", id)
	return res.RowsAffected, translate(res.Error)
}

// Bulk deletes

func (s *gormStore) DeleteEventsByIDs(ids []uint) (int64, error) {
	res := s.db.Delete(&models.Event{}, "EventID IN ?", ids)
	return res.RowsAffected, translate(res.Error)
}

func (s *gormStore) DeleteAreasByEvents(eventIDs []uint) (int64, error) {
	res := s.db.Delete(&models.Area{}, "EventID IN ?", eventIDs)
	return res.RowsAffected, translate(res.Error)
}

func (s *gormStore) DeleteCriteriaByIDs(ids []uint) (int64, error) {
	res := s.db.Delete(&models.Criteria{}, "CriteriaID IN ?", ids)
	return res.RowsAffected, translate(res.Error)
}

func (s *gormStore) DeleteRequirementsByIDs(ids []uint) (int64, error) {
	res := s.db.Delete(&models.Requirement{}, "RequirementID IN ?", ids)
	return res.RowsAffected, translate(res.Error)
}

func (s *gormStore) DeleteHeadsByIDs(ids []uint) (int64, error) {
	res := s.db.Delete(&models.HeadOfOffice{}, "HeadOfOfficeID IN ?", ids)
	return res.RowsAffected, translate(res.Error)
}

func (s *gormStore) Transact(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
