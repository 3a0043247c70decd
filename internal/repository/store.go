package repository

import (
	"errors"

	"github.com/qualitrack/qualitrack-api/internal/models"
)

// ErrDuplicate is returned by inserts that violate a uniqueness constraint,
// e.g. two requirements with the same code under one criteria.
var ErrDuplicate = errors.New("duplicate entry")

// ErrNotFound is returned by single-row lookups that match nothing.
var ErrNotFound = errors.New("record not found")

// Store is the only gateway to persistent storage for the compliance
// hierarchy (Event, Area, Criteria, Requirement) and evidence metadata.
// List operations return empty slices, not errors, when nothing matches.
// Update operations report the number of affected rows; 0 means not found.
type Store interface {
	// Events
	ListEvents() ([]models.Event, error)
	GetEvent(id uint) (*models.Event, error)
	InsertEvent(e *models.Event) error
	UpdateEvent(id uint, e models.Event) (int64, error)

	// Areas
	ListAreas() ([]models.Area, error)
	FindAreasByEvent(eventID uint) ([]models.Area, error)
	GetArea(id uint) (*models.Area, error)
	InsertArea(a *models.Area) error
	UpdateArea(id uint, a models.Area) (int64, error)
	DeactivateArea(id uint) (int64, error)

	// Criteria
	FindCriteriaByEvent(eventID uint) ([]models.Criteria, error)
	FindCriteriaByArea(areaID uint) ([]models.Criteria, error)
	FindCriteriaByParent(parentID uint) ([]models.Criteria, error)
	GetCriteria(id uint) (*models.Criteria, error)
	InsertCriteria(c *models.Criteria) error
	UpdateCriteria(id uint, c models.Criteria) (int64, error)

	// Requirements
	FindRequirementsAll() ([]models.RequirementView, error)
	FindRequirementsByEvent(eventID uint) ([]models.RequirementView, error)
	FindRequirementsByParent(parentID uint) ([]models.Requirement, error)
	FindRequirementsByCriteria(criteriaID uint) ([]models.Requirement, error)
	GetRequirement(id uint) (*models.Requirement, error)
	GetRequirementView(id uint) (*models.RequirementView, error)
	GetRequirementByCode(criteriaID uint, code string) (*models.Requirement, error)
	InsertRequirement(r *models.Requirement) error
	UpdateRequirement(id uint, r models.Requirement) (int64, error)

	// Evidence metadata
	InsertEvidence(ev *models.Evidence) error
	ListEvidenceByRequirement(requirementID uint) ([]models.Evidence, error)
	GetEvidence(id uint) (*models.Evidence, error)
	DeleteEvidence(id uint) (int64, error)

	// Bulk deletes
	DeleteEventsByIDs(ids []uint) (int64, error)
	DeleteAreasByEvents(eventIDs []uint) (int64, error)
	DeleteCriteriaByIDs(ids []uint) (int64, error)
	DeleteRequirementsByIDs(ids []uint) (int64, error)
	DeleteHeadsByIDs(ids []uint) (int64, error)

	// Transact runs fn against a store view whose writes commit atomically;
	// returning an error rolls every write back.
	Transact(fn func(Store) error) error
}
