package services

import (
	"strings"

	"github.com/qualitrack/qualitrack-api/internal/models"
	"github.com/qualitrack/qualitrack-api/internal/repository"
)

type RequirementInput struct {
	RequirementCode       string
	Description           string
	CriteriaID            uint
	ParentRequirementCode *string
}

type RequirementService struct {
	store repository.Store
}

func NewRequirementService(store repository.Store) *RequirementService {
	return &RequirementService{store: store}
}

// derivation carries everything resolved ahead of a code derivation: the
// owning criteria, the parent row when a parent code was supplied, and
// whether the final code was auto-generated (Rule A), which is the only case
// worth retrying after a duplicate-key race.
type derivation struct {
	criteria    *models.Criteria
	parent      *models.Requirement
	code        string
	autoDerived bool
}

func (s *RequirementService) resolve(in RequirementInput, excludeID uint) (*derivation, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, missingField("Description", "Description is required")
	}
	if in.CriteriaID == 0 {
		return nil, missingField("CriteriaID", "Criteria ID is required")
	}

	criteria, err := s.store.GetCriteria(in.CriteriaID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, missingField("CriteriaID", "Criteria not found")
		}
		return nil, err
	}

	d := &derivation{criteria: criteria}

	var parentCode *string
	if in.ParentRequirementCode != nil && strings.TrimSpace(*in.ParentRequirementCode) != "" {
		code := strings.TrimSpace(*in.ParentRequirementCode)
		parent, err := s.store.GetRequirementByCode(in.CriteriaID, code)
		if err != nil {
			if err == repository.ErrNotFound {
				return nil, missingField("ParentRequirementCode", "Parent requirement not found")
			}
			return nil, err
		}
		if excludeID != 0 {
			if err := s.checkCycle(parent, excludeID); err != nil {
				return nil, err
			}
		}
		d.parent = parent
		parentCode = &parent.RequirementCode
	}

	siblingCodes, err := s.siblingCodes(d.parent, excludeID)
	if err != nil {
		return nil, err
	}

	derived, err := DeriveRequirementCode(in.RequirementCode, parentCode, criteria.CriteriaCode, siblingCodes)
	if err != nil {
		return nil, err
	}
	d.code = derived
	d.autoDerived = d.parent != nil && strings.TrimSpace(in.RequirementCode) == ""
	return d, nil
}

func (s *RequirementService) siblingCodes(parent *models.Requirement, excludeID uint) ([]string, error) {
	if parent == nil {
		return nil, nil
	}
	siblings, err := s.store.FindRequirementsByParent(parent.RequirementID)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling.RequirementID == excludeID {
			continue
		}
		codes = append(codes, sibling.RequirementCode)
	}
	return codes, nil
}

// checkCycle walks the parent chain upward and rejects the assignment if it
// passes through selfID.
func (s *RequirementService) checkCycle(parent *models.Requirement, selfID uint) error {
	for cursor := parent; ; {
		if cursor.RequirementID == selfID {
			return &CycleError{Message: "Requirement cannot be its own ancestor"}
		}
		if cursor.ParentRequirementID == nil {
			return nil
		}
		next, err := s.store.GetRequirement(*cursor.ParentRequirementID)
		if err != nil {
			if err == repository.ErrNotFound {
				return nil
			}
			return err
		}
		cursor = next
	}
}

func (s *RequirementService) build(in RequirementInput, d *derivation) models.Requirement {
	req := models.Requirement{
		RequirementCode: d.code,
		Description:     in.Description,
		CriteriaID:      in.CriteriaID,
	}
	if d.parent != nil {
		req.ParentRequirementID = &d.parent.RequirementID
		parentCode := d.parent.RequirementCode
		req.ParentRequirementCode = &parentCode
	}
	return req
}

func (s *RequirementService) Create(in RequirementInput) (*models.Requirement, error) {
	d, err := s.resolve(in, 0)
	if err != nil {
		return nil, err
	}
	req := s.build(in, d)
	err = s.store.InsertRequirement(&req)
	if err == repository.ErrDuplicate && d.autoDerived {
		// Lost the race for the derived suffix; re-derive once against the
		// fresh sibling set.
		codes, serr := s.siblingCodes(d.parent, 0)
		if serr != nil {
			return nil, serr
		}
		req.RequirementCode = NextChildCode(d.parent.RequirementCode, codes)
		err = s.store.InsertRequirement(&req)
	}
	if err == repository.ErrDuplicate {
		return nil, &ConflictError{Message: "Requirement code already exists under this criteria"}
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *RequirementService) Update(id uint, in RequirementInput) (*models.Requirement, error) {
	existing, err := s.store.GetRequirement(id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, &NotFoundError{Resource: "Requirement", ID: id}
		}
		return nil, err
	}

	d, err := s.resolve(in, id)
	if err != nil {
		return nil, err
	}

	req := s.build(in, d)
	err = s.store.Transact(func(tx repository.Store) error {
		if _, err := tx.UpdateRequirement(id, req); err != nil {
			return err
		}
		if existing.RequirementCode != req.RequirementCode {
			return repointDescendants(tx, id, existing.RequirementCode, req.RequirementCode)
		}
		return nil
	})
	if err == repository.ErrDuplicate {
		return nil, &ConflictError{Message: "Requirement code already exists under this criteria"}
	}
	if err != nil {
		return nil, err
	}

	return s.store.GetRequirement(id)
}

// repointDescendants follows a renamed parent down the tree: every child gets
// the new parent code, and child codes carrying the old code as a dot prefix
// are rewritten under the new one, recursively. Codes that were supplied
// verbatim and never matched the prefix are left alone.
func repointDescendants(store repository.Store, parentID uint, oldCode, newCode string) error {
	children, err := store.FindRequirementsByParent(parentID)
	if err != nil {
		return err
	}
	for _, child := range children {
		childOld := child.RequirementCode
		code := newCode
		child.ParentRequirementCode = &code
		if strings.HasPrefix(childOld, oldCode+".") {
			child.RequirementCode = newCode + strings.TrimPrefix(childOld, oldCode)
		}
		if _, err := store.UpdateRequirement(child.RequirementID, child); err != nil {
			return err
		}
		if child.RequirementCode != childOld {
			if err := repointDescendants(store, child.RequirementID, childOld, child.RequirementCode); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *RequirementService) ListAll(eventID *uint) ([]models.RequirementView, error) {
	if eventID == nil {
		return s.store.FindRequirementsAll()
	}
	return s.store.FindRequirementsByEvent(*eventID)
}

func (s *RequirementService) ListByEvent(eventID uint) ([]models.RequirementView, error) {
	return s.store.FindRequirementsByEvent(eventID)
}

func (s *RequirementService) ListByCriteria(criteriaID uint) ([]models.Requirement, error) {
	return s.store.FindRequirementsByCriteria(criteriaID)
}

func (s *RequirementService) Get(id uint) (*models.Requirement, error) {
	req, err := s.store.GetRequirement(id)
	if err == repository.ErrNotFound {
		return nil, &NotFoundError{Resource: "Requirement", ID: id}
	}
	return req, err
}

// GetView returns the joined row for one requirement, as the search index
// stores it.
func (s *RequirementService) GetView(id uint) (*models.RequirementView, error) {
	view, err := s.store.GetRequirementView(id)
	if err == repository.ErrNotFound {
		return nil, &NotFoundError{Resource: "Requirement", ID: id}
	}
	return view, err
}
