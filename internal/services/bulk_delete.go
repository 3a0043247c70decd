package services

import (
	"github.com/qualitrack/qualitrack-api/internal/repository"
)

// BulkDeleteService validates and executes multi-id deletes. Deleting zero
// rows is not an error; the caller reports the count. Parent deletes cascade
// so no child row is left referencing a gone parent.
type BulkDeleteService struct {
	store repository.Store
}

func NewBulkDeleteService(store repository.Store) *BulkDeleteService {
	return &BulkDeleteService{store: store}
}

func validateIDs(field string, ids []uint) error {
	if len(ids) == 0 {
		return missingField(field, field+" must be a non-empty array of IDs")
	}
	return nil
}

// DeleteEvents removes the events and everything scoped to them: areas,
// criteria, and requirements. The count covers event rows; the requirement
// IDs removed by the cascade are returned so callers can deindex them.
func (s *BulkDeleteService) DeleteEvents(ids []uint) (int64, []uint, error) {
	if err := validateIDs("eventIds", ids); err != nil {
		return 0, nil, err
	}
	var total int64
	var requirementIDs []uint
	err := s.store.Transact(func(tx repository.Store) error {
		var criteriaIDs []uint
		for _, id := range ids {
			criteria, err := tx.FindCriteriaByEvent(id)
			if err != nil {
				return err
			}
			for _, c := range criteria {
				criteriaIDs = append(criteriaIDs, c.CriteriaID)
			}
		}
		var err error
		requirementIDs, err = requirementIDsOf(tx, criteriaIDs)
		if err != nil {
			return err
		}
		if len(requirementIDs) > 0 {
			if _, err := tx.DeleteRequirementsByIDs(requirementIDs); err != nil {
				return err
			}
		}
		if len(criteriaIDs) > 0 {
			if _, err := tx.DeleteCriteriaByIDs(criteriaIDs); err != nil {
				return err
			}
		}
		if _, err := tx.DeleteAreasByEvents(ids); err != nil {
			return err
		}
		count, err := tx.DeleteEventsByIDs(ids)
		if err != nil {
			return err
		}
		total = count
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return total, requirementIDs, nil
}

// DeleteCriteria removes the criteria rows, their descendant criteria, and
// every requirement any of them own. The count covers criteria rows
// (descendants included); the requirement IDs removed by the cascade are
// returned so callers can deindex them.
func (s *BulkDeleteService) DeleteCriteria(ids []uint) (int64, []uint, error) {
	if err := validateIDs("criteriaIds", ids); err != nil {
		return 0, nil, err
	}
	var total int64
	var requirementIDs []uint
	err := s.store.Transact(func(tx repository.Store) error {
		all, err := collectCriteriaDescendants(tx, ids)
		if err != nil {
			return err
		}
		requirementIDs, err = requirementIDsOf(tx, all)
		if err != nil {
			return err
		}
		if len(requirementIDs) > 0 {
			if _, err := tx.DeleteRequirementsByIDs(requirementIDs); err != nil {
				return err
			}
		}
		count, err := tx.DeleteCriteriaByIDs(all)
		if err != nil {
			return err
		}
		total = count
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return total, requirementIDs, nil
}

func requirementIDsOf(store repository.Store, criteriaIDs []uint) ([]uint, error) {
	ids := make([]uint, 0)
	for _, criteriaID := range criteriaIDs {
		reqs, err := store.FindRequirementsByCriteria(criteriaID)
		if err != nil {
			return nil, err
		}
		for _, r := range reqs {
			ids = append(ids, r.RequirementID)
		}
	}
	return ids, nil
}

// collectCriteriaDescendants widens ids to include every criteria reachable
// through ParentCriteriaID, breadth-first.
func collectCriteriaDescendants(store repository.Store, ids []uint) ([]uint, error) {
	seen := make(map[uint]bool, len(ids))
	queue := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			queue = append(queue, id)
		}
	}
	all := make([]uint, 0, len(queue))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		all = append(all, id)
		children, err := store.FindCriteriaByParent(id)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if !seen[child.CriteriaID] {
				seen[child.CriteriaID] = true
				queue = append(queue, child.CriteriaID)
			}
		}
	}
	return all, nil
}

// DeleteRequirements removes the requested rows and all their descendants,
// returning the full set of deleted IDs.
func (s *BulkDeleteService) DeleteRequirements(ids []uint) (int64, []uint, error) {
	if err := validateIDs("requirementIds", ids); err != nil {
		return 0, nil, err
	}
	var total int64
	var all []uint
	err := s.store.Transact(func(tx repository.Store) error {
		var err error
		all, err = collectDescendants(tx, ids)
		if err != nil {
			return err
		}
		count, err := tx.DeleteRequirementsByIDs(all)
		if err != nil {
			return err
		}
		total = count
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return total, all, nil
}

// collectDescendants widens ids to include every requirement reachable
// through ParentRequirementID, breadth-first.
func collectDescendants(store repository.Store, ids []uint) ([]uint, error) {
	seen := make(map[uint]bool, len(ids))
	queue := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			queue = append(queue, id)
		}
	}
	all := make([]uint, 0, len(queue))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		all = append(all, id)
		children, err := store.FindRequirementsByParent(id)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if !seen[child.RequirementID] {
				seen[child.RequirementID] = true
				queue = append(queue, child.RequirementID)
			}
		}
	}
	return all, nil
}

func (s *BulkDeleteService) DeleteHeads(ids []uint) (int64, error) {
	if err := validateIDs("headIds", ids); err != nil {
		return 0, err
	}
	return s.store.DeleteHeadsByIDs(ids)
}
