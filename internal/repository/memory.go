package repository

import (
	"sort"
	"sync"

	"github.com/qualitrack/qualitrack-api/internal/models"
)

// MemoryStore is a map-backed Store with the same semantics as the MySQL
// implementation, including the unique (CriteriaID, RequirementCode)
// constraint. Intended for tests.
type MemoryStore struct {
	mu sync.Mutex

	events       map[uint]models.Event
	areas        map[uint]models.Area
	criteria     map[uint]models.Criteria
	requirements map[uint]models.Requirement
	evidence     map[uint]models.Evidence
	heads        map[uint]models.HeadOfOffice

	nextID map[string]uint
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		events:       make(map[uint]models.Event),
		areas:        make(map[uint]models.Area),
		criteria:     make(map[uint]models.Criteria),
		requirements: make(map[uint]models.Requirement),
		evidence:     make(map[uint]models.Evidence),
		heads:        make(map[uint]models.HeadOfOffice),
		nextID:       make(map[string]uint),
	}
}

func (s *MemoryStore) next(kind string) uint {
	s.nextID[kind]++
	return s.nextID[kind]
}

// Events

func (s *MemoryStore) ListEvents() ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].EventCode < events[j].EventCode })
	return events, nil
}

func (s *MemoryStore) GetEvent(id uint) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (s *MemoryStore) InsertEvent(e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.EventID = s.next("event")
	s.events[e.EventID] = *e
	return nil
}

func (s *MemoryStore) UpdateEvent(id uint, e models.Event) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.events[id]
	if !ok {
		return 0, nil
	}
	existing.EventCode = e.EventCode
	existing.EventName = e.EventName
	existing.Description = e.Description
	s.events[id] = existing
	return 1, nil
}

// Areas

func (s *MemoryStore) activeAreas(filter func(models.Area) bool) []models.Area {
	areas := make([]models.Area, 0)
	for _, a := range s.areas {
		if a.IsActive && filter(a) {
			areas = append(areas, a)
		}
	}
	sort.Slice(areas, func(i, j int) bool {
		if areas[i].SortOrder != areas[j].SortOrder {
			return areas[i].SortOrder < areas[j].SortOrder
		}
		return areas[i].AreaID < areas[j].AreaID
	})
	return areas
}

func (s *MemoryStore) ListAreas() ([]models.Area, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeAreas(func(models.Area) bool { return true }), nil
}

func (s *MemoryStore) FindAreasByEvent(eventID uint) ([]models.Area, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeAreas(func(a models.Area) bool { return a.EventID == eventID }), nil
}

func (s *MemoryStore) GetArea(id uint) (*models.Area, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.areas[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (s *MemoryStore) InsertArea(a *models.Area) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.AreaID = s.next("area")
	s.areas[a.AreaID] = *a
	return nil
}

func (s *MemoryStore) UpdateArea(id uint, a models.Area) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.areas[id]
	if !ok {
		return 0, nil
	}
	existing.AreaCode = a.AreaCode
	existing.AreaName = a.AreaName
	existing.Description = a.Description
	existing.SortOrder = a.SortOrder
	s.areas[id] = existing
	return 1, nil
}

func (s *MemoryStore) DeactivateArea(id uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.areas[id]
	if !ok || !existing.IsActive {
		return 0, nil
	}
	existing.IsActive = false
	s.areas[id] = existing
	return 1, nil
}

// Criteria

func (s *MemoryStore) FindCriteriaByEvent(eventID uint) ([]models.Criteria, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	criteria := make([]models.Criteria, 0)
	for _, c := range s.criteria {
		if c.EventID != eventID {
			continue
		}
		if e, ok := s.events[c.EventID]; ok {
			c.EventName = e.EventName
			c.EventCode = e.EventCode
		}
		criteria = append(criteria, c)
	}
	sort.Slice(criteria, func(i, j int) bool { return criteria[i].CriteriaCode < criteria[j].CriteriaCode })
	return criteria, nil
}

func (s *MemoryStore) FindCriteriaByArea(areaID uint) ([]models.Criteria, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	criteria := make([]models.Criteria, 0)
	for _, c := range s.criteria {
		if c.IsActive && c.AreaID != nil && *c.AreaID == areaID {
			criteria = append(criteria, c)
		}
	}
	sort.Slice(criteria, func(i, j int) bool { return criteria[i].CriteriaCode < criteria[j].CriteriaCode })
	return criteria, nil
}

func (s *MemoryStore) FindCriteriaByParent(parentID uint) ([]models.Criteria, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	criteria := make([]models.Criteria, 0)
	for _, c := range s.criteria {
		if c.ParentCriteriaID != nil && *c.ParentCriteriaID == parentID {
			criteria = append(criteria, c)
		}
	}
	sort.Slice(criteria, func(i, j int) bool { return criteria[i].CriteriaCode < criteria[j].CriteriaCode })
	return criteria, nil
}

func (s *MemoryStore) GetCriteria(id uint) (*models.Criteria, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.criteria[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryStore) InsertCriteria(c *models.Criteria) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.CriteriaID = s.next("criteria")
	s.criteria[c.CriteriaID] = *c
	return nil
}

func (s *MemoryStore) UpdateCriteria(id uint, c models.Criteria) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.criteria[id]
	if !ok {
		return 0, nil
	}
	existing.CriteriaCode = c.CriteriaCode
	existing.CriteriaName = c.CriteriaName
	existing.Description = c.Description
	existing.EventID = c.EventID
	existing.AreaID = c.AreaID
	existing.ParentCriteriaID = c.ParentCriteriaID
	s.criteria[id] = existing
	return 1, nil
}

// Requirements

func (s *MemoryStore) view(r models.Requirement) models.RequirementView {
	v := models.RequirementView{
		RequirementID:         r.RequirementID,
		RequirementCode:       r.RequirementCode,
		Description:           r.Description,
		CriteriaID:            r.CriteriaID,
		ParentRequirementCode: r.ParentRequirementCode,
	}
	c, ok := s.criteria[r.CriteriaID]
	if !ok {
		return v
	}
	v.CriteriaCode = c.CriteriaCode
	v.CriteriaName = c.CriteriaName
	if c.AreaID != nil {
		if a, ok := s.areas[*c.AreaID]; ok {
			areaID, code, name, order := a.AreaID, a.AreaCode, a.AreaName, a.SortOrder
			v.AreaID = &areaID
			v.AreaCode = &code
			v.AreaName = &name
			v.SortOrder = &order
		}
	}
	if e, ok := s.events[c.EventID]; ok {
		v.EventID = e.EventID
		v.EventCode = e.EventCode
		v.EventName = e.EventName
	}
	return v
}

func (s *MemoryStore) requirementViews(filter func(models.RequirementView) bool) []models.RequirementView {
	views := make([]models.RequirementView, 0)
	for _, r := range s.requirements {
		if v := s.view(r); filter(v) {
			views = append(views, v)
		}
	}
	// NULL SortOrder sorts first, matching MySQL ASC ordering
	sort.Slice(views, func(i, j int) bool {
		oi, oj := -1, -1
		if views[i].SortOrder != nil {
			oi = *views[i].SortOrder
		}
		if views[j].SortOrder != nil {
			oj = *views[j].SortOrder
		}
		if oi != oj {
			return oi < oj
		}
		if views[i].CriteriaCode != views[j].CriteriaCode {
			return views[i].CriteriaCode < views[j].CriteriaCode
		}
		return views[i].RequirementCode < views[j].RequirementCode
	})
	return views
}

func (s *MemoryStore) FindRequirementsAll() ([]models.RequirementView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requirementViews(func(models.RequirementView) bool { return true }), nil
}

func (s *MemoryStore) FindRequirementsByEvent(eventID uint) ([]models.RequirementView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requirementViews(func(v models.RequirementView) bool { return v.EventID == eventID }), nil
}

func (s *MemoryStore) FindRequirementsByParent(parentID uint) ([]models.Requirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reqs := make([]models.Requirement, 0)
	for _, r := range s.requirements {
		if r.ParentRequirementID != nil && *r.ParentRequirementID == parentID {
			reqs = append(reqs, r)
		}
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].RequirementCode > reqs[j].RequirementCode })
	return reqs, nil
}

func (s *MemoryStore) FindRequirementsByCriteria(criteriaID uint) ([]models.Requirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reqs := make([]models.Requirement, 0)
	for _, r := range s.requirements {
		if r.CriteriaID == criteriaID {
			reqs = append(reqs, r)
		}
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].RequirementCode < reqs[j].RequirementCode })
	return reqs, nil
}

func (s *MemoryStore) GetRequirement(id uint) (*models.Requirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requirements[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *MemoryStore) GetRequirementView(id uint) (*models.RequirementView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requirements[id]
	if !ok {
		return nil, ErrNotFound
	}
	v := s.view(r)
	return &v, nil
}

func (s *MemoryStore) GetRequirementByCode(criteriaID uint, code string) (*models.Requirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requirements {
		if r.CriteriaID == criteriaID && r.RequirementCode == code {
			match := r
			return &match, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) InsertRequirement(r *models.Requirement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.requirements {
		if existing.CriteriaID == r.CriteriaID && existing.RequirementCode == r.RequirementCode {
			return ErrDuplicate
		}
	}
	r.RequirementID = s.next("requirement")
	s.requirements[r.RequirementID] = *r
	return nil
}

func (s *MemoryStore) UpdateRequirement(id uint, r models.Requirement) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.requirements[id]
	if !ok {
		return 0, nil
	}
	for otherID, other := range s.requirements {
		if otherID != id && other.CriteriaID == r.CriteriaID && other.RequirementCode == r.RequirementCode {
			return 0, ErrDuplicate
		}
	}
	existing.RequirementCode = r.RequirementCode
	existing.Description = r.Description
	existing.CriteriaID = r.CriteriaID
	existing.ParentRequirementID = r.ParentRequirementID
	existing.ParentRequirementCode = r.ParentRequirementCode
	s.requirements[id] = existing
	return 1, nil
}

// Evidence

func (s *MemoryStore) InsertEvidence(ev *models.Evidence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev.EvidenceID = s.next("evidence")
	s.evidence[ev.EvidenceID] = *ev
	return nil
}

func (s *MemoryStore) ListEvidenceByRequirement(requirementID uint) ([]models.Evidence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	evidence := make([]models.Evidence, 0)
	for _, ev := range s.evidence {
		if ev.RequirementID == requirementID {
			evidence = append(evidence, ev)
		}
	}
	sort.Slice(evidence, func(i, j int) bool { return evidence[i].EvidenceID > evidence[j].EvidenceID })
	return evidence, nil
}

func (s *MemoryStore) GetEvidence(id uint) (*models.Evidence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.evidence[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &ev, nil
}

func (s *MemoryStore) DeleteEvidence(id uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.evidence[id]; !ok {
		return 0, nil
	}
	delete(s.evidence, id)
	return 1, nil
}

// Bulk deletes

func (s *MemoryStore) DeleteEventsByIDs(ids []uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, id := range ids {
		if _, ok := s.events[id]; ok {
			delete(s.events, id)
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) DeleteAreasByEvents(eventIDs []uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for id, a := range s.areas {
		for _, eventID := range eventIDs {
			if a.EventID == eventID {
				delete(s.areas, id)
				count++
				break
			}
		}
	}
	return count, nil
}

func (s *MemoryStore) DeleteCriteriaByIDs(ids []uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, id := range ids {
		if _, ok := s.criteria[id]; ok {
			delete(s.criteria, id)
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) DeleteRequirementsByIDs(ids []uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, id := range ids {
		if _, ok := s.requirements[id]; ok {
			delete(s.requirements, id)
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) DeleteHeadsByIDs(ids []uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, id := range ids {
		if _, ok := s.heads[id]; ok {
			delete(s.heads, id)
			count++
		}
	}
	return count, nil
}

// Transact snapshots all tables and restores them if fn fails.
func (s *MemoryStore) Transact(fn func(Store) error) error {
	s.mu.Lock()
	snapshot := struct {
		events       map[uint]models.Event
		areas        map[uint]models.Area
		criteria     map[uint]models.Criteria
		requirements map[uint]models.Requirement
		evidence     map[uint]models.Evidence
		heads        map[uint]models.HeadOfOffice
		nextID       map[string]uint
	}{
		events:       copyMap(s.events),
		areas:        copyMap(s.areas),
		criteria:     copyMap(s.criteria),
		requirements: copyMap(s.requirements),
		evidence:     copyMap(s.evidence),
		heads:        copyMap(s.heads),
		nextID:       copyMap(s.nextID),
	}
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.events = snapshot.events
		s.areas = snapshot.areas
		s.criteria = snapshot.criteria
		s.requirements = snapshot.requirements
		s.evidence = snapshot.evidence
		s.heads = snapshot.heads
		s.nextID = snapshot.nextID
		s.mu.Unlock()
		return err
	}
	return nil
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// AddHead seeds an office head row. Test helper; production inserts go
// through gorm in the office handlers.
func (s *MemoryStore) AddHead(h models.HeadOfOffice) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	h.HeadOfOfficeID = s.next("head")
	s.heads[h.HeadOfOfficeID] = h
	return h.HeadOfOfficeID
}
